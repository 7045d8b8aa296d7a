/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tix

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/entity"
	"dirpx.dev/tix/enum"
	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/names"
	"dirpx.dev/tix/typeid"
	uref "dirpx.dev/tix/utils/reflect"
)

// ErrNoName is returned when no strategy could name a type.
var ErrNoName = errors.New("tix: no name for type")

// NameOf returns the name of T, e.g. "geo.Point". It panics when T cannot
// be named, which only happens for broken custom strategies.
func NameOf[T any]() string {
	n, err := NameOfType(reflect.TypeFor[T]())
	if err != nil {
		panic(err)
	}
	return n
}

// NameOfType returns the name of t.
func NameOfType(t reflect.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil", ErrNoName)
	}
	s := st.Load()
	if n := s.res.ResolveType(t, s.cfg); n != "" {
		return n, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoName, t)
}

// NameOfValue returns the name of v's dynamic type, or "" for nil.
func NameOfValue(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// ShortNameOf returns the name of T without its package selector.
func ShortNameOf[T any]() string {
	return names.Base(NameOf[T]())
}

// QualifiedNameOf returns the name of T with "::" separating the package,
// e.g. "geo::Point".
func QualifiedNameOf[T any]() entity.Name {
	return entity.New(names.Qualify(NameOf[T]()))
}

// TypeIDOf returns the hashed identity of T.
func TypeIDOf[T any]() typeid.ID {
	return typeid.New(NameOf[T]())
}

// NearestNameOf names the nearest named type reachable from T through
// pointer, slice, array, chan and map layers: []*geo.Point gives
// "geo.Point". It returns "" when no named type is reachable or when that
// type is builtin and builtins are excluded.
func NearestNameOf[T any]() string {
	return NearestNameOfType(reflect.TypeFor[T]())
}

// NearestName is NearestNameOf for v's dynamic type.
func NearestName(v any) string {
	if v == nil {
		return ""
	}
	return NearestNameOfType(reflect.TypeOf(v))
}

// NearestNameOfType is NearestNameOf for t.
func NearestNameOfType(t reflect.Type) string {
	s := st.Load()
	base, err := uref.Nearest(t, s.cfg)
	if err != nil {
		return ""
	}
	if !s.cfg.IncludeBuiltins && uref.IsBuiltin(base) {
		return ""
	}
	return s.res.ResolveType(base, s.cfg)
}

// ValueNameOf names a value: the registered enum name, then TixValueName,
// then the value's own rendering with any qualification removed.
func ValueNameOf(v any) string {
	if n, ok := enum.Lookup(v); ok {
		return n
	}
	if vn, ok := v.(apis.ValueNamer); ok {
		if n := vn.TixValueName(); n != "" {
			return n
		}
	}
	n, err := names.Value(v)
	if err != nil {
		logging.Named("tix").Debug("value has no name",
			zap.String("type", fmt.Sprintf("%T", v)), zap.Error(err))
		return ""
	}
	return n
}

// QualifiedValueNameOf returns "pkg::Type::value" for v.
func QualifiedValueNameOf(v any) entity.Name {
	return entity.New(names.Qualify(NameOfValue(v))).Join(ValueNameOf(v))
}

// Register names T explicitly in the active registry.
func Register[T any](name string) error {
	return RegisterType(reflect.TypeFor[T](), name)
}

// RegisterType names t explicitly in the active registry.
func RegisterType(t reflect.Type, name string) error {
	return st.Load().reg.Register(t, name)
}

// SetLogger routes library logs to l. nil silences them.
func SetLogger(l *zap.Logger) {
	logging.SetLogger(l)
}
