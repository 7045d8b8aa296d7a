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

package symbol

import (
	"fmt"
	"reflect"

	"dirpx.dev/tix/member"
)

// Field is a typed accessor for the data member a symbol binds on T.
type Field[T, V any] struct {
	sym   *Symbol
	trait *member.Trait
}

// Bind resolves s on T once and returns a typed accessor. It fails when T
// does not own s, the member is not data, or its type is not assignable to V.
func Bind[T, V any](s *Symbol) (Field[T, V], error) {
	var zero T
	tr, err := s.memberFor(&zero)
	if err != nil {
		return Field[T, V]{}, err
	}
	if !tr.IsData() {
		return Field[T, V]{}, fmt.Errorf("%w: %s", member.ErrNotData, tr)
	}
	if vt := reflect.TypeFor[V](); !tr.Type().AssignableTo(vt) {
		return Field[T, V]{}, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, tr, tr.Type(), vt)
	}
	return Field[T, V]{sym: s, trait: tr}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T, V any](s *Symbol) Field[T, V] {
	f, err := Bind[T, V](s)
	if err != nil {
		panic(err)
	}
	return f
}

// Symbol returns the bound symbol.
func (f Field[T, V]) Symbol() *Symbol { return f.sym }

// Trait returns the bound member.
func (f Field[T, V]) Trait() *member.Trait { return f.trait }

// Get reads the member of obj.
func (f Field[T, V]) Get(obj *T) (V, error) {
	out := new(V)
	v, err := f.trait.GetValue(obj)
	if err != nil {
		return *out, err
	}
	reflect.ValueOf(out).Elem().Set(v)
	return *out, nil
}

// Set writes the member of obj.
func (f Field[T, V]) Set(obj *T, v V) error {
	return f.trait.SetValue(obj, reflect.ValueOf(&v).Elem())
}
