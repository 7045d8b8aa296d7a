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

// Package enum names the values of integer-backed enumeration types.
//
// Go constants carry no names at run time, so a type opts in once by
// registering its values, usually from generated code:
//
//	enum.MustRegister(map[Status]string{
//		StatusPending: "kPending",
//		StatusActive:  "kActive",
//	})
//
// After that enum.Name(StatusActive) == "kActive".
package enum

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/names"
)

var (
	// ErrEmptyName is returned when a value is registered with "".
	ErrEmptyName = errors.New("tix(enum): empty value name")
	// ErrDuplicateName is returned when two values share a name.
	ErrDuplicateName = errors.New("tix(enum): duplicate value name")
	// ErrAlreadyRegistered is returned when a type is registered twice.
	ErrAlreadyRegistered = errors.New("tix(enum): type already registered")
	// ErrNoValues is returned when registering no values.
	ErrNoValues = errors.New("tix(enum): no values")
)

// Integer is the set of types an enumeration may be declared on.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type table[E Integer] struct {
	values []E
	names  []string
	byVal  map[E]string
	byName map[string]E
}

// entry is the type-erased face of a table, used by Lookup.
type entry struct {
	lookup func(v any) (string, bool)
}

var (
	tables sync.Map // key: reflect.Type, val: *table[E]
	erased sync.Map // key: reflect.Type, val: entry
	mu     sync.Mutex
)

// Register records the names of E's values. Values are kept in ascending
// order of their underlying value.
func Register[E Integer](m map[E]string) error {
	if len(m) == 0 {
		return ErrNoValues
	}
	t := reflect.TypeFor[E]()
	tb := &table[E]{
		byVal:  make(map[E]string, len(m)),
		byName: make(map[string]E, len(m)),
	}
	for v, n := range m {
		if n == "" {
			return fmt.Errorf("%w: %s(%d)", ErrEmptyName, t, v)
		}
		if prev, dup := tb.byName[n]; dup {
			return fmt.Errorf("%w: %s %q for %d and %d", ErrDuplicateName, t, n, prev, v)
		}
		tb.byName[n] = v
		tb.byVal[v] = n
		tb.values = append(tb.values, v)
	}
	slices.Sort(tb.values)
	tb.names = make([]string, len(tb.values))
	for i, v := range tb.values {
		tb.names[i] = tb.byVal[v]
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := tables.Load(t); ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t)
	}
	tables.Store(t, tb)
	erased.Store(t, entry{
		lookup: func(v any) (string, bool) {
			e, ok := v.(E)
			if !ok {
				return "", false
			}
			n, ok := tb.byVal[e]
			return n, ok
		},
	})
	logging.Named("enum").Debug("registered enum",
		zap.Stringer("type", t),
		zap.Strings("values", tb.names))
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[E Integer](m map[E]string) {
	if err := Register(m); err != nil {
		panic(err)
	}
}

// Stringer is an enumeration type that names its own values.
type Stringer interface {
	Integer
	fmt.Stringer
}

// RegisterValues registers values under their String names.
func RegisterValues[E Stringer](values ...E) error {
	m := make(map[E]string, len(values))
	for _, v := range values {
		m[v] = v.String()
	}
	return Register(m)
}

func lookup[E Integer]() (*table[E], bool) {
	v, ok := tables.Load(reflect.TypeFor[E]())
	if !ok {
		return nil, false
	}
	return v.(*table[E]), true
}

// Name returns the registered name of v, or its decimal value. It never
// calls v.String, so String methods may be written in terms of Name.
func Name[E Integer](v E) string {
	if tb, ok := lookup[E](); ok {
		if n, ok := tb.byVal[v]; ok {
			return n
		}
	}
	return decimal(v)
}

// Lookup returns the registered name of v, whatever its enum type.
func Lookup(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	e, ok := erased.Load(reflect.TypeOf(v))
	if !ok {
		return "", false
	}
	return e.(entry).lookup(v)
}

// Registered reports whether t has registered values.
func Registered(t reflect.Type) bool {
	_, ok := erased.Load(t)
	return ok
}

// Values returns E's registered values in ascending order.
func Values[E Integer]() []E {
	tb, ok := lookup[E]()
	if !ok {
		return nil
	}
	return slices.Clone(tb.values)
}

// Names returns E's value names in the order of Values.
func Names[E Integer]() []string {
	tb, ok := lookup[E]()
	if !ok {
		return nil
	}
	return slices.Clone(tb.names)
}

// Count returns the number of registered values of E.
func Count[E Integer]() int {
	tb, ok := lookup[E]()
	if !ok {
		return 0
	}
	return len(tb.values)
}

// FromName returns the value registered as name.
func FromName[E Integer](name string) (E, bool) {
	tb, ok := lookup[E]()
	if !ok {
		var zero E
		return zero, false
	}
	v, ok := tb.byName[name]
	return v, ok
}

// FromUnderlying returns E(u) when it is a registered value.
func FromUnderlying[E Integer](u int64) (E, bool) {
	v := E(u)
	if !Contains(v) || Underlying(v) != u {
		var zero E
		return zero, false
	}
	return v, true
}

// Contains reports whether v is a registered value of E.
func Contains[E Integer](v E) bool {
	tb, ok := lookup[E]()
	if !ok {
		return false
	}
	_, ok = tb.byVal[v]
	return ok
}

// Underlying returns v as an int64.
func Underlying[E Integer](v E) int64 {
	return int64(v)
}

// Less orders values by their underlying value.
func Less[E Integer](a, b E) bool {
	return a < b
}

// TypeName returns the short name of E.
func TypeName[E Integer]() string {
	n, err := names.Type(reflect.TypeFor[E](), names.Options{})
	if err != nil {
		return reflect.TypeFor[E]().String()
	}
	return n
}

func decimal[E Integer](v E) string {
	switch reflect.TypeFor[E]().Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(uint64(v), 10)
	}
	return strconv.FormatInt(int64(v), 10)
}
