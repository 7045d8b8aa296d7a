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

// Package construct builds values of a type through registered constructor
// functions, picking the constructor that best fits the arguments.
package construct

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/match"
)

var (
	// ErrInvalidConstructor is returned when registering something that is not
	// a func returning T or *T, optionally followed by an error.
	ErrInvalidConstructor = errors.New("tix(construct): invalid constructor")
	// ErrNoViableConstructor is returned when no constructor accepts the
	// arguments and aggregate construction does not apply.
	ErrNoViableConstructor = errors.New("tix(construct): no viable constructor")
	// ErrTooManyFields is returned when aggregate construction gets more
	// values than T has fields.
	ErrTooManyFields = errors.New("tix(construct): too many values for aggregate")
	// ErrNotAggregate is returned when T is not a struct or has an unexported
	// field in the initialised prefix.
	ErrNotAggregate = errors.New("tix(construct): not an aggregate")
)

var errorType = reflect.TypeFor[error]()

type ctor struct {
	fn    reflect.Value
	ptr   bool
	fails bool
}

var (
	ctors sync.Map // key: reflect.Type, val: []ctor
	mu    sync.Mutex
)

// Register adds constructors for T. Each must be a func whose first result
// is T or *T and whose optional second result is error. Declaration order
// breaks ties between equally good constructors.
func Register[T any](fns ...any) error {
	t := reflect.TypeFor[T]()
	add := make([]ctor, 0, len(fns))
	for i, fn := range fns {
		c, err := check(t, fn)
		if err != nil {
			return fmt.Errorf("%w: %s constructor %d: %w", ErrInvalidConstructor, t, i, err)
		}
		add = append(add, c)
	}
	mu.Lock()
	defer mu.Unlock()
	var all []ctor
	if v, ok := ctors.Load(t); ok {
		all = append(all, v.([]ctor)...)
	}
	all = append(all, add...)
	ctors.Store(t, all)
	logging.Named("construct").Debug("registered constructors",
		zap.Stringer("type", t),
		zap.Int("count", len(all)))
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[T any](fns ...any) {
	if err := Register[T](fns...); err != nil {
		panic(err)
	}
}

func check(t reflect.Type, fn any) (ctor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ctor{}, fmt.Errorf("%T is not a func", fn)
	}
	ft := v.Type()
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return ctor{}, fmt.Errorf("second result is %s, not error", ft.Out(1))
		}
	default:
		return ctor{}, fmt.Errorf("%s has %d results", ft, ft.NumOut())
	}
	c := ctor{fn: v, fails: ft.NumOut() == 2}
	switch ft.Out(0) {
	case t:
	case reflect.PointerTo(t):
		c.ptr = true
	default:
		return ctor{}, fmt.Errorf("%s does not return %s", ft, t)
	}
	return c, nil
}

func lookup(t reflect.Type) []ctor {
	v, ok := ctors.Load(t)
	if !ok {
		return nil
	}
	return v.([]ctor)
}

// Count returns the number of constructors registered for T.
func Count[T any]() int {
	return len(lookup(reflect.TypeFor[T]()))
}

// best returns the constructor that best fits args, or false.
func best(t reflect.Type, args []reflect.Type) (ctor, bool) {
	cs := lookup(t)
	sigs := make([]reflect.Type, len(cs))
	for i, c := range cs {
		sigs[i] = c.fn.Type()
	}
	i, _ := match.Best(sigs, args)
	if i < 0 {
		return ctor{}, false
	}
	return cs[i], true
}

// CanConstruct reports whether New[T] accepts arguments of the given types.
func CanConstruct[T any](args ...reflect.Type) bool {
	t := reflect.TypeFor[T]()
	if _, ok := best(t, args); ok {
		return true
	}
	if len(lookup(t)) > 0 {
		return len(args) == 0
	}
	return canAggregate(t, args)
}

// New constructs a T from args. The best registered constructor wins. With
// no viable constructor no args yield the zero T. Types without
// constructors are built by Aggregate.
func New[T any](args ...any) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	c, ok := best(t, match.TypesOf(args...))
	if !ok {
		if len(args) == 0 {
			return zero, nil
		}
		if len(lookup(t)) > 0 {
			return zero, fmt.Errorf("%w: %s for %v", ErrNoViableConstructor, t, match.TypesOf(args...))
		}
		v, err := Aggregate[T](args...)
		if errors.Is(err, ErrNotAggregate) || errors.Is(err, ErrTooManyFields) {
			return zero, fmt.Errorf("%w: %s for %v", ErrNoViableConstructor, t, match.TypesOf(args...))
		}
		return v, err
	}
	ft := c.fn.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		v, err := match.CoerceAny(a, match.ParamAt(ft, i))
		if err != nil {
			return zero, fmt.Errorf("%w: %s: %w", ErrNoViableConstructor, t, err)
		}
		in[i] = v
	}
	out := c.fn.Call(in)
	if c.fails && !out[1].IsNil() {
		return zero, out[1].Interface().(error)
	}
	if c.ptr {
		if out[0].IsNil() {
			return zero, fmt.Errorf("%w: %s constructor returned nil", ErrNoViableConstructor, t)
		}
		return out[0].Elem().Interface().(T), nil
	}
	return out[0].Interface().(T), nil
}

// MustNew is like New but panics on error.
func MustNew[T any](args ...any) T {
	v, err := New[T](args...)
	if err != nil {
		panic(err)
	}
	return v
}

// Aggregate builds a T whose leading fields are set from values in
// declaration order, like a positional composite literal that may stop
// early.
func Aggregate[T any](values ...any) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return zero, fmt.Errorf("%w: %s", ErrNotAggregate, t)
	}
	if len(values) > t.NumField() {
		return zero, fmt.Errorf("%w: %s has %d fields, got %d", ErrTooManyFields, t, t.NumField(), len(values))
	}
	out := reflect.New(t).Elem()
	for i, v := range values {
		f := t.Field(i)
		if !f.IsExported() {
			return zero, fmt.Errorf("%w: %s.%s is unexported", ErrNotAggregate, t, f.Name)
		}
		cv, err := match.CoerceAny(v, f.Type)
		if err != nil {
			return zero, fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		out.Field(i).Set(cv)
	}
	return out.Interface().(T), nil
}

func canAggregate(t reflect.Type, args []reflect.Type) bool {
	if len(args) == 0 {
		return true
	}
	if t.Kind() != reflect.Struct || len(args) > t.NumField() {
		return false
	}
	for i, a := range args {
		f := t.Field(i)
		if !f.IsExported() || !match.Rank(f.Type, a).Callable() {
			return false
		}
	}
	return true
}
