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

// Package match ranks argument types against parameter types and picks the
// best candidate of an overload set.
package match

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotConvertible is returned by Coerce when no conversion exists.
var ErrNotConvertible = errors.New("tix(match): value not convertible")

// Rank grades passing an argument of type arg to a parameter of type param.
// A nil arg stands for an untyped nil.
func Rank(param, arg reflect.Type) Quality {
	if param == nil {
		return NotCallable
	}
	if arg == nil {
		if nilable(param.Kind()) {
			return ExactMatch
		}
		return NotCallable
	}
	if arg == param {
		return ExactMatch
	}
	if predeclared(arg) && predeclared(param) && promotes(arg.Kind(), param.Kind()) {
		return Promotable
	}
	if arg.AssignableTo(param) {
		return Convertible
	}
	if arg.ConvertibleTo(param) && !runeConversion(arg, param) {
		return Fallback
	}
	return NotCallable
}

// Args grades an argument list against fn, a func type without receiver.
// The result is the worst per-argument quality. Variadic tails rank against
// the element type. An empty list against a nullary fn is an ExactMatch.
func Args(fn reflect.Type, args []reflect.Type) Quality {
	if fn == nil || fn.Kind() != reflect.Func {
		return NotCallable
	}
	n := fn.NumIn()
	if fn.IsVariadic() {
		if len(args) < n-1 {
			return NotCallable
		}
	} else if len(args) != n {
		return NotCallable
	}
	best := ExactMatch
	for i, a := range args {
		q := Rank(ParamAt(fn, i), a)
		if q < best {
			best = q
		}
		if best == NotCallable {
			break
		}
	}
	return best
}

// ParamAt returns the type the i-th argument is passed as, resolving
// variadic tails to their element type. It returns nil past the end.
func ParamAt(fn reflect.Type, i int) reflect.Type {
	n := fn.NumIn()
	if fn.IsVariadic() && i >= n-1 {
		return fn.In(n - 1).Elem()
	}
	if i < n {
		return fn.In(i)
	}
	return nil
}

// Best returns the index and quality of the best candidate for args.
// Ties go to the earliest candidate. When nothing is callable it returns
// (-1, NotCallable).
func Best(cands []reflect.Type, args []reflect.Type) (int, Quality) {
	idx, best := -1, NotCallable
	for i, c := range cands {
		if q := Args(c, args); q > best {
			idx, best = i, q
		}
	}
	return idx, best
}

// TypesOf returns the dynamic types of values. nil values map to nil types.
func TypesOf(values ...any) []reflect.Type {
	out := make([]reflect.Type, len(values))
	for i, v := range values {
		out[i] = reflect.TypeOf(v)
	}
	return out
}

// Coerce turns v into a value of type t. Invalid values become the zero
// value of a nilable t.
func Coerce(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		if nilable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil to %s", ErrNotConvertible, t)
	}
	vt := v.Type()
	switch {
	case vt == t:
		return v, nil
	case vt.AssignableTo(t):
		out := reflect.New(t).Elem()
		out.Set(v)
		return out, nil
	case vt.ConvertibleTo(t) && !runeConversion(vt, t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotConvertible, vt, t)
}

// CoerceAny is Coerce for a plain value.
func CoerceAny(v any, t reflect.Type) (reflect.Value, error) {
	return Coerce(reflect.ValueOf(v), t)
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// predeclared reports builtin numeric types such as int or float32.
func predeclared(t reflect.Type) bool {
	return t.PkgPath() == "" && t.Name() != "" && t.Name() == t.Kind().String()
}

func promotes(from, to reflect.Kind) bool {
	switch {
	case isSigned(from) && isSigned(to):
		return bits(from) <= bits(to)
	case isUnsigned(from) && isUnsigned(to):
		return bits(from) <= bits(to)
	case (isSigned(from) || isUnsigned(from)) && isFloat(to):
		return true
	case isFloat(from) && isFloat(to):
		return bits(from) <= bits(to)
	}
	return false
}

// runeConversion reports integer to string conversions, which reflect
// allows but which never express a value-preserving call.
func runeConversion(from, to reflect.Type) bool {
	return to.Kind() == reflect.String && (isSigned(from.Kind()) || isUnsigned(from.Kind()))
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func bits(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 32
	default:
		return 64
	}
}
