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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/config"
)

var (
	// ErrNilType is returned for a nil reflect.Type.
	ErrNilType = errors.New("tix(reflect): nil reflect.Type provided")
	// ErrNotNamed is returned when no named type is reachable, e.g. for an
	// anonymous struct or a func type.
	ErrNotNamed = errors.New("tix(reflect): no named type reachable")
)

// Nearest looks through ptr, slice, array, chan and map layers of t and
// returns the first named type, at most cfg.MaxUnwrap layers deep
// (DefaultMaxUnwrap when not positive).
//
// For map[K]V the side picked by cfg.MapPreferElem is searched first, then
// the other side.
func Nearest(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}
	if n, ok := nearest(t, depth, cfg.MapPreferElem); ok {
		return n, nil
	}
	return nil, ErrNotNamed
}

func nearest(t reflect.Type, depth int, preferElem bool) (reflect.Type, bool) {
	for ; depth >= 0; depth-- {
		if t.Name() != "" {
			return t, true
		}
		if depth == 0 {
			break
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			first, second := t.Key(), t.Elem()
			if preferElem {
				first, second = second, first
			}
			if n, ok := nearest(first, depth-1, preferElem); ok {
				return n, true
			}
			return nearest(second, depth-1, preferElem)
		default:
			return nil, false
		}
	}
	return nil, false
}

// IsBuiltin reports a named type declared by the language itself.
func IsBuiltin(t reflect.Type) bool {
	return t != nil && t.Name() != "" && t.PkgPath() == ""
}
