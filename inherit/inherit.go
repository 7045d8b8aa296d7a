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

// Package inherit answers base/derived questions for struct embedding.
//
// A struct type embeds its bases; D derives from B when B is embedded in D
// directly or through any chain of embedded structs, by value or pointer.
package inherit

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/tix/member"
)

var (
	// ErrNotDerived is returned when upcasting to a type that is not a base.
	ErrNotDerived = errors.New("tix(inherit): not derived from target")
	// ErrNilBase is returned when the path to a base crosses a nil pointer.
	ErrNilBase = errors.New("tix(inherit): nil embedded base")
)

// Bases returns the types T embeds directly, in declaration order.
func Bases[T any]() []reflect.Type {
	return BasesOf(reflect.TypeFor[T]())
}

// BasesOf is Bases for t. Pointer embeddings report the pointee.
func BasesOf(t reflect.Type) []reflect.Type {
	t = member.Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var out []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Anonymous {
			out = append(out, member.Indirect(f.Type))
		}
	}
	return out
}

// IsDerivedFrom reports whether D embeds B at any depth. A type does not
// derive from itself.
func IsDerivedFrom[D, B any]() bool {
	return DerivedFrom(reflect.TypeFor[D](), reflect.TypeFor[B]())
}

// DerivedFrom is IsDerivedFrom for reflect types.
func DerivedFrom(d, b reflect.Type) bool {
	_, ok := path(member.Indirect(d), member.Indirect(b))
	return ok
}

// Implements reports whether T or *T implements the interface I.
func Implements[T, I any]() bool {
	it := reflect.TypeFor[I]()
	if it.Kind() != reflect.Interface {
		return false
	}
	t := reflect.TypeFor[T]()
	return t.Implements(it) || reflect.PointerTo(t).Implements(it)
}

// Upcast returns a pointer to the B embedded in d. When d is a pointer the
// result aliases it; otherwise it points into a copy.
func Upcast[B any](d any) (*B, error) {
	if d == nil {
		return nil, member.ErrNilObject
	}
	rv := reflect.ValueOf(d)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, member.ErrNilObject
		}
		if b, ok := d.(*B); ok {
			return b, nil
		}
		rv = rv.Elem()
	} else {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	bt := reflect.TypeFor[B]()
	idx, ok := path(rv.Type(), bt)
	if !ok {
		if rv.Type() == bt {
			return rv.Addr().Interface().(*B), nil
		}
		return nil, fmt.Errorf("%w: %s to %s", ErrNotDerived, rv.Type(), bt)
	}
	for _, i := range idx {
		rv = rv.Field(i)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, fmt.Errorf("%w: %s", ErrNilBase, rv.Type())
			}
			rv = rv.Elem()
		}
	}
	return rv.Addr().Interface().(*B), nil
}

// path returns the field indexes leading from d to its embedded b, breadth
// first so the shallowest embedding wins.
func path(d, b reflect.Type) ([]int, bool) {
	if d == nil || b == nil || d.Kind() != reflect.Struct {
		return nil, false
	}
	type node struct {
		t   reflect.Type
		idx []int
	}
	seen := map[reflect.Type]bool{d: true}
	queue := []node{{t: d}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for i := 0; i < n.t.NumField(); i++ {
			f := n.t.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := member.Indirect(f.Type)
			idx := append(append([]int(nil), n.idx...), i)
			if ft == b {
				return idx, true
			}
			if ft.Kind() == reflect.Struct && !seen[ft] {
				seen[ft] = true
				queue = append(queue, node{t: ft, idx: idx})
			}
		}
	}
	return nil, false
}
