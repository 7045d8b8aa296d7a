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

package member

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/tix/attribute"
	"dirpx.dev/tix/names"
)

// TagKey is the struct tag key read by Lookup and All.
const TagKey = "tix"

// allCache memoizes All per owner type.
var allCache sync.Map // key: reflect.Type, val: []*Trait

// Lookup finds the member called name on owner (pointers are looked
// through). Fields are matched by tix tag name first, then by identifier,
// then by the exported spelling of name; methods by identifier and then
// exported spelling. Unexported members are never visible.
func Lookup(owner reflect.Type, name string) (*Trait, error) {
	owner = Indirect(owner)
	if owner == nil || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	all := All(owner)
	exported := exportedName(name)
	for _, pass := range [...]func(*Trait) bool{
		func(t *Trait) bool { return t.kind == KindData && t.name == name },
		func(t *Trait) bool { return t.kind == KindData && t.ident() == name },
		func(t *Trait) bool { return t.kind == KindData && t.ident() == exported },
		func(t *Trait) bool { return t.kind == KindFunc && t.name == name },
		func(t *Trait) bool { return t.kind == KindFunc && t.name == exported },
	} {
		for _, t := range all {
			if pass(t) {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s has no member %q", ErrNotFound, owner, name)
}

// All lists the visible members of owner: exported fields (promoted ones
// included) in declaration order, then exported methods in name order.
// Fields tagged `tix:"-"` and embedded fields themselves are skipped.
func All(owner reflect.Type) []*Trait {
	owner = Indirect(owner)
	if owner == nil {
		return nil
	}
	if v, ok := allCache.Load(owner); ok {
		return v.([]*Trait)
	}
	var out []*Trait
	if owner.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(owner) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			if t, ok := fieldTrait(owner, f); ok {
				out = append(out, t)
			}
		}
	}
	pt := reflect.PointerTo(owner)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		out = append(out, methodTrait(owner, m.Name))
	}
	v, _ := allCache.LoadOrStore(owner, out)
	return v.([]*Trait)
}

// fieldTrait builds the trait of a visible field.
func fieldTrait(owner reflect.Type, f reflect.StructField) (*Trait, bool) {
	name, attrs := f.Name, attribute.List{}
	if tag, ok := f.Tag.Lookup(TagKey); ok {
		if tag == "-" {
			return nil, false
		}
		tn, ta, err := attribute.ParseTag(tag)
		if err == nil {
			if tn != "" {
				name = tn
			}
			attrs = ta
		}
	}
	index := f.Index
	return &Trait{
		name:   name,
		kind:   KindData,
		owner:  owner,
		typ:    f.Type,
		attrs:  attrs,
		goName: f.Name,
		get: func(recv reflect.Value) (reflect.Value, error) {
			return recv.FieldByIndexErr(index)
		},
		set: func(recv reflect.Value, v reflect.Value) error {
			fv, err := recv.FieldByIndexErr(index)
			if err != nil {
				return err
			}
			fv.Set(v)
			return nil
		},
	}, true
}

// methodTrait builds the trait of an exported method of owner.
func methodTrait(owner reflect.Type, name string) *Trait {
	m, ok := owner.MethodByName(name)
	ptr := false
	if !ok {
		m, _ = reflect.PointerTo(owner).MethodByName(name)
		ptr = true
	}
	return &Trait{
		name:    name,
		kind:    KindFunc,
		owner:   owner,
		typ:     dropReceiver(m.Type),
		ptrRecv: ptr,
		fn:      m.Func,
	}
}

// FromFunc builds a callable trait from a receiver-first function such as
// the method expression (*Point).Move. The owner is the first parameter
// with one pointer level removed and must be a named type.
func FromFunc(fn any, attrs ...any) (*Trait, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalid, fn)
	}
	ft := v.Type()
	if ft.NumIn() == 0 {
		return nil, fmt.Errorf("%w: %s has no receiver parameter", ErrInvalid, ft)
	}
	recv := ft.In(0)
	owner := Indirect(recv)
	if owner.Name() == "" || owner.PkgPath() == "" || owner.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: receiver %s is not a named concrete type", ErrInvalid, recv)
	}
	name := ""
	if fnName, err := names.FuncOf(fn); err == nil {
		name = fnName.Member
	}
	return &Trait{
		name:    name,
		kind:    KindFunc,
		owner:   owner,
		typ:     dropReceiver(ft),
		ptrRecv: recv.Kind() == reflect.Pointer,
		attrs:   attribute.New(attrs...),
		fn:      v,
	}, nil
}

// MustFromFunc is like FromFunc but panics on error.
func MustFromFunc(fn any, attrs ...any) *Trait {
	t, err := FromFunc(fn, attrs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Data builds a read-write data trait from a field accessor:
//
//	member.Data("x", func(p *Point) *int { return &p.X })
func Data[T, V any](name string, ref func(*T) *V, attrs ...any) *Trait {
	owner := reflect.TypeFor[T]()
	return &Trait{
		name:  name,
		kind:  KindData,
		owner: owner,
		typ:   reflect.TypeFor[V](),
		attrs: attribute.New(attrs...),
		get: func(recv reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(ref(addr[T](recv))).Elem(), nil
		},
		set: func(recv reflect.Value, v reflect.Value) error {
			reflect.ValueOf(ref(addr[T](recv))).Elem().Set(v)
			return nil
		},
	}
}

// ReadOnly builds a read-only data trait from a getter.
func ReadOnly[T, V any](name string, get func(*T) V, attrs ...any) *Trait {
	return &Trait{
		name:  name,
		kind:  KindData,
		owner: reflect.TypeFor[T](),
		typ:   reflect.TypeFor[V](),
		attrs: attribute.New(append([]any{attribute.ReadOnly{}}, attrs...)...),
		get: func(recv reflect.Value) (reflect.Value, error) {
			v := get(addr[T](recv))
			return reflect.ValueOf(&v).Elem(), nil
		},
	}
}

// addr returns a *T for recv, copying non-addressable values.
func addr[T any](recv reflect.Value) *T {
	if recv.CanAddr() {
		return recv.Addr().Interface().(*T)
	}
	p := new(T)
	reflect.ValueOf(p).Elem().Set(recv)
	return p
}

// dropReceiver returns ft without its first parameter.
func dropReceiver(ft reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, ft.NumIn())
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}
	return reflect.FuncOf(in, out, ft.IsVariadic())
}

// ident returns the Go identifier of a data member.
func (t *Trait) ident() string {
	if t.goName != "" {
		return t.goName
	}
	return t.name
}

// exportedName upper-cases the first rune of s.
func exportedName(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Identifier returns the Go identifier behind a data member, which differs
// from Name when a tix tag renames the field.
func Identifier(t *Trait) string {
	return t.ident()
}
