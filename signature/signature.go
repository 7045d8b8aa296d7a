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

// Package signature captures raw, self-describing strings for types,
// functions and values. The strings carry full import paths and are the
// input of the names extractor; their exact spelling depends on the Go
// toolchain and is not meant to be shown to users.
package signature

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// Kind tells what a Raw signature was captured from.
type Kind uint8

const (
	// KindType is a type signature.
	KindType Kind = iota + 1
	// KindFunc is a function or method symbol name.
	KindFunc
	// KindValue is a rendered value.
	KindValue
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindFunc:
		return "func"
	case KindValue:
		return "value"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Raw is a captured signature.
type Raw struct {
	// Kind is the capture source.
	Kind Kind
	// Text is the raw signature text.
	Text string
	// Type is the captured type, or the dynamic type of a captured value.
	// It is nil for untyped nil values.
	Type reflect.Type
}

// Of captures the signature of T.
func Of[T any]() Raw {
	return OfType(reflect.TypeFor[T]())
}

// OfType captures the signature of t. A nil t yields an empty Text.
func OfType(t reflect.Type) Raw {
	if t == nil {
		return Raw{Kind: KindType}
	}
	var b strings.Builder
	writeType(&b, t)
	return Raw{Kind: KindType, Text: b.String(), Type: t}
}

// OfFunc captures the linker name of fn, e.g.
// "dirpx.dev/tix/geo.(*Point).Move-fm". Non-func or nil values yield an
// empty Text.
func OfFunc(fn any) Raw {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Raw{Kind: KindFunc}
	}
	r := Raw{Kind: KindFunc, Type: v.Type()}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		r.Text = f.Name()
	}
	return r
}

// OfValue captures the rendering of v. fmt.Stringer and error are honoured.
func OfValue(v any) Raw {
	if v == nil {
		return Raw{Kind: KindValue, Text: "<nil>"}
	}
	return Raw{Kind: KindValue, Text: fmt.Sprintf("%v", v), Type: reflect.TypeOf(v)}
}

// writeType renders t with full package paths for every named type.
func writeType(b *strings.Builder, t reflect.Type) {
	if t.Name() != "" {
		if p := t.PkgPath(); p != "" {
			b.WriteString(p)
			b.WriteByte('.')
		}
		b.WriteString(t.Name())
		return
	}
	switch t.Kind() {
	case reflect.Pointer:
		b.WriteByte('*')
		writeType(b, t.Elem())
	case reflect.Slice:
		b.WriteString("[]")
		writeType(b, t.Elem())
	case reflect.Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len()))
		b.WriteByte(']')
		writeType(b, t.Elem())
	case reflect.Map:
		b.WriteString("map[")
		writeType(b, t.Key())
		b.WriteByte(']')
		writeType(b, t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			b.WriteString("<-chan ")
		case reflect.SendDir:
			b.WriteString("chan<- ")
		default:
			b.WriteString("chan ")
		}
		writeType(b, t.Elem())
	case reflect.Func:
		writeFunc(b, t)
	case reflect.Struct:
		if t.NumField() == 0 {
			b.WriteString("struct {}")
			return
		}
		b.WriteString("struct { ")
		for i := 0; i < t.NumField(); i++ {
			if i > 0 {
				b.WriteString("; ")
			}
			f := t.Field(i)
			if !f.Anonymous {
				b.WriteString(f.Name)
				b.WriteByte(' ')
			}
			writeType(b, f.Type)
		}
		b.WriteString(" }")
	case reflect.Interface:
		if t.NumMethod() == 0 {
			b.WriteString("interface {}")
			return
		}
		b.WriteString("interface { ")
		for i := 0; i < t.NumMethod(); i++ {
			if i > 0 {
				b.WriteString("; ")
			}
			m := t.Method(i)
			b.WriteString(m.Name)
			writeParams(b, m.Type)
		}
		b.WriteString(" }")
	default:
		b.WriteString(t.String())
	}
}

func writeFunc(b *strings.Builder, t reflect.Type) {
	b.WriteString("func")
	writeParams(b, t)
}

func writeParams(b *strings.Builder, t reflect.Type) {
	b.WriteByte('(')
	for i := 0; i < t.NumIn(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			b.WriteString("...")
			in = in.Elem()
		}
		writeType(b, in)
	}
	b.WriteByte(')')
	switch t.NumOut() {
	case 0:
	case 1:
		b.WriteByte(' ')
		writeType(b, t.Out(0))
	default:
		b.WriteString(" (")
		for i := 0; i < t.NumOut(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, t.Out(i))
		}
		b.WriteByte(')')
	}
}
