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

package names

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/tix/signature"
)

// Options control how raw signatures are turned into names.
type Options struct {
	// FullPackagePath keeps complete import paths instead of their last element.
	FullPackagePath bool
	// StripTypeArgs drops generic instantiation arguments.
	StripTypeArgs bool
}

// Type extracts the display name of t.
func Type(t reflect.Type, opts Options) (string, error) {
	return FromRaw(signature.OfType(t), opts)
}

// MustType is like Type but panics on failure.
func MustType(t reflect.Type, opts Options) string {
	n, err := Type(t, opts)
	if err != nil {
		panic(err)
	}
	return n
}

// FromRaw extracts a type name from a captured type signature.
func FromRaw(raw signature.Raw, opts Options) (string, error) {
	s := strings.TrimSpace(raw.Text)
	if !opts.FullPackagePath {
		s = ShortenWith(s, packages(raw.Type, nil))
	}
	s = FilterKeyword(s)
	if opts.StripTypeArgs {
		s = StripTypeArgs(s)
	}
	if s == "" {
		return "", ErrEmptyName
	}
	return s, nil
}

// packages maps the import path of every named type reachable from t to the
// package name reflect reports for it. Type arguments of generic types are
// not reachable and fall back to PackageName.
func packages(t reflect.Type, pkgs map[string]string) map[string]string {
	if t == nil {
		return pkgs
	}
	if t.Name() != "" {
		if p := t.PkgPath(); p != "" {
			if pkgs == nil {
				pkgs = make(map[string]string)
			}
			name, _, _ := strings.Cut(t.String(), ".")
			pkgs[p] = name
		}
		return pkgs
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return packages(t.Elem(), pkgs)
	case reflect.Map:
		return packages(t.Elem(), packages(t.Key(), pkgs))
	case reflect.Func:
		for i := 0; i < t.NumIn(); i++ {
			pkgs = packages(t.In(i), pkgs)
		}
		for i := 0; i < t.NumOut(); i++ {
			pkgs = packages(t.Out(i), pkgs)
		}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			pkgs = packages(t.Field(i).Type, pkgs)
		}
	case reflect.Interface:
		for i := 0; i < t.NumMethod(); i++ {
			pkgs = packages(t.Method(i).Type, pkgs)
		}
	}
	return pkgs
}

// FuncName is a parsed function or method symbol.
type FuncName struct {
	// Package is the import path of the declaring package.
	Package string
	// Receiver is the receiver type name without type arguments, or "".
	Receiver string
	// Pointer reports a pointer receiver.
	Pointer bool
	// Member is the function or method name.
	Member string
}

// Qualified returns "pkg.Recv.Member" with the package shortened.
func (f FuncName) Qualified() string {
	var b strings.Builder
	if f.Package != "" {
		b.WriteString(PackageName(f.Package))
		b.WriteByte('.')
	}
	if f.Receiver != "" {
		b.WriteString(f.Receiver)
		b.WriteByte('.')
	}
	b.WriteString(f.Member)
	return b.String()
}

// Func parses a linker symbol such as "dirpx.dev/tix/geo.(*Point).Move-fm".
func Func(raw string) (FuncName, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "-fm")
	s = strings.ReplaceAll(s, "[...]", "")
	if s == "" {
		return FuncName{}, ErrEmptyName
	}
	var f FuncName
	slash := strings.LastIndexByte(s, '/')
	dot := strings.IndexByte(s[slash+1:], '.')
	if dot < 0 {
		f.Member = s
		return f, nil
	}
	// The linker escapes dots in the last path element.
	f.Package = strings.ReplaceAll(s[:slash+1+dot], "%2e", ".")
	rest := s[slash+1+dot+1:]

	if strings.HasPrefix(rest, "(") {
		end, err := matching(rest, 0)
		if err != nil {
			return FuncName{}, err
		}
		recv := rest[1:end]
		f.Pointer = strings.HasPrefix(recv, "*")
		f.Receiver = strings.TrimPrefix(recv, "*")
		rest = strings.TrimPrefix(rest[end+1:], ".")
	} else if i := strings.IndexByte(rest, '.'); i >= 0 && !isClosure(rest[i+1:]) {
		f.Receiver = rest[:i]
		rest = rest[i+1:]
	}
	f.Member = rest
	if f.Member == "" {
		return FuncName{}, ErrEmptyName
	}
	return f, nil
}

// FuncOf parses the symbol of the function value fn.
func FuncOf(fn any) (FuncName, error) {
	return Func(signature.OfFunc(fn).Text)
}

// isClosure reports compiler generated closure suffixes like "func1".
func isClosure(s string) bool {
	rest, ok := strings.CutPrefix(s, "func")
	if !ok || rest == "" {
		return false
	}
	_, err := strconv.Atoi(strings.SplitN(rest, ".", 2)[0])
	return err == nil
}

// Value extracts the display name of a value. Stringer output is used as is,
// with any "::" qualification removed; a stringer fallback such as
// "Status(7)" yields "7". Other values render with %v.
func Value(v any) (string, error) {
	raw := signature.OfValue(v)
	s := strings.TrimSpace(raw.Text)
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if raw.Type != nil && isFallback(s, raw.Type) {
		inner, err := FilterEnumValue(s)
		if err != nil {
			return "", err
		}
		s = inner
	}
	if s == "" {
		return "", ErrEmptyName
	}
	return s, nil
}

// MustValue is like Value but panics on failure.
func MustValue(v any) string {
	n, err := Value(v)
	if err != nil {
		panic(fmt.Errorf("%w: %T", err, v))
	}
	return n
}

// isFallback reports a stringer rendering "<TypeName>(<n>)".
func isFallback(s string, t reflect.Type) bool {
	name := t.Name()
	if name == "" || !strings.HasSuffix(s, ")") {
		return false
	}
	prefix, ok := strings.CutPrefix(s, name+"(")
	if !ok {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSuffix(prefix, ")"), 10, 64)
	return err == nil
}
