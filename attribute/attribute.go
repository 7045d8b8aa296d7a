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

// Package attribute models metadata attached to symbols.
//
// Three kinds of attribute share one ordered List:
//
//   - tags: zero-size marker types such as ReadOnly or Deprecated,
//     queried by type with HasTag;
//   - values: arbitrary comparable values (enum constants, versions),
//     queried by equality with HasValue;
//   - named: string annotations built with Named, queried by name.
package attribute

import (
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
)

// ReadOnly marks a member that may be read but not written.
type ReadOnly struct{}

// WriteOnly marks a member that may be written but not read.
type WriteOnly struct{}

// Deprecated marks a member scheduled for removal.
type Deprecated struct{}

// Internal marks a member that is not part of the public surface.
type Internal struct{}

// Validated marks a member whose writes are validated by its owner.
type Validated struct{}

// Version is the value of a Since attribute.
type Version struct {
	Major, Minor, Patch int
}

// String renders "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Since returns a Version attribute.
func Since(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// ParseVersion parses "1", "1.2" or "1.2.3".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("tix(attribute): invalid version %q", s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Version{}, fmt.Errorf("tix(attribute): invalid version %q", s)
		}
		n[i] = v
	}
	return Version{Major: n[0], Minor: n[1], Patch: n[2]}, nil
}

// NamedValue is a string annotation.
type NamedValue struct {
	Name  string
	Value string
}

// Named returns a named annotation.
func Named(name, value string) NamedValue {
	return NamedValue{Name: name, Value: value}
}

// Description returns the "description" annotation.
func Description(text string) NamedValue {
	return Named("description", text)
}

// List is an immutable ordered attribute list. The zero value is empty.
type List struct {
	items []any
}

// New returns a list holding items in order. nil items are dropped.
func New(items ...any) List {
	out := make([]any, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return List{items: out}
}

// Len returns the number of attributes.
func (l List) Len() int { return len(l.items) }

// At returns the i-th attribute, or nil when out of range.
func (l List) At(i int) any {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// All yields the attributes in order.
func (l List) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, it := range l.items {
			if !yield(it) {
				return
			}
		}
	}
}

// With returns a new list with items appended.
func (l List) With(items ...any) List {
	return New(append(append([]any(nil), l.items...), items...)...)
}

// Has reports whether an attribute equal to a is present. Tags compare by
// type, so Has(ReadOnly{}) works like HasTag[ReadOnly].
func (l List) Has(a any) bool {
	return l.HasValue(a)
}

// HasValue reports whether an attribute equal to v is present.
// Non-comparable values never match.
func (l List) HasValue(v any) bool {
	if v == nil || !reflect.TypeOf(v).Comparable() {
		return false
	}
	for _, it := range l.items {
		if reflect.TypeOf(it) == reflect.TypeOf(v) && it == v {
			return true
		}
	}
	return false
}

// HasNamed reports whether a named annotation called name is present.
func (l List) HasNamed(name string) bool {
	_, ok := l.Named(name)
	return ok
}

// Named returns the value of the first annotation called name.
func (l List) Named(name string) (string, bool) {
	for _, it := range l.items {
		if nv, ok := it.(NamedValue); ok && nv.Name == name {
			return nv.Value, true
		}
	}
	return "", false
}

// Names lists the names of all named annotations in order.
func (l List) Names() []string {
	var out []string
	for _, it := range l.items {
		if nv, ok := it.(NamedValue); ok {
			out = append(out, nv.Name)
		}
	}
	return out
}

// Since returns the first Version attribute.
func (l List) Since() (Version, bool) {
	return Get[Version](l)
}

// Description returns the "description" annotation or "".
func (l List) Description() string {
	d, _ := l.Named("description")
	return d
}

// IsReadOnly reports a ReadOnly tag.
func (l List) IsReadOnly() bool { return HasTag[ReadOnly](l) }

// IsWriteOnly reports a WriteOnly tag.
func (l List) IsWriteOnly() bool { return HasTag[WriteOnly](l) }

// IsDeprecated reports a Deprecated tag.
func (l List) IsDeprecated() bool { return HasTag[Deprecated](l) }

// IsInternal reports an Internal tag.
func (l List) IsInternal() bool { return HasTag[Internal](l) }

// IsValidated reports a Validated tag.
func (l List) IsValidated() bool { return HasTag[Validated](l) }

// HasTag reports whether an attribute of type T is present.
func HasTag[T any](l List) bool {
	_, ok := Get[T](l)
	return ok
}

// Get returns the first attribute of type T.
func Get[T any](l List) (T, bool) {
	for _, it := range l.items {
		if v, ok := it.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
