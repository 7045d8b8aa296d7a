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

// Package entity provides Name, a read-only view over a "::"-qualified name
// such as "geo::shapes::Point".
//
// Only the two-character separator "::" splits segments. A leading
// separator yields an empty first segment, a trailing one an empty last
// segment, and a single ':' is ordinary text.
package entity

import (
	"iter"
	"strings"

	"dirpx.dev/tix/hash"
)

// Separator is the qualifier separator.
const Separator = "::"

// Name is a qualified name view. The zero value is the empty name.
type Name struct {
	s string
}

// New returns a view over s.
func New(s string) Name {
	return Name{s: s}
}

// FullName returns the underlying string unchanged.
func (n Name) FullName() string { return n.s }

// String implements fmt.Stringer.
func (n Name) String() string { return n.s }

// Empty reports whether the name has no text.
func (n Name) Empty() bool { return n.s == "" }

// Qualifier returns the i-th segment, the final name included. It returns ""
// when i is out of range.
func (n Name) Qualifier(i int) string {
	if i < 0 {
		return ""
	}
	s := n.s
	for ; i > 0; i-- {
		at := strings.Index(s, Separator)
		if at < 0 {
			return ""
		}
		s = s[at+len(Separator):]
	}
	if at := strings.Index(s, Separator); at >= 0 {
		return s[:at]
	}
	return s
}

// Name returns the last segment.
func (n Name) Name() string {
	if at := strings.LastIndex(n.s, Separator); at >= 0 {
		return n.s[at+len(Separator):]
	}
	return n.s
}

// Scope returns everything before the last segment, or "" when unqualified.
func (n Name) Scope() string {
	if at := strings.LastIndex(n.s, Separator); at >= 0 {
		return n.s[:at]
	}
	return ""
}

// Len returns the number of segments. The empty name has one empty segment.
func (n Name) Len() int {
	return strings.Count(n.s, Separator) + 1
}

// All yields (index, segment) pairs in order.
func (n Name) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		s := n.s
		for i := 0; ; i++ {
			at := strings.Index(s, Separator)
			if at < 0 {
				yield(i, s)
				return
			}
			if !yield(i, s[:at]) {
				return
			}
			s = s[at+len(Separator):]
		}
	}
}

// Join appends a segment.
func (n Name) Join(segment string) Name {
	if n.s == "" {
		return Name{s: segment}
	}
	return Name{s: n.s + Separator + segment}
}

// Hash returns the FNV-1a hash of the full name.
func (n Name) Hash() uint64 { return hash.Of(n.s) }

// Equal compares full names.
func (n Name) Equal(o Name) bool { return n.s == o.s }
