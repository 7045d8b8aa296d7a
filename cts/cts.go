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

// Package cts provides String, an immutable fixed-length string value with
// position-based queries.
//
// Lookups that miss return Size() rather than -1, so results can be fed
// straight into Substr without a sign check.
package cts

import (
	"fmt"
	"strings"

	"dirpx.dev/tix/hash"
)

// String is an immutable string of fixed length. The zero value is empty.
type String struct {
	s string
}

// New returns a String holding s.
func New(s string) String {
	return String{s: s}
}

// Size returns the number of bytes.
func (c String) Size() int { return len(c.s) }

// Empty reports whether Size() == 0.
func (c String) Empty() bool { return len(c.s) == 0 }

// View returns the underlying string.
func (c String) View() string { return c.s }

// String implements fmt.Stringer.
func (c String) String() string { return c.s }

// At returns the byte at i. It panics when i is out of range.
func (c String) At(i int) byte {
	if i < 0 || i >= len(c.s) {
		panic(fmt.Sprintf("cts: index %d out of range [0,%d)", i, len(c.s)))
	}
	return c.s[i]
}

// Substr returns at most n bytes starting at pos. n is clamped to the
// remaining length. Substr panics when pos > Size() or n < 0.
func (c String) Substr(pos, n int) String {
	if pos < 0 || pos > len(c.s) {
		panic(fmt.Sprintf("cts: substr position %d out of range [0,%d]", pos, len(c.s)))
	}
	if n < 0 {
		panic(fmt.Sprintf("cts: negative substr length %d", n))
	}
	n = min(n, len(c.s)-pos)
	return String{s: c.s[pos : pos+n]}
}

// SubstrFrom returns the suffix starting at pos.
func (c String) SubstrFrom(pos int) String {
	return c.Substr(pos, len(c.s))
}

// Find returns the index of the first b, or Size() when absent.
func (c String) Find(b byte) int {
	if i := strings.IndexByte(c.s, b); i >= 0 {
		return i
	}
	return len(c.s)
}

// FindString returns the index of the first occurrence of sub, or Size()
// when absent. An empty sub is found at 0.
func (c String) FindString(sub string) int {
	if i := strings.Index(c.s, sub); i >= 0 {
		return i
	}
	return len(c.s)
}

// FindLast returns the index of the last b, or Size() when absent.
func (c String) FindLast(b byte) int {
	if i := strings.LastIndexByte(c.s, b); i >= 0 {
		return i
	}
	return len(c.s)
}

// Contains reports whether sub occurs in c.
func (c String) Contains(sub string) bool { return strings.Contains(c.s, sub) }

// HasPrefix reports whether c begins with p.
func (c String) HasPrefix(p string) bool { return strings.HasPrefix(c.s, p) }

// HasSuffix reports whether c ends with p.
func (c String) HasSuffix(p string) bool { return strings.HasSuffix(c.s, p) }

// Concat returns c followed by o. The result has Size() == c.Size()+o.Size().
func (c String) Concat(o String) String {
	return String{s: c.s + o.s}
}

// Compare orders byte-wise and returns -1, 0 or +1.
func (c String) Compare(o String) int { return strings.Compare(c.s, o.s) }

// Equal reports byte-wise equality.
func (c String) Equal(o String) bool { return c.s == o.s }

// Less reports whether c sorts before o.
func (c String) Less(o String) bool { return c.s < o.s }

// Hash returns the FNV-1a hash of the contents.
func (c String) Hash() uint64 { return hash.Of(c.s) }

// MarshalText implements encoding.TextMarshaler.
func (c String) MarshalText() ([]byte, error) {
	return []byte(c.s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *String) UnmarshalText(text []byte) error {
	c.s = string(text)
	return nil
}
