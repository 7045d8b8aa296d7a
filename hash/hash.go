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

// Package hash implements the 64-bit FNV-1a hash used for symbol and type
// identifiers.
//
// Of is a pure function of its input, so hashes can be compared across
// packages and used as switch case values:
//
//	switch hash.Of(cmd) {
//	case hash.Of("start"):
//	case hash.Of("stop"):
//	}
package hash

const (
	// Basis is the FNV-1a 64-bit offset basis. Of("") == Basis.
	Basis uint64 = 14695981039346656037
	// Prime is the FNV-1a 64-bit prime.
	Prime uint64 = 1099511628211
)

// Of returns the FNV-1a hash of s.
func Of(s string) uint64 {
	return Continue(Basis, s)
}

// Bytes returns the FNV-1a hash of b.
func Bytes(b []byte) uint64 {
	h := Basis
	for _, c := range b {
		h ^= uint64(c)
		h *= Prime
	}
	return h
}

// Continue folds s into a running hash h. Continue(Of(a), b) == Of(a+b).
func Continue(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= Prime
	}
	return h
}
