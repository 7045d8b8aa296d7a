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

// Package typeid provides hashed type identities.
//
// ID pairs a type name with its FNV-1a hash. Two IDs are equal when their
// hashes are equal; ordering is by name so sorted listings read naturally.
package typeid

import (
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/tix/hash"
)

// ID is a named type identity. The zero value has an empty name and the
// FNV-1a basis as hash.
type ID struct {
	name string
	hash uint64
}

// New returns the identity for a type name.
func New(name string) ID {
	return ID{name: name, hash: hash.Of(name)}
}

// Name returns the type name.
func (id ID) Name() string { return id.name }

// Hash returns the FNV-1a hash of the name.
func (id ID) Hash() uint64 {
	if id.hash == 0 && id.name == "" {
		return hash.Basis
	}
	return id.hash
}

// Equal compares hashes.
func (id ID) Equal(o ID) bool { return id.Hash() == o.Hash() }

// Compare orders by name.
func (id ID) Compare(o ID) int { return strings.Compare(id.name, o.name) }

// Less reports whether id sorts before o.
func (id ID) Less(o ID) bool { return id.name < o.name }

// Unnamed drops the name and keeps the hash.
func (id ID) Unnamed() Unnamed { return Unnamed(id.Hash()) }

// String implements fmt.Stringer.
func (id ID) String() string {
	return id.name + "#" + strconv.FormatUint(id.Hash(), 16)
}

// Unnamed is a type identity that only carries the hash.
type Unnamed uint64

// Hash returns the identity hash.
func (u Unnamed) Hash() uint64 { return uint64(u) }

// Matches reports whether id has the same hash.
func (u Unnamed) Matches(id ID) bool { return uint64(u) == id.Hash() }

// Tag is a zero-size stand-in for T, usable where a value is needed to
// select a type.
type Tag[T any] struct{}

// Type returns the reflect.Type of T.
func (Tag[T]) Type() reflect.Type { return reflect.TypeFor[T]() }
