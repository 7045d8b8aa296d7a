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

package apis

import "reflect"

// Registry maps exact types to explicitly chosen names. Implementations
// must be safe for concurrent readers.
type Registry interface {
	// Register names t. Registering the same pair again is a no-op; a
	// different name for a registered type is a conflict error.
	Register(t reflect.Type, name string) error
	// Lookup returns the name registered for t.
	Lookup(t reflect.Type) (name string, ok bool)
	// Entries returns a snapshot in unspecified order.
	Entries() []Entry
	// Count returns the number of entries.
	Count() int
	// Reset removes every entry.
	Reset()
}

// Entry is one registered (type, name) pair.
type Entry struct {
	Type reflect.Type
	Name string
}
