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

// Package typeparams decomposes instantiated generic types into their base
// name and type arguments.
package typeparams

import (
	"reflect"
	"strings"

	"dirpx.dev/tix/names"
)

// Info describes one instantiation: for geo.Pair[int,string] Instantiation
// is "geo.Pair[int,string]", Base is "geo.Pair" and Params is
// ["int", "string"].
type Info struct {
	Instantiation string
	Base          string
	Params        []string
}

// Of returns the instantiation info of T.
func Of[T any]() Info {
	return OfType(reflect.TypeFor[T]())
}

// OfType returns the instantiation info of t. Unnamed and non-generic types
// have no params and Base equal to Instantiation.
func OfType(t reflect.Type) Info {
	if t == nil {
		return Info{}
	}
	full, err := names.Type(t, names.Options{})
	if err != nil {
		return Info{}
	}
	return Parse(full, t.Name() != "")
}

// Parse decomposes a type name. When named is false only composite syntax
// is assumed and no params are extracted.
func Parse(full string, named bool) Info {
	info := Info{Instantiation: full, Base: full}
	if !named || !strings.HasSuffix(full, "]") {
		return info
	}
	params, err := names.TypeArgs(full)
	if err != nil || params == nil {
		return info
	}
	info.Base = names.StripTypeArgs(full)
	info.Params = params
	return info
}

// IsGeneric reports whether the type was instantiated with type arguments.
func (i Info) IsGeneric() bool { return len(i.Params) > 0 }

// Count returns the number of type arguments.
func (i Info) Count() int { return len(i.Params) }

// Param returns the i-th type argument, or "" when out of range.
func (i Info) Param(n int) string {
	if n < 0 || n >= len(i.Params) {
		return ""
	}
	return i.Params[n]
}

// Short returns Base without its package selector.
func (i Info) Short() string {
	return names.Base(i.Base)
}
