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

// Package resolver chains naming strategies.
package resolver

import (
	"reflect"

	"dirpx.dev/tix/apis"
)

// New returns a resolver trying strategies in order. nil entries are
// dropped. The result is as concurrency-safe as its strategies.
func New(strategies ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain(out)
}

// chain is an immutable ordered strategy list.
type chain []apis.Strategy

// Resolve returns the first name a strategy produces for v, or "".
func (c chain) Resolve(v any, cfg apis.Config) string {
	for _, s := range c {
		if name, ok := s.TryResolve(v, cfg); ok {
			return name
		}
	}
	return ""
}

// ResolveType returns the first name a strategy produces for t, or "".
func (c chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	for _, s := range c {
		if name, ok := s.TryResolveType(t, cfg); ok {
			return name
		}
	}
	return ""
}

// Len returns the number of strategies in a resolver built by New, or -1
// for other resolvers.
func Len(r apis.Resolver) int {
	if c, ok := r.(chain); ok {
		return len(c)
	}
	return -1
}
