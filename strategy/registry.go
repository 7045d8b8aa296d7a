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

package strategy

import (
	"reflect"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/names"
)

// NewRegistryStrategy returns a strategy answering with names registered
// in reg for the exact type.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	if reg == nil {
		return lookupStrategy(nil)
	}
	return lookupStrategy(reg.Lookup)
}

// NewStdStrategy returns a strategy answering with the fixed names of
// builtin and common standard library types.
func NewStdStrategy() apis.Strategy {
	return lookupStrategy(names.Std)
}

// lookupStrategy resolves through a table keyed by exact type.
type lookupStrategy func(reflect.Type) (string, bool)

var _ apis.Strategy = lookupStrategy(nil)

// TryResolve looks up the dynamic type of v.
func (l lookupStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return l.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType looks up t.
func (l lookupStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || l == nil {
		return "", false
	}
	return l(t)
}
