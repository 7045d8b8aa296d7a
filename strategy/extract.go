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
	"sync"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/names"
)

// NewExtractStrategy returns the universal fallback: the name extracted
// from the type's signature, memoized per type and naming options.
func NewExtractStrategy() apis.Strategy {
	return extractStrategy{}
}

// extractStrategy handles every non-nil type.
type extractStrategy struct{}

var _ apis.Strategy = extractStrategy{}

// cacheKey covers every knob that changes an extracted name.
type cacheKey struct {
	t    reflect.Type
	opts names.Options
}

var extractCache sync.Map // key: cacheKey, val: string

// TryResolve extracts the name of v's dynamic type.
func (extractStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return extract(reflect.TypeOf(v), cfg.NameOptions())
}

// TryResolveType extracts the name of t.
func (extractStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return extract(t, cfg.NameOptions())
}

func extract(t reflect.Type, opts names.Options) (string, bool) {
	key := cacheKey{t: t, opts: opts}
	if v, ok := extractCache.Load(key); ok {
		return nonEmpty(v.(string))
	}
	name, err := names.Type(t, opts)
	if err != nil {
		name = ""
	}
	v, _ := extractCache.LoadOrStore(key, name)
	return nonEmpty(v.(string))
}
