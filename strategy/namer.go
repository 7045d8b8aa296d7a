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
)

// NewNamerStrategy returns a strategy answering with apis.Namer.TixName.
func NewNamerStrategy() apis.Strategy {
	return namerStrategy{}
}

// namerStrategy is the self-naming fast path. An empty TixName falls
// through to the rest of the chain.
type namerStrategy struct{}

var _ apis.Strategy = namerStrategy{}

var namerType = reflect.TypeFor[apis.Namer]()

// TryResolve asks v for its name.
func (namerStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	n, ok := v.(apis.Namer)
	if !ok {
		return "", false
	}
	return nonEmpty(n.TixName())
}

// TryResolveType asks a zero value of t for its name. Pointer receivers
// get a pointer to a fresh zero value, never a nil pointer.
func (namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return "", false
	}
	var n apis.Namer
	switch {
	case t.Kind() == reflect.Pointer && t.Implements(namerType):
		n, _ = reflect.New(t.Elem()).Interface().(apis.Namer)
	case t.Implements(namerType):
		n, _ = reflect.New(t).Elem().Interface().(apis.Namer)
	case reflect.PointerTo(t).Implements(namerType):
		n, _ = reflect.New(t).Interface().(apis.Namer)
	}
	if n == nil {
		return "", false
	}
	return nonEmpty(n.TixName())
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
