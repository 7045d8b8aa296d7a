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

package names

import (
	"context"
	"reflect"
	"time"
)

// std holds names that never need parsing.
var std = map[reflect.Type]string{
	reflect.TypeFor[bool]():            "bool",
	reflect.TypeFor[string]():          "string",
	reflect.TypeFor[int]():             "int",
	reflect.TypeFor[int8]():            "int8",
	reflect.TypeFor[int16]():           "int16",
	reflect.TypeFor[int32]():           "int32",
	reflect.TypeFor[int64]():           "int64",
	reflect.TypeFor[uint]():            "uint",
	reflect.TypeFor[uint8]():           "uint8",
	reflect.TypeFor[uint16]():          "uint16",
	reflect.TypeFor[uint32]():          "uint32",
	reflect.TypeFor[uint64]():          "uint64",
	reflect.TypeFor[uintptr]():         "uintptr",
	reflect.TypeFor[float32]():         "float32",
	reflect.TypeFor[float64]():         "float64",
	reflect.TypeFor[complex64]():       "complex64",
	reflect.TypeFor[complex128]():      "complex128",
	reflect.TypeFor[error]():           "error",
	reflect.TypeFor[any]():             "any",
	reflect.TypeFor[[]byte]():          "[]byte",
	reflect.TypeFor[[]string]():        "[]string",
	reflect.TypeFor[[]any]():           "[]any",
	reflect.TypeFor[map[string]any]():  "map[string]any",
	reflect.TypeFor[time.Time]():       "time.Time",
	reflect.TypeFor[time.Duration]():   "time.Duration",
	reflect.TypeFor[context.Context](): "context.Context",
}

// Std returns the fixed name of a builtin or common standard library type.
func Std(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	n, ok := std[t]
	return n, ok
}
