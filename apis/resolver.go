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

// Resolver turns values and types into names by running strategies.
// The default chain is Namer -> Registry -> Std -> Extract.
type Resolver interface {
	// Resolve names the dynamic type of v, or returns "".
	Resolve(v any, cfg Config) string
	// ResolveType names t, or returns "".
	ResolveType(t reflect.Type, cfg Config) string
}
