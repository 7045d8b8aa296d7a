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

import "dirpx.dev/tix/names"

// Config carries the read-only knobs that shape produced names. It is
// passed by value and must be treated as immutable.
type Config struct {
	// IncludeBuiltins controls whether nearest-name queries may answer with
	// a builtin, package-less name such as "int". If false they yield "".
	IncludeBuiltins bool

	// MaxUnwrap limits how many ptr/slice/array/chan/map layers a
	// nearest-name query looks through.
	MaxUnwrap int

	// MapPreferElem picks V over K of map[K]V when both are named.
	MapPreferElem bool

	// FullPackagePath keeps complete import paths ("dirpx.dev/tix/geo.Point")
	// instead of the package name ("geo.Point").
	FullPackagePath bool

	// StripTypeArgs drops generic instantiation arguments ("geo.Box[int]"
	// becomes "geo.Box").
	StripTypeArgs bool
}

// NameOptions returns the extraction options encoded in c.
func (c Config) NameOptions() names.Options {
	return names.Options{
		FullPackagePath: c.FullPackagePath,
		StripTypeArgs:   c.StripTypeArgs,
	}
}
