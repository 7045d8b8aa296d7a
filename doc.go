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

// Package tix names Go types and values and exposes their structure.
//
// Names come from a process-wide snapshot holding a Config, a Registry of
// explicit names, a Resolver that answers naming queries and the Builder
// that produced both. Readers load the snapshot without locking:
//
//	tix.NameOf[geo.Point]()             // "geo.Point"
//	tix.QualifiedNameOf[geo.Point]()    // geo::Point
//	tix.NearestNameOf[[]*geo.Point]()   // "geo.Point"
//	tix.ValueNameOf(geo.Active)         // "kActive" once enum-registered
//
// Writers (SetConfig, SetRegistry, SetResolver, SetBuilder, SetExt) derive
// a new snapshot under a mutex and publish it atomically. Unpinned layers
// are rebuilt by the current Builder; a registry or resolver installed
// explicitly is pinned until UnpinRegistry or UnpinResolver.
//
// The default resolver tries, in order: extension strategies passed as
// builder.Ext, the TixName method of apis.Namer, the registry, fixed names
// of builtin and common standard library types, and finally a name
// extracted from the runtime type signature.
//
// Structure lives in the sub-packages: member and symbol describe data
// members and methods, model groups symbols per type, tie and mapping move
// values between symbols, match ranks overloads, and enum, inherit,
// construct, attribute and typeparams cover the remaining type traits.
package tix
