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

// Builder assembles the Registry and Resolver of a naming snapshot.
// prev arguments are the instances being replaced and may be nil. ext is
// the snapshot's extension payload; the default builder accepts extra
// strategies through it.
type Builder interface {
	BuildRegistry(cfg Config, prev Registry, ext any) Registry
	BuildResolver(cfg Config, reg Registry, prev Resolver, ext any) Resolver
}
