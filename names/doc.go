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

// Package names turns raw signatures into clean, human-readable names.
//
// The extractor is deliberately string based: it anchors on the package
// boundary, bounds the name by bracket depth and trims keyword and
// whitespace noise, so it works on any signature text produced by the
// signature package. Fast-path names for builtins live in Std.
package names
