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

package attribute

import (
	"fmt"
	"strings"
)

// ParseTag parses the options of a `tix:"name,opt,..."` struct tag and
// returns the member name (possibly empty) and the attribute list. Known
// options are readonly, writeonly, deprecated, internal, validated,
// since=<version> and desc=<text>. Any other key=value pair becomes a
// named annotation; a bare unknown word is an error.
func ParseTag(tag string) (string, List, error) {
	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	var items []any
	for _, raw := range parts[1:] {
		opt := strings.TrimSpace(raw)
		if opt == "" {
			continue
		}
		key, val, hasVal := strings.Cut(opt, "=")
		switch {
		case !hasVal && key == "readonly":
			items = append(items, ReadOnly{})
		case !hasVal && key == "writeonly":
			items = append(items, WriteOnly{})
		case !hasVal && key == "deprecated":
			items = append(items, Deprecated{})
		case !hasVal && key == "internal":
			items = append(items, Internal{})
		case !hasVal && key == "validated":
			items = append(items, Validated{})
		case hasVal && key == "since":
			v, err := ParseVersion(val)
			if err != nil {
				return "", List{}, err
			}
			items = append(items, v)
		case hasVal && key == "desc":
			items = append(items, Description(val))
		case hasVal:
			items = append(items, Named(key, val))
		default:
			return "", List{}, fmt.Errorf("tix(attribute): unknown tag option %q", opt)
		}
	}
	return name, New(items...), nil
}
