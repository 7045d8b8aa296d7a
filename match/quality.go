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

package match

import (
	"fmt"
	"strings"
)

// Quality grades how well an argument list fits a parameter list.
//
// # Overview
//
// Quality is a small ordered enumeration used by overload resolution.
// Higher values are better fits; the overall quality of a candidate is the
// worst quality over its arguments, and the candidate with the best overall
// quality wins.
//
// # Values
//
// In increasing order:
//
//   - NotCallable: the arguments cannot be passed at all.
//   - Fallback: a conversion exists but may lose information or meaning
//     (for example float64 to int, or between distinct named types).
//   - Convertible: the argument is assignable to the parameter without
//     conversion (interfaces, identical underlying unnamed types).
//   - Promotable: a widening numeric conversion (int8 to int64,
//     float32 to float64, integers to floats).
//   - ExactMatch: identical types.
//
// # Contract
//
//   - The ordering of values is part of the API; comparisons with < and >
//     are meaningful.
//   - Adding values in between is a breaking change.
type Quality int

const (
	// NotCallable marks arguments that cannot be passed.
	NotCallable Quality = iota
	// Fallback marks a lossy or meaning-changing conversion.
	Fallback
	// Convertible marks plain assignability.
	Convertible
	// Promotable marks a widening numeric conversion.
	Promotable
	// ExactMatch marks identical types.
	ExactMatch
)

// String returns the canonical spelling, or "Unknown(<n>)" for values out
// of range.
func (q Quality) String() string {
	switch q {
	case NotCallable:
		return "NotCallable"
	case Fallback:
		return "Fallback"
	case Convertible:
		return "Convertible"
	case Promotable:
		return "Promotable"
	case ExactMatch:
		return "ExactMatch"
	default:
		return fmt.Sprintf("Unknown(%d)", int(q))
	}
}

// Callable reports whether q allows a call.
func (q Quality) Callable() bool {
	return q > NotCallable && q <= ExactMatch
}

// Parse parses a Quality token case-insensitively. Surrounding whitespace is
// ignored. On failure it returns NotCallable and an error.
func Parse(s string) (Quality, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NotCallable, fmt.Errorf("match: empty quality")
	}
	switch strings.ToLower(trimmed) {
	case "notcallable":
		return NotCallable, nil
	case "fallback":
		return Fallback, nil
	case "convertible":
		return Convertible, nil
	case "promotable":
		return Promotable, nil
	case "exactmatch", "exact":
		return ExactMatch, nil
	default:
		return NotCallable, fmt.Errorf("match: unknown quality %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) Quality {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

// MarshalText implements encoding.TextMarshaler. Unknown values fail
// instead of being written as "Unknown(n)".
func (q Quality) MarshalText() ([]byte, error) {
	switch q {
	case NotCallable, Fallback, Convertible, Promotable, ExactMatch:
		return []byte(q.String()), nil
	default:
		return nil, fmt.Errorf("match: cannot marshal unknown quality %d", int(q))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure q is left
// unchanged.
func (q *Quality) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}
