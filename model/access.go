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

package model

import (
	"fmt"
	"reflect"

	"dirpx.dev/tix/member"
	"dirpx.dev/tix/symbol"
)

// GetValue reads the member called name of obj through obj's model.
func GetValue(obj any, name string) (any, error) {
	s, err := lookupFor(obj, name)
	if err != nil {
		return nil, err
	}
	return s.Get(obj)
}

// SetValue writes the member called name of obj through obj's model.
func SetValue(obj any, name string, v any) error {
	s, err := lookupFor(obj, name)
	if err != nil {
		return err
	}
	return s.Set(obj, v)
}

// Values reads every data member the model names, keyed by symbol name.
// Symbols the object does not own are skipped. Use Model.All to walk them
// in model order.
func Values(obj any) (map[string]any, error) {
	if obj == nil {
		return nil, member.ErrNilObject
	}
	m := OfType(reflect.TypeOf(obj))
	out := make(map[string]any, m.Len())
	for _, s := range m.All() {
		if !s.Owns(obj) {
			continue
		}
		tr, err := s.Member(reflect.TypeOf(obj))
		if err != nil || !tr.IsData() {
			continue
		}
		v, err := tr.Get(obj)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		out[s.Name()] = v
	}
	return out, nil
}

func lookupFor(obj any, name string) (*symbol.Symbol, error) {
	if obj == nil {
		return nil, member.ErrNilObject
	}
	t := reflect.TypeOf(obj)
	s, ok := OfType(t).Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s model has no %q", symbol.ErrNotOwner, member.Indirect(t), name)
	}
	return s, nil
}
