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

// Package registry holds explicit type name overrides.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/tix/apis"
	"dirpx.dev/tix/internal/logging"
)

var (
	// ErrNilType is returned when registering a nil type.
	ErrNilType = errors.New("tix(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when registering an empty name.
	ErrEmptyName = errors.New("tix(registry): empty name provided")
	// ErrConflictingRegistration is returned when a type is registered again
	// under another name.
	ErrConflictingRegistration = errors.New("tix(registry): conflicting type registration")
)

// New returns an empty registry. Overrides apply to the exact registered
// type only: naming *T or []T does not consult an entry for T.
func New() apis.Registry {
	r := &registry{}
	r.m.Store(&table{})
	return r
}

type table map[reflect.Type]string

// registry publishes copy-on-write tables so lookups never lock.
type registry struct {
	mu sync.Mutex
	m  atomic.Pointer[table]
}

var _ apis.Registry = (*registry)(nil)

// Register names t. The same (t, name) pair may be registered any number
// of times.
func (r *registry) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	if err := check(*r.m.Load(), t, name); err != errAbsent {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cur := *r.m.Load()
	if err := check(cur, t, name); err != errAbsent {
		return err
	}
	next := make(table, len(cur)+1)
	maps.Copy(next, cur)
	next[t] = name
	r.m.Store(&next)
	logging.Named("registry").Debug("registered type name",
		zap.Stringer("type", t),
		zap.String("name", name))
	return nil
}

var errAbsent = errors.New("absent")

// check returns nil for an identical entry, a conflict error for a
// different one, and errAbsent otherwise.
func check(m table, t reflect.Type, name string) error {
	old, ok := m[t]
	switch {
	case !ok:
		return errAbsent
	case old == name:
		return nil
	}
	logging.Named("registry").Warn("conflicting type name",
		zap.Stringer("type", t),
		zap.String("registered", old),
		zap.String("rejected", name))
	return fmt.Errorf("%w: %s is %q, not %q", ErrConflictingRegistration, t, old, name)
}

// Lookup returns the name registered for t.
func (r *registry) Lookup(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := (*r.m.Load())[t]
	return name, ok
}

// Entries returns a snapshot of all entries.
func (r *registry) Entries() []apis.Entry {
	m := *r.m.Load()
	out := make([]apis.Entry, 0, len(m))
	for t, n := range m {
		out = append(out, apis.Entry{Type: t, Name: n})
	}
	return out
}

// Count returns the number of entries.
func (r *registry) Count() int {
	return len(*r.m.Load())
}

// Reset drops every entry.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Store(&table{})
}
