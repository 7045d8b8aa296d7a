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

// Package model attaches ordered symbol lists to types.
//
// A type's model is discovered in priority order: a TixModel method on the
// type (intrusive), a registration made with Register (non-intrusive), and
// otherwise the empty model.
package model

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/member"
	"dirpx.dev/tix/symbol"
)

var (
	// ErrNilModel is returned when registering a nil model.
	ErrNilModel = errors.New("tix(model): nil model")
	// ErrNilType is returned when registering for a nil type.
	ErrNilType = errors.New("tix(model): nil type")
	// ErrConflictingRegistration is returned when a type already has a
	// different model.
	ErrConflictingRegistration = errors.New("tix(model): conflicting model registration")
)

// Model is an immutable ordered list of symbols.
type Model struct {
	syms   []*symbol.Symbol
	byName map[string]int
	byHash map[uint64]int
}

// Provider is implemented by types that declare their own model.
type Provider interface {
	TixModel() *Model
}

var empty = &Model{}

// Empty returns the empty model.
func Empty() *Model { return empty }

// New builds a model from symbols in order. nil symbols are skipped and a
// repeated name keeps its first symbol.
func New(syms ...*symbol.Symbol) *Model {
	m := &Model{
		syms:   make([]*symbol.Symbol, 0, len(syms)),
		byName: make(map[string]int, len(syms)),
		byHash: make(map[uint64]int, len(syms)),
	}
	for _, s := range syms {
		if s == nil {
			continue
		}
		if _, dup := m.byName[s.Name()]; dup {
			logging.Named("model").Debug("duplicate symbol dropped", zap.String("symbol", s.Name()))
			continue
		}
		m.byName[s.Name()] = len(m.syms)
		m.byHash[s.Hash()] = len(m.syms)
		m.syms = append(m.syms, s)
	}
	return m
}

// Of returns the model of T.
func Of[T any]() *Model {
	return OfType(reflect.TypeFor[T]())
}

// Has reports whether T has a non-empty model.
func Has[T any]() bool {
	return Of[T]().Len() > 0
}

// OfType returns the model of t, looking through one pointer level.
func OfType(t reflect.Type) *Model {
	t = member.Indirect(t)
	if t == nil {
		return empty
	}
	if m := provided(t); m != nil {
		return m
	}
	if v, ok := registry.Load(t); ok {
		return v.(*Model)
	}
	return empty
}

// HasType reports whether t has a non-empty model.
func HasType(t reflect.Type) bool {
	return OfType(t).Len() > 0
}

var providerType = reflect.TypeFor[Provider]()

// provided calls TixModel on a zero T or *T.
func provided(t reflect.Type) *Model {
	var p Provider
	switch {
	case t.Implements(providerType):
		p, _ = reflect.New(t).Elem().Interface().(Provider)
	case reflect.PointerTo(t).Implements(providerType):
		p, _ = reflect.New(t).Interface().(Provider)
	}
	if p == nil {
		return nil
	}
	if m := p.TixModel(); m != nil {
		return m
	}
	return empty
}

// registry holds non-intrusive registrations.
var (
	registry sync.Map // key: reflect.Type, val: *Model
	regMu    sync.Mutex
)

// Register attaches m to T. Registering the same model twice is a no-op.
func Register[T any](m *Model) error {
	return RegisterType(reflect.TypeFor[T](), m)
}

// MustRegister is like Register but panics on error.
func MustRegister[T any](m *Model) {
	if err := Register[T](m); err != nil {
		panic(err)
	}
}

// RegisterType attaches m to t.
func RegisterType(t reflect.Type, m *Model) error {
	t = member.Indirect(t)
	if t == nil {
		return ErrNilType
	}
	if m == nil {
		return ErrNilModel
	}
	regMu.Lock()
	defer regMu.Unlock()
	if old, ok := registry.Load(t); ok {
		if old.(*Model) == m {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflictingRegistration, t)
	}
	registry.Store(t, m)
	logging.Named("model").Debug("registered model",
		zap.Stringer("type", t),
		zap.Strings("symbols", m.Names()))
	return nil
}

// Reflect builds a model from the visible members of T, one implicit
// symbol per member name. The symbols are not indexed by hash and the
// TixModel method of a Provider is left out.
func Reflect[T any]() *Model {
	return ReflectType(reflect.TypeFor[T]())
}

// ReflectType is Reflect for t.
func ReflectType(t reflect.Type) *Model {
	traits := member.All(t)
	syms := make([]*symbol.Symbol, 0, len(traits))
	for _, tr := range traits {
		if _, ok := providerType.MethodByName(tr.Name()); ok && tr.IsFunc() {
			continue
		}
		syms = append(syms, symbol.MustLocal(tr.Name()))
	}
	return New(syms...)
}

// Len returns the number of symbols.
func (m *Model) Len() int { return len(m.syms) }

// At returns the i-th symbol or nil when out of range.
func (m *Model) At(i int) *symbol.Symbol {
	if i < 0 || i >= len(m.syms) {
		return nil
	}
	return m.syms[i]
}

// Symbols returns a copy of the symbol list.
func (m *Model) Symbols() []*symbol.Symbol {
	return append([]*symbol.Symbol(nil), m.syms...)
}

// Names returns the symbol names in order.
func (m *Model) Names() []string {
	out := make([]string, len(m.syms))
	for i, s := range m.syms {
		out[i] = s.Name()
	}
	return out
}

// Lookup returns the symbol called name.
func (m *Model) Lookup(name string) (*symbol.Symbol, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.syms[i], true
}

// LookupHash returns the symbol whose name hashes to h.
func (m *Model) LookupHash(h uint64) (*symbol.Symbol, bool) {
	i, ok := m.byHash[h]
	if !ok {
		return nil, false
	}
	return m.syms[i], true
}

// Has reports a symbol called name.
func (m *Model) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// All yields (index, symbol) pairs in order.
func (m *Model) All() iter.Seq2[int, *symbol.Symbol] {
	return func(yield func(int, *symbol.Symbol) bool) {
		for i, s := range m.syms {
			if !yield(i, s) {
				return
			}
		}
	}
}

// SymbolOf returns the symbol called name from T's model, or an empty
// symbol owning nothing when the model has none.
func SymbolOf[T any](name string) *symbol.Symbol {
	if s, ok := Of[T]().Lookup(name); ok {
		return s
	}
	return symbol.Empty(name)
}
