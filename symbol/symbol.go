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

// Package symbol binds a member name to the members of any type that
// declares it.
//
// A Symbol is created once, usually in a package-level var block, and is
// immutable afterwards. It comes in two flavours:
//
//   - implicit: New("x") owns every type with a visible member x and binds
//     to it lazily per type;
//   - explicit: New("set", WithOverloads((*T).SetInt, (*T).SetString))
//     owns exactly the receiver types of its candidates and resolves calls
//     by ranking the candidates against the argument types.
//
// Construction validates candidates and fails fast; per-type bindings are
// computed on first use and memoized.
package symbol

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/tix/attribute"
	"dirpx.dev/tix/hash"
	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/match"
	"dirpx.dev/tix/member"
)

var (
	// ErrEmptyName is returned when a symbol is created without a name.
	ErrEmptyName = errors.New("tix(symbol): empty symbol name")
	// ErrInvalidCandidate is returned for unusable explicit candidates.
	ErrInvalidCandidate = errors.New("tix(symbol): invalid candidate")
	// ErrNotOwner is returned when a type does not own the symbol.
	ErrNotOwner = errors.New("tix(symbol): type does not own symbol")
	// ErrAmbiguous is returned when several candidates fit a type and no
	// argument list disambiguates them.
	ErrAmbiguous = errors.New("tix(symbol): ambiguous member")
	// ErrNoViableOverload is returned when no candidate accepts the arguments.
	ErrNoViableOverload = errors.New("tix(symbol): no viable overload")
	// ErrTypeMismatch is returned by typed accessors on a value type mismatch.
	ErrTypeMismatch = errors.New("tix(symbol): value type mismatch")
)

// Option configures a Symbol under construction.
type Option func(*builder)

type builder struct {
	attrs []any
	fns   []any
	data  []*member.Trait
}

// WithAttributes attaches attributes to the symbol.
func WithAttributes(attrs ...any) Option {
	return func(b *builder) { b.attrs = append(b.attrs, attrs...) }
}

// WithOverloads adds receiver-first functions (usually method expressions)
// as explicit candidates, in declaration order.
func WithOverloads(fns ...any) Option {
	return func(b *builder) { b.fns = append(b.fns, fns...) }
}

// WithMember adds a single explicit member function.
func WithMember(fn any) Option {
	return WithOverloads(fn)
}

// WithTrait adds prebuilt traits, such as member.Data accessors, as
// explicit candidates.
func WithTrait(traits ...*member.Trait) Option {
	return func(b *builder) { b.data = append(b.data, traits...) }
}

// Symbol is a named handle to members.
type Symbol struct {
	name     string
	hash     uint64
	attrs    attribute.List
	explicit []*member.Trait
	empty    bool
	bound    sync.Map // key: reflect.Type, val: binding
}

type binding struct {
	trait *member.Trait
	err   error
}

// New creates a symbol and indexes it by hash. The first symbol created
// for a name stays reachable through FromHash.
func New(name string, opts ...Option) (*Symbol, error) {
	s, err := Local(name, opts...)
	if err != nil {
		return nil, err
	}
	if _, loaded := index.LoadOrStore(s.hash, s); loaded {
		logging.Named("symbol").Debug("symbol name already indexed", zap.String("symbol", name))
	}
	return s, nil
}

// Local is like New but leaves the hash index alone. Helpers that derive
// symbols on the fly use it so FromHash keeps returning defined symbols.
func Local(name string, opts ...Option) (*Symbol, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	var b builder
	for _, opt := range opts {
		opt(&b)
	}
	s := &Symbol{name: name, hash: hash.Of(name), attrs: attribute.New(b.attrs...)}
	log := logging.Named("symbol")
	for i, fn := range b.fns {
		t, err := member.FromFunc(fn)
		if err != nil {
			return nil, fmt.Errorf("%w: %s candidate %d: %w", ErrInvalidCandidate, name, i, err)
		}
		if t.Name() != "" && t.Name() != name {
			log.Debug("candidate name differs from symbol",
				zap.String("symbol", name),
				zap.String("candidate", t.String()))
		}
		s.explicit = append(s.explicit, t)
	}
	for i, t := range b.data {
		if t == nil {
			return nil, fmt.Errorf("%w: %s trait %d is nil", ErrInvalidCandidate, name, i)
		}
		s.explicit = append(s.explicit, t)
	}
	if len(b.attrs) > 0 {
		for i, t := range s.explicit {
			s.explicit[i] = t.WithAttributes(b.attrs...)
		}
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, opts ...Option) *Symbol {
	s, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustLocal is like Local but panics on error.
func MustLocal(name string, opts ...Option) *Symbol {
	s, err := Local(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Empty returns an unindexed symbol that owns nothing. It stands in for
// lookups that found no symbol.
func Empty(name string) *Symbol {
	return &Symbol{name: name, hash: hash.Of(name), empty: true}
}

// index maps symbol hashes to the first symbol created with that name.
var index sync.Map // key: uint64, val: *Symbol

// FromHash returns the symbol created for the name hashing to h.
func FromHash(h uint64) (*Symbol, bool) {
	v, ok := index.Load(h)
	if !ok {
		return nil, false
	}
	return v.(*Symbol), true
}

// Name returns the symbol name.
func (s *Symbol) Name() string { return s.name }

// Hash returns the FNV-1a hash of the name.
func (s *Symbol) Hash() uint64 { return s.hash }

// String implements fmt.Stringer.
func (s *Symbol) String() string { return s.name }

// IsEmpty reports a placeholder symbol from Empty.
func (s *Symbol) IsEmpty() bool { return s.empty }

// IsExplicit reports a symbol with an explicit candidate set.
func (s *Symbol) IsExplicit() bool { return len(s.explicit) > 0 }

// OverloadCount returns the number of explicit candidates.
func (s *Symbol) OverloadCount() int { return len(s.explicit) }

// HasOverloads reports more than one explicit candidate.
func (s *Symbol) HasOverloads() bool { return len(s.explicit) > 1 }

// Candidates returns the explicit candidates in declaration order.
func (s *Symbol) Candidates() []*member.Trait {
	return append([]*member.Trait(nil), s.explicit...)
}

// Attributes returns the symbol attributes.
func (s *Symbol) Attributes() attribute.List { return s.attrs }

// HasAttribute reports an attribute equal to a.
func (s *Symbol) HasAttribute(a any) bool { return s.attrs.Has(a) }

// HasAttributeValue reports an attribute value equal to v.
func (s *Symbol) HasAttributeValue(v any) bool { return s.attrs.HasValue(v) }

// HasNamed reports a named annotation.
func (s *Symbol) HasNamed(name string) bool { return s.attrs.HasNamed(name) }

// HasTag reports a tag attribute of type T on s.
func HasTag[T any](s *Symbol) bool { return attribute.HasTag[T](s.attrs) }

// IsOwnerOf reports whether t (or *t) owns the symbol.
func (s *Symbol) IsOwnerOf(t reflect.Type) bool {
	return len(s.owned(member.Indirect(t))) > 0
}

// IsOwner reports whether T owns s.
func IsOwner[T any](s *Symbol) bool {
	return s.IsOwnerOf(reflect.TypeFor[T]())
}

// Owns reports whether the dynamic type of obj owns the symbol.
func (s *Symbol) Owns(obj any) bool {
	return obj != nil && s.IsOwnerOf(reflect.TypeOf(obj))
}

// Member returns the single member bound to t.
func (s *Symbol) Member(t reflect.Type) (*member.Trait, error) {
	t = member.Indirect(t)
	owned := s.owned(t)
	switch len(owned) {
	case 0:
		return nil, fmt.Errorf("%w: %s does not own %q", ErrNotOwner, t, s.name)
	case 1:
		return owned[0], nil
	default:
		return nil, fmt.Errorf("%w: %q has %d candidates on %s", ErrAmbiguous, s.name, len(owned), t)
	}
}

// MemberOf is Member for T.
func MemberOf[T any](s *Symbol) (*member.Trait, error) {
	return s.Member(reflect.TypeFor[T]())
}

// Get reads the bound data member of obj.
func (s *Symbol) Get(obj any) (any, error) {
	t, err := s.memberFor(obj)
	if err != nil {
		return nil, err
	}
	return t.Get(obj)
}

// Set writes the bound data member of obj, which must be a pointer.
func (s *Symbol) Set(obj any, v any) error {
	t, err := s.memberFor(obj)
	if err != nil {
		return err
	}
	return t.Set(obj, v)
}

// Get reads the bound member of obj as V.
func Get[V any](s *Symbol, obj any) (V, error) {
	var zero V
	raw, err := s.Get(obj)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	v, ok := raw.(V)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, not %s", ErrTypeMismatch, s.name, raw, reflect.TypeFor[V]())
	}
	return v, nil
}

// Set writes v to the bound member of obj.
func Set[V any](s *Symbol, obj any, v V) error {
	return s.Set(obj, v)
}

// Call resolves the best candidate for the argument types and invokes it.
func (s *Symbol) Call(obj any, args ...any) ([]any, error) {
	if obj == nil {
		return nil, member.ErrNilObject
	}
	t, _, err := s.Resolve(reflect.TypeOf(obj), match.TypesOf(args...)...)
	if err != nil {
		return nil, err
	}
	return t.Call(obj, args...)
}

// Resolve picks the candidate owned by objType that best fits args. Ties go
// to the candidate declared first.
func (s *Symbol) Resolve(objType reflect.Type, args ...reflect.Type) (*member.Trait, match.Quality, error) {
	owned := s.owned(member.Indirect(objType))
	if len(owned) == 0 {
		return nil, match.NotCallable, fmt.Errorf("%w: %s does not own %q", ErrNotOwner, objType, s.name)
	}
	sigs := make([]reflect.Type, 0, len(owned))
	calls := make([]*member.Trait, 0, len(owned))
	for _, t := range owned {
		if t.IsFunc() {
			sigs = append(sigs, t.Type())
			calls = append(calls, t)
		}
	}
	idx, q := match.Best(sigs, args)
	if idx < 0 {
		return nil, match.NotCallable, fmt.Errorf("%w: %q on %s for %v", ErrNoViableOverload, s.name, objType, args)
	}
	return calls[idx], q, nil
}

// HasOverload reports whether some candidate of objType accepts args.
func (s *Symbol) HasOverload(objType reflect.Type, args ...reflect.Type) bool {
	_, _, err := s.Resolve(objType, args...)
	return err == nil
}

// HasOverloadWithSignature reports a callable candidate whose signature is
// exactly sig. sig may include the receiver as first parameter or omit it.
func (s *Symbol) HasOverloadWithSignature(sig reflect.Type) bool {
	if sig == nil || sig.Kind() != reflect.Func {
		return false
	}
	for _, t := range s.explicit {
		if t.IsFunc() && (t.Type() == sig || t.Signature() == sig) {
			return true
		}
	}
	return false
}

// memberFor binds obj's type, preferring data members among explicit
// candidates so accessor symbols can carry helper methods.
func (s *Symbol) memberFor(obj any) (*member.Trait, error) {
	if obj == nil {
		return nil, member.ErrNilObject
	}
	t := member.Indirect(reflect.TypeOf(obj))
	owned := s.owned(t)
	var data []*member.Trait
	for _, m := range owned {
		if m.IsData() {
			data = append(data, m)
		}
	}
	if len(data) == 1 {
		return data[0], nil
	}
	return s.Member(t)
}

// owned returns the members of t bound by s.
func (s *Symbol) owned(t reflect.Type) []*member.Trait {
	if t == nil || s.empty {
		return nil
	}
	if len(s.explicit) > 0 {
		var out []*member.Trait
		for _, m := range s.explicit {
			if m.Owner() == t {
				out = append(out, m)
			}
		}
		return out
	}
	b := s.bind(t)
	if b.err != nil {
		return nil
	}
	return []*member.Trait{b.trait}
}

// bind looks up and memoizes the implicit member of t.
func (s *Symbol) bind(t reflect.Type) binding {
	if v, ok := s.bound.Load(t); ok {
		return v.(binding)
	}
	tr, err := member.Lookup(t, s.name)
	b := binding{trait: tr, err: err}
	if err == nil && s.attrs.Len() > 0 {
		b.trait = tr.WithAttributes(slices.Collect(s.attrs.All())...)
	}
	v, loaded := s.bound.LoadOrStore(t, b)
	if !loaded {
		logging.Named("symbol").Debug("bound symbol",
			zap.String("symbol", s.name),
			zap.Stringer("type", t),
			zap.Bool("found", err == nil))
	}
	return v.(binding)
}
