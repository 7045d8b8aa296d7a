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

// Package tie binds external variables to symbols so that one Assign call
// fills all of them from a source object.
package tie

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/match"
	"dirpx.dev/tix/symbol"
)

var (
	// ErrLengthMismatch is returned when symbols and refs differ in length.
	ErrLengthMismatch = errors.New("tix(tie): symbols and refs differ in length")
	// ErrNotPointer is returned when a ref is not a non-nil pointer.
	ErrNotPointer = errors.New("tix(tie): ref is not a non-nil pointer")
	// ErrNilSymbol is returned for a nil symbol.
	ErrNilSymbol = errors.New("tix(tie): nil symbol")
)

// Binder writes symbol values into tied variables.
type Binder struct {
	syms []*symbol.Symbol
	refs []reflect.Value
}

// New ties each ref (a pointer) to the symbol at the same index.
func New(syms []*symbol.Symbol, refs ...any) (*Binder, error) {
	if len(syms) != len(refs) {
		return nil, fmt.Errorf("%w: %d symbols, %d refs", ErrLengthMismatch, len(syms), len(refs))
	}
	b := &Binder{syms: syms, refs: make([]reflect.Value, len(refs))}
	for i, r := range refs {
		if syms[i] == nil {
			return nil, fmt.Errorf("%w at %d", ErrNilSymbol, i)
		}
		rv := reflect.ValueOf(r)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return nil, fmt.Errorf("%w: %s at %d is %T", ErrNotPointer, syms[i].Name(), i, r)
		}
		b.refs[i] = rv.Elem()
	}
	return b, nil
}

// MustNew is like New but panics on error.
func MustNew(syms []*symbol.Symbol, refs ...any) *Binder {
	b, err := New(syms, refs...)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of tied variables.
func (b *Binder) Len() int { return len(b.syms) }

// Assign reads every symbol owned by src's type and stores the value in its
// tied variable, in order. Symbols src does not own are skipped. Values that
// do not fit their variable are reported together once all writes ran.
func (b *Binder) Assign(src any) error {
	if src == nil {
		return nil
	}
	var errs []error
	for i, s := range b.syms {
		if !s.Owns(src) {
			logging.Named("tie").Debug("skip unowned symbol",
				zap.String("symbol", s.Name()),
				zap.String("source", fmt.Sprintf("%T", src)))
			continue
		}
		v, err := s.Get(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		dst := b.refs[i]
		if v == nil {
			dst.SetZero()
			continue
		}
		cv, err := match.Coerce(reflect.ValueOf(v), dst.Type())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		dst.Set(cv)
	}
	return errors.Join(errs...)
}
