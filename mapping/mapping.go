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

// Package mapping copies members from one object to another under a list of
// directives.
package mapping

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/member"
	"dirpx.dev/tix/symbol"
)

// ErrNilSymbol is returned for a directive missing a symbol.
var ErrNilSymbol = errors.New("tix(mapping): directive has a nil symbol")

// Func transfers one member from src to sink. sink is whatever Apply got,
// normally a pointer.
type Func func(src, sink any, source, target *symbol.Symbol) error

// Directive maps the Source member of the source object onto the Sink
// member of the sink object. A nil Func means Default.
type Directive struct {
	Source *symbol.Symbol
	Sink   *symbol.Symbol
	Func   Func
}

// To returns a directive copying name onto the same name. The symbol is
// local to the directive and does not claim the hash index.
func To(name string) Directive {
	s := symbol.MustLocal(name)
	return Directive{Source: s, Sink: s}
}

// With returns a copy of d using fn.
func (d Directive) With(fn Func) Directive {
	d.Func = fn
	return d
}

// Default assigns source's value to target when src owns source and sink
// owns target, converting convertible values. Otherwise it does nothing.
func Default(src, sink any, source, target *symbol.Symbol) error {
	if !source.Owns(src) || !target.Owns(sink) {
		return nil
	}
	v, err := source.Get(src)
	if err != nil {
		return err
	}
	return target.Set(sink, v)
}

// Apply runs every directive in order. Each directive runs independently;
// failures are joined and returned after the last one.
func Apply(src, sink any, ds ...Directive) error {
	log := logging.Named("mapping")
	var errs []error
	for i, d := range ds {
		if d.Source == nil || d.Sink == nil {
			errs = append(errs, fmt.Errorf("%w at %d", ErrNilSymbol, i))
			continue
		}
		fn := d.Func
		if fn == nil {
			fn = Default
		}
		if err := fn(src, sink, d.Source, d.Sink); err != nil {
			log.Debug("directive failed",
				zap.String("source", d.Source.Name()),
				zap.String("sink", d.Sink.Name()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s -> %s: %w", d.Source.Name(), d.Sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// ByName returns a directive for every writable data member of sinkType
// that srcType has a data member of the same name for.
func ByName(srcType, sinkType reflect.Type) []Directive {
	var out []Directive
	for _, dst := range member.All(sinkType) {
		if !dst.IsData() || dst.Const() {
			continue
		}
		src, err := member.Lookup(srcType, dst.Name())
		if err != nil || !src.IsData() {
			continue
		}
		out = append(out, To(dst.Name()))
	}
	return out
}

// Copy maps every same-named member of src onto sink, which must be a
// pointer.
func Copy(src, sink any) error {
	if src == nil || sink == nil {
		return member.ErrNilObject
	}
	return Apply(src, sink, ByName(reflect.TypeOf(src), reflect.TypeOf(sink))...)
}
