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

package mapping_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tix/mapping"
	"dirpx.dev/tix/member"
	"dirpx.dev/tix/symbol"
)

type Source struct {
	Value int
	Name  string
	Extra bool
}

type Sink struct {
	Value int64
	Name  string
	Title string
	Code  string `tix:"code,readonly"`
}

func TestCopyByName(t *testing.T) {
	src := Source{Value: 42, Name: "source"}
	sink := Sink{Value: 0, Name: "sink"}
	require.NoError(t, mapping.Copy(src, &sink))
	assert.Equal(t, int64(42), sink.Value)
	assert.Equal(t, "source", sink.Name)
	assert.Empty(t, sink.Title)
}

type Payment struct{ Amount int }

type Ledger struct{ total int }

func (l *Ledger) SetAmount(v int) { l.total = v }

func TestCopyLeavesSymbolIndexAlone(t *testing.T) {
	require.NoError(t, mapping.Copy(Payment{Amount: 1}, &Sink{}))
	mapping.ByName(reflect.TypeFor[Payment](), reflect.TypeFor[Payment]())
	_ = mapping.To("Amount")

	amount := symbol.MustNew("Amount", symbol.WithOverloads((*Ledger).SetAmount))
	got, ok := symbol.FromHash(amount.Hash())
	require.True(t, ok)
	assert.Same(t, amount, got)
	assert.True(t, got.IsExplicit())
}

func TestByName(t *testing.T) {
	ds := mapping.ByName(reflect.TypeFor[Source](), reflect.TypeFor[Sink]())
	var names []string
	for _, d := range ds {
		names = append(names, d.Sink.Name())
	}
	assert.Equal(t, []string{"Value", "Name"}, names)
}

func TestDefaultSkipsUnowned(t *testing.T) {
	sink := Sink{Title: "keep"}
	err := mapping.Apply(Source{Extra: true}, &sink,
		mapping.To("Extra"),
		mapping.To("Title"),
	)
	require.NoError(t, err)
	assert.Equal(t, "keep", sink.Title)
}

func TestCustomFuncAlwaysRuns(t *testing.T) {
	calls := 0
	upper := func(src, sink any, source, target *symbol.Symbol) error {
		calls++
		v, err := symbol.Get[string](source, src)
		if err != nil {
			return err
		}
		return target.Set(sink, strings.ToUpper(v))
	}
	sink := Sink{}
	err := mapping.Apply(Source{Name: "abc"}, &sink,
		mapping.Directive{Source: symbol.MustNew("Name"), Sink: symbol.MustNew("Title"), Func: upper},
		mapping.To("Missing").With(upper),
		mapping.To("Value"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, symbol.ErrNotOwner)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "ABC", sink.Title)
	assert.Equal(t, int64(0), sink.Value, "zero value copied")
}

func TestDirectivesAreIndependent(t *testing.T) {
	sink := Sink{}
	boom := errors.New("boom")
	err := mapping.Apply(Source{Value: 5}, &sink,
		mapping.To("Value").With(func(_, _ any, _, _ *symbol.Symbol) error { return boom }),
		mapping.To("Name"),
		mapping.Directive{Source: symbol.MustNew("Value")},
		mapping.To("Value"),
	)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, mapping.ErrNilSymbol)
	assert.Equal(t, int64(5), sink.Value)
}

func TestConstSinkFails(t *testing.T) {
	sink := Sink{}
	err := mapping.Apply(Source{Name: "x"}, &sink,
		mapping.Directive{Source: symbol.MustNew("Name"), Sink: symbol.MustNew("code")})
	assert.ErrorIs(t, err, member.ErrConst)
}

func TestCopyNil(t *testing.T) {
	assert.ErrorIs(t, mapping.Copy(nil, &Sink{}), member.ErrNilObject)
}
