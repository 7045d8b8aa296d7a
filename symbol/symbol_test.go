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

package symbol

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tix/attribute"
	"dirpx.dev/tix/hash"
	"dirpx.dev/tix/match"
	"dirpx.dev/tix/member"
)

type Point struct {
	X int `tix:"x"`
	Y int `tix:"y"`
}

func (p Point) Norm() int { return p.X*p.X + p.Y*p.Y }

type Line struct {
	From, To Point
	X        string
}

type celsius float64

type Overloaded struct {
	Last  string
	Calls int
}

func (o *Overloaded) SetInt(v int)         { o.Last = fmt.Sprintf("int:%d", v) }
func (o *Overloaded) SetString(v string)   { o.Last = "string:" + v }
func (o *Overloaded) SetFloat64(v float64) { o.Last = fmt.Sprintf("float64:%g", v) }

func (o *Overloaded) Get() string { return o.Last }

func (o *Overloaded) GetOr(empty bool) string {
	if empty && o.Last == "" {
		return "<empty>"
	}
	return o.Last
}

func (o *Overloaded) Process() int            { o.Calls++; return 0 }
func (o *Overloaded) ProcessOne(a int) int    { o.Calls++; return a }
func (o *Overloaded) ProcessTwo(a, b int) int { o.Calls++; return a + b }

var (
	setSym = MustNew("set", WithOverloads(
		(*Overloaded).SetInt,
		(*Overloaded).SetString,
		(*Overloaded).SetFloat64,
	))
	getSym     = MustNew("get", WithOverloads((*Overloaded).Get, (*Overloaded).GetOr))
	processSym = MustNew("process", WithOverloads(
		(*Overloaded).Process,
		(*Overloaded).ProcessOne,
		(*Overloaded).ProcessTwo,
	))
)

func tf[T any]() reflect.Type { return reflect.TypeFor[T]() }

func TestNew_Validation(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New("bad", WithOverloads(42))
	assert.ErrorIs(t, err, ErrInvalidCandidate)
	assert.ErrorIs(t, err, member.ErrInvalid)

	_, err = New("bad", WithTrait(nil))
	assert.ErrorIs(t, err, ErrInvalidCandidate)

	assert.Panics(t, func() { MustNew("") })
}

func TestSymbol_Identity(t *testing.T) {
	assert.Equal(t, "set", setSym.Name())
	assert.Equal(t, hash.Of("set"), setSym.Hash())
	assert.Equal(t, 3, setSym.OverloadCount())
	assert.True(t, setSym.HasOverloads())
	assert.True(t, setSym.IsExplicit())
	assert.Len(t, setSym.Candidates(), 3)

	got, ok := FromHash(hash.Of("process"))
	require.True(t, ok)
	assert.Same(t, processSym, got)

	_, ok = FromHash(hash.Of("no-such-symbol"))
	assert.False(t, ok)
}

func TestSymbol_LocalIsNotIndexed(t *testing.T) {
	local := MustLocal("localOnly")
	assert.Equal(t, "localOnly", local.Name())
	assert.False(t, local.Owns(Point{}))
	_, ok := FromHash(hash.Of("localOnly"))
	assert.False(t, ok)

	defined := MustNew("localOnly")
	got, ok := FromHash(hash.Of("localOnly"))
	require.True(t, ok)
	assert.Same(t, defined, got)

	_, err := Local("")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Panics(t, func() { MustLocal("") })
}

func TestSymbol_ImplicitOwnership(t *testing.T) {
	x := MustNew("x")
	assert.True(t, IsOwner[Point](x))
	assert.True(t, x.IsOwnerOf(tf[*Point]()))
	assert.True(t, IsOwner[Line](x), "Line declares X")
	assert.False(t, IsOwner[int](x))
	assert.False(t, x.IsOwnerOf(nil))
	assert.False(t, x.IsExplicit())
	assert.True(t, x.Owns(Point{}))
	assert.False(t, x.Owns(nil))

	tr, err := MemberOf[Point](x)
	require.NoError(t, err)
	assert.Equal(t, tf[int](), tr.Type())

	_, err = MemberOf[int](x)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestSymbol_GetSet(t *testing.T) {
	x := MustNew("x")
	p := &Point{X: 1, Y: 2}

	v, err := x.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, x.Set(p, 10))
	assert.Equal(t, 10, p.X)

	n, err := Get[int](x, *p)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = Get[string](x, p)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	require.NoError(t, Set(x, p, 11))
	assert.Equal(t, 11, p.X)

	assert.ErrorIs(t, x.Set(*p, 1), member.ErrNotAddressable)
	_, err = x.Get(42)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = x.Get(nil)
	assert.ErrorIs(t, err, member.ErrNilObject)

	ln := &Line{X: "label"}
	s, err := Get[string](x, ln)
	require.NoError(t, err)
	assert.Equal(t, "label", s)
}

func TestSymbol_ReadOnlyAttribute(t *testing.T) {
	y := MustNew("y", WithAttributes(attribute.ReadOnly{}, attribute.Since(1, 0, 0)))
	assert.True(t, HasTag[attribute.ReadOnly](y))
	assert.True(t, y.HasAttribute(attribute.ReadOnly{}))
	assert.True(t, y.HasAttributeValue(attribute.Since(1, 0, 0)))
	assert.False(t, y.HasNamed("description"))

	p := &Point{Y: 3}
	v, err := y.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.ErrorIs(t, y.Set(p, 4), member.ErrConst)

	tr, err := MemberOf[Point](y)
	require.NoError(t, err)
	assert.True(t, tr.Const())
}

func TestSymbol_OverloadResolution(t *testing.T) {
	o := &Overloaded{}
	cases := []struct {
		name string
		arg  any
		want string
		q    match.Quality
	}{
		{"int exact", 5, "int:5", match.ExactMatch},
		{"string exact", "hi", "string:hi", match.ExactMatch},
		{"float64 exact", 2.5, "float64:2.5", match.ExactMatch},
		{"float32 promotes to float64", float32(1.5), "float64:1.5", match.Promotable},
		{"int8 promotes to int", int8(3), "int:3", match.Promotable},
		{"uint8 promotes to float64", uint8(4), "float64:4", match.Promotable},
		{"named float falls back to first candidate", celsius(2), "int:2", match.Fallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, q, err := setSym.Resolve(tf[*Overloaded](), reflect.TypeOf(tc.arg))
			require.NoError(t, err)
			assert.Equal(t, tc.q, q)

			_, err = setSym.Call(o, tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, o.Last)
		})
	}

	_, err := setSym.Call(o, true)
	assert.ErrorIs(t, err, ErrNoViableOverload)
	_, err = setSym.Call(&Point{}, 1)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = setSym.Call(nil, 1)
	assert.ErrorIs(t, err, member.ErrNilObject)
}

func TestSymbol_OverloadByArity(t *testing.T) {
	o := &Overloaded{Last: ""}

	out, err := getSym.Call(o)
	require.NoError(t, err)
	assert.Equal(t, []any{""}, out)

	out, err = getSym.Call(o, true)
	require.NoError(t, err)
	assert.Equal(t, []any{"<empty>"}, out)

	for args, want := range map[int]int{0: 0, 1: 7, 2: 5} {
		var in []any
		switch args {
		case 1:
			in = []any{7}
		case 2:
			in = []any{2, 3}
		}
		out, err := processSym.Call(o, in...)
		require.NoError(t, err)
		assert.Equal(t, []any{want}, out)
	}
	assert.Equal(t, 3, o.Calls)

	_, err = processSym.Call(o, 1, 2, 3)
	assert.ErrorIs(t, err, ErrNoViableOverload)
}

func TestSymbol_HasOverload(t *testing.T) {
	ot := tf[Overloaded]()
	assert.True(t, setSym.HasOverload(ot, tf[int]()))
	assert.True(t, setSym.HasOverload(ot, tf[float32]()))
	assert.False(t, setSym.HasOverload(ot, tf[bool]()))
	assert.False(t, setSym.HasOverload(tf[Point](), tf[int]()))
	assert.True(t, processSym.HasOverload(ot))
	assert.True(t, processSym.HasOverload(ot, tf[int](), tf[int]()))

	assert.True(t, setSym.HasOverloadWithSignature(tf[func(string)]()))
	assert.True(t, setSym.HasOverloadWithSignature(tf[func(*Overloaded, float64)]()))
	assert.False(t, setSym.HasOverloadWithSignature(tf[func(bool)]()))
	assert.False(t, setSym.HasOverloadWithSignature(tf[int]()))
	assert.False(t, setSym.HasOverloadWithSignature(nil))
}

func TestSymbol_Ambiguous(t *testing.T) {
	_, err := setSym.Member(tf[Overloaded]())
	assert.ErrorIs(t, err, ErrAmbiguous)

	one := MustNew("norm", WithMember(Point.Norm))
	tr, err := MemberOf[Point](one)
	require.NoError(t, err)
	assert.Equal(t, "Norm", tr.Name())
	out, err := one.Call(Point{X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, []any{25}, out)
}

func TestSymbol_ExplicitData(t *testing.T) {
	x := MustNew("px", WithTrait(member.Data("px", func(p *Point) *int { return &p.X })))
	assert.True(t, IsOwner[Point](x))
	assert.False(t, IsOwner[Line](x))

	p := &Point{}
	require.NoError(t, x.Set(p, 9))
	assert.Equal(t, 9, p.X)
}

func TestSymbol_Empty(t *testing.T) {
	e := Empty("x")
	assert.True(t, e.IsEmpty())
	assert.False(t, IsOwner[Point](e))
	_, err := e.Get(&Point{})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestBind(t *testing.T) {
	x := MustNew("x")
	f, err := Bind[Point, int](x)
	require.NoError(t, err)
	assert.Same(t, x, f.Symbol())
	assert.Equal(t, "x", f.Trait().Name())

	p := &Point{X: 2}
	v, err := f.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	require.NoError(t, f.Set(p, 8))
	assert.Equal(t, 8, p.X)

	_, err = Bind[Point, string](x)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Bind[Overloaded, string](setSym)
	assert.Error(t, err)
	_, err = Bind[int, int](x)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Panics(t, func() { MustBind[int, int](x) })

	anyX, err := Bind[Point, any](x)
	require.NoError(t, err)
	av, err := anyX.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 8, av)
}

func TestSymbol_ConcurrentBinding(t *testing.T) {
	x := MustNew("x")
	workers := runtime.GOMAXPROCS(0) * 4

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			p := &Point{}
			for i := 0; i < 500; i++ {
				if err := x.Set(p, i); err != nil {
					errCh <- err
					return
				}
				if !IsOwner[Line](x) || IsOwner[int](x) {
					errCh <- fmt.Errorf("ownership flipped in worker %d", w)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatal(err)
	}
}

func BenchmarkSymbol_Call(b *testing.B) {
	o := &Overloaded{}
	for i := 0; i < b.N; i++ {
		_, _ = setSym.Call(o, i)
	}
}
