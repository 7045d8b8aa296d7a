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

package member

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tix/attribute"
)

type Point struct {
	X      int    `tix:"x,since=1.0"`
	Y      int
	Label  string `tix:"label,readonly"`
	Hidden int    `tix:"-"`
	secret int
}

func (p *Point) Move(dx, dy int) { p.X += dx; p.Y += dy }
func (p Point) Dist() int        { return p.X*p.X + p.Y*p.Y }

func (p *Point) Sum(xs ...int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}

func (p *Point) Fail() error { return errors.New("fail") }
func (p *Point) Boom()       { panic("boom") }

type Named struct {
	*Point
	Name string
}

func tf[T any]() reflect.Type { return reflect.TypeFor[T]() }

func TestLookup_Fields(t *testing.T) {
	cases := []struct {
		query string
		name  string
		typ   reflect.Type
	}{
		{"x", "x", tf[int]()},
		{"X", "x", tf[int]()},
		{"Y", "Y", tf[int]()},
		{"y", "Y", tf[int]()},
		{"label", "label", tf[string]()},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			tr, err := Lookup(tf[Point](), tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.name, tr.Name())
			assert.Equal(t, KindData, tr.Kind())
			assert.Equal(t, tc.typ, tr.Type())
			assert.Equal(t, tf[Point](), tr.Owner())
		})
	}

	for _, missing := range []string{"Hidden", "secret", "Z", ""} {
		_, err := Lookup(tf[Point](), missing)
		assert.ErrorIs(t, err, ErrNotFound, missing)
	}

	tr, err := Lookup(tf[*Point](), "x")
	require.NoError(t, err)
	assert.Equal(t, "X", Identifier(tr))
	v, ok := tr.Attributes().Since()
	assert.True(t, ok)
	assert.Equal(t, attribute.Since(1, 0, 0), v)
}

func TestLookup_Methods(t *testing.T) {
	move, err := Lookup(tf[Point](), "move")
	require.NoError(t, err)
	assert.Equal(t, "Move", move.Name())
	assert.True(t, move.IsFunc())
	assert.True(t, move.PointerReceiver())
	assert.False(t, move.Const())
	assert.Equal(t, 2, move.Arity())
	assert.Equal(t, tf[func(int, int)](), move.Type())
	assert.Equal(t, tf[func(*Point, int, int)](), move.Signature())
	assert.Nil(t, move.Result())

	dist, err := Lookup(tf[Point](), "Dist")
	require.NoError(t, err)
	assert.False(t, dist.PointerReceiver())
	assert.True(t, dist.Const())
	assert.Equal(t, tf[int](), dist.Result())
}

func TestTrait_GetSet(t *testing.T) {
	x, err := Lookup(tf[Point](), "x")
	require.NoError(t, err)

	p := &Point{X: 3}
	v, err := x.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = x.Get(*p)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, x.Set(p, 7))
	assert.Equal(t, 7, p.X)
	require.NoError(t, x.Set(p, int8(9)), "convertible values are converted")
	assert.Equal(t, 9, p.X)

	assert.True(t, x.CanSet(p))
	assert.False(t, x.CanSet(*p))
	assert.ErrorIs(t, x.Set(*p, 1), ErrNotAddressable)
	assert.ErrorIs(t, x.Set(p, "str"), ErrTypeMismatch)
	assert.ErrorIs(t, x.Set(&Named{}, 1), ErrNotOwner)
	assert.ErrorIs(t, x.Set((*Point)(nil), 1), ErrNilObject)
	_, err = x.Get(nil)
	assert.ErrorIs(t, err, ErrNilObject)

	label, err := Lookup(tf[Point](), "label")
	require.NoError(t, err)
	assert.True(t, label.Const())
	assert.False(t, label.CanSet(p))
	assert.ErrorIs(t, label.Set(p, "x"), ErrConst)

	move, _ := Lookup(tf[Point](), "Move")
	_, err = move.Get(p)
	assert.ErrorIs(t, err, ErrNotData)
	assert.ErrorIs(t, move.Set(p, 1), ErrNotData)
}

func TestTrait_Promoted(t *testing.T) {
	x, err := Lookup(tf[Named](), "x")
	require.NoError(t, err)
	n := &Named{Point: &Point{X: 4}, Name: "n"}
	v, err := x.Get(n)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	require.NoError(t, x.Set(n, 5))
	assert.Equal(t, 5, n.Point.X)

	_, err = x.Get(&Named{})
	assert.Error(t, err, "nil embedded pointer")

	move, err := Lookup(tf[Named](), "Move")
	require.NoError(t, err)
	_, err = move.Call(n, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, n.Point.X)
}

func TestTrait_Call(t *testing.T) {
	p := &Point{X: 1, Y: 2}
	move, _ := Lookup(tf[Point](), "Move")
	out, err := move.Call(p, 2, int8(3))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, Point{X: 3, Y: 5}, *p)

	_, err = move.Call(*p, 1, 1)
	assert.ErrorIs(t, err, ErrNotAddressable)
	_, err = move.Call(p, 1)
	assert.ErrorIs(t, err, ErrArgs)
	_, err = move.Call(p, "a", 1)
	assert.ErrorIs(t, err, ErrArgs)

	dist, _ := Lookup(tf[Point](), "Dist")
	out, err = dist.Call(*p)
	require.NoError(t, err)
	assert.Equal(t, []any{34}, out)

	sum, _ := Lookup(tf[Point](), "Sum")
	out, err = sum.Call(p, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{6}, out)
	assert.True(t, sum.CanCall())
	assert.True(t, sum.CanCall(tf[int](), tf[int16]()))
	assert.False(t, sum.CanCall(tf[string]()))

	fail, _ := Lookup(tf[Point](), "Fail")
	out, err = fail.Call(p)
	require.NoError(t, err, "member errors are results, not call failures")
	assert.EqualError(t, out[0].(error), "fail")

	boom, _ := Lookup(tf[Point](), "Boom")
	assert.PanicsWithValue(t, "boom", func() { _, _ = boom.Call(p) })

	x, _ := Lookup(tf[Point](), "x")
	_, err = x.Call(p)
	assert.ErrorIs(t, err, ErrNotFunc)
	assert.False(t, x.CanCall())
}

func TestFromFunc(t *testing.T) {
	tr, err := FromFunc((*Point).Move, attribute.Deprecated{})
	require.NoError(t, err)
	assert.Equal(t, "Move", tr.Name())
	assert.Equal(t, tf[Point](), tr.Owner())
	assert.True(t, tr.PointerReceiver())
	assert.True(t, tr.Attributes().IsDeprecated())

	p := &Point{}
	_, err = tr.Call(p, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Y)

	helper, err := FromFunc(func(p Point, k int) int { return p.X * k })
	require.NoError(t, err)
	assert.True(t, helper.Const())
	out, err := helper.Call(Point{X: 3}, 4)
	require.NoError(t, err)
	assert.Equal(t, []any{12}, out)

	bad := []any{nil, 42, func() {}, func(int) {}, func(error) {}, (&Point{}).Move, (func(Point))(nil)}
	for _, b := range bad {
		_, err := FromFunc(b)
		assert.ErrorIs(t, err, ErrInvalid, "%T", b)
	}
	assert.Panics(t, func() { MustFromFunc(42) })
}

func TestDataAndReadOnly(t *testing.T) {
	x := Data("x", func(p *Point) *int { return &p.X })
	assert.Equal(t, tf[Point](), x.Owner())
	assert.False(t, x.Const())

	p := &Point{X: 1}
	require.NoError(t, x.Set(p, 10))
	assert.Equal(t, 10, p.X)
	v, err := x.Get(*p)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	norm := ReadOnly("norm", func(p *Point) int { return p.Dist() }, attribute.Description("squared length"))
	assert.True(t, norm.Const())
	assert.Equal(t, "squared length", norm.Attributes().Description())
	v, err = norm.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	assert.ErrorIs(t, norm.Set(p, 1), ErrConst)

	var nilErr = ReadOnly("err", func(p *Point) error { return nil })
	v, err = nilErr.Get(p)
	require.NoError(t, err)
	assert.Nil(t, v)

	wo := Data("y", func(p *Point) *int { return &p.Y }, attribute.WriteOnly{})
	_, err = wo.Get(p)
	assert.ErrorIs(t, err, ErrWriteOnly)
	assert.True(t, wo.WithAttributes(attribute.Internal{}).Attributes().IsInternal())
	assert.False(t, wo.Attributes().IsInternal())
}

func TestAll(t *testing.T) {
	var got []string
	for _, tr := range All(tf[*Point]()) {
		got = append(got, tr.Kind().String()+":"+tr.Name())
	}
	assert.Equal(t, []string{
		"data:x", "data:Y", "data:label",
		"func:Boom", "func:Dist", "func:Fail", "func:Move", "func:Sum",
	}, got)
	assert.Same(t, All(tf[Point]())[0], All(tf[Point]())[0], "memoized")
	assert.Nil(t, All(nil))
	assert.Equal(t, "Unknown(9)", Kind(9).String())
}
