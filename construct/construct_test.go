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

package construct_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tix/construct"
	"dirpx.dev/tix/match"
)

type Point struct {
	X, Y float64
	src  string
}

func NewPoint(x, y float64) Point { return Point{X: x, Y: y, src: "xy"} }

func NewPointInt(x int) *Point { return &Point{X: float64(x), src: "int"} }

var errNegative = errors.New("negative")

func NewPointChecked(s string, x float64) (*Point, error) {
	if x < 0 {
		return nil, errNegative
	}
	return &Point{X: x, src: s}, nil
}

type Pair struct {
	Key   string
	Value int
	note  string
}

type Empty struct{}

func init() {
	construct.MustRegister[Point](NewPoint, NewPointInt, NewPointChecked)
}

func TestNewPicksBestConstructor(t *testing.T) {
	p, err := construct.New[Point](1.5, 2.5)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 1.5, Y: 2.5, src: "xy"}, p)

	p, err = construct.New[Point](3)
	require.NoError(t, err)
	assert.Equal(t, "int", p.src)

	p, err = construct.New[Point](int8(3))
	require.NoError(t, err)
	assert.Equal(t, "int", p.src, "int8 promotes to int")

	p, err = construct.New[Point](float32(1), 2)
	require.NoError(t, err)
	assert.Equal(t, "xy", p.src)

	p, err = construct.New[Point]("named", 4.0)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 4, src: "named"}, p)
}

func TestNewPropagatesConstructorError(t *testing.T) {
	_, err := construct.New[Point]("bad", -1.0)
	assert.ErrorIs(t, err, errNegative)
}

func TestNewNoViable(t *testing.T) {
	_, err := construct.New[Point](true)
	assert.ErrorIs(t, err, construct.ErrNoViableConstructor)
	assert.Panics(t, func() { construct.MustNew[Point]("a", "b", "c") })
}

func TestNewZeroAndAggregate(t *testing.T) {
	p, err := construct.New[Pair]()
	require.NoError(t, err)
	assert.Equal(t, Pair{}, p)

	p, err = construct.New[Pair]("k", 2)
	require.NoError(t, err)
	assert.Equal(t, Pair{Key: "k", Value: 2}, p)

	_, err = construct.New[Pair]("k", 2, "n")
	assert.ErrorIs(t, err, construct.ErrNoViableConstructor)

	_, err = construct.New[Pair]("k", "v")
	assert.ErrorIs(t, err, match.ErrNotConvertible)
}

func TestAggregate(t *testing.T) {
	p, err := construct.Aggregate[Pair]("k")
	require.NoError(t, err)
	assert.Equal(t, Pair{Key: "k"}, p)

	_, err = construct.Aggregate[Empty](1)
	assert.ErrorIs(t, err, construct.ErrTooManyFields)

	_, err = construct.Aggregate[int](1)
	assert.ErrorIs(t, err, construct.ErrNotAggregate)
}

func TestCanConstruct(t *testing.T) {
	f64, str, i := reflect.TypeFor[float64](), reflect.TypeFor[string](), reflect.TypeFor[int]()
	assert.True(t, construct.CanConstruct[Point](f64, f64))
	assert.True(t, construct.CanConstruct[Point](i))
	assert.True(t, construct.CanConstruct[Point]())
	assert.False(t, construct.CanConstruct[Point](str))
	assert.True(t, construct.CanConstruct[Pair](str, i))
	assert.False(t, construct.CanConstruct[Pair](i))
	assert.False(t, construct.CanConstruct[Pair](str, i, str))
}

func TestRegisterValidation(t *testing.T) {
	cases := []any{
		42,
		func() int { return 0 },
		func() (Pair, bool) { return Pair{}, true },
		func() (Pair, error, int) { return Pair{}, nil, 0 },
		(func() Pair)(nil),
	}
	for _, c := range cases {
		assert.ErrorIs(t, construct.Register[Pair](c), construct.ErrInvalidConstructor)
	}
	assert.Equal(t, 0, construct.Count[Pair]())
	assert.Equal(t, 3, construct.Count[Point]())
}
