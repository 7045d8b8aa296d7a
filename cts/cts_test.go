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

package cts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tix/hash"
)

func TestString_Basics(t *testing.T) {
	s := New("hello")
	assert.Equal(t, 5, s.Size())
	assert.False(t, s.Empty())
	assert.Equal(t, "hello", s.View())
	assert.Equal(t, byte('e'), s.At(1))
	assert.True(t, String{}.Empty())
	assert.Panics(t, func() { s.At(5) })
}

func TestString_Find(t *testing.T) {
	s := New("a::b::c")
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"first colon", s.Find(':'), 1},
		{"missing byte is size", s.Find('x'), s.Size()},
		{"substring", s.FindString("::c"), 4},
		{"missing substring is size", s.FindString("::d"), s.Size()},
		{"empty substring", s.FindString(""), 0},
		{"last colon", s.FindLast(':'), 5},
		{"missing last is size", s.FindLast('z'), s.Size()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestString_Substr(t *testing.T) {
	s := New("abcdef")
	assert.Equal(t, "bcd", s.Substr(1, 3).View())
	assert.Equal(t, "ef", s.Substr(4, 10).View(), "length clamps to remaining")
	assert.Equal(t, "", s.Substr(6, 1).View(), "pos == size is allowed")
	assert.Equal(t, "def", s.SubstrFrom(3).View())
	assert.Panics(t, func() { s.Substr(7, 0) })
	assert.Panics(t, func() { s.Substr(0, -1) })

	// A miss from Find composes with Substr.
	assert.Equal(t, "", s.SubstrFrom(s.Find('z')).View())
}

func TestString_ConcatAndOrder(t *testing.T) {
	a, b := New("geo"), New("::Point")
	c := a.Concat(b)
	assert.Equal(t, a.Size()+b.Size(), c.Size())
	assert.Equal(t, "geo::Point", c.View())

	assert.True(t, New("abc").Equal(New("abc")))
	assert.True(t, New("abc").Less(New("abd")))
	assert.Equal(t, -1, New("ab").Compare(New("abc")))
	assert.Equal(t, 0, New("x").Compare(New("x")))
	assert.True(t, c.HasPrefix("geo"))
	assert.True(t, c.HasSuffix("Point"))
	assert.True(t, c.Contains("::"))
}

func TestString_Hash(t *testing.T) {
	assert.Equal(t, hash.Of("geo::Point"), New("geo::Point").Hash())
	assert.Equal(t, hash.Basis, String{}.Hash())
}

func TestString_Text(t *testing.T) {
	b, err := json.Marshal(map[string]String{"k": New("v")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(b))

	var out map[string]String
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "v", out["k"].View())
}
