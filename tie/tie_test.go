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

package tie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tix/match"
	"dirpx.dev/tix/symbol"
	"dirpx.dev/tix/tie"
)

type Employee struct {
	Name   string
	Salary float64
}

type Department struct {
	Name string
	Size int
}

type Address struct {
	Street string
}

var (
	nameSym   = symbol.MustNew("Name")
	salarySym = symbol.MustNew("Salary")
)

func TestAssignOwned(t *testing.T) {
	var name string
	var salary float64
	b, err := tie.New([]*symbol.Symbol{nameSym, salarySym}, &name, &salary)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Assign(Employee{Name: "ann", Salary: 10}))
	assert.Equal(t, "ann", name)
	assert.Equal(t, 10.0, salary)

	require.NoError(t, b.Assign(&Department{Name: "ops", Size: 3}))
	assert.Equal(t, "ops", name)
	assert.Equal(t, 10.0, salary, "department owns no salary")

	require.NoError(t, b.Assign(Address{Street: "main"}))
	assert.Equal(t, "ops", name)
	assert.Equal(t, 10.0, salary)

	require.NoError(t, b.Assign(nil))
}

func TestAssignConverts(t *testing.T) {
	var size int64
	b := tie.MustNew([]*symbol.Symbol{symbol.MustNew("Size")}, &size)
	require.NoError(t, b.Assign(Department{Size: 7}))
	assert.Equal(t, int64(7), size)
}

func TestAssignReportsAllMismatches(t *testing.T) {
	var name []byte
	var salary bool
	var dept string
	b := tie.MustNew([]*symbol.Symbol{salarySym, nameSym, nameSym}, &salary, &name, &dept)

	err := b.Assign(Employee{Name: "bob", Salary: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, match.ErrNotConvertible)
	assert.Equal(t, []byte("bob"), name, "string converts to []byte")
	assert.Equal(t, "bob", dept, "later writes still run")
}

func TestNewValidation(t *testing.T) {
	var s string
	_, err := tie.New([]*symbol.Symbol{nameSym}, &s, &s)
	assert.ErrorIs(t, err, tie.ErrLengthMismatch)

	_, err = tie.New([]*symbol.Symbol{nameSym}, s)
	assert.ErrorIs(t, err, tie.ErrNotPointer)

	var nilPtr *string
	_, err = tie.New([]*symbol.Symbol{nameSym}, nilPtr)
	assert.ErrorIs(t, err, tie.ErrNotPointer)

	_, err = tie.New([]*symbol.Symbol{nil}, &s)
	assert.ErrorIs(t, err, tie.ErrNilSymbol)

	assert.Panics(t, func() { tie.MustNew(nil, &s) })
}
