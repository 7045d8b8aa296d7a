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

package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allOn() Config {
	return Config{Output: DefaultOutput, Models: true, Methods: true, Enums: true}
}

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan(scanGeo(t), allOn())
	require.NoError(t, err)

	assert.Equal(t, "geo", plan.Package)
	require.Len(t, plan.Models, 2)

	point := plan.Models[0]
	assert.Equal(t, "Point", point.Type)
	var names []string
	for _, s := range point.Symbols {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"X", "Y", "name", "TTL", "Norm", "Move"}, names)
	assert.Equal(t,
		`symbol.WithTrait(member.ReadOnly("name", func(o *Point) string { return o.Name }, attribute.Since(1, 2, 0)))`,
		point.Symbols[2].Option)
	assert.Equal(t,
		`symbol.WithTrait(member.Data("X", func(o *Point) *int { return &o.X }))`,
		point.Symbols[0].Option)
	assert.Equal(t, "symbol.WithMember(Point.Norm)", point.Symbols[4].Option)
	assert.Equal(t, "symbol.WithMember((*Point).Move)", point.Symbols[5].Option)

	var paths []string
	for _, imp := range plan.Imports {
		paths = append(paths, imp.Path)
	}
	// yaml is only used by the skipped Raw field
	assert.Equal(t, []string{
		"dirpx.dev/tix/attribute",
		"dirpx.dev/tix/enum",
		"dirpx.dev/tix/member",
		"dirpx.dev/tix/model",
		"dirpx.dev/tix/symbol",
		"time",
	}, paths)

	require.Len(t, plan.Enums, 2)
	assert.Equal(t, EnumValue{Const: "StatusActive", Name: "StatusActive"}, plan.Enums[0].Values[1])
}

func TestNewPlanSelection(t *testing.T) {
	cfg := allOn()
	cfg.Methods = false
	cfg.TrimEnumPrefix = true
	cfg.Include = []string{"Status", "Point"}

	plan, err := NewPlan(scanGeo(t), cfg)
	require.NoError(t, err)
	require.Len(t, plan.Models, 1)
	assert.Len(t, plan.Models[0].Symbols, 4)
	require.Len(t, plan.Enums, 1)
	assert.Equal(t, []EnumValue{
		{Const: "StatusPending", Name: "Pending"},
		{Const: "StatusActive", Name: "Active"},
		{Const: "StatusDone", Name: "Done"},
	}, plan.Enums[0].Values)

	cfg.Include = []string{"Nothing"}
	_, err = NewPlan(scanGeo(t), cfg)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewPlanBadTag(t *testing.T) {
	src := "package p\n\ntype T struct {\n\tA int `tix:\"a,bogus\"`\n}\n"
	pkg, err := ScanSource(context.Background(), []byte(src))
	require.NoError(t, err)
	_, err = NewPlan(pkg, allOn())
	assert.ErrorContains(t, err, "T.A")
}

func TestRender(t *testing.T) {
	plan, err := NewPlan(scanGeo(t), allOn())
	require.NoError(t, err)
	out, err := Render(plan)
	require.NoError(t, err)

	src := string(out)
	assert.True(t, strings.HasPrefix(src, "// Code generated by tixgen. DO NOT EDIT.\n\npackage geo\n"))
	assert.Contains(t, src, "model.MustRegister[Point](model.New(\n")
	assert.Contains(t, src, `symbol.MustLocal("Move", symbol.WithMember((*Point).Move)),`)
	assert.Contains(t, src, "enum.MustRegister(map[Status]string{\n")
	assert.Contains(t, src, `StatusDone:    "StatusDone",`)
	assert.True(t, generated(out))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo.go"), []byte(geoSource), 0o644))

	target, err := Generate(context.Background(), dir, allOn())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultOutput), target)

	first, err := os.ReadFile(target)
	require.NoError(t, err)

	// the output is ignored on the next run, so regeneration is stable
	_, err = Generate(context.Background(), dir, allOn())
	require.NoError(t, err)
	second, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	_, err = Generate(context.Background(), dir, Config{})
	assert.Error(t, err)
}
