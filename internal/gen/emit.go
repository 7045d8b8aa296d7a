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
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"dirpx.dev/tix/attribute"
	"dirpx.dev/tix/internal/logging"
)

// ErrEmpty is returned when the configuration selects nothing to emit.
var ErrEmpty = errors.New("tix(gen): nothing to generate")

// Plan is the rendered form of a package: what gets registered, and the
// imports that needs.
type Plan struct {
	Package string
	Imports []Import
	Models  []ModelPlan
	Enums   []EnumPlan
}

// ModelPlan registers a model for Type.
type ModelPlan struct {
	Type    string
	Symbols []SymbolPlan
}

// SymbolPlan is one symbol of a model. Option is the symbol.Option
// expression binding it.
type SymbolPlan struct {
	Name   string
	Option string
}

// EnumPlan registers the value names of Type.
type EnumPlan struct {
	Type   string
	Values []EnumValue
}

// EnumValue maps a constant to its registered name.
type EnumValue struct {
	Const string
	Name  string
}

var qualifier = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\.`)

// NewPlan selects the declarations of pkg that cfg asks for.
func NewPlan(pkg *Package, cfg Config) (*Plan, error) {
	p := &Plan{Package: pkg.Name}
	used := map[string]bool{}
	if cfg.Models {
		for _, st := range pkg.Structs {
			if !cfg.Wants(st.Name) {
				continue
			}
			mp, err := modelPlan(st, cfg, used)
			if err != nil {
				return nil, err
			}
			if len(mp.Symbols) > 0 {
				p.Models = append(p.Models, mp)
			}
		}
	}
	if cfg.Enums {
		for _, e := range pkg.Enums {
			if cfg.Wants(e.Name) {
				p.Enums = append(p.Enums, enumPlan(e, cfg))
			}
		}
	}
	if len(p.Models) == 0 && len(p.Enums) == 0 {
		return nil, ErrEmpty
	}

	tix := map[string]bool{}
	if len(p.Models) > 0 {
		tix["model"], tix["symbol"], tix["member"] = true, true, true
	}
	if len(p.Enums) > 0 {
		tix["enum"] = true
	}
	for _, m := range p.Models {
		for _, s := range m.Symbols {
			if strings.Contains(s.Option, "attribute.") {
				tix["attribute"] = true
			}
		}
	}
	for name := range tix {
		p.Imports = append(p.Imports, Import{Name: name, Path: "dirpx.dev/tix/" + name})
	}
	for _, imp := range pkg.Imports {
		if used[imp.Name] && !tix[imp.Name] {
			p.Imports = append(p.Imports, imp)
		}
	}
	slices.SortFunc(p.Imports, func(a, b Import) int { return strings.Compare(a.Path, b.Path) })
	return p, nil
}

func modelPlan(st Struct, cfg Config, used map[string]bool) (ModelPlan, error) {
	mp := ModelPlan{Type: st.Name}
	for _, f := range st.Fields {
		tag, tagged := f.TixTag()
		if f.Embedded || tag == "-" || (!tagged && !Exported(f.Name)) {
			continue
		}
		name, attrs, err := attribute.ParseTag(tag)
		if err != nil {
			return ModelPlan{}, fmt.Errorf("%s.%s: %w", st.Name, f.Name, err)
		}
		if name == "" {
			name = f.Name
		}
		opt, err := fieldOption(st.Name, f, name, attrs)
		if err != nil {
			return ModelPlan{}, fmt.Errorf("%s.%s: %w", st.Name, f.Name, err)
		}
		for _, m := range qualifier.FindAllStringSubmatch(f.Type, -1) {
			used[m[1]] = true
		}
		mp.Symbols = append(mp.Symbols, SymbolPlan{Name: name, Option: opt})
	}
	if cfg.Methods {
		for _, m := range st.Methods {
			if !Exported(m.Name) {
				continue
			}
			recv := st.Name
			if m.Pointer {
				recv = "(*" + st.Name + ")"
			}
			mp.Symbols = append(mp.Symbols, SymbolPlan{
				Name:   m.Name,
				Option: fmt.Sprintf("symbol.WithMember(%s.%s)", recv, m.Name),
			})
		}
	}
	return mp, nil
}

func fieldOption(owner string, f Field, name string, attrs attribute.List) (string, error) {
	var args []string
	for a := range attrs.All() {
		if _, ok := a.(attribute.ReadOnly); ok {
			continue
		}
		expr, err := attrExpr(a)
		if err != nil {
			return "", err
		}
		args = append(args, expr)
	}
	tail := ""
	if len(args) > 0 {
		tail = ", " + strings.Join(args, ", ")
	}
	if attrs.IsReadOnly() {
		return fmt.Sprintf("symbol.WithTrait(member.ReadOnly(%q, func(o *%s) %s { return o.%s }%s))",
			name, owner, f.Type, f.Name, tail), nil
	}
	return fmt.Sprintf("symbol.WithTrait(member.Data(%q, func(o *%s) *%s { return &o.%s }%s))",
		name, owner, f.Type, f.Name, tail), nil
}

// attrExpr renders a parsed tag attribute as Go source.
func attrExpr(a any) (string, error) {
	switch v := a.(type) {
	case attribute.WriteOnly:
		return "attribute.WriteOnly{}", nil
	case attribute.Deprecated:
		return "attribute.Deprecated{}", nil
	case attribute.Internal:
		return "attribute.Internal{}", nil
	case attribute.Validated:
		return "attribute.Validated{}", nil
	case attribute.Version:
		return fmt.Sprintf("attribute.Since(%d, %d, %d)", v.Major, v.Minor, v.Patch), nil
	case attribute.NamedValue:
		return fmt.Sprintf("attribute.Named(%q, %q)", v.Name, v.Value), nil
	}
	return "", fmt.Errorf("tix(gen): cannot render attribute %T", a)
}

func enumPlan(e Enum, cfg Config) EnumPlan {
	ep := EnumPlan{Type: e.Name}
	for _, c := range e.Values {
		name := c
		if cfg.TrimEnumPrefix {
			if trimmed := strings.TrimPrefix(c, e.Name); trimmed != "" {
				name = trimmed
			}
		}
		ep.Values = append(ep.Values, EnumValue{Const: c, Name: name})
	}
	return ep
}

var tmpl = template.Must(template.New("tix").Parse(`// Code generated by tixgen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{with .Alias}}{{.}} {{end}}{{printf "%q" .Path}}
{{- end}}
)

func init() {
{{- range .Models}}
	model.MustRegister[{{.Type}}](model.New(
	{{- range .Symbols}}
		symbol.MustLocal({{printf "%q" .Name}}, {{.Option}}),
	{{- end}}
	))
{{- end}}
{{- range .Enums}}
	enum.MustRegister(map[{{.Type}}]string{
	{{- range .Values}}
		{{.Const}}: {{printf "%q" .Name}},
	{{- end}}
	})
{{- end}}
}
`))

// Render executes the template for p and gofmts the result.
func Render(p *Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("tix(gen): render: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("tix(gen): format: %w", err)
	}
	return out, nil
}

// Generate scans dir and writes the registration file cfg.Output into it.
// It returns the written path.
func Generate(ctx context.Context, dir string, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	pkg, err := ScanDir(ctx, dir, cfg.Output)
	if err != nil {
		return "", err
	}
	plan, err := NewPlan(pkg, cfg)
	if err != nil {
		return "", err
	}
	out, err := Render(plan)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, cfg.Output)
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return "", fmt.Errorf("tix(gen): write %s: %w", target, err)
	}
	logging.Named("gen").Info("generated",
		zap.String("file", target),
		zap.Int("models", len(plan.Models)),
		zap.Int("enums", len(plan.Enums)))
	return target, nil
}
