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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"go.uber.org/zap"

	"dirpx.dev/tix/internal/logging"
	"dirpx.dev/tix/names"
)

var (
	// ErrNoPackage is returned for sources without a package clause.
	ErrNoPackage = errors.New("tix(gen): no package clause")
	// ErrMixedPackages is returned when a directory holds several packages.
	ErrMixedPackages = errors.New("tix(gen): mixed packages")
)

// Package is the scanned declaration surface of one Go package.
type Package struct {
	Name    string
	Imports []Import
	Structs []Struct
	Enums   []Enum
}

// Import is one import spec. Name is the alias or, when absent, the last
// path element.
type Import struct {
	Name string
	Path string
}

// Alias returns Name when it differs from the last path element.
func (i Import) Alias() string {
	if i.Name == importName(i.Path) {
		return ""
	}
	return i.Name
}

// Struct is a non-generic struct type with its fields and methods.
type Struct struct {
	Name    string
	Fields  []Field
	Methods []Method
}

// Field is a struct field. Embedded fields carry the type as Name.
type Field struct {
	Name     string
	Type     string
	Tag      string
	Embedded bool
}

// Method is a method declared on a struct.
type Method struct {
	Name    string
	Pointer bool
}

// Enum is a named integer type with its typed constants in declaration
// order.
type Enum struct {
	Name       string
	Underlying string
	Values     []string
}

const query = `
	(package_clause (package_identifier) @package)
	(import_spec) @import
	(type_spec) @type
	(method_declaration) @method
	(const_declaration) @const
`

// integers are the underlying types an Enum may have.
var integers = []string{
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "byte", "rune",
}

// scan collects declarations from one file into a scratch state.
type scan struct {
	pkg     string
	imports []Import
	structs map[string]*Struct
	order   []string
	methods map[string][]Method
	named   map[string]string // type name -> underlying type text
	consts  []typedConst
}

type typedConst struct {
	typ, name, value string
}

func newScan() *scan {
	return &scan{
		structs: map[string]*Struct{},
		methods: map[string][]Method{},
		named:   map[string]string{},
	}
}

// ScanSource scans a single Go source file.
func ScanSource(ctx context.Context, src []byte) (*Package, error) {
	s := newScan()
	if err := s.file(ctx, src); err != nil {
		return nil, err
	}
	return s.result(), nil
}

// ScanDir scans the non-test Go files of dir. Files named skip and files
// carrying a "Code generated" header are ignored.
func ScanDir(ctx context.Context, dir, skip string) (*Package, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("tix(gen): list %s: %w", dir, err)
	}
	slices.Sort(paths)
	log := logging.Named("gen")
	s := newScan()
	for _, p := range paths {
		base := filepath.Base(p)
		if strings.HasSuffix(base, "_test.go") || base == skip {
			continue
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("tix(gen): read %s: %w", p, err)
		}
		if generated(src) {
			log.Debug("skipping generated file", zap.String("file", p))
			continue
		}
		if err := s.file(ctx, src); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		log.Debug("scanned", zap.String("file", p))
	}
	if s.pkg == "" {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, dir)
	}
	return s.result(), nil
}

func generated(src []byte) bool {
	for line := range strings.Lines(string(src)) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "package ") {
			return false
		}
		if strings.HasPrefix(line, "// Code generated ") && strings.HasSuffix(line, " DO NOT EDIT.") {
			return true
		}
	}
	return false
}

func (s *scan) file(ctx context.Context, src []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("tix(gen): parse: %w", err)
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(query), golang.GetLanguage())
	if err != nil {
		return fmt.Errorf("tix(gen): query: %w", err)
	}
	defer q.Close()
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var pkg string
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			n := c.Node
			switch q.CaptureNameForId(c.Index) {
			case "package":
				pkg = n.Content(src)
			case "import":
				s.importSpec(n, src)
			case "type":
				if topLevel(n.Parent()) {
					s.typeSpec(n, src)
				}
			case "method":
				s.method(n, src)
			case "const":
				if topLevel(n) {
					s.constDecl(n, src)
				}
			}
		}
	}
	switch {
	case pkg == "":
		return ErrNoPackage
	case s.pkg == "":
		s.pkg = pkg
	case s.pkg != pkg:
		return fmt.Errorf("%w: %s and %s", ErrMixedPackages, s.pkg, pkg)
	}
	return nil
}

// importName guesses the package name of an unaliased import.
func importName(path string) string {
	return names.PackageName(path)
}

// topLevel reports a declaration directly under the source file.
func topLevel(decl *sitter.Node) bool {
	return decl != nil && decl.Parent() != nil && decl.Parent().Type() == "source_file"
}

func (s *scan) importSpec(n *sitter.Node, src []byte) {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return
	}
	path, err := strconv.Unquote(pathNode.Content(src))
	if err != nil {
		return
	}
	name := importName(path)
	if alias := n.ChildByFieldName("name"); alias != nil {
		name = alias.Content(src)
	}
	if name == "_" || name == "." {
		return
	}
	if !slices.Contains(s.imports, Import{Name: name, Path: path}) {
		s.imports = append(s.imports, Import{Name: name, Path: path})
	}
}

func (s *scan) typeSpec(n *sitter.Node, src []byte) {
	nameNode := n.ChildByFieldName("name")
	typeNode := n.ChildByFieldName("type")
	if nameNode == nil || typeNode == nil || n.ChildByFieldName("type_parameters") != nil {
		return
	}
	name := nameNode.Content(src)
	if typeNode.Type() != "struct_type" {
		s.named[name] = typeNode.Content(src)
		return
	}
	st := &Struct{Name: name}
	for i := 0; i < int(typeNode.NamedChildCount()); i++ {
		list := typeNode.NamedChild(i)
		if list.Type() != "field_declaration_list" {
			continue
		}
		for j := 0; j < int(list.NamedChildCount()); j++ {
			if decl := list.NamedChild(j); decl.Type() == "field_declaration" {
				st.Fields = append(st.Fields, fields(decl, src)...)
			}
		}
	}
	if _, seen := s.structs[name]; !seen {
		s.order = append(s.order, name)
	}
	s.structs[name] = st
}

func fields(decl *sitter.Node, src []byte) []Field {
	var typ, tag string
	t := decl.ChildByFieldName("type")
	if t != nil {
		typ = t.Content(src)
	}
	if tn := decl.ChildByFieldName("tag"); tn != nil {
		if raw, err := strconv.Unquote(tn.Content(src)); err == nil {
			tag = raw
		}
	}
	var out []Field
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if c := decl.NamedChild(i); c.Type() == "field_identifier" {
			out = append(out, Field{Name: c.Content(src), Type: typ, Tag: tag})
		}
	}
	if len(out) == 0 && t != nil {
		name, _, _ := strings.Cut(typ, "[")
		name = name[strings.LastIndex(name, ".")+1:]
		// the embedded pointer star is a separate token
		full := strings.TrimSpace(string(src[decl.StartByte():t.EndByte()]))
		out = append(out, Field{Name: name, Type: full, Tag: tag, Embedded: true})
	}
	return out
}

func (s *scan) method(n *sitter.Node, src []byte) {
	nameNode := n.ChildByFieldName("name")
	recv := n.ChildByFieldName("receiver")
	if nameNode == nil || recv == nil || recv.NamedChildCount() == 0 {
		return
	}
	typ := recv.NamedChild(0).ChildByFieldName("type")
	if typ == nil {
		return
	}
	ptr := typ.Type() == "pointer_type"
	if ptr {
		typ = typ.NamedChild(0)
	}
	if typ == nil || typ.Type() != "type_identifier" {
		return
	}
	owner := typ.Content(src)
	s.methods[owner] = append(s.methods[owner], Method{Name: nameNode.Content(src), Pointer: ptr})
}

// constDecl records typed constants. In a block, a spec without type and
// value repeats the previous spec's type; a spec with a value but no type
// is untyped.
func (s *scan) constDecl(n *sitter.Node, src []byte) {
	var current string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "const_spec" {
			continue
		}
		typeNode := spec.ChildByFieldName("type")
		valueNode := spec.ChildByFieldName("value")
		switch {
		case typeNode != nil:
			current = typeNode.Content(src)
		case valueNode != nil:
			current = ""
		}
		if current == "" {
			continue
		}
		var value string
		if valueNode != nil {
			value = valueNode.Content(src)
		}
		for j := 0; j < int(spec.NamedChildCount()); j++ {
			if c := spec.NamedChild(j); c.Type() == "identifier" && c.Content(src) != "_" {
				s.consts = append(s.consts, typedConst{typ: current, name: c.Content(src), value: value})
			}
		}
	}
}

func (s *scan) result() *Package {
	out := &Package{Name: s.pkg, Imports: s.imports}
	for _, name := range s.order {
		st := s.structs[name]
		st.Methods = s.methods[name]
		out.Structs = append(out.Structs, *st)
	}
	enums := map[string]*Enum{}
	var order []string
	for _, c := range s.consts {
		under, ok := s.named[c.typ]
		if !ok || !slices.Contains(integers, under) {
			continue
		}
		e, ok := enums[c.typ]
		if !ok {
			e = &Enum{Name: c.typ, Underlying: under}
			enums[c.typ] = e
			order = append(order, c.typ)
		}
		// aliases of an earlier constant would duplicate a map key
		if c.value != "" && slices.Contains(e.Values, c.value) {
			logging.Named("gen").Debug("skipping enum alias",
				zap.String("enum", c.typ), zap.String("const", c.name))
			continue
		}
		e.Values = append(e.Values, c.name)
	}
	for _, name := range order {
		out.Enums = append(out.Enums, *enums[name])
	}
	return out
}

// Exported reports whether a Go identifier is exported.
func Exported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// TixTag returns the tix struct tag of f.
func (f Field) TixTag() (string, bool) {
	return reflect.StructTag(f.Tag).Lookup("tix")
}
