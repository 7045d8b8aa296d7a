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

package names

import (
	"errors"
	"strconv"
	"strings"

	"dirpx.dev/tix/cts"
)

var (
	// ErrEmptyName is returned when extraction yields an empty name.
	ErrEmptyName = errors.New("tix(names): extracted name is empty")
	// ErrEmptyInput is returned when a parser helper receives an empty string.
	ErrEmptyInput = errors.New("tix(names): empty input")
	// ErrUnbalanced is returned when brackets or parentheses do not pair up.
	ErrUnbalanced = errors.New("tix(names): unbalanced brackets")
)

// keywords may prefix a raw name and are dropped when followed by an identifier.
var keywords = [...]string{"type", "struct", "class", "interface", "enum"}

// FilterPrefix removes prefix from s when present. It fails on an empty s.
func FilterPrefix(s, prefix string) (string, error) {
	if s == "" {
		return "", ErrEmptyInput
	}
	return strings.TrimPrefix(s, prefix), nil
}

// LeftPad drops leading spaces and tabs.
func LeftPad(s string) string {
	return strings.TrimLeft(s, " \t")
}

// FilterKeyword drops a leading declaration keyword ("struct Foo" -> "Foo").
// The keyword is kept when no identifier follows it, so "struct { X int }"
// is returned unchanged.
func FilterKeyword(s string) string {
	s = LeftPad(s)
	for _, kw := range keywords {
		rest, ok := strings.CutPrefix(s, kw)
		if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		rest = LeftPad(rest)
		if rest != "" && isIdentStart(rest[0]) {
			return rest
		}
	}
	return s
}

// FindIth returns the index of the i-th (zero based) occurrence of sub in s,
// or len(s) when there are fewer occurrences.
func FindIth(s, sub string, i int) int {
	c := cts.New(s)
	if sub == "" || i < 0 {
		return c.Size()
	}
	pos := 0
	for {
		at := c.SubstrFrom(pos).FindString(sub)
		if pos+at >= c.Size() {
			return c.Size()
		}
		if i == 0 {
			return pos + at
		}
		i--
		pos += at + len(sub)
	}
}

// FilterEnumValue returns the content of the first complete parenthesised
// group of s ("Status(7)" -> "7"). Nested groups are kept whole. When s has
// no group it is returned unchanged.
func FilterEnumValue(s string) (string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil
	}
	end, err := matching(s, open)
	if err != nil {
		return "", err
	}
	return s[open+1 : end], nil
}

// Shorten reduces every import path in s to its package name:
// "map[string]dirpx.dev/tix/geo.Point" -> "map[string]geo.Point",
// "gopkg.in/yaml.v3.Node" -> "yaml.Node". Package names are guessed with
// PackageName.
func Shorten(s string) string {
	return ShortenWith(s, nil)
}

// ShortenWith is like Shorten but takes package names from pkgs, keyed by
// import path, before guessing.
func ShortenWith(s string, pkgs map[string]string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := -1
	flush := func(end int) {
		tok := s[start:end]
		dots := len(tok) - len(strings.TrimLeft(tok, "."))
		b.WriteString(tok[:dots])
		b.WriteString(shortenToken(tok[dots:], pkgs))
		start = -1
	}
	for i := 0; i < len(s); i++ {
		if isPathByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
		b.WriteByte(s[i])
	}
	if start >= 0 {
		flush(len(s))
	}
	return b.String()
}

// shortenToken rewrites one "path.Name" token. Tokens without a slash are
// already short.
func shortenToken(tok string, pkgs map[string]string) string {
	slash := strings.LastIndexByte(tok, '/')
	if slash < 0 {
		return tok
	}
	sel := strings.LastIndexByte(tok, '.')
	if sel < slash {
		return packageName(tok, pkgs)
	}
	return packageName(tok[:sel], pkgs) + tok[sel:]
}

func packageName(path string, pkgs map[string]string) string {
	if name, ok := pkgs[path]; ok {
		return name
	}
	return PackageName(path)
}

// PackageName guesses the package name declared at an import path: the last
// element without a major version ("gopkg.in/yaml.v3", "example.com/foo/v2")
// or "go-" prefix, dashes removed.
func PackageName(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajor(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 && isMajor(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "")
}

func isMajor(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// StripTypeArgs removes generic instantiation arguments from s:
// "geo.Box[geo.Point]" -> "geo.Box", "[]geo.Box[int]" -> "[]geo.Box".
// Slice, array and map brackets are kept.
func StripTypeArgs(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '[' && isTypeArgOpen(s, i) {
			end, err := matching(s, i)
			if err != nil {
				return s
			}
			i = end
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// TypeArgs splits the top-level instantiation arguments of a generic name:
// "Pair[int,geo.Box[string]]" -> ["int", "geo.Box[string]"]. Non-generic names
// yield nil.
func TypeArgs(s string) ([]string, error) {
	open := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '[' && isTypeArgOpen(s, i) {
			open = i
			break
		}
	}
	if open < 0 {
		return nil, nil
	}
	end, err := matching(s, open)
	if err != nil {
		return nil, err
	}
	var out []string
	depth, from := 0, open+1
	for i := open + 1; i < end; i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[from:i]))
				from = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[from:end])), nil
}

// Base returns the part of a qualified type name after the package selector:
// "geo.Box[geo.Point]" -> "Box[geo.Point]". Names without a selector at
// depth zero are returned unchanged.
func Base(s string) string {
	if i := selector(s); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Package returns the package selector of a qualified type name, or "".
func Package(s string) string {
	if i := selector(s); i >= 0 {
		return s[:i]
	}
	return ""
}

// Qualify rewrites the package selector of a type name into the "::"
// separator: "geo.Point" -> "geo::Point".
func Qualify(s string) string {
	if i := selector(s); i >= 0 {
		return s[:i] + "::" + s[i+1:]
	}
	return s
}

// selector returns the index of the package dot in a named type, or -1 for
// composite or builtin names.
func selector(s string) int {
	if s == "" || !isIdentStart(s[0]) {
		return -1
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			return i
		case c == '[' || c == '(' || c == ' ' || c == '{':
			return -1
		}
	}
	return -1
}

// matching returns the index of the bracket closing the one at open.
func matching(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth == 0 {
				return i, nil
			}
			if depth < 0 {
				return 0, ErrUnbalanced
			}
		}
	}
	return 0, ErrUnbalanced
}

// isTypeArgOpen reports whether the '[' at i opens an instantiation list,
// i.e. it directly follows a type identifier other than "map".
func isTypeArgOpen(s string, i int) bool {
	if i == 0 || !isIdentByte(s[i-1]) {
		return false
	}
	j := i
	for j > 0 && (isIdentByte(s[j-1]) || s[j-1] == '.') {
		j--
	}
	return s[j:i] != "map"
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func isPathByte(c byte) bool {
	return isIdentByte(c) || c == '.' || c == '/' || c == '-' || c == '~'
}
