// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package csharp

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"maps"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tscsharp "github.com/smacker/go-tree-sitter/csharp"
)

// ErrParse is returned when a source file can't be parsed at all.
// Files with syntax errors are parsed with error recovery and don't produce this error.
var ErrParse = errors.New("can't parse C# source")

// Parse parses a C# source file and registers it in fset.
func Parse(ctx context.Context, fset *token.FileSet, filename string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(tscsharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, filename, err)
	}
	defer tree.Close()

	handle := fset.AddFile(filename, -1, len(src))
	handle.SetLinesForContent(src)

	root := tree.RootNode()

	f := &File{
		Name:          filename,
		Handle:        handle,
		Generated:     IsGenerated(filename, src),
		HasErrors:     root.HasError(),
		globalAliases: make(map[string]string),
	}

	w := walker{file: f, src: src}
	w.walkChildren(root, scopeState{aliases: make(map[string]string)})

	return f, nil
}

// scopeState is the lexical context of a declaration.
type scopeState struct {
	ns      string
	outer   *TypeDecl
	usings  []string
	aliases map[string]string
	inError bool
}

// nested returns the state inside namespace name.
func (s scopeState) nested(name string) scopeState {
	if s.ns != "" {
		name = s.ns + "." + name
	}

	s.ns = name
	s.usings = appendUsings(s.usings)
	s.aliases = maps.Clone(s.aliases)

	return s
}

// walker extracts declarations from a syntax tree.
type walker struct {
	file *File
	src  []byte
}

func (w *walker) walkChildren(n *sitter.Node, s scopeState) {
	for i := range int(n.NamedChildCount()) {
		c := n.NamedChild(i)

		switch c.Type() {
		case nodeUsingDirective:
			s = w.using(c, s)

		case nodeFileScopedNamespace:
			// Following siblings belong to the namespace.
			s = s.nested(w.name(c))
			w.walkChildren(c, s)

		default:
			w.walk(c, s)
		}
	}
}

func (w *walker) walk(n *sitter.Node, s scopeState) {
	switch t := n.Type(); {
	case t == nodeNamespaceDeclaration:
		if body := fieldOrChild(n, fieldBody, nodeDeclarationList); body != nil {
			w.walkChildren(body, s.nested(w.name(n)))
		}

	case typeDeclarations[t]:
		w.typeDecl(n, s)

	case t == nodeMethodDeclaration:
		w.method(n, s)

	case t == nodeIndexerDeclaration:
		w.indexer(n, s)

	case t == nodeDeclarationList:
		w.walkChildren(n, s)

	case t == nodeError:
		s.inError = true
		w.walkChildren(n, s)
	}
}

// using records a using directive in the current scope.
func (w *walker) using(n *sitter.Node, s scopeState) scopeState {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(w.text(n)), ";"))

	global := false
	if rest, ok := cutKeyword(text, "global"); ok {
		global, text = true, rest
	}

	text, ok := cutKeyword(text, "using")
	if !ok {
		return s
	}

	if _, ok := cutKeyword(text, "static"); ok {
		return s // static imports don't bring types into scope
	}

	if rest, ok := cutKeyword(text, "unsafe"); ok {
		text = rest
	}

	if alias, target, ok := strings.Cut(text, "="); ok {
		alias, target = strings.TrimSpace(alias), collapseSpace(target)

		if global {
			w.file.globalAliases[alias] = target

			return s
		}

		s.aliases = maps.Clone(s.aliases)
		s.aliases[alias] = target

		return s
	}

	ns := strings.TrimPrefix(collapseSpace(text), "global::")
	if global {
		w.file.globalUsings = append(w.file.globalUsings, ns)

		return s
	}

	s.usings = appendUsings(s.usings, ns)

	return s
}

func (w *walker) typeDecl(n *sitter.Node, s scopeState) {
	t := &TypeDecl{
		Name:       w.name(n),
		TypeParams: w.typeParams(fieldOrChild(n, fieldTypeParameters, nodeTypeParameterList)),
		Namespace:  s.ns,
		Outer:      s.outer,
		Partial:    w.hasModifier(n, "partial"),
		file:       w.file,
		usings:     s.usings,
		aliases:    s.aliases,
	}
	t.Pos, t.End = w.span(n)

	if t.Name == "" {
		s.inError = true
	}

	w.file.Types = append(w.file.Types, t)

	if body := fieldOrChild(n, fieldBody, nodeDeclarationList); body != nil {
		s.outer = t
		w.walkChildren(body, s)
	}
}

func (w *walker) method(n *sitter.Node, s scopeState) {
	d := w.newDecl(n, MethodDeclaration, s)

	d.Name = w.name(n)
	if d.Name == "" {
		d.Invalid = true
	}

	if spec := childOfType(n, nodeExplicitInterfaceSpecifier); spec != nil {
		qualifier := strings.TrimSuffix(removeSpace(w.text(spec)), ".")
		d.Name = qualifier + "." + d.Name
	}

	d.TypeParams = w.typeParams(fieldOrChild(n, fieldTypeParameters, nodeTypeParameterList))
	d.Partial = w.hasModifier(n, "partial")

	w.params(d, fieldOrChild(n, fieldParameters, nodeParameterList))

	w.file.Decls = append(w.file.Decls, d)
}

func (w *walker) indexer(n *sitter.Node, s scopeState) {
	d := w.newDecl(n, IndexerDeclaration, s)

	w.params(d, fieldOrChild(n, fieldParameters, nodeBracketedParameterList))

	w.file.Decls = append(w.file.Decls, d)
}

func (w *walker) newDecl(n *sitter.Node, kind DeclKind, s scopeState) *Decl {
	d := &Decl{
		Kind:    kind,
		Type:    s.outer,
		Invalid: s.inError,
		file:    w.file,
	}
	d.Pos, d.End = w.span(n)

	return d
}

func (w *walker) params(d *Decl, list *sitter.Node) {
	if list == nil || list.IsMissing() || list.HasError() {
		d.Invalid = true

		return
	}

	// Newer grammars attach the type and name of a parameter array directly to the list.
	var array *ParamSyntax

	for i := range int(list.ChildCount()) {
		c := list.Child(i)

		switch t := c.Type(); t {
		case nodeParameter, nodeParameterArray:
			d.Params = append(d.Params, w.param(c))

		case nodeAttributeList, "params":
			if array == nil {
				array = w.startArray(c)
			}

			if t == nodeAttributeList && w.hasOptionalAttribute(c) {
				array.Default = true
			}

		case nodeComment, ",", "(", ")", "[", "]":

		default:
			field := list.FieldNameForChild(i)
			if !c.IsNamed() || array == nil && field == "" {
				continue
			}

			if array == nil {
				array = w.startArray(c)
			}

			if array.Type == "" && field != fieldName {
				array.Type = collapseSpace(w.text(c))

				continue
			}

			array.Name = w.text(c)
			_, array.End = w.span(c)
			d.Params = append(d.Params, *array)
			array = nil
		}
	}

	if array != nil {
		d.Invalid = true
	}
}

// startArray begins a parameter array at n.
func (w *walker) startArray(n *sitter.Node) *ParamSyntax {
	p := &ParamSyntax{Params: true}
	p.Pos, _ = w.span(n)

	return p
}

func (w *walker) param(n *sitter.Node) ParamSyntax {
	p := ParamSyntax{Params: n.Type() == nodeParameterArray}
	p.Pos, p.End = w.span(n)

	var parts []*sitter.Node // type and name candidates

	for i := range int(n.ChildCount()) {
		c := n.Child(i)

		switch c.Type() {
		case nodeEqualsValueClause, "=":
			p.Default = true

		case nodeAttributeList:
			if w.hasOptionalAttribute(c) {
				p.Default = true
			}

		case "params":
			p.Params = true

		case nodeModifier, nodeParameterModifier:
			if w.text(c) == "params" {
				p.Params = true
			}

		default:
			if c.IsNamed() {
				parts = append(parts, c)
			}
		}
	}

	// Older grammars don't label the type and name of parameter arrays.
	name, typ := n.ChildByFieldName(fieldName), n.ChildByFieldName(fieldType)
	if name == nil && len(parts) > 0 {
		name = parts[len(parts)-1]
	}

	if typ == nil && len(parts) > 1 {
		typ = parts[0]
	}

	p.Name, p.Type = w.text(name), collapseSpace(w.text(typ))

	// Newer grammars fold modifiers into the type node.
	for rest := p.Type; ; {
		keyword, more, ok := strings.Cut(rest, " ")
		if !ok || !modifierKeywords[keyword] {
			break
		}

		if keyword == "params" {
			p.Params = true
		}

		rest = more
	}

	return p
}

// hasOptionalAttribute reports whether an attribute list contains [Optional].
func (w *walker) hasOptionalAttribute(list *sitter.Node) bool {
	for i := range int(list.NamedChildCount()) {
		c := list.NamedChild(i)
		if c.Type() != nodeAttribute {
			continue
		}

		name := removeSpace(w.text(fieldOrChild(c, fieldName, nodeIdentifier)))
		if name == "" {
			name, _, _ = strings.Cut(removeSpace(w.text(c)), "(")
		}

		if i := strings.LastIndexAny(name, ".:"); i >= 0 {
			name = name[i+1:]
		}

		if name == "Optional" || name == "OptionalAttribute" {
			return true
		}
	}

	return false
}

func (w *walker) typeParams(list *sitter.Node) []string {
	if list == nil {
		return nil
	}

	var names []string

	for i := range int(list.NamedChildCount()) {
		c := list.NamedChild(i)
		if c.Type() != nodeTypeParameter {
			continue
		}

		if id := fieldOrChild(c, fieldName, nodeIdentifier); id != nil {
			names = append(names, w.text(id))
		}
	}

	return names
}

func (w *walker) hasModifier(n *sitter.Node, modifier string) bool {
	for i := range int(n.ChildCount()) {
		c := n.Child(i)

		switch c.Type() {
		case modifier:
			return true

		case nodeModifier:
			if w.text(c) == modifier {
				return true
			}
		}
	}

	return false
}

// name returns the declared name of a namespace, type or method.
func (w *walker) name(n *sitter.Node) string {
	id := n.ChildByFieldName(fieldName)
	if id == nil || id.IsMissing() {
		return ""
	}

	return removeSpace(w.text(id))
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Content(w.src)
}

func (w *walker) span(n *sitter.Node) (pos, end token.Pos) {
	h := w.file.Handle

	return h.Pos(int(n.StartByte())), h.Pos(int(n.EndByte()))
}

// cutKeyword removes a leading keyword followed by white space.
func cutKeyword(s, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(s, keyword)
	if !ok || rest == "" || !isSpace(rest[0]) {
		return s, false
	}

	return strings.TrimSpace(rest), true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// collapseSpace trims s and reduces every run of white space to a single blank.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// removeSpace removes all white space from s.
func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
