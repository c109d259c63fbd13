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
	"go/token"
	"iter"
	"slices"
	"strings"
)

// DeclKind is the syntax kind of a member declaration.
type DeclKind uint8

const (
	// MethodDeclaration is a method declaration.
	MethodDeclaration DeclKind = 1 << iota

	// IndexerDeclaration is an indexer declaration.
	IndexerDeclaration
)

// String returns the tree-sitter node type of the kind.
func (k DeclKind) String() string {
	switch k {
	case MethodDeclaration:
		return nodeMethodDeclaration

	case IndexerDeclaration:
		return nodeIndexerDeclaration

	default:
		return "unknown_declaration"
	}
}

// File is a parsed C# source file.
type File struct {
	// Name is the file name as given to [Parse].
	Name string

	// Handle is the file in the [token.FileSet] used for parsing.
	Handle *token.File

	// Generated is true for generated code.
	Generated bool

	// HasErrors is true when the parser had to recover from syntax errors.
	HasErrors bool

	// Types are the type declarations in source order, nested types after their container.
	Types []*TypeDecl

	// Decls are the method and indexer declarations in source order.
	Decls []*Decl

	// globalUsings are "global using" namespace imports.
	globalUsings []string

	// globalAliases are "global using" aliases.
	globalAliases map[string]string
}

// Declarations yields the declarations of the given kinds.
func (f *File) Declarations(kinds DeclKind) iter.Seq[*Decl] {
	return func(yield func(*Decl) bool) {
		for _, d := range f.Decls {
			if d.Kind&kinds == 0 {
				continue
			}

			if !yield(d) {
				return
			}
		}
	}
}

// Span returns the source range of the whole file.
func (f *File) Span() (pos, end token.Pos) {
	base := f.Handle.Base()

	return token.Pos(base), token.Pos(base + f.Handle.Size())
}

// TypeDecl is a class, struct, interface or record declaration.
type TypeDecl struct {
	// Name is the simple name.
	Name string

	// TypeParams are the declared type parameter names.
	TypeParams []string

	// Namespace is the fully qualified enclosing namespace, empty for the global namespace.
	Namespace string

	// Outer is the containing type of a nested type.
	Outer *TypeDecl

	// Partial is true for partial declarations.
	Partial bool

	// Pos and End locate the declaration.
	Pos, End token.Pos

	file    *File
	usings  []string
	aliases map[string]string
}

// FullName returns the fully qualified name with generic arity markers, e.g. "N.Outer`1.Inner".
func (t *TypeDecl) FullName() string {
	var prefix string

	switch {
	case t.Outer != nil:
		prefix = t.Outer.FullName() + "."

	case t.Namespace != "":
		prefix = t.Namespace + "."
	}

	return prefix + arityName(t.Name, len(t.TypeParams))
}

// namespaces returns the enclosing namespaces, innermost first, ending with the global namespace.
func (t *TypeDecl) namespaces() []string {
	var nss []string

	for ns := t.Namespace; ns != ""; {
		nss = append(nss, ns)

		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			break
		}

		ns = ns[:i]
	}

	return append(nss, "")
}

// outers returns this type and all containing types, innermost first.
func (t *TypeDecl) outers() []*TypeDecl {
	var ts []*TypeDecl
	for o := t; o != nil; o = o.Outer {
		ts = append(ts, o)
	}

	return ts
}

// Decl is a method or indexer declaration node.
type Decl struct {
	// Kind is the syntax kind of the declaration.
	Kind DeclKind

	// Name is the member name, including an explicit interface qualifier. Empty for indexers.
	Name string

	// TypeParams are the declared method type parameter names.
	TypeParams []string

	// Params are the declared parameters.
	Params []ParamSyntax

	// Type is the enclosing type declaration, nil for declarations outside of types.
	Type *TypeDecl

	// Partial is true for partial methods.
	Partial bool

	// Invalid is true when the declaration is an error-recovery node.
	Invalid bool

	// Pos and End locate the declaration.
	Pos, End token.Pos

	file *File
}

// File returns the file containing the declaration.
func (d *Decl) File() *File {
	return d.file
}

// ParamSyntax is a declared parameter.
type ParamSyntax struct {
	// Name is the parameter name.
	Name string

	// Type is the written parameter type without modifiers.
	Type string

	// Default is true when the parameter has a default value or an [Optional] attribute.
	Default bool

	// Params is true for a params array.
	Params bool

	// Pos and End locate the parameter.
	Pos, End token.Pos
}

// Optional reports whether callers may omit the parameter.
func (p ParamSyntax) Optional() bool {
	return p.Default && !p.Params
}

func appendUsings(usings []string, more ...string) []string {
	return append(slices.Clip(usings), more...)
}
