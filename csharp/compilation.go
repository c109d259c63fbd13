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
	"cmp"
	"go/token"
	"maps"
	"slices"
	"strconv"
	"strings"

	"fillmore-labs.com/overloadguard/overload"
)

// Compilation is a set of C# files analyzed together.
//
// A Compilation is immutable after [NewCompilation] returns and safe for concurrent use.
type Compilation struct {
	// Fset holds the positions of all files.
	Fset *token.FileSet

	// Files sorted by name.
	Files []*File

	// types maps fully qualified names to all (partial) declarations.
	types map[string][]*TypeDecl

	// members maps declarations to resolved members.
	members map[*Decl]*overload.Member

	// groups maps type declarations to the identity of the type they declare.
	groups map[*TypeDecl]overload.TypeID

	// declared holds the members of each type in declaration order.
	declared map[overload.TypeID][]*overload.Member

	globalUsings  []string
	globalAliases map[string]string
}

// NewCompilation resolves the declarations of files.
func NewCompilation(fset *token.FileSet, files []*File) *Compilation {
	files = slices.SortedFunc(slices.Values(files), func(a, b *File) int { return cmp.Compare(a.Name, b.Name) })

	c := &Compilation{
		Fset:          fset,
		Files:         files,
		types:         make(map[string][]*TypeDecl),
		members:       make(map[*Decl]*overload.Member),
		groups:        make(map[*TypeDecl]overload.TypeID),
		declared:      make(map[overload.TypeID][]*overload.Member),
		globalAliases: make(map[string]string),
	}

	for _, f := range files {
		c.globalUsings = append(c.globalUsings, f.globalUsings...)
		maps.Copy(c.globalAliases, f.globalAliases)

		for _, t := range f.Types {
			if t.Name == "" {
				continue
			}

			name := t.FullName()
			c.types[name] = append(c.types[name], t)
		}
	}

	for _, f := range files {
		for _, t := range f.Types {
			if t.Name != "" {
				c.groups[t] = overload.NewTypeID(c.groupName(t))
			}
		}
	}

	partials := make(map[string]struct{})

	for _, f := range files {
		for _, d := range f.Decls {
			m, ok := c.resolve(d)
			if !ok {
				continue
			}

			c.members[d] = m

			// Both parts of a partial method declare the same member.
			if d.Partial {
				key := signature(m)
				if _, ok := partials[key]; ok {
					continue
				}

				partials[key] = struct{}{}
			}

			c.declared[m.EnclosingType] = append(c.declared[m.EnclosingType], m)
		}
	}

	return c
}

// Types returns all declarations of the type with the given fully qualified name.
func (c *Compilation) Types(fullName string) []*TypeDecl {
	return c.types[fullName]
}

// Members returns the members declared by all types with the given fully qualified name,
// in declaration order.
func (c *Compilation) Members(fullName string) []*overload.Member {
	var (
		members []*overload.Member
		seen    = make(map[overload.TypeID]bool)
	)

	for _, t := range c.types[fullName] {
		id := c.groups[t]
		if seen[id] {
			continue
		}

		seen[id] = true
		members = append(members, c.declared[id]...)
	}

	return members
}

// groupName identifies the type declared by t. Partial declarations of a type merge,
// duplicate non-partial declarations stay distinct types.
func (c *Compilation) groupName(t *TypeDecl) string {
	name := arityName(t.Name, len(t.TypeParams))

	switch {
	case t.Outer != nil:
		name = c.groupName(t.Outer) + "." + name

	case t.Namespace != "":
		name = t.Namespace + "." + name
	}

	if !t.Partial && len(c.types[t.FullName()]) > 1 {
		name += "@" + t.file.Handle.Position(t.Pos).String()
	}

	return name
}

func (c *Compilation) known(fullName string) bool {
	_, ok := c.types[fullName]

	return ok
}

// resolve computes the member declared by d.
func (c *Compilation) resolve(d *Decl) (*overload.Member, bool) {
	if d.Invalid || d.Type == nil || d.Type.Name == "" {
		return nil, false
	}

	scope := c.scope(d)

	m := &overload.Member{
		Kind:          overload.Method,
		Name:          d.Name,
		Parameters:    make([]overload.Parameter, len(d.Params)),
		EnclosingType: c.groups[d.Type],
		Span:          overload.Span{Pos: d.Pos, End: d.End},
	}

	if d.Kind == IndexerDeclaration {
		m.Kind, m.Name = overload.Indexer, ""
	}

	for i, p := range d.Params {
		m.Parameters[i] = overload.Parameter{
			Name:     p.Name,
			Type:     overload.NewTypeID(scope.canonical(p.Type)),
			Optional: p.Optional(),
			Span:     overload.Span{Pos: p.Pos, End: p.End},
		}
	}

	return m, true
}

// scope returns the type resolution context of a declaration.
func (c *Compilation) scope(d *Decl) *typeScope {
	t := d.Type
	outers := t.outers()

	typeParams := make(map[string]string)

	for i := len(outers) - 1; i >= 0; i-- {
		o := outers[i]
		for _, name := range o.TypeParams {
			typeParams[name] = "!" + name + "@" + o.FullName()
		}
	}

	for i, name := range d.TypeParams {
		typeParams[name] = methodTypeParam(d, i, name)
	}

	aliases := maps.Clone(c.globalAliases)
	maps.Copy(aliases, t.aliases)

	return &typeScope{
		known:      c.known,
		outers:     outers,
		namespaces: t.namespaces(),
		usings:     appendUsings(t.usings, c.globalUsings...),
		aliases:    aliases,
		typeParams: typeParams,
	}
}

// methodTypeParam returns the identity of a method type parameter.
// Type parameters of distinct methods are distinct types, except for the parts of a partial method.
func methodTypeParam(d *Decl, ordinal int, name string) string {
	if d.Partial {
		return "!!" + strconv.Itoa(ordinal) + "@" + d.Type.FullName() + "." + arityName(d.Name, len(d.TypeParams))
	}

	return "!!" + name + "@" + d.file.Handle.Position(d.Pos).String()
}

// signature returns a key identifying a member by its enclosing type, name and parameter types.
func signature(m *overload.Member) string {
	var key strings.Builder

	key.WriteString(m.EnclosingType.String())
	key.WriteByte('.')
	key.WriteString(m.Kind.String())
	key.WriteByte(':')
	key.WriteString(m.Name)
	key.WriteByte('(')

	for i, p := range m.Parameters {
		if i > 0 {
			key.WriteByte(',')
		}

		key.WriteString(p.Type.String())
	}

	key.WriteByte(')')

	return key.String()
}

// SemanticModel answers symbol queries for the declarations of a [Compilation].
type SemanticModel struct {
	c *Compilation
}

var _ overload.Resolver[*Decl] = SemanticModel{}

// SemanticModel returns the semantic model of the compilation.
func (c *Compilation) SemanticModel() SemanticModel {
	return SemanticModel{c: c}
}

// ResolveDeclaredMember returns the member declared by d.
// It returns false for error-recovery nodes and declarations outside of types.
func (m SemanticModel) ResolveDeclaredMember(d *Decl) (*overload.Member, bool) {
	member, ok := m.c.members[d]

	return member, ok
}

// SiblingMembers returns all members of the enclosing type of member with the same shape:
// methods with the same name, or all indexers. The result includes member itself and
// is ordered by declaration.
func (m SemanticModel) SiblingMembers(member *overload.Member) []*overload.Member {
	var siblings []*overload.Member

	for _, s := range m.c.declared[member.EnclosingType] {
		if member.SameGroup(s) {
			siblings = append(siblings, s)
		}
	}

	return siblings
}
