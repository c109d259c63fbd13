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
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// typeKind is the shape of a parsed type expression.
type typeKind uint8

const (
	typeName typeKind = iota
	typeArray
	typeNullable
	typePointer
	typeTuple
)

// typeExpr is a parsed C# type.
type typeExpr struct {
	kind typeKind

	// alias is the qualifier of an alias qualified name ("global" in global::System.Int32).
	alias string

	// parts of a (possibly qualified) name.
	parts []namePart

	// elem is the element type of arrays, nullables and pointers.
	elem *typeExpr

	// rank is the array rank specifier, e.g. "[,]".
	rank string

	// elems are the tuple element types.
	elems []*typeExpr
}

type namePart struct {
	ident string
	args  []*typeExpr
}

// modifierKeywords may precede a parameter type in some grammar versions.
var modifierKeywords = map[string]bool{
	"ref": true, "out": true, "in": true, "this": true, "params": true,
	"scoped": true, "readonly": true,
}

// parseType parses a written type. It returns false for syntax it doesn't understand.
func parseType(s string) (*typeExpr, bool) {
	toks, ok := tokenize(s)
	if !ok {
		return nil, false
	}

	for len(toks) > 1 && modifierKeywords[toks[0]] {
		toks = toks[1:]
	}

	p := typeParser{toks: toks}

	e, ok := p.parse()
	if !ok || p.pos != len(p.toks) {
		return nil, false
	}

	return e, true
}

// tokenize splits a type into identifiers and punctuation.
func tokenize(s string) ([]string, bool) {
	var toks []string

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '@' || r == '_' || unicode.IsLetter(r):
			start := i
			if r == '@' {
				start += size // verbatim identifier
			}

			i += size
			for i < len(s) {
				r, size = utf8.DecodeRuneInString(s[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}

				i += size
			}

			toks = append(toks, s[start:i])

		case r == ':' && strings.HasPrefix(s[i:], "::"):
			toks = append(toks, "::")
			i += 2

		case strings.ContainsRune(".<>,[]?*()", r):
			toks = append(toks, s[i:i+size])
			i += size

		default:
			return nil, false
		}
	}

	return toks, len(toks) > 0
}

type typeParser struct {
	toks []string
	pos  int
}

func (p *typeParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}

	return p.toks[p.pos]
}

func (p *typeParser) accept(tok string) bool {
	if p.peek() != tok {
		return false
	}

	p.pos++

	return true
}

func (p *typeParser) parse() (*typeExpr, bool) {
	var (
		e  *typeExpr
		ok bool
	)

	if p.accept("(") {
		e, ok = p.tuple()
	} else {
		e, ok = p.name()
	}

	if !ok {
		return nil, false
	}

	for {
		switch {
		case p.accept("?"):
			e = &typeExpr{kind: typeNullable, elem: e}

		case p.accept("*"):
			e = &typeExpr{kind: typePointer, elem: e}

		case p.accept("["):
			rank := "["
			for p.accept(",") {
				rank += ","
			}

			if !p.accept("]") {
				return nil, false
			}

			e = &typeExpr{kind: typeArray, elem: e, rank: rank + "]"}

		default:
			return e, true
		}
	}
}

// tuple parses the elements of a tuple type after the opening parenthesis.
func (p *typeParser) tuple() (*typeExpr, bool) {
	e := &typeExpr{kind: typeTuple}

	for {
		elem, ok := p.parse()
		if !ok {
			return nil, false
		}

		e.elems = append(e.elems, elem)

		if isIdent(p.peek()) {
			p.pos++ // element names are not part of the type identity
		}

		if p.accept(")") {
			return e, true
		}

		if !p.accept(",") {
			return nil, false
		}
	}
}

func (p *typeParser) name() (*typeExpr, bool) {
	e := &typeExpr{kind: typeName}

	for {
		ident := p.peek()
		if !isIdent(ident) {
			return nil, false
		}

		p.pos++

		if len(e.parts) == 0 && e.alias == "" && p.accept("::") {
			e.alias = ident

			continue
		}

		part := namePart{ident: ident}

		if p.accept("<") {
			for {
				arg, ok := p.parse()
				if !ok {
					return nil, false
				}

				part.args = append(part.args, arg)

				if p.accept(">") {
					break
				}

				if !p.accept(",") {
					return nil, false
				}
			}
		}

		e.parts = append(e.parts, part)

		if !p.accept(".") {
			return e, true
		}
	}
}

func isIdent(tok string) bool {
	if tok == "" {
		return false
	}

	r, _ := utf8.DecodeRuneInString(tok)

	return r == '_' || unicode.IsLetter(r)
}

// arityName appends the generic arity marker to a type name.
func arityName(name string, arity int) string {
	if arity == 0 {
		return name
	}

	return name + "`" + strconv.Itoa(arity)
}

// predefinedTypes maps System type names to C# keywords.
var predefinedTypes = map[string]string{
	"Boolean": "bool",
	"Byte":    "byte",
	"SByte":   "sbyte",
	"Char":    "char",
	"Decimal": "decimal",
	"Double":  "double",
	"Single":  "float",
	"Int16":   "short",
	"UInt16":  "ushort",
	"Int32":   "int",
	"UInt32":  "uint",
	"Int64":   "long",
	"UInt64":  "ulong",
	"IntPtr":  "nint",
	"UIntPtr": "nuint",
	"Object":  "object",
	"String":  "string",
	"Void":    "void",
}

// keywords are the predefined type keywords.
var keywords = func() map[string]bool {
	k := make(map[string]bool, len(predefinedTypes)+1)
	for _, kw := range predefinedTypes {
		k[kw] = true
	}

	k["dynamic"] = true

	return k
}()

// typeScope resolves written types to canonical names.
type typeScope struct {
	// known reports whether a fully qualified name (with arity markers) is declared in the compilation.
	known func(fullName string) bool

	// outers are the enclosing types, innermost first.
	outers []*TypeDecl

	// namespaces are the enclosing namespaces, innermost first.
	namespaces []string

	usings  []string
	aliases map[string]string

	// typeParams maps type parameter names to their identity.
	typeParams map[string]string
}

// canonical returns the canonical name of a written type.
// Unparsable types are compared by their text without white space.
func (s *typeScope) canonical(written string) string {
	e, ok := parseType(written)
	if !ok {
		return removeSpace(written)
	}

	return s.expr(e, true)
}

func (s *typeScope) expr(e *typeExpr, aliases bool) string {
	switch e.kind {
	case typeArray:
		return s.expr(e.elem, aliases) + e.rank

	case typeNullable:
		return s.expr(e.elem, aliases) + "?"

	case typePointer:
		return s.expr(e.elem, aliases) + "*"

	case typeTuple:
		elems := make([]string, len(e.elems))
		for i, elem := range e.elems {
			elems[i] = s.expr(elem, aliases)
		}

		return "(" + strings.Join(elems, ",") + ")"

	default:
		return s.name(e, aliases)
	}
}

func (s *typeScope) name(e *typeExpr, aliases bool) string {
	first := e.parts[0]
	simple := e.alias == "" && len(first.args) == 0

	if simple && len(e.parts) == 1 {
		if id, ok := s.typeParams[first.ident]; ok {
			return id
		}

		if keywords[first.ident] {
			return first.ident
		}
	}

	// Alias targets are always fully qualified, they can't refer to other aliases.
	if target, ok := s.aliases[first.ident]; ok && aliases && simple {
		if t, ok := parseType(target); ok {
			if len(e.parts) == 1 {
				return s.expr(t, false)
			}

			if t.kind == typeName {
				expanded := *t
				expanded.parts = append(append([]namePart(nil), t.parts...), e.parts[1:]...)

				return s.name(&expanded, false)
			}
		}
	}

	if kw, ok := s.predefined(e); ok {
		return kw
	}

	if s.isNullable(e) {
		return s.expr(e.parts[len(e.parts)-1].args[0], aliases) + "?"
	}

	written, args := s.qualified(e.parts, aliases)

	return s.resolve(e.alias, written) + args
}

// predefined maps System.Int32 and friends to their keyword.
func (s *typeScope) predefined(e *typeExpr) (string, bool) {
	last := e.parts[len(e.parts)-1]
	if len(last.args) != 0 {
		return "", false
	}

	kw, ok := predefinedTypes[last.ident]
	if !ok || e.alias != "" && e.alias != "global" {
		return "", false
	}

	switch len(e.parts) {
	case 1:
		if e.alias == "" && s.importsSystem() && !s.declares(last.ident) {
			return kw, true
		}

	case 2:
		if first := e.parts[0]; first.ident == "System" && len(first.args) == 0 {
			return kw, true
		}
	}

	return "", false
}

// isNullable reports whether e is Nullable<T> or System.Nullable<T>.
func (s *typeScope) isNullable(e *typeExpr) bool {
	last := e.parts[len(e.parts)-1]
	if last.ident != "Nullable" || len(last.args) != 1 || e.alias != "" && e.alias != "global" {
		return false
	}

	switch len(e.parts) {
	case 1:
		return e.alias == "" && s.importsSystem() && !s.declares("Nullable`1")

	case 2:
		return e.parts[0].ident == "System" && len(e.parts[0].args) == 0

	default:
		return false
	}
}

func (s *typeScope) importsSystem() bool {
	for _, u := range s.usings {
		if u == "System" {
			return true
		}
	}

	return false
}

// declares reports whether a simple name refers to a type declared in the compilation.
func (s *typeScope) declares(written string) bool {
	_, ok := s.lookup("", written)

	return ok
}

// qualified returns the written name with arity markers and the canonical type arguments.
func (s *typeScope) qualified(parts []namePart, aliases bool) (written, args string) {
	var (
		name    strings.Builder
		argList []string
	)

	for i, part := range parts {
		if i > 0 {
			name.WriteByte('.')
		}

		name.WriteString(arityName(part.ident, len(part.args)))

		for _, arg := range part.args {
			argList = append(argList, s.expr(arg, aliases))
		}
	}

	if len(argList) > 0 {
		args = "<" + strings.Join(argList, ",") + ">"
	}

	return name.String(), args
}

// resolve returns the fully qualified name of a written type name declared in the compilation,
// or the written name when the type is unknown.
func (s *typeScope) resolve(alias, written string) string {
	if full, ok := s.lookup(alias, written); ok {
		return full
	}

	if alias != "" && alias != "global" {
		return alias + "::" + written
	}

	return written
}

func (s *typeScope) lookup(alias, written string) (string, bool) {
	if s.known == nil {
		return "", false
	}

	if alias == "global" {
		return written, s.known(written)
	}

	if alias != "" {
		return "", false
	}

	for _, outer := range s.outers {
		if full := outer.FullName() + "." + written; s.known(full) {
			return full, true
		}
	}

	for _, ns := range s.namespaces {
		full := written
		if ns != "" {
			full = ns + "." + written
		}

		if s.known(full) {
			return full, true
		}
	}

	for _, u := range s.usings {
		if full := u + "." + written; s.known(full) {
			return full, true
		}
	}

	return "", false
}
