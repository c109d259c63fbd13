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

package overload

import (
	"go/token"
	"unique"
)

// Kind is the declaration shape of a [Member].
type Kind uint8

const (
	// Method is a named method; its overload group is all methods with the same name.
	Method Kind = iota

	// Indexer is an indexer; its overload group is all indexers of the enclosing type.
	Indexer
)

// String returns the name used in diagnostic messages.
func (k Kind) String() string {
	switch k {
	case Method:
		return "Method"

	case Indexer:
		return "Indexer"

	default:
		return "Member"
	}
}

// TypeID is a nominal type identity.
//
// Identities are interned, two TypeIDs are equal exactly when they were created
// from the same canonical name.
type TypeID struct {
	h unique.Handle[string]
}

// NewTypeID returns the [TypeID] for a canonical type name.
func NewTypeID(name string) TypeID {
	return TypeID{unique.Make(name)}
}

// String returns the canonical name of the type.
func (t TypeID) String() string {
	var null unique.Handle[string]
	if t.h == null {
		return "<invalid>"
	}

	return t.h.Value()
}

// Span is a source range in a [token.FileSet].
type Span struct {
	Pos, End token.Pos
}

// Valid reports whether the span refers to a source position.
func (s Span) Valid() bool {
	return s.Pos.IsValid()
}

// Parameter is a resolved parameter of a [Member].
// Its position is the index in [Member.Parameters].
type Parameter struct {
	// Name is the declared parameter name, for messages only.
	Name string

	// Type is the nominal type of the parameter.
	Type TypeID

	// Optional is true when the parameter may be omitted by callers.
	Optional bool

	// Span locates the parameter declaration.
	Span Span
}

// Member is a resolved method or indexer.
//
// Members are created by a [Resolver] and never mutated afterwards.
type Member struct {
	// Name is the member name, empty for indexers.
	Name string

	// Kind selects the overload group shape.
	Kind Kind

	// Parameters in declaration order.
	Parameters []Parameter

	// EnclosingType is the identity of the declaring type.
	EnclosingType TypeID

	// Span locates the member declaration.
	Span Span
}

// HasOptional reports whether the member has at least one optional parameter.
func (m *Member) HasOptional() bool {
	for _, p := range m.Parameters {
		if p.Optional {
			return true
		}
	}

	return false
}

// SameGroup reports whether o belongs to the overload group of m.
func (m *Member) SameGroup(o *Member) bool {
	if m.Kind != o.Kind || m.EnclosingType != o.EnclosingType {
		return false
	}

	return m.Kind == Indexer || m.Name == o.Name
}

// Finding is a shadowed optional parameter.
type Finding struct {
	// Span locates the shadowed optional parameter.
	Span Span

	// Kind is the shape of the member declaring the parameter.
	Kind Kind

	// Parameter is the position of the shadowed parameter.
	Parameter int

	// Shadow locates the declaration of the overload hiding the parameter.
	Shadow Span
}
