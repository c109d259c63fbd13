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

package overload_test

import (
	"go/token"
	"slices"
	"testing"

	. "fillmore-labs.com/overloadguard/overload"
)

var (
	typeA = NewTypeID("A")
	typeB = NewTypeID("B")
	typeC = NewTypeID("C")
	owner = NewTypeID("N.Owner")
)

// builder hands out distinct spans so findings can be told apart.
type builder struct{ next token.Pos }

func (b *builder) span() Span {
	b.next += 10
	return Span{Pos: b.next, End: b.next + 5}
}

func (b *builder) param(t TypeID, optional bool) Parameter {
	return Parameter{Type: t, Optional: optional, Span: b.span()}
}

func (b *builder) member(kind Kind, name string, params ...Parameter) *Member {
	return &Member{Name: name, Kind: kind, Parameters: params, EnclosingType: owner, Span: b.span()}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(b *builder) (member *Member, siblings []*Member, want []Finding)
	}{
		{
			name: "no optional parameters",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, false))
				s := b.member(Method, "M", b.param(typeA, false))

				return m, []*Member{m, s}, nil
			},
		},
		{
			name: "exact prefix",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true))
				s := b.member(Method, "M", b.param(typeA, false))

				return m, []*Member{m, s}, []Finding{{Span: m.Parameters[1].Span, Kind: Method, Parameter: 1, Shadow: s.Span}}
			},
		},
		{
			name: "type mismatch",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true))
				s := b.member(Method, "M", b.param(typeC, false))

				return m, []*Member{m, s}, nil
			},
		},
		{
			name: "arity mismatch",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true))
				s := b.member(Method, "M", b.param(typeA, false), b.param(typeC, false))

				return m, []*Member{m, s}, nil
			},
		},
		{
			name: "multiple siblings",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true))
				s1 := b.member(Method, "M", b.param(typeA, false))
				s2 := b.member(Method, "M", b.param(typeA, true))

				return m, []*Member{s1, m, s2}, []Finding{
					{Span: m.Parameters[1].Span, Kind: Method, Parameter: 1, Shadow: s1.Span},
					{Span: m.Parameters[1].Span, Kind: Method, Parameter: 1, Shadow: s2.Span},
				}
			},
		},
		{
			name: "indexer",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Indexer, "", b.param(typeA, false), b.param(typeB, true))
				s := b.member(Indexer, "", b.param(typeA, false))

				return m, []*Member{m, s}, []Finding{{Span: m.Parameters[1].Span, Kind: Indexer, Parameter: 1, Shadow: s.Span}}
			},
		},
		{
			name: "parameterless sibling",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, true))
				s := b.member(Method, "M")

				return m, []*Member{m, s}, []Finding{{Span: m.Parameters[0].Span, Kind: Method, Parameter: 0, Shadow: s.Span}}
			},
		},
		{
			name: "every optional position",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true), b.param(typeC, true))
				s1 := b.member(Method, "M", b.param(typeA, false))
				s2 := b.member(Method, "M", b.param(typeA, false), b.param(typeB, false))

				return m, []*Member{m, s2, s1}, []Finding{
					{Span: m.Parameters[1].Span, Kind: Method, Parameter: 1, Shadow: s1.Span},
					{Span: m.Parameters[2].Span, Kind: Method, Parameter: 2, Shadow: s2.Span},
				}
			},
		},
		{
			name: "non-trailing optional",
			setup: func(b *builder) (*Member, []*Member, []Finding) {
				m := b.member(Method, "M", b.param(typeA, true), b.param(typeB, false))
				s := b.member(Method, "M")

				return m, []*Member{m, s}, []Finding{{Span: m.Parameters[0].Span, Kind: Method, Parameter: 0, Shadow: s.Span}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			member, siblings, want := tt.setup(&builder{})

			got := Detect(member, siblings)

			if !slices.Equal(got, want) {
				t.Errorf("Got findings %v, want %v", got, want)
			}
		})
	}
}

func TestDetectIdempotent(t *testing.T) {
	t.Parallel()

	b := &builder{}
	m := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true))
	siblings := []*Member{m, b.member(Method, "M", b.param(typeA, false)), b.member(Method, "M", b.param(typeA, false))}

	first := Detect(m, siblings)
	for range 5 {
		if got := Detect(m, siblings); !slices.Equal(got, first) {
			t.Fatalf("Got findings %v, want %v", got, first)
		}
	}

	if got, want := len(first), 2; got != want {
		t.Errorf("Got %d findings, want %d", got, want)
	}
}

func TestDetectSelfOnly(t *testing.T) {
	t.Parallel()

	b := &builder{}
	m := b.member(Method, "M", b.param(typeA, true), b.param(typeB, true))

	if got := Detect(m, []*Member{m}); len(got) != 0 {
		t.Errorf("Got findings %v for a member without siblings", got)
	}
}

// fakeResolver resolves node names to members.
type fakeResolver struct {
	members map[string]*Member
	all     []*Member
}

func (r fakeResolver) ResolveDeclaredMember(node string) (*Member, bool) {
	m, ok := r.members[node]

	return m, ok
}

func (r fakeResolver) SiblingMembers(member *Member) []*Member {
	var siblings []*Member

	for _, s := range r.all {
		if member.SameGroup(s) {
			siblings = append(siblings, s)
		}
	}

	return siblings
}

func TestCheck(t *testing.T) {
	t.Parallel()

	b := &builder{}
	withDefault := b.member(Method, "M", b.param(typeA, false), b.param(typeB, true))
	short := b.member(Method, "M", b.param(typeA, false))
	other := b.member(Method, "N", b.param(typeA, false))
	indexer := b.member(Indexer, "", b.param(typeA, false))

	r := fakeResolver{
		members: map[string]*Member{"withDefault": withDefault, "short": short},
		all:     []*Member{withDefault, short, other, indexer},
	}

	tests := []struct {
		name string
		node string
		want int
	}{
		{"unresolved", "missing", 0},
		{"no optional", "short", 0},
		{"shadowed", "withDefault", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Check[string](r, tt.node); len(got) != tt.want {
				t.Errorf("Got %d findings, want %d", len(got), tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{Method, "Method"},
		{Indexer, "Indexer"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Got %q, want %q", got, tt.want)
		}
	}
}

func TestTypeIDIdentity(t *testing.T) {
	t.Parallel()

	if NewTypeID("int") != NewTypeID("int") {
		t.Error("Got distinct identities for the same name")
	}

	if NewTypeID("int") == NewTypeID("long") {
		t.Error("Got equal identities for different names")
	}

	var zero TypeID
	if got, want := zero.String(), "<invalid>"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}
