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

// Resolver maps declaration nodes of type N to resolved members.
type Resolver[N any] interface {
	// ResolveDeclaredMember returns the member declared by node.
	// It returns false when the node does not map to a resolvable member.
	ResolveDeclaredMember(node N) (*Member, bool)

	// SiblingMembers returns the overload group of member, including member itself.
	SiblingMembers(member *Member) []*Member
}

// Check resolves the member declared by node and detects its shadowed optional parameters.
//
// An unresolvable node yields no findings.
func Check[N any](r Resolver[N], node N) []Finding {
	member, ok := r.ResolveDeclaredMember(node)
	if !ok || !member.HasOptional() {
		return nil
	}

	return Detect(member, r.SiblingMembers(member))
}

// Detect returns a [Finding] for every optional parameter of member that is
// hidden by one of siblings.
//
// A sibling hides the optional parameter at position i when it has exactly i
// parameters and the types of these parameters are identical to the first i
// parameter types of member. Each hiding sibling produces its own finding, so
// the same span may be reported more than once.
//
// siblings may contain member itself, it never matches since i is always
// less than the parameter count of member.
func Detect(member *Member, siblings []*Member) []Finding {
	var findings []Finding

	for i, param := range member.Parameters {
		if !param.Optional {
			continue
		}

		for _, sibling := range siblings {
			if !prefixEqual(sibling.Parameters, member.Parameters[:i]) {
				continue
			}

			findings = append(findings, Finding{
				Span:      param.Span,
				Kind:      member.Kind,
				Parameter: i,
				Shadow:    sibling.Span,
			})
		}
	}

	return findings
}

// prefixEqual reports whether params has exactly the types of prefix.
func prefixEqual(params, prefix []Parameter) bool {
	if len(params) != len(prefix) {
		return false
	}

	for j := range prefix {
		if params[j].Type != prefix[j].Type {
			return false
		}
	}

	return true
}
