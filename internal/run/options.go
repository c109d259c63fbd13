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

package run

import (
	"fillmore-labs.com/overloadguard/csharp"
	"fillmore-labs.com/overloadguard/internal/config"
)

// Options represent configuration options for the overloadguard analyzer.
type Options struct {
	// Subjects represent the declaration kinds to be checked.
	Subjects config.Subjects

	// Behavior holds behavioral options.
	Behavior config.Behavior
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Subjects: config.DefaultSubjects(),
		Behavior: config.DefaultBehavior(),
	}
}

// kinds returns the declaration kinds of the enabled subjects.
func (r *Options) kinds() csharp.DeclKind {
	var kinds csharp.DeclKind

	if r.Subjects.Enabled(config.Methods) {
		kinds |= csharp.MethodDeclaration
	}

	if r.Subjects.Enabled(config.Indexers) {
		kinds |= csharp.IndexerDeclaration
	}

	return kinds
}
