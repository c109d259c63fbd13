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

package config

// Subject represents the declaration kinds checked for hidden optional parameters.
type Subject uint8

const (
	// Methods enables checks of method overloads.
	Methods Subject = 1 << iota

	// Indexers enables checks of indexer overloads.
	Indexers
)

// Subjects is the set of enabled [Subject]s.
type Subjects = BitMask[Subject]

// DefaultSubjects returns the subjects checked without configuration.
func DefaultSubjects() Subjects {
	return NewBitMask(Methods, Indexers)
}

// Config represents behavioral options for the analyzer.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota

	// SkipSyntaxErrors skips files the parser had to recover from errors in.
	SkipSyntaxErrors
)

// Behavior is the set of enabled [Config] options.
type Behavior = BitMask[Config]

// DefaultBehavior returns the behavior without configuration.
func DefaultBehavior() Behavior {
	return NewBitMask[Config]()
}
