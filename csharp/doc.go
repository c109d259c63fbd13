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

// Package csharp is a syntax and symbol host for C# sources.
//
// # Parsing
//
// [Parse] reads a source file with the tree-sitter C# grammar and extracts
// the declarations relevant for overload analysis: namespaces, using
// directives, type declarations and method and indexer declarations.
// Every call uses its own tree-sitter parser, so files can be parsed
// concurrently.
//
// # Resolution
//
// A [Compilation] merges the types of all files, including partial types
// split over several files, and resolves every declaration to an
// [overload.Member]. Type identity is nominal and computed from syntax:
//
//   - predefined types and their System names are the same type
//     (int, System.Int32 and Int32 with "using System;")
//   - Nullable<T> and T? are the same type
//   - using aliases are expanded
//   - types declared in the compilation resolve to their fully qualified name
//   - type parameters are identified by their declaring type or method
//
// Types not declared in the compilation keep their written name.
//
// The [SemanticModel] of a compilation implements [overload.Resolver].
package csharp
