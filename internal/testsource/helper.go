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

// Package testsource provides utilities for parsing and resolving C# source code in tests.
//
// It is designed to simplify testing of the overloadguard analyzer by handling common
// boilerplate code for parsing C# fragments and building compilations.
package testsource

import (
	"context"
	"fmt"
	"go/token"
	"strings"
	"testing"

	"fillmore-labs.com/overloadguard/csharp"
)

// TestClass is the name of the class wrapping fragments passed to [Parse].
const TestClass = "C"

// Parse parses a C# member fragment into a file.
// The provided source `src` is automatically wrapped in a class declaration `class C { ... }`.
// This allows testing member-level code fragments without manually constructing the
// surrounding type scaffolding.
//
// Call [Compile] when resolved members are needed.
func Parse(tb testing.TB, src string) (*token.FileSet, *csharp.File) {
	tb.Helper()

	fset := token.NewFileSet()

	f, err := csharp.Parse(context.Background(), fset, "test.cs", wrapSource(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return fset, f
}

// Compile parses complete C# files, named "file0.cs", "file1.cs", ..., and resolves them.
func Compile(tb testing.TB, sources ...string) *csharp.Compilation {
	tb.Helper()

	fset := token.NewFileSet()
	files := make([]*csharp.File, 0, len(sources))

	for i, src := range sources {
		name := fmt.Sprintf("file%d.cs", i)

		f, err := csharp.Parse(context.Background(), fset, name, []byte(src))
		if err != nil {
			tb.Fatalf("Failed to parse %s: %v", name, err)
		}

		files = append(files, f)
	}

	return csharp.NewCompilation(fset, files)
}

// CompileMembers wraps a C# member fragment like [Parse] and resolves it.
func CompileMembers(tb testing.TB, src string) *csharp.Compilation {
	tb.Helper()

	return Compile(tb, string(wrapSource(src)))
}

// Decls returns all declarations named name in the compilation, in file and source order.
// Indexers have an empty name.
func Decls(comp *csharp.Compilation, name string) []*csharp.Decl {
	var decls []*csharp.Decl

	for _, f := range comp.Files {
		for _, d := range f.Decls {
			if d.Name == name {
				decls = append(decls, d)
			}
		}
	}

	return decls
}

// Text returns the source text of a range.
func Text(tb testing.TB, comp *csharp.Compilation, src string, pos, end token.Pos) string {
	tb.Helper()

	f := comp.Fset.File(pos)
	if f == nil {
		tb.Fatalf("Position %d not in file set", pos)
	}

	return src[f.Offset(pos):f.Offset(end)]
}

func wrapSource(src string) []byte {
	const (
		header     = "class " + TestClass + "\n{\n"
		suffix     = "\n}\n"
		wrapperLen = len(header) + len(suffix)
	)

	var srcFile strings.Builder
	srcFile.Grow(wrapperLen + len(src))

	srcFile.WriteString(header) // ignore error
	srcFile.WriteString(src)    // ignore error
	srcFile.WriteString(suffix) // ignore error

	return []byte(srcFile.String())
}

// Wrap returns src wrapped like [Parse] does.
func Wrap(src string) string {
	return string(wrapSource(src))
}
