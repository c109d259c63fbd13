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

// Package analysistest provides utilities for testing analyzers.
//
// Test cases are [txtar] archives of C# files. Expected diagnostics are marked
// in the sources by enclosing the reported range in dollar signs:
//
//	class C {
//	    void M(int a) { }
//	    void M(int a, $int b = 0$) { }
//	}
//
// The markers are removed before parsing. Every marked range must be reported
// and every diagnostic must match a marked range. A range reported more than
// once needs an archive file named [GoldenFile], listing all expected
// diagnostics one per line as "file:line:col: message".
package analysistest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/txtar"

	"fillmore-labs.com/overloadguard/checker"
)

// Testing is an abstraction of a *testing.T.
type Testing interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// GoldenFile is the name of the archive file listing expected diagnostics.
const GoldenFile = "diagnostics.golden"

// marker delimits expected diagnostic ranges.
const marker = '$'

// TestData returns the absolute path of the "testdata" directory of the package under test.
var TestData = func() string {
	testdata, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}

	return testdata
}

// Run applies an analysis to the archives named by patterns in dir,
// e.g. "methods.txtar" or "*.txtar". It returns the checker results per archive.
func Run(t Testing, dir string, a *analysis.Analyzer, patterns ...string) []*checker.Result {
	t.Helper()

	var results []*checker.Result

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			t.Fatalf("Invalid pattern %q: %v", pattern, err)
		}

		if len(matches) == 0 {
			t.Fatalf("No archives match %q in %s", pattern, dir)
		}

		for _, archive := range matches {
			data, err := os.ReadFile(archive)
			if err != nil {
				t.Fatalf("Can't read archive: %v", err)
			}

			results = append(results, RunArchive(t, filepath.Base(archive), data, a))
		}
	}

	return results
}

// RunArchive applies an analysis to the C# files of a txtar archive and checks the diagnostics.
func RunArchive(t Testing, name string, data []byte, a *analysis.Analyzer) *checker.Result {
	t.Helper()

	ar := txtar.Parse(data)

	var (
		files  []checker.File
		want   []expectation
		golden []byte
		found  bool
	)

	for _, f := range ar.Files {
		if f.Name == GoldenFile {
			golden, found = f.Data, true

			continue
		}

		src, ranges, err := Extract(f.Data)
		if err != nil {
			t.Fatalf("%s: %s: %v", name, f.Name, err)
		}

		files = append(files, checker.File{Name: f.Name, Src: src})

		for _, r := range ranges {
			want = append(want, expectation{file: f.Name, Range: r})
		}
	}

	c := checker.Checker{Analyzers: []*analysis.Analyzer{a}}

	result, err := c.Check(context.Background(), files...)
	if err != nil {
		t.Fatalf("%s: check failed: %v", name, err)
	}

	checkRanges(t, name, result, want, found)

	if found {
		checkGolden(t, name, result, golden)
	}

	return result
}

// Range is a byte range in a source file.
type Range struct {
	Offset, End int
}

type expectation struct {
	file string
	Range
}

// Extract removes the markers from src and returns the marked ranges in the result.
// Two consecutive markers ("$$") denote a literal dollar sign.
func Extract(src []byte) ([]byte, []Range, error) {
	var (
		out    = make([]byte, 0, len(src))
		ranges []Range
		open   = -1
	)

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != marker {
			out = append(out, c)

			continue
		}

		if i+1 < len(src) && src[i+1] == marker {
			out = append(out, marker)
			i++

			continue
		}

		if open < 0 {
			open = len(out)

			continue
		}

		ranges = append(ranges, Range{Offset: open, End: len(out)})
		open = -1
	}

	if open >= 0 {
		return nil, nil, fmt.Errorf("unterminated marker at offset %d", open)
	}

	return out, ranges, nil
}

func checkRanges(t Testing, name string, result *checker.Result, want []expectation, golden bool) {
	t.Helper()

	reported := make([]int, len(want))

	for _, d := range result.Diagnostics {
		pos, end := result.Position(d.Pos), result.Position(d.End)
		got := expectation{file: pos.Filename, Range: Range{Offset: pos.Offset, End: end.Offset}}

		i := slices.Index(want, got)
		if i < 0 {
			t.Errorf("%s: %s: unexpected diagnostic: %s", name, pos, d.Message)

			continue
		}

		reported[i]++
	}

	for i, w := range want {
		switch n := reported[i]; {
		case n == 0:
			t.Errorf("%s: %s: expected diagnostic at [%d, %d) not reported", name, w.file, w.Offset, w.End)

		case n > 1 && !golden:
			t.Errorf("%s: %s: diagnostic at [%d, %d) reported %d times, list them in %s", name, w.file, w.Offset, w.End, n, GoldenFile)
		}
	}
}

func checkGolden(t Testing, name string, result *checker.Result, golden []byte) {
	t.Helper()

	var got bytes.Buffer
	for _, d := range result.Diagnostics {
		pos := result.Position(d.Pos)
		fmt.Fprintf(&got, "%s:%d:%d: %s\n", pos.Filename, pos.Line, pos.Column, d.Message)
	}

	if g, w := strings.TrimSpace(got.String()), strings.TrimSpace(string(golden)); g != w {
		t.Errorf("%s: diagnostics differ\ngot:\n%s\nwant:\n%s", name, g, w)
	}
}
