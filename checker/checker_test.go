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

package checker_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/analyzer"
	. "fillmore-labs.com/overloadguard/checker"
	"fillmore-labs.com/overloadguard/csharp"
	"fillmore-labs.com/overloadguard/passes/compilation"
	"fillmore-labs.com/overloadguard/rules"
)

const hidden = `class S
{
    void M() { }
    void M(int a = 0) { }
}
`

const clean = `class S
{
    void M(int a = 0) { }
}
`

func TestCheck(t *testing.T) {
	t.Parallel()

	c := Checker{
		Analyzers: []*analysis.Analyzer{analyzer.Analyzer},
		Rules:     []*rules.Descriptor{analyzer.Descriptor},
	}

	result, err := c.Check(t.Context(),
		File{Name: "b.cs", Src: []byte(hidden)},
		File{Name: "a.cs", Src: []byte(hidden)},
	)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.cs", result.Files[0].Name)

	require.Len(t, result.Diagnostics, 2)

	for i, name := range []string{"a.cs", "b.cs"} {
		d := result.Diagnostics[i]
		pos := result.Position(d.Pos)

		assert.Equal(t, name, pos.Filename)
		assert.Equal(t, 4, pos.Line)
		assert.Equal(t, 12, pos.Column)
		assert.Same(t, analyzer.Analyzer, d.Analyzer)
		assert.Equal(t, analyzer.Descriptor.ID, d.Category)
		assert.Equal(t, rules.Warning, d.Severity)
		require.Len(t, d.Related, 1)
		assert.Equal(t, 3, result.Position(d.Related[0].Pos).Line)
	}
}

func TestCheckErrors(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("NoFiles", func(t *testing.T) {
		t.Parallel()

		c := Checker{Analyzers: []*analysis.Analyzer{analyzer.Analyzer}}

		_, err := c.Check(ctx)
		assert.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("InvalidAnalyzer", func(t *testing.T) {
		t.Parallel()

		c := Checker{Analyzers: []*analysis.Analyzer{analyzer.Analyzer, analyzer.Analyzer}}

		_, err := c.Check(ctx, File{Name: "a.cs", Src: []byte(clean)})
		assert.ErrorContains(t, err, "duplicate analyzer")
	})

	t.Run("Facts", func(t *testing.T) {
		t.Parallel()

		facts := &analysis.Analyzer{
			Name:      "facts",
			Doc:       "exports facts",
			Run:       func(*analysis.Pass) (any, error) { return nil, nil },
			FactTypes: []analysis.Fact{new(fact)},
		}

		c := Checker{Analyzers: []*analysis.Analyzer{facts}}

		_, err := c.Check(ctx, File{Name: "a.cs", Src: []byte(clean)})
		assert.ErrorIs(t, err, ErrFacts)
	})

	t.Run("ResultType", func(t *testing.T) {
		t.Parallel()

		wrong := &analysis.Analyzer{
			Name:       "wrong",
			Doc:        "returns a string",
			Run:        func(*analysis.Pass) (any, error) { return "result", nil },
			ResultType: reflect.TypeFor[int](),
		}

		c := Checker{Analyzers: []*analysis.Analyzer{wrong}}

		_, err := c.Check(ctx, File{Name: "a.cs", Src: []byte(clean)})
		assert.ErrorIs(t, err, ErrResultType)
	})

	t.Run("RunFails", func(t *testing.T) {
		t.Parallel()

		errFail := errors.New("fail")

		failing := &analysis.Analyzer{
			Name: "failing",
			Doc:  "always fails",
			Run:  func(*analysis.Pass) (any, error) { return nil, errFail },
		}

		c := Checker{Analyzers: []*analysis.Analyzer{failing}}

		_, err := c.Check(ctx, File{Name: "a.cs", Src: []byte(clean)})
		assert.ErrorIs(t, err, errFail)
	})
}

type fact struct{}

func (*fact) AFact() {}

func TestCheckPass(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32

	shared := &analysis.Analyzer{
		Name:       "shared",
		Doc:        "counts its runs",
		Run:        func(*analysis.Pass) (any, error) { return int(runs.Add(1)), nil },
		ResultType: reflect.TypeFor[int](),
	}

	var (
		others  []string
		src     []byte
		readErr error
	)

	first := &analysis.Analyzer{
		Name:     "first",
		Doc:      "reports the first declaration",
		Requires: []*analysis.Analyzer{shared, compilation.Analyzer},
		Run: func(p *analysis.Pass) (any, error) {
			others = p.OtherFiles
			src, _ = p.ReadFile("b.cs")
			_, readErr = p.ReadFile("c.cs")

			comp := p.ResultOf[compilation.Analyzer].(*csharp.Compilation)
			d := comp.Files[0].Decls[0]
			p.Report(analysis.Diagnostic{Pos: d.Pos, End: d.End, Category: "custom.Rule", Message: "first"})

			return nil, nil
		},
	}

	second := &analysis.Analyzer{
		Name:     "second",
		Doc:      "reports without a rule",
		Requires: []*analysis.Analyzer{shared},
		Run: func(p *analysis.Pass) (any, error) {
			if p.ResultOf[shared] != 1 {
				return nil, errors.New("shared analyzer ran twice")
			}

			p.Report(analysis.Diagnostic{Category: "unknown", Message: "second"})

			return nil, nil
		},
	}

	c := Checker{
		Analyzers: []*analysis.Analyzer{first, second},
		Rules:     []*rules.Descriptor{{ID: "custom.Rule", Severity: rules.Error}},
	}

	result, err := c.Check(t.Context(),
		File{Name: "b.cs", Src: []byte(hidden)},
		File{Name: "a.cs", Src: []byte(clean)},
	)
	require.NoError(t, err)

	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, []string{"b.cs", "a.cs"}, others)
	assert.Equal(t, hidden, string(src))
	require.ErrorContains(t, readErr, "c.cs")

	require.Len(t, result.Files, 2)
	require.Len(t, result.Diagnostics, 2)

	// diagnostics without position sort first
	assert.Same(t, second, result.Diagnostics[0].Analyzer)
	assert.Equal(t, rules.Warning, result.Diagnostics[0].Severity)

	d := result.Diagnostics[1]
	assert.Same(t, first, d.Analyzer)
	assert.Equal(t, rules.Error, d.Severity)
	assert.Equal(t, "a.cs", result.Position(d.Pos).Filename)
}

func writeFiles(tb testing.TB, root string, files map[string]string) {
	tb.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/Service.cs":     hidden,
		"src/Other.CS":       hidden,
		"src/Clean.cs":       clean,
		"src/SkipMe.cs":      hidden,
		"src/readme.txt":     hidden,
		"obj/Debug/Gen.cs":   hidden,
		"bin/Release/Out.cs": hidden,
		".vs/Cache.cs":       hidden,
	})

	c := Checker{
		Analyzers: []*analysis.Analyzer{analyzer.Analyzer},
		Exclude:   []string{"Skip*.cs"},
	}

	result, err := c.Run(t.Context(), root)
	require.NoError(t, err)

	var names []string
	for _, f := range result.Files {
		rel, err := filepath.Rel(root, f.Name)
		require.NoError(t, err)

		names = append(names, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"src/Clean.cs", "src/Other.CS", "src/Service.cs"}, names)
	assert.Len(t, result.Diagnostics, 2)
}

func TestRunFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"Service.cs": hidden})

	c := Checker{Analyzers: []*analysis.Analyzer{analyzer.Analyzer}}

	path := filepath.Join(root, "Service.cs")

	result, err := c.Run(t.Context(), path, root)
	require.NoError(t, err)

	assert.Len(t, result.Files, 1)
	assert.Len(t, result.Diagnostics, 1)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	c := Checker{Analyzers: []*analysis.Analyzer{analyzer.Analyzer}}

	_, err := c.Run(t.Context(), t.TempDir())
	require.ErrorIs(t, err, ErrNoFiles)

	_, err = c.Run(t.Context(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
