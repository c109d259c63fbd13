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

package analyzer_test

import (
	"slices"
	"testing"

	. "fillmore-labs.com/overloadguard/analyzer"
	"fillmore-labs.com/overloadguard/internal/analysistest"
	"fillmore-labs.com/overloadguard/passes/compilation"
)

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	tests := []struct {
		name    string
		archive string
		options Option
	}{
		{
			name:    "Methods",
			archive: "methods.txtar",
		},
		{
			name:    "Indexers",
			archive: "indexers.txtar",
		},
		{
			name:    "Shadows",
			archive: "shadows.txtar",
		},
		{
			name:    "Params",
			archive: "params.txtar",
		},
		{
			name:    "NoMatch",
			archive: "nomatch.txtar",
		},
		{
			name:    "Generated",
			archive: "generated.txtar",
		},
		{
			name:    "GeneratedEnabled",
			archive: "generated_enabled.txtar",
			options: WithGenerated(true),
		},
		{
			name:    "MethodsDisabled",
			archive: "disabled.txtar",
			options: Options{WithMethods(false), WithIndexers(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New(tt.options)
			analysistest.Run(t, testdata, a, tt.archive)
		})
	}
}

func TestAnalyzerDefaults(t *testing.T) {
	t.Parallel()

	if Analyzer.Name != "overloadguard" {
		t.Errorf("Got name %q, want overloadguard", Analyzer.Name)
	}

	if !slices.Contains(Analyzer.Requires, compilation.Analyzer) {
		t.Errorf("Got requirements %v, want %s", Analyzer.Requires, compilation.Analyzer)
	}

	if Descriptor.ID != "overloadguard.MethodOverloadWithOptionalParameter" {
		t.Errorf("Got rule ID %q", Descriptor.ID)
	}

	for _, name := range []string{"methods", "indexers", "generated", "skip-errors"} {
		if Analyzer.Flags.Lookup(name) == nil {
			t.Errorf("Missing flag %q", name)
		}
	}

	if got := Analyzer.Flags.Lookup("methods").Value.String(); got != "true" {
		t.Errorf("Got default methods = %s, want true", got)
	}

	if got := Analyzer.Flags.Lookup("generated").Value.String(); got != "false" {
		t.Errorf("Got default generated = %s, want false", got)
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	a := New()
	if err := a.Flags.Parse([]string{"-methods=false", "-generated"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	analysistest.RunArchive(t, "flags.txtar", []byte(`-- Table.g.cs --
public class Table
{
    public void Put(int key) { }

    public void Put(int key, int value = 0) { }

    public int this[int row] => row;

    public int this[int row, $int column = 0$] => row + column;
}
`), a)
}

func TestSkipErrors(t *testing.T) {
	t.Parallel()

	a := New(WithSkipErrors(true))

	analysistest.RunArchive(t, "skiperrors.txtar", []byte(`-- Broken.cs --
public class Broken
{
    public void Put(int key) { }

    public void Put(int key, int value = 0) { }

    public void Oops( { }
}
`), a)
}

func TestOptionsLogValue(t *testing.T) {
	t.Parallel()

	opts := Options{WithMethods(false), nil, Options{WithGenerated(true)}}

	if got, want := opts.LogValue().String(), "[methods=false nil=<nil> generated=true]"; got != want {
		t.Errorf("Got %s, want %s", got, want)
	}
}
