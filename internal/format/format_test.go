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

package format_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/analyzer"
	"fillmore-labs.com/overloadguard/checker"
	. "fillmore-labs.com/overloadguard/internal/format"
	"fillmore-labs.com/overloadguard/rules"
)

const source = `class S
{
    void M() { }
    void M(int a = 0) { }
}
`

func check(tb testing.TB) *checker.Result {
	tb.Helper()

	c := checker.Checker{
		Analyzers: []*analysis.Analyzer{analyzer.Analyzer},
		Rules:     []*rules.Descriptor{analyzer.Descriptor},
	}

	result, err := c.Check(tb.Context(), checker.File{Name: "src/S.cs", Src: []byte(source)})
	require.NoError(tb, err)
	require.Len(tb, result.Diagnostics, 1)

	return result
}

func render(tb testing.TB, name string, result *checker.Result) []byte {
	tb.Helper()

	r, err := New(name, false, "v1.2.3")
	require.NoError(tb, err)

	var buf bytes.Buffer
	require.NoError(tb, r.Render(&buf, result))

	return buf.Bytes()
}

func TestText(t *testing.T) {
	t.Parallel()

	got := render(t, TextFormat, check(t))

	const want = "src/S.cs:4:12: warning: Method with optional parameter is hidden by overload" +
		" (overloadguard.MethodOverloadWithOptionalParameter)\n" +
		"\tsrc/S.cs:3:5: Hidden by this overload\n"

	assert.Equal(t, want, string(got))
}

func TestTextColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Text{Color: true}.Render(&buf, check(t)))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Method with optional parameter is hidden by overload")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var got []map[string]any
	require.NoError(t, json.Unmarshal(render(t, JSONFormat, check(t)), &got))

	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, "src/S.cs", d["file"])
	assert.InDelta(t, 4, d["line"], 0)
	assert.InDelta(t, 12, d["column"], 0)
	assert.InDelta(t, 4, d["endLine"], 0)
	assert.InDelta(t, 21, d["endColumn"], 0)
	assert.Equal(t, "warning", d["severity"])
	assert.Equal(t, "overloadguard.MethodOverloadWithOptionalParameter", d["rule"])
	assert.Equal(t, "overloadguard", d["analyzer"])
	assert.Len(t, d["related"], 1)
}

func TestJSONEmpty(t *testing.T) {
	t.Parallel()

	got := render(t, JSONFormat, &checker.Result{})

	assert.JSONEq(t, "[]", string(got))
}

func TestSARIF(t *testing.T) {
	t.Parallel()

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID                   string `json:"id"`
						Name                 string `json:"name"`
						DefaultConfiguration struct {
							Enabled bool   `json:"enabled"`
							Level   string `json:"level"`
						} `json:"defaultConfiguration"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex *int   `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				RelatedLocations []struct {
					Message struct {
						Text string `json:"text"`
					} `json:"message"`
				} `json:"relatedLocations"`
			} `json:"results"`
		} `json:"runs"`
	}

	require.NoError(t, json.Unmarshal(render(t, SARIFFormat, check(t)), &log))

	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)

	run := log.Runs[0]
	assert.Equal(t, "overloadguard", run.Tool.Driver.Name)
	assert.Equal(t, "v1.2.3", run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 1)
	rule := run.Tool.Driver.Rules[0]
	assert.Equal(t, "overloadguard.MethodOverloadWithOptionalParameter", rule.ID)
	assert.Equal(t, "MethodOverloadWithOptionalParameter", rule.Name)
	assert.True(t, rule.DefaultConfiguration.Enabled)
	assert.Equal(t, "warning", rule.DefaultConfiguration.Level)

	require.Len(t, run.Results, 1)
	res := run.Results[0]
	assert.Equal(t, rule.ID, res.RuleID)
	require.NotNil(t, res.RuleIndex)
	assert.Equal(t, 0, *res.RuleIndex)
	assert.Equal(t, "warning", res.Level)

	require.Len(t, res.Locations, 1)
	loc := res.Locations[0].PhysicalLocation
	assert.Equal(t, "src/S.cs", loc.ArtifactLocation.URI)
	assert.Equal(t, 4, loc.Region.StartLine)
	assert.Equal(t, 12, loc.Region.StartColumn)

	require.Len(t, res.RelatedLocations, 1)
	assert.Equal(t, "Hidden by this overload", res.RelatedLocations[0].Message.Text)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		_, err := New(name, false, "")
		require.NoError(t, err, name)
	}

	_, err := New("xml", false, "")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 diagnostic in 1 file", Summary(check(t)))
	assert.Equal(t, "0 diagnostics in 0 files", Summary(&checker.Result{}))
}
