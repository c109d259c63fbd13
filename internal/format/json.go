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

package format

import (
	"encoding/json"
	"io"

	"fillmore-labs.com/overloadguard/checker"
)

// JSON renders diagnostics as a JSON array.
type JSON struct{}

type jsonDiagnostic struct {
	File      string        `json:"file"`
	Line      int           `json:"line"`
	Column    int           `json:"column"`
	EndLine   int           `json:"endLine,omitempty"`
	EndColumn int           `json:"endColumn,omitempty"`
	Severity  string        `json:"severity"`
	Rule      string        `json:"rule,omitempty"`
	Analyzer  string        `json:"analyzer"`
	Message   string        `json:"message"`
	URL       string        `json:"url,omitempty"`
	Related   []jsonRelated `json:"related,omitempty"`
}

type jsonRelated struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Render implements [Renderer].
func (JSON) Render(w io.Writer, r *checker.Result) error {
	out := make([]jsonDiagnostic, 0, len(r.Diagnostics))

	for _, d := range r.Diagnostics {
		pos := r.Position(d.Pos)

		jd := jsonDiagnostic{
			File:     pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Severity: d.Severity.String(),
			Rule:     d.Category,
			Analyzer: d.Analyzer.Name,
			Message:  d.Message,
			URL:      d.URL,
		}

		if d.End.IsValid() {
			end := r.Position(d.End)
			jd.EndLine, jd.EndColumn = end.Line, end.Column
		}

		for _, rel := range d.Related {
			p := r.Position(rel.Pos)
			jd.Related = append(jd.Related, jsonRelated{File: p.Filename, Line: p.Line, Column: p.Column, Message: rel.Message})
		}

		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
