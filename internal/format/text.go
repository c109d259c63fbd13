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
	"bufio"
	"io"
	"strconv"

	"github.com/fatih/color"

	"fillmore-labs.com/overloadguard/rules"
	"fillmore-labs.com/overloadguard/checker"
)

// Text renders diagnostics as "path:line:col: severity: message (id)" lines,
// followed by indented related information.
type Text struct {
	// Color enables ANSI colors.
	Color bool
}

// Render implements [Renderer].
func (t Text) Render(w io.Writer, r *checker.Result) error {
	var (
		position = t.color(color.Bold)
		id       = t.color(color.Faint)
		related  = t.color(color.FgCyan)
	)

	bw := bufio.NewWriter(w)

	for _, d := range r.Diagnostics {
		pos := r.Position(d.Pos)

		position.Fprint(bw, pos.String()+":")
		bw.WriteByte(' ')
		t.severity(d.Severity).Fprint(bw, d.Severity.String()+":")
		bw.WriteByte(' ')
		bw.WriteString(d.Message)

		if d.Category != "" {
			bw.WriteByte(' ')
			id.Fprint(bw, "("+d.Category+")")
		}

		bw.WriteByte('\n')

		for _, rel := range d.Related {
			bw.WriteByte('\t')
			related.Fprint(bw, r.Position(rel.Pos).String()+":")
			bw.WriteString(" " + rel.Message + "\n")
		}
	}

	return bw.Flush()
}

func (t Text) severity(s rules.Severity) *color.Color {
	switch s {
	case rules.Error:
		return t.color(color.FgRed, color.Bold)

	case rules.Warning:
		return t.color(color.FgYellow, color.Bold)

	default:
		return t.color(color.FgBlue)
	}
}

func (t Text) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}

// Summary returns a short summary like "3 diagnostics in 2 files".
func Summary(r *checker.Result) string {
	return plural(len(r.Diagnostics), "diagnostic") + " in " + plural(len(r.Files), "file")
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}

	return s
}
