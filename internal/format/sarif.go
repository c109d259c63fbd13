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
	"go/token"
	"io"
	"path/filepath"
	"strings"

	"fillmore-labs.com/overloadguard/rules"
	"fillmore-labs.com/overloadguard/checker"
)

// SARIF 2.1.0 schema types.
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html
const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
	toolName     = "overloadguard"
	toolURI      = "https://pkg.go.dev/fillmore-labs.com/overloadguard"
)

// SARIF renders diagnostics as a SARIF 2.1.0 log with one run.
type SARIF struct {
	// Version is the tool version.
	Version string
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name,omitempty"`
	ShortDescription     *sarifMessage       `json:"shortDescription,omitempty"`
	MessageStrings       map[string]sarifMsg `json:"messageStrings,omitempty"`
	DefaultConfiguration *sarifRuleConfig    `json:"defaultConfiguration,omitempty"`
	HelpURI              string              `json:"helpUri,omitempty"`
	Properties           map[string]any      `json:"properties,omitempty"`
}

type sarifMsg struct {
	Text string `json:"text"`
}

type sarifRuleConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level,omitempty"` // error, warning, note, none
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        *int            `json:"ruleIndex,omitempty"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	ID               *int                   `json:"id,omitempty"`
	PhysicalLocation *sarifPhysicalLocation `json:"physicalLocation,omitempty"`
	Message          *sarifMessage          `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// Render implements [Renderer].
func (s SARIF) Render(w io.Writer, r *checker.Result) error {
	descriptors, ruleIndex := sarifRules(r.Rules)

	results := make([]sarifResult, 0, len(r.Diagnostics))

	for _, d := range r.Diagnostics {
		res := sarifResult{
			RuleID:    d.Category,
			Level:     d.Severity.String(),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{location(r, d.Pos, d.End, "")},
		}

		if res.RuleID == "" {
			res.RuleID = d.Analyzer.Name
		}

		if i, ok := ruleIndex[res.RuleID]; ok {
			res.RuleIndex = &i
		}

		for i, rel := range d.Related {
			loc := location(r, rel.Pos, rel.End, rel.Message)
			loc.ID = &i
			res.RelatedLocations = append(res.RelatedLocations, loc)
		}

		results = append(results, res)
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           toolName,
				Version:        s.Version,
				InformationURI: toolURI,
				Rules:          descriptors,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(log)
}

// sarifRules returns the rule descriptors with their stable indices.
func sarifRules(descriptors []*rules.Descriptor) ([]sarifRule, map[string]int) {
	result := []sarifRule{}
	index := make(map[string]int)

	for _, d := range descriptors {
		if d == nil {
			continue
		}

		if _, ok := index[d.ID]; ok {
			continue
		}

		index[d.ID] = len(result)
		result = append(result, sarifRule{
			ID:               d.ID,
			Name:             ruleName(d.ID),
			ShortDescription: &sarifMessage{Text: d.Title},
			MessageStrings:   map[string]sarifMsg{"default": {Text: d.MessageFormat}},
			DefaultConfiguration: &sarifRuleConfig{
				Enabled: d.EnabledByDefault,
				Level:   d.Severity.String(),
			},
			HelpURI:    d.HelpURL,
			Properties: map[string]any{"category": d.Category},
		})
	}

	return result, index
}

// ruleName returns the last component of a dotted rule ID.
func ruleName(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[i+1:]
	}

	return id
}

func location(r *checker.Result, pos, end token.Pos, message string) sarifLocation {
	p := r.Position(pos)

	region := sarifRegion{StartLine: p.Line, StartColumn: p.Column}
	if end.IsValid() {
		e := r.Position(end)
		region.EndLine, region.EndColumn = e.Line, e.Column
	}

	loc := sarifLocation{PhysicalLocation: &sarifPhysicalLocation{
		ArtifactLocation: sarifArtifactLocation{URI: artifactURI(p.Filename)},
		Region:           region,
	}}

	if message != "" {
		loc.Message = &sarifMessage{Text: message}
	}

	return loc
}

// artifactURI returns a relative URI for relative paths and a file URI for absolute ones.
func artifactURI(name string) string {
	slash := filepath.ToSlash(name)
	if filepath.IsAbs(name) {
		if !strings.HasPrefix(slash, "/") {
			slash = "/" + slash // Windows drive letter
		}

		return "file://" + slash
	}

	return slash
}
