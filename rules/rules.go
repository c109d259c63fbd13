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

package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity classifies a diagnostic.
type Severity uint8

//go:generate go tool stringer -type Severity -linecomment
const (
	// Hidden diagnostics are not shown to users.
	Hidden Severity = iota // none

	// Info is an informational message.
	Info // note

	// Warning is the default for code quality issues.
	Warning // warning

	// Error fails the check.
	Error // error
)

// A Descriptor declares a rule reported by an analyzer.
//
// Descriptors are immutable and shared by reference.
type Descriptor struct {
	// ID is the stable rule identifier, used as diagnostic category.
	ID string

	// Title is a short description of the rule.
	Title string

	// MessageFormat is the diagnostic message. Placeholders {0}, {1}, ...
	// are replaced by the arguments of [Descriptor.Format].
	MessageFormat string

	// Category groups related rules.
	Category string

	// Severity is the default severity of reported diagnostics.
	Severity Severity

	// EnabledByDefault is true for rules that run without explicit configuration.
	EnabledByDefault bool

	// HelpURL links to the rule documentation.
	HelpURL string
}

// Format returns the message of the rule with the placeholders replaced by args.
func (d *Descriptor) Format(args ...any) string {
	if len(args) == 0 {
		return d.MessageFormat
	}

	oldnew := make([]string, 0, 2*len(args))
	for i, arg := range args {
		oldnew = append(oldnew, "{"+strconv.Itoa(i)+"}", toString(arg))
	}

	return strings.NewReplacer(oldnew...).Replace(d.MessageFormat)
}

func toString(arg any) string {
	switch arg := arg.(type) {
	case string:
		return arg

	case interface{ String() string }:
		return arg.String()

	default:
		return fmt.Sprint(arg)
	}
}

// Table indexes descriptors by rule ID.
type Table map[string]*Descriptor

// NewTable returns a table of descriptors. Later descriptors with a duplicate ID are ignored.
func NewTable(descriptors ...*Descriptor) Table {
	t := make(Table, len(descriptors))

	for _, d := range descriptors {
		if d == nil {
			continue
		}

		if _, ok := t[d.ID]; !ok {
			t[d.ID] = d
		}
	}

	return t
}

// Severity returns the severity of diagnostics in category, [Warning] for unknown rules.
func (t Table) Severity(category string) Severity {
	if d, ok := t[category]; ok {
		return d.Severity
	}

	return Warning
}
