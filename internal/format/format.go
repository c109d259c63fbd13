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

// Package format renders checker results.
package format

import (
	"errors"
	"fmt"
	"io"

	"fillmore-labs.com/overloadguard/checker"
)

// ErrUnknownFormat is returned for unsupported output format names.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes a checker result.
type Renderer interface {
	Render(w io.Writer, r *checker.Result) error
}

// Names of the supported formats.
const (
	TextFormat  = "text"
	JSONFormat  = "json"
	SARIFFormat = "sarif"
)

// Names returns the supported format names.
func Names() []string {
	return []string{TextFormat, JSONFormat, SARIFFormat}
}

// New returns the renderer for the named format.
// color only affects the text format.
func New(name string, color bool, version string) (Renderer, error) {
	switch name {
	case TextFormat, "":
		return Text{Color: color}, nil

	case JSONFormat:
		return JSON{}, nil

	case SARIFFormat:
		return SARIF{Version: version}, nil

	default:
		return nil, fmt.Errorf("%w %q, must be one of %q", ErrUnknownFormat, name, Names())
	}
}
