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

package astutil

import (
	"go/token"

	"fillmore-labs.com/overloadguard/csharp"
)

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file   *csharp.File
	handle *token.File
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and a *[csharp.File].
func NewCurrentFile(fset *token.FileSet, file *csharp.File) CurrentFile {
	if file == nil || file.Handle == nil {
		return CurrentFile{}
	}

	pos, _ := file.Span()

	handle := fset.File(pos)
	if handle != file.Handle {
		return CurrentFile{} // not registered in this file set
	}

	return CurrentFile{file, handle}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.file != nil && c.file.Generated
}

// HasErrors returns true if the parser recovered from syntax errors in the file.
func (c CurrentFile) HasErrors() bool {
	return c.file != nil && c.file.HasErrors
}

// Contains reports whether the range [pos, end] lies within the file.
func (c CurrentFile) Contains(pos, end token.Pos) bool {
	if c.handle == nil || !pos.IsValid() {
		return false
	}

	base := c.handle.Base()
	limit := base + c.handle.Size()

	return base <= int(pos) && int(pos) <= int(end) && int(end) <= limit
}
