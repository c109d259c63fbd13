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

// Package compilation defines an Analyzer that parses the C# sources of a
// pass and resolves their declarations into a [csharp.Compilation].
//
// # Analyzer compilation
//
// compilation: parse C# sources and resolve their declarations
//
// The C# files are taken from [analysis.Pass.OtherFiles], read through
// [analysis.Pass.ReadFile] and parsed concurrently. The result is shared by
// all analyzers requiring it:
//
//	comp := pass.ResultOf[compilation.Analyzer].(*csharp.Compilation)
//	for _, file := range comp.Files {
//		...
//	}
package compilation
