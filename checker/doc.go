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

// Package checker drives [golang.org/x/tools/go/analysis] analyzers over a set of C# files.
//
// The files of a check are presented to every analyzer as [analysis.Pass.OtherFiles]
// of a single pass. Analyzers share the parsed sources by requiring
// [compilation.Analyzer]. Diagnostics carry the severity of the rule named by their
// category and are returned sorted by file name and position, independent of scheduling.
package checker
