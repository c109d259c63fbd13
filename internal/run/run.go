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

package run

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/csharp"
	"fillmore-labs.com/overloadguard/internal/astutil"
	"fillmore-labs.com/overloadguard/internal/config"
	"fillmore-labs.com/overloadguard/internal/report"
	"fillmore-labs.com/overloadguard/overload"
	"fillmore-labs.com/overloadguard/passes/compilation"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a driver error.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the overloadguard analyzer's pipeline on the files of a compilation.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	comp, ok := p.ResultOf[compilation.Analyzer].(*csharp.Compilation)
	if !ok {
		return nil, fmt.Errorf("overloadguard: %s %w", compilation.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "OverloadGuard")
	defer task.End()

	model := comp.SemanticModel()

	for _, file := range comp.Files {
		r.checkFile(ctx, p, model, file)
	}

	return nil, nil
}

func (r *Options) checkFile(ctx context.Context, p *analysis.Pass, model csharp.SemanticModel, file *csharp.File) {
	trace.Log(ctx, "file", file.Name)

	currentFile := astutil.NewCurrentFile(p.Fset, file)
	if !currentFile.Valid() {
		pos, end := file.Span()
		astutil.InternalError(p, pos, end, "File %s without valid info", file.Name)

		return
	}

	// Skip generated files
	if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
		return
	}

	if currentFile.HasErrors() && r.Behavior.Enabled(config.SkipSyntaxErrors) {
		return
	}

	// Loop over all subscribed member declarations in this file
	for decl := range file.Declarations(r.kinds()) {
		if decl.File() != file || !currentFile.Contains(decl.Pos, decl.End) {
			astutil.InternalError(p, decl.Pos, decl.End, "Declaration %s without file info", decl.Name)

			continue
		}

		// Stage 1: Resolve the member and its overloads, detect hidden parameters
		region := trace.StartRegion(ctx, "Detect")
		findings := overload.Check(model, decl)
		region.End()

		// Stage 2: Generate diagnostics
		report.Findings(ctx, p, findings)
	}
}
