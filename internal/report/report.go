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

package report

import (
	"context"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/overload"
)

// Findings emits a diagnostic for every hidden optional parameter.
//
// This is the final phase of the analyzer pipeline. Each diagnostic is located at
// the parameter declaration, carries the [Descriptor] ID as category and
// points to the overload hiding the parameter as related information.
func Findings(ctx context.Context, p *analysis.Pass, findings []overload.Finding) {
	if len(findings) == 0 {
		return
	}

	defer trace.StartRegion(ctx, "ReportFindings").End()

	for _, f := range findings {
		p.Report(diagnostic(f))
	}
}

func diagnostic(f overload.Finding) analysis.Diagnostic {
	d := analysis.Diagnostic{
		Pos:      f.Span.Pos,
		End:      f.Span.End,
		Category: Descriptor.ID,
		Message:  Descriptor.Format(f.Kind),
		URL:      Descriptor.HelpURL,
	}

	if f.Shadow.Valid() {
		d.Related = []analysis.RelatedInformation{{Pos: f.Shadow.Pos, End: f.Shadow.End, Message: relatedMessage}}
	}

	return d
}
