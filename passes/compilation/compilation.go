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

package compilation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"runtime/trace"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/csharp"
)

// ErrNoReader is returned when the driver does not provide [analysis.Pass.ReadFile].
var ErrNoReader = errors.New("pass can't read files")

// Analyzer parses the C# files of a pass.
var Analyzer = &analysis.Analyzer{
	Name:             "compilation",
	Doc:              "parse C# sources and resolve their declarations",
	URL:              "https://pkg.go.dev/fillmore-labs.com/overloadguard/passes/compilation",
	Run:              run,
	RunDespiteErrors: true,
	ResultType:       reflect.TypeFor[*csharp.Compilation](),
}

// jobs limits the number of files parsed concurrently, GOMAXPROCS when not positive.
var jobs int

func init() {
	Analyzer.Flags.IntVar(&jobs, "jobs", 0, "number of files parsed concurrently (0 for GOMAXPROCS)")
}

func run(pass *analysis.Pass) (any, error) {
	names := Sources(pass.OtherFiles)
	if len(names) > 0 && pass.ReadFile == nil {
		return nil, ErrNoReader
	}

	ctx, task := trace.NewTask(context.Background(), "Compilation")
	defer task.End()

	files, err := parse(ctx, pass, names)
	if err != nil {
		return nil, err
	}

	defer trace.StartRegion(ctx, "Resolve").End()

	return csharp.NewCompilation(pass.Fset, files), nil
}

// Sources returns the C# source files among names, in order.
func Sources(names []string) []string {
	return slices.DeleteFunc(slices.Clone(names), func(name string) bool { return !csharp.IsSource(name) })
}

func parse(ctx context.Context, pass *analysis.Pass, names []string) ([]*csharp.File, error) {
	defer trace.StartRegion(ctx, "Parse").End()

	// indices are unique per goroutine, no lock needed
	files := make([]*csharp.File, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(len(names)))

	for i, name := range names {
		g.Go(func() error {
			src, err := pass.ReadFile(name)
			if err != nil {
				return fmt.Errorf("can't read %s: %w", name, err)
			}

			f, err := csharp.Parse(gctx, pass.Fset, name, src)
			if err != nil {
				return err
			}

			files[i] = f

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func limit(n int) int {
	j := jobs
	if j <= 0 {
		j = runtime.GOMAXPROCS(0)
	}

	return max(1, min(j, n))
}
