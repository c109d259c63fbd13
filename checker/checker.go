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

package checker

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"reflect"
	"runtime/trace"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/csharp"
	"fillmore-labs.com/overloadguard/passes/compilation"
	"fillmore-labs.com/overloadguard/rules"
)

var (
	// ErrNoFiles is returned when there is nothing to check.
	ErrNoFiles = errors.New("no C# files to check")

	// ErrFacts is returned for analyzers exchanging facts, which need a package graph.
	ErrFacts = errors.New("analyzer uses facts")

	// ErrResultType is returned when an analyzer result does not match its declared type.
	ErrResultType = errors.New("unexpected result type")
)

// Checker runs analyzers over C# sources.
//
// All files of a check form one compilation, each analyzer runs once on a single pass.
type Checker struct {
	// Analyzers to run. Required analyzers run first.
	Analyzers []*analysis.Analyzer

	// Rules describe the diagnostic categories reported by the analyzers.
	Rules []*rules.Descriptor

	// Exclude lists glob patterns of paths skipped by [Checker.Run].
	Exclude []string

	// Logger receives progress messages, [slog.Default] when nil.
	Logger *slog.Logger
}

// File is an in-memory source file.
type File struct {
	Name string
	Src  []byte
}

// Diagnostic is an [analysis.Diagnostic] reported by an analyzer.
type Diagnostic struct {
	analysis.Diagnostic

	// Analyzer is the reporting analyzer.
	Analyzer *analysis.Analyzer

	// Severity of the rule named by the diagnostic category.
	Severity rules.Severity
}

// Result holds the outcome of a check.
type Result struct {
	// Fset holds the positions of all parsed files.
	Fset *token.FileSet

	// Files are the parsed files, sorted by name.
	Files []*csharp.File

	// Analyzers are the analyzers run.
	Analyzers []*analysis.Analyzer

	// Rules describe the reported categories.
	Rules []*rules.Descriptor

	// Diagnostics sorted by file name and position.
	Diagnostics []Diagnostic
}

// Position returns the position of pos, ignoring line directives.
func (r *Result) Position(pos token.Pos) token.Position {
	return r.Fset.PositionFor(pos, false)
}

// Run checks the C# files named by paths. Directories are searched recursively.
func (c *Checker) Run(ctx context.Context, paths ...string) (*Result, error) {
	names, err := collect(paths, c.Exclude)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoFiles, paths)
	}

	c.logger().LogAttrs(ctx, slog.LevelDebug, "Collected files", slog.Int("count", len(names)))

	return c.check(ctx, names, os.ReadFile)
}

// Check checks in-memory sources.
func (c *Checker) Check(ctx context.Context, files ...File) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	names := make([]string, 0, len(files))
	sources := make(map[string][]byte, len(files))

	for _, f := range files {
		if _, ok := sources[f.Name]; !ok {
			names = append(names, f.Name)
		}

		sources[f.Name] = f.Src
	}

	return c.check(ctx, names, func(name string) ([]byte, error) {
		if src, ok := sources[name]; ok {
			return src, nil
		}

		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	})
}

func (c *Checker) check(ctx context.Context, names []string, read func(string) ([]byte, error)) (*Result, error) {
	if err := analysis.Validate(c.Analyzers); err != nil {
		return nil, err
	}

	ctx, task := trace.NewTask(ctx, "Check")
	defer task.End()

	start := time.Now()

	s, err := c.newSession(names, read)
	if err != nil {
		return nil, err
	}

	if err := s.run(ctx, c.Analyzers); err != nil {
		return nil, err
	}

	sortDiagnostics(s.fset, s.diagnostics)

	result := &Result{
		Fset:        s.fset,
		Analyzers:   c.Analyzers,
		Rules:       c.Rules,
		Diagnostics: s.diagnostics,
	}

	if act, ok := s.actions[compilation.Analyzer]; ok {
		if comp, ok := act.result.(*csharp.Compilation); ok {
			result.Files = comp.Files
		}
	}

	c.logger().LogAttrs(ctx, slog.LevelDebug, "Check done",
		slog.Int("files", len(names)),
		slog.Int("diagnostics", len(result.Diagnostics)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// action is the memoized run of one analyzer.
type action struct {
	once   sync.Once
	result any
	err    error
}

// session holds the state of a single check.
type session struct {
	fset  *token.FileSet
	names []string
	read  func(string) ([]byte, error)
	rules rules.Table

	// actions is complete before the first pass runs and read-only afterwards.
	actions map[*analysis.Analyzer]*action

	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (c *Checker) newSession(names []string, read func(string) ([]byte, error)) (*session, error) {
	allowed := make(map[string]bool, len(names))
	for _, name := range names {
		allowed[name] = true
	}

	s := &session{
		fset:  token.NewFileSet(),
		names: names,
		read: func(name string) ([]byte, error) {
			if !allowed[name] {
				return nil, fmt.Errorf("can't read %s: not a file of this check", name)
			}

			return read(name)
		},
		rules:   rules.NewTable(c.Rules...),
		actions: make(map[*analysis.Analyzer]*action),
	}

	var visit func(a *analysis.Analyzer) error
	visit = func(a *analysis.Analyzer) error {
		if _, ok := s.actions[a]; ok {
			return nil
		}

		if len(a.FactTypes) > 0 {
			return fmt.Errorf("%s: %w", a.Name, ErrFacts)
		}

		s.actions[a] = &action{}

		for _, req := range a.Requires {
			if err := visit(req); err != nil {
				return err
			}
		}

		return nil
	}

	for _, a := range c.Analyzers {
		if err := visit(a); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// run executes the root analyzers concurrently. Shared requirements run once.
func (s *session) run(ctx context.Context, roots []*analysis.Analyzer) error {
	defer trace.StartRegion(ctx, "Analyze").End()

	g, gctx := errgroup.WithContext(ctx)

	for _, a := range roots {
		g.Go(func() error {
			_, err := s.exec(gctx, a)

			return err
		})
	}

	return g.Wait()
}

func (s *session) exec(ctx context.Context, a *analysis.Analyzer) (any, error) {
	act := s.actions[a]

	act.once.Do(func() {
		act.result, act.err = s.pass(ctx, a)
	})

	return act.result, act.err
}

func (s *session) pass(ctx context.Context, a *analysis.Analyzer) (any, error) {
	resultOf := make(map[*analysis.Analyzer]any, len(a.Requires))

	for _, req := range a.Requires {
		result, err := s.exec(ctx, req)
		if err != nil {
			return nil, err
		}

		resultOf[req] = result
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer trace.StartRegion(ctx, a.Name).End()

	pass := &analysis.Pass{
		Analyzer:   a,
		Fset:       s.fset,
		OtherFiles: s.names,
		ReadFile:   s.read,
		ResultOf:   resultOf,
		Report: func(d analysis.Diagnostic) {
			s.mu.Lock()
			defer s.mu.Unlock()

			s.diagnostics = append(s.diagnostics, Diagnostic{
				Diagnostic: d,
				Analyzer:   a,
				Severity:   s.rules.Severity(d.Category),
			})
		},
	}

	result, err := a.Run(pass)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name, err)
	}

	if a.ResultType != nil && result != nil {
		if got := reflect.TypeOf(result); got != a.ResultType {
			return nil, fmt.Errorf("%s: %w %v, want %v", a.Name, ErrResultType, got, a.ResultType)
		}
	}

	return result, nil
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.Default()
}

// sortDiagnostics orders diagnostics by file name, offset, end, category and message.
// Positions are compared by file offset, since file bases depend on parse order.
func sortDiagnostics(fset *token.FileSet, diagnostics []Diagnostic) {
	slices.SortStableFunc(diagnostics, func(a, b Diagnostic) int {
		pa, pb := fset.PositionFor(a.Pos, false), fset.PositionFor(b.Pos, false)

		return cmp.Or(
			cmp.Compare(pa.Filename, pb.Filename),
			cmp.Compare(pa.Offset, pb.Offset),
			cmp.Compare(offset(fset, a.End), offset(fset, b.End)),
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Message, b.Message),
		)
	})
}

func offset(fset *token.FileSet, pos token.Pos) int {
	if !pos.IsValid() {
		return -1
	}

	return fset.PositionFor(pos, false).Offset
}
