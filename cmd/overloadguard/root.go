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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/overloadguard/analyzer"
	"fillmore-labs.com/overloadguard/checker"
	"fillmore-labs.com/overloadguard/internal/config"
	"fillmore-labs.com/overloadguard/internal/format"
	"fillmore-labs.com/overloadguard/passes/compilation"
	"fillmore-labs.com/overloadguard/rules"
)

// errDiagnostics is returned when the check reported diagnostics.
var errDiagnostics = errors.New("diagnostics reported")

// errInvalidFlag is returned for invalid flag values.
var errInvalidFlag = errors.New("invalid flag value")

// rootOptions hold the driver flags.
type rootOptions struct {
	format     string
	color      string
	logLevel   string
	configFile string
	jobs       int
	exclude    []string
}

func newRootCmd() *cobra.Command {
	var o rootOptions

	// flag definitions and defaults of the analyzer
	defaults := analyzer.New()

	cmd := &cobra.Command{
		Use:           "overloadguard [flags] [path...]",
		Short:         "Report C# optional parameters hidden by an overload",
		Long:          defaults.Doc,
		Version:       buildVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&o.format, "format", format.TextFormat, fmt.Sprintf("output format %q", format.Names()))
	flags.IntVarP(&o.jobs, "jobs", "j", 0, "number of files processed concurrently (0: GOMAXPROCS)")
	flags.StringVar(&o.configFile, "config", "", "configuration file (default "+config.FileName+".{yaml,json,toml} in the working directory)")
	flags.StringVar(&o.color, "color", "auto", "colorize output (auto|on|off)")
	flags.StringVar(&o.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.StringSliceVar(&o.exclude, "exclude", nil, "glob patterns of paths not to check")
	flags.AddGoFlagSet(&defaults.Flags)

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel)
	if err != nil {
		return err
	}

	file, err := config.Load(o.configFile, ".")
	if err != nil {
		return err
	}

	o.merge(cmd.Flags(), file)

	opts := analyzerOptions(file)
	a := analyzer.New(opts...)

	// Command line flags override the configuration file
	if err := applyFlags(cmd.Flags(), a); err != nil {
		return err
	}

	// The shared compilation pass parses the files
	if o.jobs != 0 {
		if err := compilation.Analyzer.Flags.Set("jobs", strconv.Itoa(o.jobs)); err != nil {
			return fmt.Errorf("%w --jobs: %w", errInvalidFlag, err)
		}
	}

	useColor, err := colorMode(o.color)
	if err != nil {
		return err
	}

	renderer, err := format.New(o.format, useColor, buildVersion())
	if err != nil {
		return err
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "Configuration",
		opts.LogAttr(),
		slog.String("format", o.format),
		slog.Int("jobs", o.jobs),
		slog.Any("exclude", o.exclude))

	if len(args) == 0 {
		args = []string{"."}
	}

	c := checker.Checker{
		Analyzers: []*analysis.Analyzer{a},
		Rules:     []*rules.Descriptor{analyzer.Descriptor},
		Exclude:   o.exclude,
		Logger:    logger,
	}

	result, err := c.Run(ctx, args...)
	if err != nil {
		return err
	}

	if err := renderer.Render(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("can't write diagnostics: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, format.Summary(result))

	if len(result.Diagnostics) > 0 {
		return errDiagnostics
	}

	return nil
}

// merge applies configuration file settings for flags not given on the command line.
func (o *rootOptions) merge(flags *pflag.FlagSet, file *config.File) {
	if file.Format != nil && !flags.Changed("format") {
		o.format = *file.Format
	}

	if file.Jobs != nil && !flags.Changed("jobs") {
		o.jobs = *file.Jobs
	}

	o.exclude = append(slices.Clip(file.Exclude), o.exclude...)
}

// applyFlags sets the analyzer flags given on the command line.
func applyFlags(flags *pflag.FlagSet, a *analysis.Analyzer) error {
	var errs []error

	flags.Visit(func(f *pflag.Flag) {
		if a.Flags.Lookup(f.Name) == nil {
			return
		}

		if err := a.Flags.Set(f.Name, f.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("%w --%s: %w", errInvalidFlag, f.Name, err))
		}
	})

	return errors.Join(errs...)
}

func colorMode(mode string) (bool, error) {
	switch mode {
	case "auto":
		return !color.NoColor, nil

	case "on", "always":
		return true, nil

	case "off", "never":
		return false, nil

	default:
		return false, fmt.Errorf("%w --color %q, must be auto, on or off", errInvalidFlag, mode)
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w --log-level: %w", errInvalidFlag, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
