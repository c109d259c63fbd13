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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/overloadguard/internal/config"
	"fillmore-labs.com/overloadguard/internal/run"
)

// Option configures specific behavior of a [New] overloadguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithSkipErrors is an [Option] to skip files with syntax errors.
// Declarations inside error-recovery nodes are never checked.
func WithSkipErrors(skip bool) Option { return skipErrorsOption{skip: skip} }

type skipErrorsOption struct{ skip bool }

func (o skipErrorsOption) apply(r *run.Options) {
	r.Behavior.Set(config.SkipSyntaxErrors, o.skip)
}

func (o skipErrorsOption) LogAttr() slog.Attr {
	return slog.Bool("skip-errors", o.skip)
}

// WithMethods is an [Option] to configure whether method overloads are checked.
func WithMethods(methods bool) Option {
	return methodsOption{methods: methods}
}

type methodsOption struct{ methods bool }

func (o methodsOption) apply(r *run.Options) {
	r.Subjects.Set(config.Methods, o.methods)
}

func (o methodsOption) LogAttr() slog.Attr {
	return slog.Bool("methods", o.methods)
}

// WithIndexers is an [Option] to configure whether indexer overloads are checked.
func WithIndexers(indexers bool) Option {
	return indexersOption{indexers: indexers}
}

type indexersOption struct{ indexers bool }

func (o indexersOption) apply(r *run.Options) {
	r.Subjects.Set(config.Indexers, o.indexers)
}

func (o indexersOption) LogAttr() slog.Attr {
	return slog.Bool("indexers", o.indexers)
}
