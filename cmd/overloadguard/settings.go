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
	"fillmore-labs.com/overloadguard/analyzer"
	"fillmore-labs.com/overloadguard/internal/config"
)

// analyzerOptions converts a configuration file into a list of [analyzer.Option].
// Only settings present in the file are converted.
func analyzerOptions(f *config.File) analyzer.Options {
	var opts analyzer.Options

	opts = appendOption(opts, f.Methods, analyzer.WithMethods)
	opts = appendOption(opts, f.Indexers, analyzer.WithIndexers)
	opts = appendOption(opts, f.Generated, analyzer.WithGenerated)
	opts = appendOption(opts, f.SkipErrors, analyzer.WithSkipErrors)

	return opts
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts analyzer.Options, value *T, constructor func(T) analyzer.Option) analyzer.Options {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
