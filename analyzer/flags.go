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
	"flag"

	"fillmore-labs.com/overloadguard/internal/config"
	"fillmore-labs.com/overloadguard/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, o *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(subjectValue(&o.Subjects, config.Methods), "methods", "check method overloads")
	flags.Var(subjectValue(&o.Subjects, config.Indexers), "indexers", "check indexer overloads")
	flags.Var(behaviorValue(&o.Behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(behaviorValue(&o.Behavior, config.SkipSyntaxErrors), "skip-errors", "skip files with syntax errors")
}

func subjectValue(flags *config.Subjects, value config.Subject) boolValue[config.Subject, *config.Subjects] {
	return boolValue[config.Subject, *config.Subjects]{flags: flags, value: value}
}

func behaviorValue(flags *config.Behavior, value config.Config) boolValue[config.Config, *config.Behavior] {
	return boolValue[config.Config, *config.Behavior]{flags: flags, value: value}
}
