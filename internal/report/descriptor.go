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

import "fillmore-labs.com/overloadguard/rules"

// Descriptor is the rule reported for optional parameters hidden by an overload.
var Descriptor = &rules.Descriptor{
	ID:               "overloadguard.MethodOverloadWithOptionalParameter",
	Title:            "Method with optional parameter is hidden by overload",
	MessageFormat:    "{0} with optional parameter is hidden by overload",
	Category:         "CodeQualityIssues",
	Severity:         rules.Warning,
	EnabledByDefault: true,
	HelpURL:          "https://pkg.go.dev/fillmore-labs.com/overloadguard/analyzer",
}

// relatedMessage annotates the overload hiding a parameter.
const relatedMessage = "Hidden by this overload"
