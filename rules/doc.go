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

// Package rules declares the rules reported by overloadguard analyzers.
//
// A [Descriptor] carries the stable identifier of a rule, its default [Severity]
// and its message format. Analyzers report the identifier as the category of an
// [golang.org/x/tools/go/analysis.Diagnostic], drivers look up the descriptor by
// category to classify and render the diagnostic.
package rules
