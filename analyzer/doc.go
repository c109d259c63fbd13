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

// Package analyzer implements the overloadguard static analysis pass.
//
// # Overview
//
// OverloadGuard detects C# optional parameters that can never be omitted
// because a sibling overload takes exactly the preceding parameters.
//
// # Example
//
//	class Logger {
//	    public void Log(string message) { }
//	    public void Log(string message, int level = 0) { }  // level is hidden
//	}
//
// A call Log("x") always binds to the first overload, so the default value of
// level is dead. The diagnostic is reported at the parameter declaration and
// names the hiding overload as related information.
//
// # Checked Declarations
//
//   - Methods: all methods of a type with the same name form an overload group.
//     Explicit interface implementations form their own group.
//   - Indexers: all indexers of a type form one overload group.
//
// Parameter types are compared by identity, conversions are never considered.
package analyzer
