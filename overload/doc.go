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

// Package overload detects optional parameters hidden by a sibling overload.
//
// # Overview
//
// A member with an optional parameter at position i is shadowed when another
// member of the same overload group takes exactly i parameters whose types are
// identical, position by position, to the first i parameters of the member.
// A call supplying exactly i arguments then binds to the shorter overload and
// the default value of the optional parameter is never used:
//
//	class C {
//	    void Log(string message) { }
//	    void Log(string message, int level = 0) { }  // level is hidden
//	}
//
// # Architecture
//
// The detection is a pure function over resolved members, see [Detect].
// Symbol resolution is an injected capability, see [Resolver] and [Check],
// so any host that can map declarations to [Member] values drives the same
// algorithm.
//
// Type identity is nominal: two parameters match only when their [TypeID]s
// are equal. Assignability or conversions are never considered.
package overload
