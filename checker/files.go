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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fillmore-labs.com/overloadguard/csharp"
)

// buildDirs hold build output, never sources.
var buildDirs = map[string]bool{"bin": true, "obj": true, "node_modules": true}

// collect returns the sorted, deduplicated C# files named by paths.
// Named files are always included unless excluded, directories are searched for *.cs files.
func collect(paths, exclude []string) ([]string, error) {
	var names []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("can't check %s: %w", path, err)
		}

		if !info.IsDir() {
			if !excluded(path, exclude) {
				names = append(names, filepath.Clean(path))
			}

			continue
		}

		err = filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if excluded(name, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if d.IsDir() {
				if name != path && skipDir(d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if d.Type().IsRegular() && csharp.IsSource(name) {
				names = append(names, name)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("can't walk %s: %w", path, err)
		}
	}

	slices.Sort(names)

	return slices.Compact(names), nil
}

func skipDir(base string) bool {
	return buildDirs[base] || strings.HasPrefix(base, ".")
}

// excluded reports whether the slash path or its base name matches one of the patterns.
func excluded(name string, patterns []string) bool {
	slash, base := filepath.ToSlash(filepath.Clean(name)), filepath.Base(name)

	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, slash); ok {
			return true
		}

		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}

	return false
}
