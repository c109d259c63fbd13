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

package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrInvalid is returned for configuration files that can't be read or contain invalid values.
var ErrInvalid = errors.New("invalid configuration")

// FileName is the base name of the configuration file searched in the working directory.
// Any extension viper supports is accepted, e.g. ".overloadguard.yaml".
const FileName = ".overloadguard"

// File is the content of a configuration file. Settings not present in the file are nil.
type File struct {
	// Methods enables method checks.
	Methods *bool `mapstructure:"methods"`
	// Indexers enables indexer checks.
	Indexers *bool `mapstructure:"indexers"`
	// Generated enables checks of generated files.
	Generated *bool `mapstructure:"generated"`
	// SkipErrors skips files with syntax errors.
	SkipErrors *bool `mapstructure:"skip-errors"`
	// Jobs limits the number of files processed concurrently.
	Jobs *int `mapstructure:"jobs"`
	// Format selects the output format.
	Format *string `mapstructure:"format"`
	// Exclude lists glob patterns of paths not to check.
	Exclude []string `mapstructure:"exclude"`
}

// Load reads the configuration file at path.
// An empty path searches for [FileName] in dir, a missing file yields an empty configuration.
func Load(path, dir string) (*File, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return &File{}, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var f File
	if err := v.UnmarshalExact(&f); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalid, v.ConfigFileUsed(), err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", v.ConfigFileUsed(), err)
	}

	return &f, nil
}

// Validate checks the values of the configuration.
func (f *File) Validate() error {
	if f.Jobs != nil && *f.Jobs < 0 {
		return fmt.Errorf("%w: negative jobs %d", ErrInvalid, *f.Jobs)
	}

	for _, pattern := range f.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: exclude pattern %q: %w", ErrInvalid, pattern, err)
		}
	}

	return nil
}
