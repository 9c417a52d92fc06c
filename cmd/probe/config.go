// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

const defaultsFileName = ".probe.yaml"

// Defaults holds optional CLI-flag defaults read from a .probe.yaml file.
// Unlike the teacher's .cie/project.yaml, this is not a required project
// configuration: probe's pipeline is a pure function of pkg/probe.Request
// (see SPEC_FULL.md's Configuration note), so a missing or unreadable file
// just falls back to the zero Defaults and the CLI's own flag defaults.
type Defaults struct {
	Reranker       string   `yaml:"reranker,omitempty"`
	Format         string   `yaml:"format,omitempty"`
	Ignore         []string `yaml:"ignore,omitempty"`
	AllowTests     bool     `yaml:"allow_tests,omitempty"`
	MergeThreshold *int     `yaml:"merge_threshold,omitempty"`
	MaxResults     *int     `yaml:"max_results,omitempty"`
	MaxBytes       *int     `yaml:"max_bytes,omitempty"`
	MaxTokens      *int     `yaml:"max_tokens,omitempty"`
}

// loadDefaults reads path (or ./.probe.yaml when path is empty) and
// returns its contents, or a zero Defaults if the file doesn't exist or
// fails to parse. Unlike LoadConfig in the teacher, a bad defaults file
// is not fatal here — it only seeds flag defaults, never pipeline
// behavior the user didn't ask for.
func loadDefaults(path string) *Defaults {
	if path == "" {
		path = defaultsFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &Defaults{}
	}

	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return &Defaults{}
	}
	return &d
}

func (d *Defaults) rerankerOr(fallback string) string {
	if d != nil && d.Reranker != "" {
		return d.Reranker
	}
	return fallback
}

func (d *Defaults) formatOr(fallback string) string {
	if d != nil && d.Format != "" {
		return d.Format
	}
	return fallback
}
