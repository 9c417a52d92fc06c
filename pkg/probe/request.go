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

package probe

import "github.com/kraklabs/probe/pkg/rank"

// Request is the whole configuration surface of the core: a Run invocation
// is a pure function of a Request and the filesystem state under Paths.
// There is no config file and no persisted state between calls.
type Request struct {
	Query string
	Paths []string

	Reranker rank.Reranker

	// Exact disables camelCase splitting, stop-word removal, and stemming
	// for both the query and block tokenization: each query word is
	// matched literally.
	Exact bool

	// FrequencySearch mirrors the original CLI's "--frequency" flag,
	// which defaults to true. Effective exact mode is Exact ||
	// !FrequencySearch, so explicitly setting FrequencySearch to false
	// forces exact matching even when Exact itself is false.
	FrequencySearch bool

	// FilesOnly skips block extraction entirely: each matched file
	// becomes a single whole-file candidate.
	FilesOnly bool

	// DryRun keeps every other field populated but blanks Content on
	// the returned blocks, so callers see what would be returned
	// without reading the block bodies.
	DryRun bool

	AllowTests       bool
	ExcludeFilenames bool
	IgnorePatterns   []string

	MaxResults *int
	MaxBytes   *int
	MaxTokens  *int

	MergeEnabled   bool
	MergeThreshold *int
}

// effectiveExact resolves the Exact/FrequencySearch overlap into a single
// boolean used throughout the pipeline.
func (r Request) effectiveExact() bool {
	return r.Exact || !r.FrequencySearch
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// Diagnostic records a non-fatal failure encountered while processing one
// file, surfaced alongside results rather than aborting the run.
type Diagnostic struct {
	Path  string
	Stage string
	Err   error
}

// Result is perform_probe's output: the ranked, limited block list plus
// bookkeeping about why anything was cut and whether the run was
// cancelled before completion.
type Result struct {
	Blocks      []rank.RankedBlock
	TruncatedBy map[string]bool
	Partial     bool
	Diagnostics []Diagnostic
}
