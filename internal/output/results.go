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

package output

import (
	"sort"

	"github.com/kraklabs/probe/pkg/probe"
)

// BlockJSON is one ranked code block in the spec.md §6 JSON schema.
type BlockJSON struct {
	File         string  `json:"file"`
	StartLine    int     `json:"start_line"`
	EndLine      int     `json:"end_line"`
	NodeType     string  `json:"node_type"`
	Score        float64 `json:"score"`
	Content      string  `json:"content"`
	MatchedTerms []int   `json:"matched_terms"`
}

// SearchResultsJSON is the top-level JSON document a search command emits
// in --format json mode: { "results": [...], "truncated_by": [...] }.
type SearchResultsJSON struct {
	Results     []BlockJSON `json:"results"`
	TruncatedBy []string    `json:"truncated_by"`
}

// FromResult converts a pkg/probe.Result into the wire schema spec.md §6
// defines, sorting matched term indices and turning the truncated_by set
// into a deterministically ordered slice.
func FromResult(result *probe.Result) SearchResultsJSON {
	sr := SearchResultsJSON{Results: make([]BlockJSON, 0, len(result.Blocks))}

	for _, b := range result.Blocks {
		terms := make([]int, 0, len(b.MatchedTermIndices))
		for idx := range b.MatchedTermIndices {
			terms = append(terms, idx)
		}
		sort.Ints(terms)

		sr.Results = append(sr.Results, BlockJSON{
			File:         b.FilePath,
			StartLine:    b.StartRow,
			EndLine:      b.EndRow,
			NodeType:     b.NodeType,
			Score:        b.Score,
			Content:      b.Content,
			MatchedTerms: terms,
		})
	}

	for reason, hit := range result.TruncatedBy {
		if hit {
			sr.TruncatedBy = append(sr.TruncatedBy, reason)
		}
	}
	sort.Strings(sr.TruncatedBy)

	return sr
}
