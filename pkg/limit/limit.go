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

package limit

import (
	"math"

	"github.com/kraklabs/probe/pkg/rank"
)

// Reasons Apply records in its truncatedBy return value.
const (
	ByResults = "results"
	ByBytes   = "bytes"
	ByTokens  = "tokens"
)

// Apply truncates blocks (already sorted by score descending) to at most
// maxResults entries, then greedily keeps entries from the front while
// cumulative bytes and estimated tokens both stay within budget. A zero or
// negative limit means "unbounded" for that dimension. Token count is
// estimated as ceil(len(content)/4) per spec.md §4.5, since this core has
// no access to a model-specific tokenizer.
func Apply(blocks []rank.RankedBlock, maxResults, maxBytes, maxTokens int) (kept []rank.RankedBlock, truncatedBy map[string]bool) {
	truncatedBy = make(map[string]bool)

	working := blocks
	if maxResults > 0 && len(working) > maxResults {
		truncatedBy[ByResults] = true
		working = working[:maxResults]
	}

	if maxBytes <= 0 && maxTokens <= 0 {
		return append([]rank.RankedBlock(nil), working...), truncatedBy
	}

	var cumBytes, cumTokens int
	kept = make([]rank.RankedBlock, 0, len(working))

	for _, b := range working {
		size := len(b.Content)
		tokens := estimateTokens(b.Content)

		overBytes := maxBytes > 0 && cumBytes+size > maxBytes
		overTokens := maxTokens > 0 && cumTokens+tokens > maxTokens

		if overBytes {
			truncatedBy[ByBytes] = true
		}
		if overTokens {
			truncatedBy[ByTokens] = true
		}
		if overBytes || overTokens {
			continue
		}

		kept = append(kept, b)
		cumBytes += size
		cumTokens += tokens
	}

	return kept, truncatedBy
}

func estimateTokens(content string) int {
	return int(math.Ceil(float64(len(content)) / 4))
}
