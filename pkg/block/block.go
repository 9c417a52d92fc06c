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

package block

import "sort"

// DefaultBaseThreshold and DefaultContainerThreshold are the merge-gap
// defaults used when the caller doesn't override them via --merge-threshold.
const (
	DefaultBaseThreshold      = 5
	DefaultContainerThreshold = 20
)

// CodeBlock is a single syntactic region of a file.
type CodeBlock struct {
	StartRow  int
	EndRow    int
	StartByte int
	EndByte   int
	NodeType  string
}

// containerKinds are node kinds whose body is a sequence of declarations
// rather than statements, and so merge across a wider line gap.
var containerKinds = map[string]struct{}{
	"struct_type": {}, "struct_item": {}, "struct_specifier": {},
	"enum_type": {}, "enum_item": {}, "enum_specifier": {}, "enum_declaration": {},
	"class_declaration": {}, "class_specifier": {}, "class_definition": {}, "class": {},
	"impl_item":             {},
	"interface_type":        {},
	"interface_declaration": {},
	"trait_item":            {},
	"trait_declaration":     {},
	"mod_item":              {},
	"module":                {},
	"namespace_definition":  {},
	"namespace_declaration": {},
}

// isContainerKind reports whether nodeType denotes a container kind.
func isContainerKind(nodeType string) bool {
	_, ok := containerKinds[nodeType]
	return ok
}

// MergeCodeBlocks merges overlapping or nearby blocks into contiguous
// regions. baseThreshold overrides the default line-gap threshold used
// between non-container blocks; the container threshold scales with it
// (max(baseThreshold, DefaultContainerThreshold)) per spec. Input order is
// not assumed; the result is sorted by StartRow, pairwise non-overlapping,
// and covers a byte-range superset of the input.
func MergeCodeBlocks(blocks []CodeBlock, baseThreshold int) []CodeBlock {
	if len(blocks) == 0 {
		return nil
	}
	if baseThreshold <= 0 {
		baseThreshold = DefaultBaseThreshold
	}
	containerThreshold := baseThreshold
	if containerThreshold < DefaultContainerThreshold {
		containerThreshold = DefaultContainerThreshold
	}

	sorted := make([]CodeBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartRow < sorted[j].StartRow })

	var merged []CodeBlock
	current := sorted[0]

	for _, next := range sorted[1:] {
		threshold := baseThreshold
		if isContainerKind(current.NodeType) || isContainerKind(next.NodeType) {
			threshold = containerThreshold
		}

		overlaps := next.StartRow <= current.EndRow
		withinGap := next.StartRow-current.EndRow <= threshold

		if overlaps || withinGap {
			current = mergeTwo(current, next)
			continue
		}

		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}

func mergeTwo(a, b CodeBlock) CodeBlock {
	nodeType := a.NodeType
	if isContainerKind(b.NodeType) && !isContainerKind(a.NodeType) {
		nodeType = b.NodeType
	}

	return CodeBlock{
		StartRow:  min(a.StartRow, b.StartRow),
		EndRow:    max(a.EndRow, b.EndRow),
		StartByte: min(a.StartByte, b.StartByte),
		EndByte:   max(a.EndByte, b.EndByte),
		NodeType:  nodeType,
	}
}
