// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeCodeBlocks_AdjacentFunctionsMerge(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 0, EndRow: 3, StartByte: 0, EndByte: 40, NodeType: "function_item"},
		{StartRow: 6, EndRow: 9, StartByte: 60, EndByte: 100, NodeType: "function_item"},
	}
	merged := MergeCodeBlocks(blocks, 5)

	if assert.Len(t, merged, 1) {
		assert.Equal(t, 0, merged[0].StartRow)
		assert.Equal(t, 9, merged[0].EndRow)
	}
}

func TestMergeCodeBlocks_DistantFunctionsDoNotMerge(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 0, EndRow: 3, NodeType: "function_item"},
		{StartRow: 14, EndRow: 17, NodeType: "function_item"},
	}
	merged := MergeCodeBlocks(blocks, 5)
	assert.Len(t, merged, 2)
}

func TestMergeCodeBlocks_ContainerThreshold(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 0, EndRow: 4, NodeType: "struct_type"},
		{StartRow: 21, EndRow: 27, NodeType: "struct_type"},
	}
	merged := MergeCodeBlocks(blocks, 5)

	if assert.Len(t, merged, 1) {
		assert.Equal(t, 0, merged[0].StartRow)
		assert.Equal(t, 27, merged[0].EndRow)
	}
}

func TestMergeCodeBlocks_ContainerThresholdScalesWithOverride(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 0, EndRow: 4, NodeType: "struct_type"},
		{StartRow: 40, EndRow: 45, NodeType: "struct_type"},
	}
	merged := MergeCodeBlocks(blocks, 40)
	if assert.Len(t, merged, 1) {
		assert.Equal(t, 0, merged[0].StartRow)
		assert.Equal(t, 45, merged[0].EndRow)
	}
}

func TestMergeCodeBlocks_Overlapping(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 0, EndRow: 10, StartByte: 0, EndByte: 100, NodeType: "function_item"},
		{StartRow: 5, EndRow: 15, StartByte: 60, EndByte: 150, NodeType: "function_item"},
	}
	merged := MergeCodeBlocks(blocks, 5)
	if assert.Len(t, merged, 1) {
		assert.Equal(t, 0, merged[0].StartByte)
		assert.Equal(t, 150, merged[0].EndByte)
	}
}

func TestMergeCodeBlocks_Idempotent(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 0, EndRow: 3, NodeType: "function_item"},
		{StartRow: 4, EndRow: 6, NodeType: "function_item"},
		{StartRow: 30, EndRow: 35, NodeType: "function_item"},
	}
	once := MergeCodeBlocks(blocks, 5)
	twice := MergeCodeBlocks(once, 5)
	assert.Equal(t, once, twice)
}

func TestMergeCodeBlocks_SortedAndNonOverlapping(t *testing.T) {
	blocks := []CodeBlock{
		{StartRow: 30, EndRow: 35, NodeType: "function_item"},
		{StartRow: 0, EndRow: 3, NodeType: "function_item"},
		{StartRow: 40, EndRow: 45, NodeType: "function_item"},
	}
	merged := MergeCodeBlocks(blocks, 5)
	for i := 1; i < len(merged); i++ {
		assert.Less(t, merged[i-1].EndRow, merged[i].StartRow)
	}
}
