// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package limit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/probe/pkg/block"
	"github.com/kraklabs/probe/pkg/rank"
)

func rankedBlock(file string, score float64, content string) rank.RankedBlock {
	return rank.RankedBlock{
		CodeBlock: block.CodeBlock{NodeType: "function_item"},
		FilePath:  file,
		Score:     score,
		Content:   content,
	}
}

func TestApply_NoLimitsKeepsEverything(t *testing.T) {
	blocks := []rank.RankedBlock{
		rankedBlock("a.go", 3, "aaa"),
		rankedBlock("b.go", 2, "bbb"),
	}
	kept, truncatedBy := Apply(blocks, 0, 0, 0)
	assert.Equal(t, blocks, kept)
	assert.Empty(t, truncatedBy)
}

func TestApply_MaxResultsTruncates(t *testing.T) {
	blocks := []rank.RankedBlock{
		rankedBlock("a.go", 3, "aaa"),
		rankedBlock("b.go", 2, "bbb"),
		rankedBlock("c.go", 1, "ccc"),
	}
	kept, truncatedBy := Apply(blocks, 2, 0, 0)
	require.Len(t, kept, 2)
	assert.Equal(t, "a.go", kept[0].FilePath)
	assert.Equal(t, "b.go", kept[1].FilePath)
	assert.True(t, truncatedBy[ByResults])
}

func TestApply_MaxBytesSkipsOverBudgetButContinues(t *testing.T) {
	blocks := []rank.RankedBlock{
		rankedBlock("big.go", 3, strings.Repeat("x", 100)),
		rankedBlock("small.go", 2, "tiny"),
	}
	kept, truncatedBy := Apply(blocks, 0, 50, 0)
	require.Len(t, kept, 1)
	assert.Equal(t, "small.go", kept[0].FilePath)
	assert.True(t, truncatedBy[ByBytes])
}

func TestApply_MaxTokensSkipsOverBudgetButContinues(t *testing.T) {
	blocks := []rank.RankedBlock{
		rankedBlock("big.go", 3, strings.Repeat("x", 400)),
		rankedBlock("small.go", 2, "tiny"),
	}
	kept, truncatedBy := Apply(blocks, 0, 0, 10)
	require.Len(t, kept, 1)
	assert.Equal(t, "small.go", kept[0].FilePath)
	assert.True(t, truncatedBy[ByTokens])
}

func TestApply_BothBudgetsMustHold(t *testing.T) {
	blocks := []rank.RankedBlock{
		rankedBlock("a.go", 3, strings.Repeat("x", 20)),
		rankedBlock("b.go", 2, strings.Repeat("y", 20)),
	}
	kept, truncatedBy := Apply(blocks, 0, 25, 1000)
	require.Len(t, kept, 1)
	assert.Equal(t, "a.go", kept[0].FilePath)
	assert.True(t, truncatedBy[ByBytes])
}

func TestApply_TokenEstimateIsCharsOverFourCeiling(t *testing.T) {
	blocks := []rank.RankedBlock{rankedBlock("a.go", 1, "12345")}
	_, truncatedBy := Apply(blocks, 0, 0, 1)
	assert.True(t, truncatedBy[ByTokens])

	keptOk, truncatedOk := Apply(blocks, 0, 0, 2)
	assert.Len(t, keptOk, 1)
	assert.False(t, truncatedOk[ByTokens])
}

func TestApply_PreservesScoreOrder(t *testing.T) {
	blocks := []rank.RankedBlock{
		rankedBlock("a.go", 5, "a"),
		rankedBlock("b.go", 4, "b"),
		rankedBlock("c.go", 3, "c"),
	}
	kept, _ := Apply(blocks, 0, 0, 0)
	for i := 1; i < len(kept); i++ {
		assert.GreaterOrEqual(t, kept[i-1].Score, kept[i].Score)
	}
}
