// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/probe/pkg/rank"

	fixture "github.com/kraklabs/probe/internal/testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	return fixture.WriteFile(t, dir, name, content)
}

func TestRun_CamelCaseIdentifierScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rules.go", `package rules

func apply_ip_whitelist_rules() {
	// body
	// body
	// body
}

func ipWhitelistingConfig() {
	// body
}
`)

	req := Request{
		Query:           "ip whitelisting",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.Partial)
	assert.GreaterOrEqual(t, len(result.Blocks), 1)
	for _, b := range result.Blocks {
		assert.Greater(t, b.Score, 0.0)
	}
}

func TestRun_MergeAdjacencyScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "parse.go", `package p

func parse_header() {
	return
}

func parse_body() {
	return
}
`)

	threshold := 5
	req := Request{
		Query:           "parse",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
		MergeEnabled:    true,
		MergeThreshold:  &threshold,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
}

func TestRun_TestExclusionScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/foo.go", `package src

func validateInput() bool {
	return true
}
`)
	// validateHelper is a plain helper, not a Test*/Benchmark*/Example*
	// function, so goIsTestNode never flags it at the node level: the
	// only thing that can exclude it is file-path filtering on
	// "src/foo_test.go" itself.
	writeFile(t, dir, "src/foo_test.go", `package src

func validateHelper() bool {
	return validateInput()
}
`)

	req := Request{
		Query:           "validate",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      false,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Blocks)
	for _, b := range result.Blocks {
		assert.NotContains(t, b.FilePath, "_test.go")
	}
}

func TestRun_TestExclusionScenario_AllowTestsIncludesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/foo_test.go", `package src

func validateHelper() bool {
	return true
}
`)

	req := Request{
		Query:           "validate",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Blocks)
	assert.Contains(t, result.Blocks[0].FilePath, "_test.go")
}

func TestRun_ExactModeScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "conns.go", `package conns

func connection() {}

func connections() {}
`)

	req := Request{
		Query:           "connections",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		Exact:           true,
		FrequencySearch: false,
		AllowTests:      true,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, result.Blocks)
	for _, b := range result.Blocks {
		assert.NotContains(t, b.Content, "func connection()")
	}
}

func TestRun_FilesOnlySkipsBlockExtraction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "widget.go", `package widget

func handleRequest() {}
`)

	req := Request{
		Query:           "handle request",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
		FilesOnly:       true,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, "file", result.Blocks[0].NodeType)
}

func TestRun_DryRunBlanksContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "widget.go", `package widget

func handleRequest() {}
`)

	req := Request{
		Query:           "handle request",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
		DryRun:          true,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	for _, b := range result.Blocks {
		assert.Empty(t, b.Content)
	}
}

func TestRun_MaxResultsLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "many.go", `package many

func handleRequestOne() {}

func handleRequestTwo() {}

func handleRequestThree() {}
`)

	one := 1
	req := Request{
		Query:           "handle request",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
		MaxResults:      &one,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Blocks, 1)
	assert.True(t, result.TruncatedBy["results"])
}

func TestRun_NoMatchesReturnsEmptyResult(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.go", "package empty\n")

	req := Request{
		Query:           "nonexistentterm",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
	}

	result, err := Run(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.Blocks)
	assert.False(t, result.Partial)
}

func TestRun_CancelledContextReturnsPartial(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, dir, filepathN(i), "package p\n\nfunc handleRequest() {}\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := Request{
		Query:           "handle request",
		Paths:           []string{dir},
		Reranker:        rank.BM25,
		FrequencySearch: true,
		AllowTests:      true,
	}

	result, err := Run(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Partial)
}

func filepathN(i int) string {
	return "pkg" + string(rune('a'+i)) + "/file.go"
}
