// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"testing"

	"github.com/kraklabs/probe/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patternsFor(q string) []query.TermPattern {
	return query.CreateTermPatterns(query.PreprocessQuery(q, false))
}

func TestSearchFile_MatchesLinesAndCountsTermHits(t *testing.T) {
	content := []byte("package main\n\nfunc whitelistIP(ip string) bool {\n\treturn true\n}\n")
	patterns := patternsFor("ip whitelist")

	match, err := SearchFile("server.go", content, patterns, Options{MatchFilenames: true})
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Contains(t, match.MatchedLines, 2) // 0-based line of the func signature
	assert.Greater(t, match.TermHits[0], 0)
	assert.Greater(t, match.TermHits[1], 0)
}

func TestSearchFile_NoMatchReturnsNil(t *testing.T) {
	content := []byte("package main\n\nfunc unrelated() {}\n")
	patterns := patternsFor("whitelist")

	match, err := SearchFile("server.go", content, patterns, Options{})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestSearchFile_FilenameVirtualLine(t *testing.T) {
	content := []byte("package main\n\nfunc unrelated() {}\n")
	patterns := patternsFor("whitelist")

	match, err := SearchFile("whitelist_helpers.go", content, patterns, Options{MatchFilenames: true})
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.NotContains(t, match.MatchedLines, FilenameVirtualLine)
	assert.Equal(t, 0, len(match.MatchedLines))
	assert.Equal(t, 1, match.TermHits[0])
}

func TestSearchFile_ExcludeFilenamesExcludesMatchingFile(t *testing.T) {
	content := []byte("package main\n\nfunc whitelistThings() {}\n")
	patterns := patternsFor("whitelist")

	match, err := SearchFile("whitelist_helpers.go", content, patterns, Options{ExcludeFilenames: true})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestSearchFile_ExcludeFilenamesStillSearchesOtherFiles(t *testing.T) {
	content := []byte("package main\n\nfunc whitelistThings() {}\n")
	patterns := patternsFor("whitelist")

	match, err := SearchFile("server.go", content, patterns, Options{ExcludeFilenames: true})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Contains(t, match.MatchedLines, 2)
}

func TestIsTestPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"src/foo.rs", false},
		{"src/foo_test.rs", true},
		{"tests/integration.rs", true},
		{"__tests__/widget.test.js", true},
		{"spec/widget_spec.rb", true},
		{"widget.spec.ts", true},
		{"test_widget.py", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTestPath(tt.path))
		})
	}
}
