// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTermPatterns_SingleTerm(t *testing.T) {
	pairs := []TermPair{{Original: "whitelist", Stemmed: "whitelist"}}
	patterns := CreateTermPatterns(pairs)
	require.Len(t, patterns, 1)
	assert.Contains(t, patterns[0].Pattern, "whitelist")
	assert.Equal(t, []int{0}, patterns[0].SortedIndices())
}

func TestCreateTermPatterns_GroupedByIndices(t *testing.T) {
	pairs := []TermPair{
		{Original: "ip", Stemmed: "ip"},
		{Original: "whitelisting", Stemmed: "whitelist"},
	}
	patterns := CreateTermPatterns(pairs)

	// One per-term pattern for each of the two terms, plus two compound
	// patterns (ip-then-whitelisting, whitelisting-then-ip).
	require.Len(t, patterns, 4)

	var single, compound int
	for _, p := range patterns {
		switch len(p.TermIndices) {
		case 1:
			single++
		case 2:
			compound++
		}
	}
	assert.Equal(t, 2, single)
	assert.Equal(t, 2, compound)

	for _, p := range patterns {
		if len(p.TermIndices) == 2 {
			assert.Regexp(t, regexp.MustCompile("ip"), p.Pattern)
			assert.Regexp(t, regexp.MustCompile("whitelist"), p.Pattern)
		}
	}
}

func TestCreateTermPatterns_CompoundCoversIdentifiers(t *testing.T) {
	pairs := PreprocessQuery("ip whitelisting", false)
	patterns := CreateTermPatterns(pairs)

	identifiers := []string{"ipwhitelisting", "ipWhitelist", "whitelistingIp", "whitelistIp"}
	for _, ident := range identifiers {
		matched := false
		for _, p := range patterns {
			if len(p.TermIndices) != 2 {
				continue
			}
			re, err := regexp.Compile("(?i)" + p.Pattern)
			require.NoError(t, err)
			if re.MatchString(ident) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "expected a compound pattern to match %q", ident)
	}
}

func TestCreateTermPatterns_PatternsCompile(t *testing.T) {
	pairs := PreprocessQuery("HTTP request handler", false)
	for _, p := range CreateTermPatterns(pairs) {
		_, err := regexp.Compile(p.Pattern)
		assert.NoError(t, err, "pattern %q must be valid RE2", p.Pattern)
	}
}

func TestRegexEscape(t *testing.T) {
	assert.Equal(t, `a\.b\*c`, regexEscape("a.b*c"))
	assert.Equal(t, "plain", regexEscape("plain"))
}
