// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessQuery_Exact(t *testing.T) {
	pairs := PreprocessQuery("IP Whitelisting", true)
	require := []TermPair{{Original: "ip", Stemmed: "ip"}, {Original: "whitelisting", Stemmed: "whitelisting"}}
	assert.Equal(t, require, pairs)
}

func TestPreprocessQuery_NonExact(t *testing.T) {
	pairs := PreprocessQuery("ip whitelisting", false)
	assert.Len(t, pairs, 2)
	assert.Equal(t, "ip", pairs[0].Original)
	assert.Equal(t, "whitelisting", pairs[1].Original)
	assert.NotEqual(t, pairs[1].Original, pairs[1].Stemmed, "whitelisting should stem to something shorter")
}

func TestPreprocessQuery_DropsStopWords(t *testing.T) {
	pairs := PreprocessQuery("the use of whitelisting", false)
	var originals []string
	for _, p := range pairs {
		originals = append(originals, p.Original)
	}
	assert.NotContains(t, originals, "the")
	assert.NotContains(t, originals, "of")
	assert.Contains(t, originals, "use")
	assert.Contains(t, originals, "whitelisting")
}

func TestSplitCamelCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple camel", "ipWhitelist", []string{"ip", "whitelist"}},
		{"pascal case", "IPWhitelist", []string{"ip", "whitelist"}},
		{"acronym boundary", "HTTPServer", []string{"http", "server"}},
		{"snake case", "ip_whitelist", []string{"ip", "whitelist"}},
		{"kebab case", "ip-whitelist", []string{"ip", "whitelist"}},
		{"lowercase word", "whitelist", []string{"whitelist"}},
		{"digit boundary", "ipv4Whitelist", []string{"ipv", "4", "whitelist"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCamelCase(tt.in))
		})
	}
}

func TestPreprocessQuery_TokenizationStable(t *testing.T) {
	a := PreprocessQuery("ipWhitelisting", false)
	b := PreprocessQuery("ip whitelisting", false)
	assert.Equal(t, len(b), len(a))
	for i := range a {
		assert.Equal(t, b[i].Stemmed, a[i].Stemmed)
	}
}
