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

package query

import (
	"sort"
	"strconv"
	"strings"
)

// TermPattern is a compiled-ready regex alternative paired with the set of
// query term indices it covers. TermIndices is used downstream to decide
// which query terms a file match actually satisfied, so ranking can score
// partial matches.
type TermPattern struct {
	Pattern     string
	TermIndices map[int]struct{}
}

// CreateTermPatterns builds the regex alternatives used to search file
// content for pairs.
//
// For each term it emits one pattern matching either the original or
// stemmed form, anchored so the match starts or ends on a word boundary.
// When there is more than one term, it additionally emits concatenated
// "compound" patterns covering every ordered pair of distinct terms (using
// both original and stemmed spellings), grouped by which pair of term
// indices they cover so "ip whitelisting" also matches "ipWhitelist",
// "whitelistIp", "ipwhitelisting", and "whitelistingip" in source
// identifiers.
func CreateTermPatterns(pairs []TermPair) []TermPattern {
	var patterns []TermPattern

	for idx, p := range pairs {
		base := regexEscape(p.Original)
		if p.Original != p.Stemmed {
			base = "(" + regexEscape(p.Original) + "|" + regexEscape(p.Stemmed) + ")"
		}
		patterns = append(patterns, TermPattern{
			Pattern:     "(\\b" + base + "|" + base + "\\b)",
			TermIndices: map[int]struct{}{idx: {}},
		})
	}

	if len(pairs) > 1 {
		type termForm struct {
			text string
			idx  int
		}
		var forms []termForm
		for idx, p := range pairs {
			forms = append(forms, termForm{p.Original, idx}, termForm{p.Stemmed, idx})
		}

		// group concatenated permutations by the (ordered-distinct) pair
		// of term indices they cover, deduplicating identical (text,idx)
		// permutations the way itertools' unique() does in the original.
		type key struct{ a, b int }
		groups := make(map[key][]string)
		var order []key
		seenPerm := make(map[string]struct{})

		for i := range forms {
			for j := range forms {
				if i == j {
					continue
				}
				a, b := forms[i], forms[j]
				if a.idx == b.idx {
					continue
				}
				permKey := a.text + "\x00" + b.text + "\x00" + strconv.Itoa(a.idx) + "\x00" + strconv.Itoa(b.idx)
				if _, dup := seenPerm[permKey]; dup {
					continue
				}
				seenPerm[permKey] = struct{}{}

				k := key{a.idx, b.idx}
				if _, ok := groups[k]; !ok {
					order = append(order, k)
				}
				groups[k] = append(groups[k], regexEscape(a.text)+regexEscape(b.text))
			}
		}

		for _, k := range order {
			group := groups[k]
			indices := map[int]struct{}{k.a: {}, k.b: {}}
			if len(group) == 1 {
				patterns = append(patterns, TermPattern{Pattern: group[0], TermIndices: indices})
				continue
			}
			patterns = append(patterns, TermPattern{
				Pattern:     "(" + strings.Join(group, "|") + ")",
				TermIndices: indices,
			})
		}
	}

	return patterns
}

var regexSpecial = map[rune]struct{}{
	'.': {}, '^': {}, '$': {}, '*': {}, '+': {}, '?': {}, '(': {}, ')': {},
	'[': {}, ']': {}, '{': {}, '}': {}, '|': {}, '\\': {},
}

// regexEscape escapes RE2 metacharacters so literal query terms can be
// embedded in a larger pattern.
func regexEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if _, special := regexSpecial[r]; special {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SortedIndices returns a TermPattern's covered term indices in ascending
// order, useful for stable test assertions and debug logging.
func (p TermPattern) SortedIndices() []int {
	out := make([]int, 0, len(p.TermIndices))
	for idx := range p.TermIndices {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
