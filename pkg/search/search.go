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

package search

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kraklabs/probe/pkg/query"
)

// FilenameVirtualLine is the sentinel line number used to record a pattern
// hit against the file's basename rather than its content. It is never
// added to MatchedLines.
const FilenameVirtualLine = -1

// FileMatch is the result of scanning one file against a set of term
// patterns. MatchedLines holds every 0-based line number where at least
// one pattern matched; TermHits counts, per query term index, the number
// of distinct lines (including the filename virtual line) where a
// pattern covering that term matched.
type FileMatch struct {
	Path         string
	MatchedLines map[int]struct{}
	TermHits     map[int]int
}

// Options controls SearchFile's filename-matching behavior.
type Options struct {
	// MatchFilenames enables the basename-as-virtual-line contribution.
	// Defaults to true in spec; callers that want it off should also set
	// ExcludeFilenames when that's the intent, since the two flags are
	// related but not identical (see ExcludeFilenames).
	MatchFilenames bool
	// ExcludeFilenames disables the virtual-line contribution entirely
	// AND causes SearchFile to return (nil, nil) for any file whose
	// basename matches one of the single-term patterns, regardless of
	// whether its content also matches.
	ExcludeFilenames bool
}

// SearchFile scans content against patterns and returns the resulting
// FileMatch, or (nil, nil) if neither a content line nor the basename
// matched (or the file was excluded by its filename). It compiles patterns
// itself via CompilePatterns. A basename-only match returns a FileMatch
// with TermHits filled in and an empty MatchedLines.
func SearchFile(path string, content []byte, patterns []query.TermPattern, opts Options) (*FileMatch, error) {
	compiled, err := CompilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	lowerBase := strings.ToLower(base)

	if opts.ExcludeFilenames && basenameMatchesAnyTerm(lowerBase, patterns, compiled) {
		return nil, nil
	}

	lineStarts := lineStartOffsets(content)

	matchedLines := make(map[int]struct{})
	termHits := make(map[int]int)
	countedLines := make(map[int]map[int]struct{}) // term idx -> set of lines already counted

	recordHit := func(line int, indices map[int]struct{}) {
		for idx := range indices {
			if countedLines[idx] == nil {
				countedLines[idx] = make(map[int]struct{})
			}
			if _, already := countedLines[idx][line]; already {
				continue
			}
			countedLines[idx][line] = struct{}{}
			termHits[idx]++
		}
	}

	for i, re := range compiled {
		for _, loc := range re.FindAllIndex(content, -1) {
			line := lineForOffset(lineStarts, loc[0])
			matchedLines[line] = struct{}{}
			recordHit(line, patterns[i].TermIndices)
		}
	}

	matchFilenames := opts.MatchFilenames && !opts.ExcludeFilenames
	if matchFilenames {
		for i, re := range compiled {
			if re.MatchString(lowerBase) {
				recordHit(FilenameVirtualLine, patterns[i].TermIndices)
			}
		}
	}

	if len(matchedLines) == 0 && len(termHits) == 0 {
		return nil, nil
	}

	return &FileMatch{
		Path:         path,
		MatchedLines: matchedLines,
		TermHits:     termHits,
	}, nil
}

// CompilePatterns compiles each TermPattern's regex, case-insensitively so
// identifier casing never defeats a match.
func CompilePatterns(patterns []query.TermPattern) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p.Pattern, err)
		}
		compiled[i] = re
	}
	return compiled, nil
}

func basenameMatchesAnyTerm(lowerBase string, patterns []query.TermPattern, compiled []*regexp.Regexp) bool {
	for i, p := range patterns {
		if len(p.TermIndices) != 1 {
			continue
		}
		if compiled[i].MatchString(lowerBase) {
			return true
		}
	}
	return false
}

// lineStartOffsets returns, for content, the byte offset at which each
// 0-based line begins.
func lineStartOffsets(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineForOffset returns the 0-based line number containing byte offset.
func lineForOffset(starts []int, offset int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	return i - 1
}
