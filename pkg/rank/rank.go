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

package rank

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kraklabs/probe/pkg/block"
	"github.com/kraklabs/probe/pkg/query"
)

// Reranker selects the scoring formula Rank applies.
type Reranker string

const (
	TFIDF   Reranker = "tfidf"
	BM25    Reranker = "bm25"
	Hybrid  Reranker = "hybrid"
	Hybrid2 Reranker = "hybrid2"
)

const (
	bm25K1 = 1.2
	bm25B  = 0.75

	hybridAlpha  = 0.7
	hybridBeta   = 0.3
	hybrid2Alpha = 0.5
	hybrid2Beta  = 0.5

	filenameBoost = 1.10
)

// Candidate is a CodeBlock awaiting a score, carrying the file it came from
// and its extracted text.
type Candidate struct {
	block.CodeBlock
	FilePath string
	Content  string
}

// RankedBlock is a Candidate annotated with its final score and the query
// term indices it actually matched once tokenized.
type RankedBlock struct {
	block.CodeBlock
	FilePath           string
	Score              float64
	MatchedTermIndices map[int]struct{}
	Content            string
}

// Rank scores candidates against queryPairs using reranker, returning them
// sorted by score descending with ties broken by (file_path, start_row)
// ascending. exact must match the mode PreprocessQuery was called with, so
// block content is tokenized the same way the query was: camelCase split,
// lowercased, stop-words kept or dropped, stemmed or left literal.
func Rank(candidates []Candidate, queryPairs []query.TermPair, reranker Reranker, exact bool) []RankedBlock {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	termFreqs := make([][]int, n)
	lengths := make([]int, n)
	for ci, c := range candidates {
		tokens := query.TokenizeContent(c.Content, exact)
		lengths[ci] = len(tokens)

		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}

		tf := make([]int, len(queryPairs))
		for ti, pair := range queryPairs {
			tf[ti] = counts[pair.Stemmed]
		}
		termFreqs[ci] = tf
	}

	docFreq := make([]int, len(queryPairs))
	for _, tf := range termFreqs {
		for ti, f := range tf {
			if f > 0 {
				docFreq[ti]++
			}
		}
	}

	avgLen := 0.0
	for _, l := range lengths {
		avgLen += float64(l)
	}
	avgLen /= float64(n)

	tfidfScores := make([]float64, n)
	bm25Scores := make([]float64, n)
	coverage := make([]float64, n)
	matched := make([]map[int]struct{}, n)

	for ci := range candidates {
		tfidfScores[ci] = tfidfScore(termFreqs[ci], docFreq, n)
		bm25Scores[ci] = bm25Score(termFreqs[ci], docFreq, n, lengths[ci], avgLen)

		indices := make(map[int]struct{})
		for ti, f := range termFreqs[ci] {
			if f > 0 {
				indices[ti] = struct{}{}
			}
		}
		matched[ci] = indices
		if len(queryPairs) > 0 {
			coverage[ci] = float64(len(indices)) / float64(len(queryPairs))
		}
	}

	tfidfNorm := minMaxNormalize(tfidfScores)
	bm25Norm := minMaxNormalize(bm25Scores)

	results := make([]RankedBlock, n)
	for ci, c := range candidates {
		var score float64
		switch reranker {
		case TFIDF:
			score = tfidfScores[ci]
		case BM25:
			score = bm25Scores[ci]
		case Hybrid:
			score = hybridAlpha*bm25Norm[ci] + (1-hybridAlpha)*tfidfNorm[ci] + hybridBeta*coverage[ci]
		case Hybrid2:
			score = hybrid2Alpha*bm25Norm[ci] + (1-hybrid2Alpha)*tfidfNorm[ci] + hybrid2Beta*coverage[ci]
		default:
			score = bm25Scores[ci]
		}

		if matchesFilenameBoost(c.FilePath, queryPairs) {
			score *= filenameBoost
		}

		results[ci] = RankedBlock{
			CodeBlock:          c.CodeBlock,
			FilePath:           c.FilePath,
			Score:              score,
			MatchedTermIndices: matched[ci],
			Content:            c.Content,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].FilePath != results[j].FilePath {
			return results[i].FilePath < results[j].FilePath
		}
		return results[i].StartRow < results[j].StartRow
	})

	return results
}

func tfidfScore(tf []int, docFreq []int, n int) float64 {
	var score float64
	for ti, f := range tf {
		if f == 0 || docFreq[ti] == 0 {
			continue
		}
		idf := math.Log(float64(n) / float64(docFreq[ti]))
		score += float64(f) * idf
	}
	return score
}

func bm25Score(tf []int, docFreq []int, n int, length int, avgLen float64) float64 {
	var score float64
	for ti, f := range tf {
		if f == 0 || docFreq[ti] == 0 {
			continue
		}
		idf := math.Log(1 + (float64(n)-float64(docFreq[ti])+0.5)/(float64(docFreq[ti])+0.5))
		denom := float64(f) + bm25K1*(1-bm25B+bm25B*(float64(length)/avgLen))
		score += idf * (float64(f) * (bm25K1 + 1)) / denom
	}
	return score
}

// minMaxNormalize scales scores into [0, 1]. When every score is equal
// (including the single-candidate case) it returns 1.0 for every entry
// rather than dividing by zero, per the degenerate-corpus resolution in
// DESIGN.md.
func minMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	norm := make([]float64, len(scores))
	if max == min {
		for i := range norm {
			norm[i] = 1.0
		}
		return norm
	}
	for i, s := range scores {
		norm[i] = (s - min) / (max - min)
	}
	return norm
}

func matchesFilenameBoost(path string, pairs []query.TermPair) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, p := range pairs {
		if p.Original != "" && strings.Contains(base, p.Original) {
			return true
		}
	}
	return false
}
