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

package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kraklabs/probe/pkg/block"
	"github.com/kraklabs/probe/pkg/limit"
	"github.com/kraklabs/probe/pkg/pathresolve"
	"github.com/kraklabs/probe/pkg/query"
	"github.com/kraklabs/probe/pkg/rank"
	"github.com/kraklabs/probe/pkg/search"
	"github.com/kraklabs/probe/pkg/walk"
)

var logger = slog.Default()

type fileOutcome struct {
	candidates  []rank.Candidate
	diagnostics []Diagnostic
}

// Run executes perform_probe: resolve paths, walk the filesystem, search
// and extract blocks per file over a worker pool, then rank and limit the
// assembled candidate set single-threaded. A cancelled ctx yields a
// Result with Partial set rather than an error; only a pattern-compile
// failure is fatal.
func Run(ctx context.Context, req Request) (*Result, error) {
	probeMetrics.init()
	start := time.Now()
	defer func() { probeMetrics.totalDuration.Observe(time.Since(start).Seconds()) }()

	exact := req.effectiveExact()
	pairs := query.PreprocessQuery(req.Query, exact)
	patterns := query.CreateTermPatterns(pairs)

	if _, err := search.CompilePatterns(patterns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternCompile, err)
	}

	files, err := discoverFiles(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return &Result{Partial: true}, nil
		}
		return nil, err
	}
	logger.Debug("probe.walk.complete", "files", len(files))

	searchStart := time.Now()
	candidates, diagnostics, partial := searchAndExtract(ctx, req, files, patterns)
	probeMetrics.searchDuration.Observe(time.Since(searchStart).Seconds())

	result := &Result{Diagnostics: diagnostics, Partial: partial}

	rankStart := time.Now()
	ranked := rank.Rank(candidates, pairs, req.Reranker, exact)
	probeMetrics.rankDuration.Observe(time.Since(rankStart).Seconds())

	if req.DryRun {
		for i := range ranked {
			ranked[i].Content = ""
		}
	}

	kept, truncatedBy := limit.Apply(ranked, intOr(req.MaxResults, 0), intOr(req.MaxBytes, 0), intOr(req.MaxTokens, 0))
	result.Blocks = kept
	result.TruncatedBy = truncatedBy

	logger.Debug("probe.run.complete", "candidates", len(candidates), "kept", len(kept))
	return result, nil
}

func discoverFiles(ctx context.Context, req Request) ([]walk.FileInfo, error) {
	walker := walk.New(logger)

	var all []walk.FileInfo
	seen := make(map[string]struct{})

	for _, p := range req.Paths {
		resolved, err := pathresolve.Resolve(p)
		if err != nil {
			return nil, fmt.Errorf("%w: resolving %q: %v", ErrIO, p, err)
		}

		infos, err := walker.Walk(ctx, resolved, walk.Options{
			IgnorePatterns:   req.IgnorePatterns,
			RespectGitignore: true,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: walking %q: %v", ErrIO, resolved, err)
		}

		for _, fi := range infos {
			if _, dup := seen[fi.FullPath]; dup {
				continue
			}
			seen[fi.FullPath] = struct{}{}
			all = append(all, fi)
		}
	}

	return all, nil
}

// searchAndExtract fans out stages 2 and 3 over a worker pool bounded to
// runtime.NumCPU(): a buffered job channel, a WaitGroup of workers, and an
// unbuffered results channel drained here. Each worker checks ctx between
// files; candidates are appended per-file (no lock contention) and
// concatenated at this join, per spec.md §5's "append-only from workers".
func searchAndExtract(ctx context.Context, req Request, files []walk.FileInfo, patterns []query.TermPattern) ([]rank.Candidate, []Diagnostic, bool) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan walk.FileInfo, len(files))
	results := make(chan fileOutcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for fi := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- processFile(ctx, req, fi, patterns)
			}
		}()
	}

	for _, fi := range files {
		jobs <- fi
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var candidates []rank.Candidate
	var diagnostics []Diagnostic
	for outcome := range results {
		candidates = append(candidates, outcome.candidates...)
		diagnostics = append(diagnostics, outcome.diagnostics...)
	}

	return candidates, diagnostics, ctx.Err() != nil
}

func processFile(ctx context.Context, req Request, fi walk.FileInfo, patterns []query.TermPattern) fileOutcome {
	if !req.AllowTests && search.IsTestPath(fi.Path) {
		return fileOutcome{}
	}

	content, err := os.ReadFile(fi.FullPath)
	if err != nil {
		probeMetrics.filesSkipped.Inc()
		return fileOutcome{diagnostics: []Diagnostic{
			{Path: fi.Path, Stage: "read", Err: fmt.Errorf("%w: %v", ErrIO, err)},
		}}
	}
	probeMetrics.filesScanned.Inc()

	match, err := search.SearchFile(fi.Path, content, patterns, search.Options{
		MatchFilenames:   true,
		ExcludeFilenames: req.ExcludeFilenames,
	})
	if err != nil {
		return fileOutcome{diagnostics: []Diagnostic{
			{Path: fi.Path, Stage: "search", Err: err},
		}}
	}
	if match == nil {
		return fileOutcome{}
	}

	if req.FilesOnly {
		cb := block.CodeBlock{
			StartRow:  0,
			EndRow:    strings.Count(string(content), "\n"),
			StartByte: 0,
			EndByte:   len(content),
			NodeType:  "file",
		}
		return fileOutcome{candidates: []rank.Candidate{
			{CodeBlock: cb, FilePath: fi.Path, Content: string(content)},
		}}
	}

	lines := matchedContentLines(match)
	if len(lines) == 0 {
		return fileOutcome{}
	}

	ext := strings.TrimPrefix(filepath.Ext(fi.Path), ".")
	blocks, err := block.ParseFileForCodeBlocks(ctx, content, ext, lines, req.AllowTests)

	var diagnostics []Diagnostic
	if err != nil {
		blocks = []block.CodeBlock{fallbackBlock(content, lines)}
		diagnostics = append(diagnostics, Diagnostic{Path: fi.Path, Stage: "parse", Err: err})
	}
	probeMetrics.blocksExtacted.Add(float64(len(blocks)))

	if req.MergeEnabled {
		threshold := intOr(req.MergeThreshold, block.DefaultBaseThreshold)
		blocks = block.MergeCodeBlocks(blocks, threshold)
		probeMetrics.blocksMerged.Add(float64(len(blocks)))
	}

	candidates := make([]rank.Candidate, 0, len(blocks))
	for _, b := range blocks {
		candidates = append(candidates, rank.Candidate{
			CodeBlock: b,
			FilePath:  fi.Path,
			Content:   string(content[b.StartByte:b.EndByte]),
		})
	}

	return fileOutcome{candidates: candidates, diagnostics: diagnostics}
}

// matchedContentLines extracts the real (non-virtual) matched lines from a
// FileMatch, sorted ascending, for feeding into block extraction.
func matchedContentLines(match *search.FileMatch) []int {
	lines := make([]int, 0, len(match.MatchedLines))
	for l := range match.MatchedLines {
		if l == search.FilenameVirtualLine {
			continue
		}
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// fallbackBlock implements spec.md §7's UnsupportedLanguage/ParseError
// recovery: a single synthetic node_type="file" block spanning every
// matched line, rather than failing the whole file.
func fallbackBlock(content []byte, lines []int) block.CodeBlock {
	min, max := lines[0], lines[0]
	for _, l := range lines {
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}

	offsets := lineOffsets(content)
	startByte := offsets[min]

	var endByte int
	if max+1 < len(offsets) {
		endByte = offsets[max+1]
	} else {
		endByte = len(content)
	}
	if endByte > startByte && content[endByte-1] == '\n' {
		endByte--
	}

	return block.CodeBlock{
		StartRow:  min,
		EndRow:    max,
		StartByte: startByte,
		EndByte:   endByte,
		NodeType:  "file",
	}
}

func lineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
