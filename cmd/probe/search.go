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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/probe/internal/errors"
	"github.com/kraklabs/probe/pkg/probe"
	"github.com/kraklabs/probe/pkg/rank"
)

// runSearch executes the 'search' CLI command (also the implicit default
// when no subcommand is given), translating pflag values into a
// pkg/probe.Request and rendering the resulting SearchResults.
//
// Flags mirror original_source/src/cli.rs's top-level Args /
// Commands::Search one-for-one, per SPEC_FULL.md §6.
func runSearch(args []string, globals GlobalFlags, defaults *Defaults) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	filesOnly := fs.BoolP("files-only", "f", false, "Skip AST parsing and just output unique files")
	ignore := fs.StringSliceP("ignore", "i", defaults.Ignore, "Custom patterns to ignore, in addition to .gitignore")
	excludeFilenames := fs.BoolP("exclude-filenames", "n", false, "Exclude files whose names match query words")
	reranker := fs.StringP("reranker", "r", defaults.rerankerOr("hybrid"), "Reranking method: hybrid, hybrid2, bm25, tfidf")
	frequency := fs.BoolP("frequency", "s", true, "Use frequency-based search with stemming and stop-word removal")
	exact := fs.Bool("exact", false, "Use exact matching without stemming or stop-word removal")
	maxResults := fs.Int("max-results", intOrZero(defaults.MaxResults), "Maximum number of results to return")
	maxBytes := fs.Int("max-bytes", intOrZero(defaults.MaxBytes), "Maximum total bytes of code content to return")
	maxTokens := fs.Int("max-tokens", intOrZero(defaults.MaxTokens), "Maximum total tokens of code content to return")
	allowTests := fs.Bool("allow-tests", defaults.AllowTests, "Allow test files and test code blocks in results")
	noMerge := fs.Bool("no-merge", false, "Disable merging of adjacent code blocks after ranking")
	mergeThreshold := fs.Int("merge-threshold", intOrZero(defaults.MergeThreshold), "Max lines between blocks to merge (default: 5)")
	dryRun := fs.Bool("dry-run", false, "Output only file names and line numbers, no content")
	format := fs.StringP("format", "o", defaults.formatOr("color"), "Output format: color, terminal, markdown, plain, json")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: probe search "<pattern>" [path...] [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  probe search "ip whitelisting" ./src
  probe search "handle request" --reranker bm25 --max-tokens 4000
  probe search "Config" --format json
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitUsage)
	}
	if globals.JSON {
		*format = "json"
	}

	positional := fs.Args()
	if len(positional) == 0 {
		errors.FatalError(errors.NewUsageError(
			"missing search pattern",
			"probe search requires a pattern as its first positional argument",
			`probe search "ip whitelisting" ./src`,
		), globals.JSON)
	}

	query := positional[0]
	paths := positional[1:]
	if len(paths) == 0 {
		paths = []string{"."}
	}

	rr, err := parseReranker(*reranker)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	req := probe.Request{
		Query:            query,
		Paths:            paths,
		Reranker:         rr,
		Exact:            *exact,
		FrequencySearch:  *frequency,
		FilesOnly:        *filesOnly,
		DryRun:           *dryRun,
		AllowTests:       *allowTests,
		ExcludeFilenames: *excludeFilenames,
		IgnorePatterns:   *ignore,
		MergeEnabled:     !*noMerge,
		MaxResults:       nilIfZero(*maxResults),
		MaxBytes:         nilIfZero(*maxBytes),
		MaxTokens:        nilIfZero(*maxTokens),
		MergeThreshold:   nilIfZero(*mergeThreshold),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	result, err := probe.Run(ctx, req)
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Search failed",
			err.Error(),
			"this may be a bug in query preprocessing; please report it",
			err,
		), globals.JSON)
	}

	if err := renderResult(result, *format); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if len(result.Blocks) == 0 {
		os.Exit(errors.ExitNoResults)
	}
	os.Exit(errors.ExitResultsFound)
}

func parseReranker(s string) (rank.Reranker, error) {
	switch rank.Reranker(s) {
	case rank.Hybrid, rank.Hybrid2, rank.BM25, rank.TFIDF:
		return rank.Reranker(s), nil
	default:
		return "", errors.NewUsageError(
			fmt.Sprintf("unknown reranker %q", s),
			"valid values are hybrid, hybrid2, bm25, tfidf",
			"probe search --reranker bm25 \"query\"",
		)
	}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func nilIfZero(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
