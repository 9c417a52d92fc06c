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
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/probe/internal/errors"
	"github.com/kraklabs/probe/internal/output"
	"github.com/kraklabs/probe/internal/ui"
	"github.com/kraklabs/probe/pkg/block"
)

// runExtract executes the 'extract' CLI command: for each "file" or
// "file:line[,line...]" argument, parse the file with its tree-sitter
// grammar and print the smallest acceptable block enclosing each line
// (every line in the file when none is given), per
// original_source/src/cli.rs's Commands::Extract.
func runExtract(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	allowTests := fs.Bool("allow-tests", false, "Allow test files and test code blocks in results")
	contextLines := fs.IntP("context", "c", 0, "Lines of context to include before and after each block")
	format := fs.StringP("format", "o", "color", "Output format: markdown, plain, json, color")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: probe extract <file[:line[,line...]]>... [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  probe extract src/auth.go:42
  probe extract src/auth.go:10,42 --context 2
  probe extract src/auth.go --format json
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitUsage)
	}
	if globals.JSON {
		*format = "json"
	}

	targets := fs.Args()
	if len(targets) == 0 {
		errors.FatalError(errors.NewUsageError(
			"missing file argument",
			"probe extract requires at least one file, optionally with :line numbers",
			"probe extract src/auth.go:42",
		), globals.JSON)
	}

	var blocks []output.BlockJSON
	for _, target := range targets {
		path, lines, err := splitFileAndLines(target)
		if err != nil {
			errors.FatalError(err, globals.JSON)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			errors.FatalError(errors.NewUsageError(
				fmt.Sprintf("cannot read %q", path),
				err.Error(),
				"check the path and try again",
			), globals.JSON)
		}

		if len(lines) == 0 {
			lines = allLines(content)
		}

		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		extracted, err := block.ParseFileForCodeBlocks(context.Background(), content, ext, lines, *allowTests)
		if err != nil {
			errors.FatalError(errors.NewUsageError(
				fmt.Sprintf("cannot parse %q", path),
				err.Error(),
				"extraction requires one of probe's supported grammars; see SPEC_FULL.md §4.3",
			), globals.JSON)
		}

		if *contextLines > 0 {
			extracted = expandContext(extracted, content, *contextLines)
		}

		for _, b := range extracted {
			blocks = append(blocks, output.BlockJSON{
				File:      path,
				StartLine: b.StartRow,
				EndLine:   b.EndRow,
				NodeType:  b.NodeType,
				Content:   string(content[b.StartByte:b.EndByte]),
			})
		}
	}

	if err := renderExtracted(blocks, *format); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if len(blocks) == 0 {
		os.Exit(errors.ExitNoResults)
	}
	os.Exit(errors.ExitResultsFound)
}

// splitFileAndLines parses "path" or "path:10,42" into a path and its
// 0-based line numbers (the CLI accepts 1-based line numbers, matching
// how editors and `probe search` output report them).
func splitFileAndLines(target string) (string, []int, error) {
	idx := strings.LastIndex(target, ":")
	if idx < 0 {
		return target, nil, nil
	}

	path := target[:idx]
	rest := target[idx+1:]

	var lines []int
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			// Not a line list after all — likely a Windows drive letter
			// or a path that legitimately contains a colon.
			return target, nil, nil
		}
		if n > 0 {
			n--
		}
		lines = append(lines, n)
	}
	return path, lines, nil
}

func allLines(content []byte) []int {
	n := strings.Count(string(content), "\n") + 1
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i
	}
	return lines
}

func expandContext(blocks []block.CodeBlock, content []byte, contextLines int) []block.CodeBlock {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	lastLine := len(offsets) - 1

	out := make([]block.CodeBlock, len(blocks))
	for i, b := range blocks {
		start := b.StartRow - contextLines
		if start < 0 {
			start = 0
		}
		end := b.EndRow + contextLines
		if end > lastLine {
			end = lastLine
		}

		startByte := offsets[start]
		var endByte int
		if end+1 < len(offsets) {
			endByte = offsets[end+1]
		} else {
			endByte = len(content)
		}
		if endByte > startByte && content[endByte-1] == '\n' {
			endByte--
		}

		out[i] = block.CodeBlock{
			StartRow: start, EndRow: end,
			StartByte: startByte, EndByte: endByte,
			NodeType: b.NodeType,
		}
	}
	return out
}

func renderExtracted(blocks []output.BlockJSON, format string) error {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].File != blocks[j].File {
			return blocks[i].File < blocks[j].File
		}
		return blocks[i].StartLine < blocks[j].StartLine
	})

	switch format {
	case "json":
		return output.JSON(output.SearchResultsJSON{Results: blocks})
	case "markdown":
		for _, b := range blocks {
			fmt.Printf("## %s:%d-%d (%s)\n\n```%s\n%s\n```\n\n", b.File, b.StartLine+1, b.EndLine+1, b.NodeType, fenceLang(b.File), b.Content)
		}
	case "plain":
		for _, b := range blocks {
			fmt.Printf("%s:%d-%d\n%s\n", b.File, b.StartLine+1, b.EndLine+1, b.Content)
		}
	default: // "color"
		for i, b := range blocks {
			if i > 0 {
				fmt.Println()
			}
			header := fmt.Sprintf("%s:%d-%d", b.File, b.StartLine+1, b.EndLine+1)
			fmt.Printf("%s  %s\n", ui.Bold.Sprint(header), ui.DimText(b.NodeType))
			fmt.Println(b.Content)
		}
	}
	return nil
}
