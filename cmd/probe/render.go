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
	"fmt"
	"os"

	"github.com/kraklabs/probe/internal/output"
	"github.com/kraklabs/probe/internal/ui"
	"github.com/kraklabs/probe/pkg/probe"
)

// renderResult writes result to stdout in one of {color, terminal,
// markdown, plain, json}, the output formats spec.md §6 names as the
// CLI's own external collaborator (this command is that collaborator's
// concrete implementation).
func renderResult(result *probe.Result, format string) error {
	switch format {
	case "json":
		return output.JSON(output.FromResult(result))
	case "markdown":
		renderMarkdown(result)
	case "plain":
		renderPlain(result)
	case "terminal":
		renderTerminal(result, false)
	default: // "color"
		renderTerminal(result, true)
	}
	return nil
}

func renderTerminal(result *probe.Result, color bool) {
	if len(result.Blocks) == 0 {
		if color {
			ui.Warning("No matches found")
		} else {
			fmt.Println("No matches found")
		}
		return
	}

	for i, b := range result.Blocks {
		if i > 0 {
			fmt.Println()
		}
		header := fmt.Sprintf("%s:%d-%d", b.FilePath, b.StartRow+1, b.EndRow+1)
		if color {
			fmt.Printf("%s  %s  score=%.3f\n", ui.Bold.Sprint(header), ui.DimText(b.NodeType), b.Score)
		} else {
			fmt.Printf("%s  %s  score=%.3f\n", header, b.NodeType, b.Score)
		}
		if b.Content != "" {
			fmt.Println(b.Content)
		}
	}
	printTruncation(result, color)
}

func renderMarkdown(result *probe.Result) {
	if len(result.Blocks) == 0 {
		fmt.Println("_No matches found._")
		return
	}

	for _, b := range result.Blocks {
		fmt.Printf("## %s:%d-%d (%s, score %.3f)\n\n", b.FilePath, b.StartRow+1, b.EndRow+1, b.NodeType, b.Score)
		if b.Content != "" {
			fmt.Printf("```%s\n%s\n```\n\n", fenceLang(b.FilePath), b.Content)
		}
	}
	printTruncation(result, false)
}

func renderPlain(result *probe.Result) {
	for _, b := range result.Blocks {
		fmt.Printf("%s:%d-%d\n", b.FilePath, b.StartRow+1, b.EndRow+1)
		if b.Content != "" {
			fmt.Println(b.Content)
		}
	}
}

func printTruncation(result *probe.Result, color bool) {
	if len(result.TruncatedBy) == 0 {
		return
	}
	var reasons []string
	for _, r := range []string{"results", "bytes", "tokens"} {
		if result.TruncatedBy[r] {
			reasons = append(reasons, r)
		}
	}
	msg := fmt.Sprintf("truncated by: %v", reasons)
	if color {
		ui.Warning(msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// fenceLang maps a file extension to the language tag markdown fences
// use for syntax highlighting; unrecognized extensions fence with no tag.
func fenceLang(path string) string {
	ext := extOf(path)
	switch ext {
	case "rs":
		return "rust"
	case "py":
		return "python"
	case "rb":
		return "ruby"
	case "js", "jsx", "mjs", "cjs":
		return "javascript"
	case "ts", "tsx":
		return "typescript"
	default:
		return ext
	}
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}
