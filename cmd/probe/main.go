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

// Package main implements the probe CLI, a local AI-friendly semantic code
// search tool over large repositories.
//
// Usage:
//
//	probe "pattern" [path...]               Search (implicit, no subcommand)
//	probe search "pattern" [path...]        Search, explicitly
//	probe extract file.go:42                Extract the block enclosing a line
//	probe chat                              Not implemented in this core
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/probe/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds the flags every subcommand inherits.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Verbose int
	Quiet   bool
}

var knownCommands = map[string]struct{}{
	"search": {}, "extract": {}, "chat": {},
}

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		configPath  = flag.StringP("config", "c", "", "Path to .probe.yaml (default: ./.probe.yaml)")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format (equivalent to --format json)")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "Suppress non-essential output")
	)

	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `probe - local, AI-friendly semantic code search

probe locates the most relevant code regions for a query by combining
lexical retrieval with syntax-aware block extraction: matches are expanded
to their smallest enclosing function, type, or block via tree-sitter, then
ranked and merged.

Usage:
  probe "pattern" [path...] [options]      Search (subcommand implied)
  probe search "pattern" [path...]         Search, explicitly
  probe extract file.go:42 [options]       Extract the block around a line
  probe chat                               Not implemented in this core

Global Options:
  --json            Output in JSON format
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output
  -c, --config      Path to .probe.yaml defaults file
  -V, --version     Show version and exit

Examples:
  probe "ip whitelisting" ./src
  probe search "handle request" --reranker bm25 --max-tokens 4000
  probe extract src/auth.go:42 --context 2
  probe search "Config" --format json > results.json

For detailed command help: probe <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("probe version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	if *quiet && *verbose > 0 {
		fmt.Fprintln(os.Stderr, "Error: cannot use --quiet and --verbose together")
		os.Exit(2)
	}
	if *jsonOutput {
		*quiet = true
	}

	globals := GlobalFlags{JSON: *jsonOutput, NoColor: *noColor, Verbose: *verbose, Quiet: *quiet}
	ui.InitColors(globals.NoColor)

	defaults := loadDefaults(*configPath)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	command := args[0]
	cmdArgs := args[1:]

	if _, ok := knownCommands[command]; !ok {
		// No recognized subcommand: the whole arg list is an implicit
		// search invocation, pattern first, per original_source/src/cli.rs's
		// top-level Args (a subcommand is optional).
		runSearch(args, globals, defaults)
		return
	}

	switch command {
	case "search":
		runSearch(cmdArgs, globals, defaults)
	case "extract":
		runExtract(cmdArgs, globals)
	case "chat":
		runChat(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}
}
