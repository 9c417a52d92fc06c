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

package walk

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// gitignoreRule is one non-comment, non-blank line of a .gitignore file,
// rooted at the directory the file lives in.
type gitignoreRule struct {
	// dirPrefix is the slash-normalized, root-relative path of the
	// directory containing this .gitignore (empty for the search root).
	dirPrefix string
	pattern   string
	negate    bool
	dirOnly   bool
}

// gitignoreSet is every rule collected from the root directory and its
// ancestor .gitignore files, evaluated in file-then-line order so later
// rules (more specific directories, later lines) can override earlier
// negations the way git does.
type gitignoreSet struct {
	rules []gitignoreRule
}

// loadGitignoreSet reads root/.gitignore plus any .gitignore in root's
// ancestor directories, stopping at the nearest ".git" directory or the
// filesystem root. This is intentionally not a full gitignore engine: no
// support for escaped characters beyond a leading "!" or "#", and no
// per-rule precedence across sibling directories.
func loadGitignoreSet(root string) *gitignoreSet {
	set := &gitignoreSet{}

	dir := root
	for {
		if rules := readGitignoreFile(filepath.Join(dir, ".gitignore"), ""); rules != nil {
			set.rules = append(rules, set.rules...)
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if rules := readGitignoreFile(filepath.Join(root, ".gitignore"), ""); rules != nil {
		set.rules = append(set.rules, rules...)
	}

	return set
}

func readGitignoreFile(path, dirPrefix string) []gitignoreRule {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var rules []gitignoreRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := strings.HasPrefix(line, "!")
		if negate {
			line = line[1:]
		}
		dirOnly := strings.HasSuffix(line, "/")
		line = strings.TrimSuffix(line, "/")
		if line == "" {
			continue
		}
		rules = append(rules, gitignoreRule{
			dirPrefix: dirPrefix,
			pattern:   line,
			negate:    negate,
			dirOnly:   dirOnly,
		})
	}
	return rules
}

// matches reports whether relPath (root-relative, slash-separated) is
// ignored, applying rules in order so a later negation re-includes a path
// an earlier rule excluded.
func (g *gitignoreSet) matches(relPath string, isDir bool) bool {
	ignored := false
	for _, rule := range g.rules {
		if rule.dirOnly && !isDir {
			continue
		}
		if !ruleApplies(rule, relPath) {
			continue
		}
		ignored = !rule.negate
	}
	return ignored
}

func ruleApplies(rule gitignoreRule, relPath string) bool {
	candidate := relPath
	if rule.dirPrefix != "" {
		if !strings.HasPrefix(relPath, rule.dirPrefix+"/") {
			return false
		}
		candidate = strings.TrimPrefix(relPath, rule.dirPrefix+"/")
	}

	pattern := rule.pattern
	if strings.Contains(pattern, "/") {
		if ok, _ := doublestar.Match(pattern, candidate); ok {
			return true
		}
		ok, _ := doublestar.Match("**/"+pattern, candidate)
		return ok
	}

	base := candidate
	if idx := strings.LastIndex(candidate, "/"); idx >= 0 {
		base = candidate[idx+1:]
	}
	ok, _ := doublestar.Match(pattern, base)
	return ok
}
