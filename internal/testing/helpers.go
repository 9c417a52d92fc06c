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

// Package testing provides fixture helpers shared by the pkg/probe and
// pkg/walk tests: writing small on-disk source trees and
// reading back line ranges, so each package's table-driven tests don't
// each reimplement the same TempDir/WriteFile boilerplate.
package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to rel (a slash-separated path) under root,
// creating parent directories as needed, and returns the full path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir for %q: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %q: %v", rel, err)
	}
	return full
}

// WriteTree writes a whole fixture repository in one call, keyed by
// slash-separated relative path, and returns the root directory. Useful
// for end-to-end probe.Run scenarios that need several files in place
// before a search begins.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// Lines splits s on "\n" and returns the 0-based line at idx, or "" if
// idx is out of range. Handy for asserting a CodeBlock's extracted
// content starts/ends where a test expects.
func Lines(s string, idx int) string {
	parts := strings.Split(s, "\n")
	if idx < 0 || idx >= len(parts) {
		return ""
	}
	return parts[idx]
}
