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
	"path/filepath"
	"regexp"
	"strings"
)

var testDirSegment = regexp.MustCompile(`(^|/)(tests?|__tests__|spec)(/|$)`)

var testFilenamePatterns = []string{
	"*_test.*",
	"*.test.*",
	"*.spec.*",
	"test_*.*",
}

// IsTestPath reports whether path looks like a test file by directory
// segment or filename convention, independent of any AST-level test
// detection pkg/block performs on individual blocks. Used to skip whole
// files up front when allow_tests is false.
func IsTestPath(path string) bool {
	slashPath := filepath.ToSlash(path)
	if testDirSegment.MatchString(slashPath) {
		return true
	}

	base := strings.ToLower(filepath.Base(path))
	for _, pattern := range testFilenamePatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
