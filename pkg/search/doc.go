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

// Package search scans a single file's bytes against compiled query
// patterns. It is the second pipeline stage: pkg/query produces the
// patterns, pkg/search decides which files and lines they hit, and
// pkg/block later maps those lines onto enclosing syntax.
//
// A file's basename participates in matching as a virtual "line -1" so
// a query term appearing only in a filename ("whitelist_test.go") still
// surfaces the file, without polluting the set of matched code lines.
package search
