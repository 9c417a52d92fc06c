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

// Package probe wires pkg/query, pkg/walk, pkg/pathresolve, pkg/search,
// pkg/block, pkg/rank, and pkg/limit into the perform_probe entry point:
// Run takes a Request and produces a Result by walking the requested
// paths, searching each file against the compiled query patterns, cutting
// matched lines into tree-sitter blocks, merging adjacent blocks, ranking
// the candidate set, and applying result/byte/token limits.
//
// Stages 2 and 3 (file search, block extraction) run over a worker pool
// bounded to runtime.NumCPU(); stages 4 and 5 (ranking, limiting) run
// single-threaded over the fully assembled candidate set, per spec.md §5.
package probe
