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

// Package block expands matched source lines into the smallest enclosing
// syntactic construct — a function, method, type, or other grammar-defined
// "acceptable parent" — using Tree-sitter, then merges nearby or
// overlapping blocks into contiguous regions.
//
// Each supported language has its own grammar, its own notion of which
// node kinds are acceptable result boundaries, and its own way of marking
// a node as test code. grammar.go holds that per-language behavior as a
// dispatch table of plain functions rather than an interface hierarchy,
// mirroring how a single Tree-sitter-based parser in the style of
// TreeSitterParser picks behavior by language key rather than by type
// assertion.
package block
