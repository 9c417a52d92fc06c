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

package block

import "errors"

// ErrUnsupportedLanguage is returned when a file extension has no grammar
// mapping. Callers fall back to treating the file as a single unstructured
// block rather than failing the whole search.
var ErrUnsupportedLanguage = errors.New("block: unsupported language extension")

// ErrParse is returned when Tree-sitter fails to produce a tree at all
// (distinct from a tree with recoverable syntax errors, which Tree-sitter
// still returns successfully).
var ErrParse = errors.New("block: parse failed")
