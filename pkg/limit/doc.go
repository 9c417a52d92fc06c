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

// Package limit assembles the ranker's output into the final result set,
// applying max_results, max_bytes, and max_tokens in the order spec.md §4.5
// requires: truncate by count first, then greedily accept by descending
// score while both the byte and token budgets hold. A block that would
// blow either budget is skipped, not treated as a stopping point, since a
// smaller lower-ranked block further down the list may still fit.
package limit
