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

// Package query turns a free-text search query into the term pairs and
// compiled regex patterns the rest of probe's pipeline matches against.
//
// A query is first split into (original, stemmed) TermPairs: words are
// lowercased, split on camel-case boundaries, filtered against an English
// stop-word list, and reduced to a stem. CreateTermPatterns then compiles
// those pairs into TermPatterns — single-term patterns anchored on either
// word boundary, plus compound patterns that catch identifiers gluing two
// query words together (ipWhitelisting, whitelistIp).
//
// The stemmer and stop-word table are process-wide singletons, initialized
// once and never mutated afterward.
package query
