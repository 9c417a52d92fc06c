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

// Package rank scores CodeBlock candidates against a processed query using
// one of four rerankers (tfidf, bm25, hybrid, hybrid2), treating the union
// of emitted blocks from the current invocation as the entire corpus: there
// are no cross-invocation statistics, no persisted index, and no IDF table
// carried between searches.
//
// Block content is tokenized with pkg/query's camelCase splitter and
// stemmer so a block's terms and the query's terms are drawn from the same
// vocabulary. The hybrid rerankers min-max normalize tfidf and bm25 scores
// across the candidate set before blending them with unique term coverage;
// when every candidate has the same raw score that normalization has no
// gradient to express, so every block is treated as equally best along
// that axis rather than dividing by zero.
package rank
