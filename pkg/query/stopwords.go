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

package query

// stopWords holds common English words that carry little search signal on
// their own. They are dropped from non-exact queries before stemming so a
// query like "the use of whitelisting" degenerates to "use whitelisting".
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "our": {}, "that": {}, "the": {}, "their": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "will": {}, "with": {}, "you": {}, "your": {}, "can": {},
	"do": {}, "does": {}, "how": {}, "i": {}, "if": {}, "into": {}, "may": {},
	"not": {}, "should": {}, "than": {}, "then": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "why": {},
}

// IsStopWord reports whether word (already lowercased) should be dropped
// from a non-exact query.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
