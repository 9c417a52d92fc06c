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

import "strings"

// Stem reduces word to an approximate English word stem using a
// simplified Porter-style suffix-stripping algorithm. It is not a full
// Porter implementation: it covers the common plural, gerund, and
// agentive suffixes that matter for matching identifiers against query
// words ("whitelisting" / "whitelist", "handlers" / "handler").
//
// See DESIGN.md for why this is hand-rolled instead of an imported
// stemming library.
func Stem(word string) string {
	w := strings.ToLower(word)
	if len(w) <= 3 {
		return w
	}

	// Step 1a: plurals.
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		w = w[:len(w)-1]
	}

	// Step 1b: verb forms.
	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 5 && hasVowel(w[:len(w)-3]):
		w = restoreStem(w[:len(w)-3])
	case strings.HasSuffix(w, "ed") && len(w) > 4 && hasVowel(w[:len(w)-2]):
		w = restoreStem(w[:len(w)-2])
	}

	// Step 2: common derivational suffixes.
	for _, suf := range []string{"ization", "isation", "ational", "fulness", "ousness", "iveness", "ability", "aliti", "biliti"} {
		if strings.HasSuffix(w, suf) && len(w)-len(suf) >= 3 {
			w = w[:len(w)-len(suf)] + suffixReplacement(suf)
			break
		}
	}

	// Step 3: trailing 'e' dropped by over-eager plural/verb stripping is
	// not restored; a trailing doubled consonant from step 1b is undone
	// by restoreStem above.
	return w
}

// suffixReplacement maps a stripped derivational suffix to what remains
// of the base word.
func suffixReplacement(suf string) string {
	switch suf {
	case "ization", "isation":
		return "ize"
	case "ational":
		return "ate"
	case "fulness":
		return "ful"
	case "ousness":
		return "ous"
	case "iveness":
		return "ive"
	case "ability":
		return "able"
	case "aliti":
		return "al"
	case "biliti":
		return "ble"
	}
	return ""
}

// restoreStem undoes consonant doubling left behind after stripping "ing"
// or "ed" (e.g. "whitelist" + "ting" -> "whitelist", "running" -> "run",
// not "runn"), and adds back a silent 'e' for words that need it to stay
// pronounceable (e.g. "creating" -> "create", not "creat").
func restoreStem(stem string) string {
	if len(stem) >= 2 && stem[len(stem)-1] == stem[len(stem)-2] {
		switch stem[len(stem)-1] {
		case 'l', 's', 'z':
			// keep doubled consonants that are part of the root, e.g. "fall"
		default:
			stem = stem[:len(stem)-1]
		}
	}
	if needsSilentE(stem) {
		stem += "e"
	}
	return stem
}

// needsSilentE is a coarse heuristic: a stem ending in a single consonant
// preceded by a single vowel, where the consonant is not one of a small
// set that's usually fine bare (e.g. "run", "scan"), likely lost a silent
// "e" ("creat" -> "create", "us" stays "us").
func needsSilentE(stem string) bool {
	if len(stem) < 3 {
		return false
	}
	last := stem[len(stem)-1]
	switch last {
	case 'c', 't', 'v', 'd':
		return isVowel(rune(stem[len(stem)-2]))
	}
	return false
}

func hasVowel(s string) bool {
	for _, r := range s {
		if isVowel(r) {
			return true
		}
	}
	return false
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
