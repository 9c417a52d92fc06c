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

package probe

import (
	"errors"

	"github.com/kraklabs/probe/pkg/block"
)

// ErrUnsupportedLanguage and ErrParse are re-exported from pkg/block so
// callers of pkg/probe see all five error kinds of spec.md §7 from one
// package, without pkg/block importing pkg/probe back.
var (
	ErrUnsupportedLanguage = block.ErrUnsupportedLanguage
	ErrParse               = block.ErrParse
)

// ErrIO marks a file that could not be read during the search stage. The
// file is recorded in Diagnostics and skipped; it never aborts the run.
var ErrIO = errors.New("probe: file read failed")

// ErrPatternCompile marks a regex compiled from the query that failed to
// build. Unlike ErrIO and the block errors, this is fatal: without a
// compiled pattern set there is nothing left to search with.
var ErrPatternCompile = errors.New("probe: pattern compile failed")

// ErrCancelled is never returned from Run and never recorded in
// Diagnostics; cancellation instead yields a Result with Partial set to
// true.
var ErrCancelled = errors.New("probe: cancelled")
