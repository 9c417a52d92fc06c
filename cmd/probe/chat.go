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

package main

import "github.com/kraklabs/probe/internal/errors"

// runChat exists only so the CLI surface matches original_source/src/cli.rs's
// Commands::Chat shape. Interactive chat sits on top of an LLM client this
// core deliberately does not depend on; see SPEC_FULL.md's Non-goals.
func runChat(args []string, globals GlobalFlags) {
	errors.FatalError(errors.NewUsageError(
		"chat is not implemented in this core",
		"interactive chat requires an LLM client, which is outside this tool's scope",
		"use `probe search` to retrieve context and feed it to your own chat client",
	), globals.JSON)
}
