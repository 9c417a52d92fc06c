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

// Package walk discovers candidate files under a repository root,
// applying exclude globs (github.com/bmatcuk/doublestar/v4) and a
// minimal ancestor .gitignore reader. It deliberately does not implement a
// full gitignore engine — only plain patterns, "**" globs, and leading "!"
// negation, read from the target directory's own .gitignore plus any
// .gitignore files in its ancestor directories, up to the nearest directory
// holding .git or the filesystem root. .gitignore files in subdirectories
// below the target directory are not read.
package walk
