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

// Package pathresolve resolves "go:", "js:", and "rust:" prefixed search
// targets to an on-disk directory before pkg/walk ever sees them, so
// `probe search pattern go:net/http` can search the standard library
// source the same way a plain filesystem path would be searched. A Go
// module in the module cache is found only when the path carries its
// @version suffix (`go:github.com/gin-gonic/gin@v1.9.1`). Paths without a
// recognized prefix pass through unchanged.
package pathresolve
