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

package pathresolve

import (
	"fmt"
	"strings"
)

// Resolver is the per-language dispatch contract: split the text after a
// recognized prefix into a module identifier and an optional subpath, then
// locate the module's base directory on disk. Each language's quirks
// (Go's multi-segment stdlib imports, npm's @scope/name packages) live in
// the Resolver, not in a shared base type.
type Resolver interface {
	// Prefix is the scheme this resolver claims, including the trailing
	// colon ("go:", "js:", "rust:").
	Prefix() string
	// SplitModuleAndSubpath parses the text following Prefix.
	SplitModuleAndSubpath(afterPrefix string) (module string, subpath string, err error)
	// Resolve locates module's base directory.
	Resolve(module string) (string, error)
}

var resolvers = []Resolver{
	goResolver{},
	jsResolver{},
	rustResolver{},
}

// Resolve turns a possibly-prefixed path into a filesystem path. Paths
// without a recognized "go:"/"js:"/"rust:" prefix are returned unchanged,
// so callers can pass every search target through Resolve unconditionally.
func Resolve(path string) (string, error) {
	for _, r := range resolvers {
		after, ok := strings.CutPrefix(path, r.Prefix())
		if !ok {
			continue
		}

		module, subpath, err := r.SplitModuleAndSubpath(after)
		if err != nil {
			return "", fmt.Errorf("parse path %q for prefix %q: %w", after, r.Prefix(), err)
		}

		base, err := r.Resolve(module)
		if err != nil {
			return "", fmt.Errorf("resolve module %q for prefix %q: %w", module, r.Prefix(), err)
		}

		if subpath == "" {
			return base, nil
		}
		return joinSubpath(base, subpath), nil
	}

	return path, nil
}

func joinSubpath(base, subpath string) string {
	subpath = strings.TrimPrefix(subpath, "/")
	if subpath == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + subpath
}
