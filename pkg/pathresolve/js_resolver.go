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
	"os"
	"path/filepath"
	"strings"
)

// jsResolver resolves "js:" paths against node_modules, walking up from
// the current working directory the way Node's own module resolution
// does. Scoped packages ("@types/node") keep their scope segment as part
// of the module name; anything after is the subpath.
type jsResolver struct{}

func (jsResolver) Prefix() string { return "js:" }

func (jsResolver) SplitModuleAndSubpath(after string) (string, string, error) {
	after = strings.Trim(after, "/")
	if after == "" {
		return "", "", fmt.Errorf("empty js package path")
	}

	segments := strings.Split(after, "/")
	if strings.HasPrefix(segments[0], "@") {
		if len(segments) < 2 {
			return "", "", fmt.Errorf("scoped package %q is missing a name segment", after)
		}
		module := segments[0] + "/" + segments[1]
		return module, strings.Join(segments[2:], "/"), nil
	}

	return segments[0], strings.Join(segments[1:], "/"), nil
}

func (jsResolver) Resolve(module string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(module))
		if dirExists(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("package %q not found in any ancestor node_modules", module)
}
