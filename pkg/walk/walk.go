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

package walk

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileInfo describes a single file discovered under a search root.
type FileInfo struct {
	// Path is relative to the root that was walked.
	Path string
	// FullPath is the absolute path on disk.
	FullPath string
	Size     int64
}

// Options controls which files Walk returns.
type Options struct {
	// IgnorePatterns are doublestar glob patterns matched against the
	// file's root-relative, slash-normalized path. A match excludes the
	// file (or, for a directory, the whole subtree).
	IgnorePatterns []string
	// RespectGitignore additionally applies .gitignore files found in the
	// root and its ancestor directories, up to the nearest ancestor that
	// is itself a VCS root (a ".git" directory) or the filesystem root.
	RespectGitignore bool
	// MaxFileSize skips files larger than this many bytes. Zero disables
	// the check.
	MaxFileSize int64
}

// Walker discovers candidate files under a root directory. It is the
// "external collaborator" spec.md describes: searches and block extraction
// operate on whatever files it returns, without caring how they were found.
type Walker interface {
	Walk(ctx context.Context, root string, opts Options) ([]FileInfo, error)
}

// DefaultWalker is the filesystem-backed Walker that pkg/probe.Run
// builds with New for every search.
type DefaultWalker struct {
	Logger *slog.Logger
}

// New returns a DefaultWalker. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *DefaultWalker {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultWalker{Logger: logger}
}

// Walk traverses root with filepath.WalkDir, skipping directories and files
// matched by opts.IgnorePatterns or by applicable .gitignore files.
func (w *DefaultWalker) Walk(ctx context.Context, root string, opts Options) ([]FileInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var gi *gitignoreSet
	if opts.RespectGitignore {
		gi = loadGitignoreSet(absRoot)
	}

	var files []FileInfo
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.Logger.Warn("walk.fs.error", "path", path, "err", walkErr)
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		if relPath == "." {
			return nil
		}
		normalized := filepath.ToSlash(relPath)

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if matchesAny(opts.IgnorePatterns, normalized) || (gi != nil && gi.matches(normalized, true)) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchesAny(opts.IgnorePatterns, normalized) || (gi != nil && gi.matches(normalized, false)) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			w.Logger.Warn("walk.fs.stat_error", "path", path, "err", infoErr)
			return nil
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			w.Logger.Debug("walk.file.too_large", "path", relPath, "size", info.Size())
			return nil
		}

		files = append(files, FileInfo{
			Path:     normalized,
			FullPath: path,
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return files, err
	}

	return files, nil
}

// matchesAny reports whether relPath (already slash-normalized) matches any
// of patterns, using doublestar so "**" and brace/character-class globs
// work the way they do in .gitignore and shell globbing.
func matchesAny(patterns []string, relPath string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
		if !pathHasSeparator(pattern) {
			if ok, _ := doublestar.Match("**/"+pattern, relPath); ok {
				return true
			}
		}
	}
	return false
}

func pathHasSeparator(s string) bool {
	for _, r := range s {
		if r == '/' {
			return true
		}
	}
	return false
}
