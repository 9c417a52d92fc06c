// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package walk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixture "github.com/kraklabs/probe/internal/testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	fixture.WriteFile(t, root, rel, content)
}

func TestWalk_BasicDiscovery(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "pkg/util.go", "package pkg\n")

	w := New(nil)
	files, err := w.Walk(context.Background(), root, Options{})
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "main.go")
	assert.Contains(t, paths, "pkg/util.go")
}

func TestWalk_IgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "node_modules/lib/index.js", "module.exports = {}\n")

	w := New(nil)
	files, err := w.Walk(context.Background(), root, Options{IgnorePatterns: []string{"node_modules/**"}})
	require.NoError(t, err)

	for _, f := range files {
		assert.NotContains(t, f.Path, "node_modules")
	}
}

func TestWalk_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.go", "x")
	writeFile(t, root, "big.go", string(make([]byte, 1000)))

	w := New(nil)
	files, err := w.Walk(context.Background(), root, Options{MaxFileSize: 10})
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "small.go")
	assert.NotContains(t, paths, "big.go")
}

func TestWalk_RespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\nbuild/\n!build/keep.txt\n")
	writeFile(t, root, "app.log", "noise\n")
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "build/output.bin", "bin\n")
	writeFile(t, root, "build/keep.txt", "kept\n")

	w := New(nil)
	files, err := w.Walk(context.Background(), root, Options{RespectGitignore: true})
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "main.go")
	assert.NotContains(t, paths, "app.log")
	assert.NotContains(t, paths, "build/output.bin")
}

func TestWalk_SkipsGitDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main\n")
	writeFile(t, root, "main.go", "package main\n")

	w := New(nil)
	files, err := w.Walk(context.Background(), root, Options{})
	require.NoError(t, err)

	for _, f := range files {
		assert.NotContains(t, f.Path, ".git/")
	}
}

func TestWalk_ContextCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := New(nil)
	_, err := w.Walk(ctx, root, Options{})
	assert.Error(t, err)
}
