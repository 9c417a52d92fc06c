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

package block

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// parserPools holds one sync.Pool of *sitter.Parser per file extension
// string as passed to ParseFileForCodeBlocks, initialized lazily the first
// time that extension is seen (so "js" and "jsx" get separate pools even
// though they share a grammar). Parsers are not
// safe for concurrent use, so pkg/probe's file worker pool borrows and
// returns one per file instead of sharing a single instance, the same
// shape as TreeSitterParser's per-language sync.Pool fields.
var (
	parserPoolsMu sync.Mutex
	parserPools   = map[string]*sync.Pool{}
)

func parserPool(key string, lang func() *sitter.Language) *sync.Pool {
	parserPoolsMu.Lock()
	defer parserPoolsMu.Unlock()

	if pool, ok := parserPools[key]; ok {
		return pool
	}
	pool := &sync.Pool{
		New: func() any {
			p := sitter.NewParser()
			p.SetLanguage(lang())
			return p
		},
	}
	parserPools[key] = pool
	return pool
}

// ParseFileForCodeBlocks parses source with the grammar selected by
// extension and, for each 0-based line in lines, emits the CodeBlock for
// its smallest acceptable enclosing node. Lines that map to the same
// (start_byte, end_byte) are deduplicated. When allowTests is false,
// blocks whose node (or an ancestor, for languages that mark a whole
// nested scope as test code) is a recognized test construct are skipped.
func ParseFileForCodeBlocks(ctx context.Context, source []byte, extension string, lines []int, allowTests bool) ([]CodeBlock, error) {
	g, ok := grammarForExtension(extension)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, extension)
	}

	pool := parserPool(extension, g.language)
	parser := pool.Get().(*sitter.Parser)
	defer pool.Put(parser)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer tree.Close()

	root := tree.RootNode()

	parents := make(map[*sitter.Node]*sitter.Node)
	var allNodes []*sitter.Node
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		allNodes = append(allNodes, n)
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			parents[child] = n
			collect(child)
		}
	}
	collect(root)

	seen := make(map[[2]int]struct{})
	var blocks []CodeBlock

	for _, line := range lines {
		target := smallestNodeForLine(allNodes, line)
		if target == nil {
			continue
		}

		acceptable := walkToAcceptableParent(target, parents, g.acceptableParent)
		if acceptable == nil {
			continue
		}

		if !allowTests && isTestAncestry(acceptable, parents, g.isTestNode, source) {
			continue
		}

		key := [2]int{int(acceptable.StartByte()), int(acceptable.EndByte())}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		blocks = append(blocks, CodeBlock{
			StartRow:  int(acceptable.StartPoint().Row),
			EndRow:    int(acceptable.EndPoint().Row),
			StartByte: int(acceptable.StartByte()),
			EndByte:   int(acceptable.EndByte()),
			NodeType:  acceptable.Type(),
		})
	}

	return blocks, nil
}

// smallestNodeForLine returns the node with the smallest byte span among
// allNodes whose row range covers line.
func smallestNodeForLine(allNodes []*sitter.Node, line int) *sitter.Node {
	var best *sitter.Node
	var bestSpan uint32
	for _, n := range allNodes {
		start := n.StartPoint().Row
		end := n.EndPoint().Row
		if uint32(line) < start || uint32(line) > end {
			continue
		}
		span := n.EndByte() - n.StartByte()
		if best == nil || span < bestSpan {
			best = n
			bestSpan = span
		}
	}
	return best
}

// walkToAcceptableParent walks node's ancestry (via parents, the map built
// during the single traversal in ParseFileForCodeBlocks) until it finds a
// node whose kind satisfies acceptable, or the root (which is always
// acceptable per spec.md's "a node at the root (no parent) is acceptable").
func walkToAcceptableParent(node *sitter.Node, parents map[*sitter.Node]*sitter.Node, acceptable func(string) bool) *sitter.Node {
	current := node
	for current != nil {
		parent, hasParent := parents[current]
		if acceptable(current.Type()) || !hasParent {
			return current
		}
		current = parent
	}
	return node
}

// isTestAncestry reports whether node or any of its ancestors up to the
// root is a recognized test construct for the grammar's isTestNode
// predicate.
func isTestAncestry(node *sitter.Node, parents map[*sitter.Node]*sitter.Node, isTestNode func(*sitter.Node, []byte) bool, content []byte) bool {
	current := node
	for current != nil {
		if isTestNode(current, content) {
			return true
		}
		current = parents[current]
	}
	return false
}
