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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// grammar bundles a Tree-sitter language with the two language-specific
// predicates ParseFileForCodeBlocks needs: which node kinds are acceptable
// result boundaries, and which nodes are test code.
type grammar struct {
	language        func() *sitter.Language
	acceptableParent func(nodeType string) bool
	isTestNode      func(node *sitter.Node, content []byte) bool
}

// extensionGrammars maps a file extension (without the leading dot) to the
// grammar key in grammars; an extension missing here is what makes
// ParseFileForCodeBlocks return ErrUnsupportedLanguage.
var extensionGrammars = map[string]string{
	"rs":  "rust",
	"js":  "javascript",
	"jsx": "javascript",
	"mjs": "javascript",
	"cjs": "javascript",
	"ts":  "typescript",
	"tsx": "tsx",
	"py":  "python",
	"go":  "go",
	"c":   "c",
	"h":   "c",
	"cpp": "cpp",
	"cc":  "cpp",
	"cxx": "cpp",
	"hpp": "cpp",
	"hxx": "cpp",
	"java": "java",
	"rb":  "ruby",
	"php": "php",
}

var grammars = map[string]grammar{
	"go": {
		language:         golang.GetLanguage,
		acceptableParent: goAcceptableParent,
		isTestNode:       goIsTestNode,
	},
	"rust": {
		language:         rust.GetLanguage,
		acceptableParent: rustAcceptableParent,
		isTestNode:       rustIsTestNode,
	},
	"javascript": {
		language:         javascript.GetLanguage,
		acceptableParent: jsAcceptableParent,
		isTestNode:       jsIsTestNode,
	},
	"typescript": {
		language:         typescript.GetLanguage,
		acceptableParent: jsAcceptableParent,
		isTestNode:       jsIsTestNode,
	},
	"tsx": {
		language:         tsx.GetLanguage,
		acceptableParent: jsAcceptableParent,
		isTestNode:       jsIsTestNode,
	},
	"python": {
		language:         python.GetLanguage,
		acceptableParent: pythonAcceptableParent,
		isTestNode:       pythonIsTestNode,
	},
	"c": {
		language:         c.GetLanguage,
		acceptableParent: cAcceptableParent,
		isTestNode:       nameHeuristicTestNode,
	},
	"cpp": {
		language:         cpp.GetLanguage,
		acceptableParent: cppAcceptableParent,
		isTestNode:       nameHeuristicTestNode,
	},
	"java": {
		language:         java.GetLanguage,
		acceptableParent: javaAcceptableParent,
		isTestNode:       javaIsTestNode,
	},
	"ruby": {
		language:         ruby.GetLanguage,
		acceptableParent: rubyAcceptableParent,
		isTestNode:       nameHeuristicTestNode,
	},
	"php": {
		language:         php.GetLanguage,
		acceptableParent: phpAcceptableParent,
		isTestNode:       nameHeuristicTestNode,
	},
}

// grammarForExtension resolves a file extension (with or without a
// leading dot) to its grammar, per spec.md's supported mapping:
// rs, js/jsx/mjs/cjs, ts/tsx, py, go, c/h, cpp/cc/cxx/hpp/hxx, java, rb, php.
func grammarForExtension(ext string) (grammar, bool) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	key, ok := extensionGrammars[ext]
	if !ok {
		return grammar{}, false
	}
	g, ok := grammars[key]
	return g, ok
}

var goAcceptableRoots = map[string]struct{}{
	"function_declaration": {}, "method_declaration": {},
	"type_declaration": {}, "type_spec": {},
	"const_declaration": {}, "var_declaration": {}, "import_declaration": {},
	"source_file": {},
}

func goAcceptableParent(nodeType string) bool {
	_, ok := goAcceptableRoots[nodeType]
	return ok
}

func goIsTestNode(node *sitter.Node, content []byte) bool {
	if node.Type() != "function_declaration" {
		return false
	}
	name := fieldText(node, "name", content)
	return strings.HasPrefix(name, "Test") || strings.HasPrefix(name, "Benchmark") || strings.HasPrefix(name, "Example")
}

var rustAcceptableRoots = map[string]struct{}{
	"function_item": {}, "impl_item": {}, "struct_item": {}, "enum_item": {},
	"trait_item": {}, "mod_item": {}, "const_item": {}, "static_item": {},
	"source_file": {},
}

func rustAcceptableParent(nodeType string) bool {
	_, ok := rustAcceptableRoots[nodeType]
	return ok
}

// rustIsTestNode flags #[test]-attributed functions and anything nested
// under a `mod tests` block, by inspecting the preceding sibling
// (attribute_item) and ancestor mod_item names.
func rustIsTestNode(node *sitter.Node, content []byte) bool {
	if node.Type() == "function_item" {
		if prev := node.PrevSibling(); prev != nil && prev.Type() == "attribute_item" {
			text := string(content[prev.StartByte():prev.EndByte()])
			if strings.Contains(text, "test") {
				return true
			}
		}
	}
	if node.Type() == "mod_item" {
		name := fieldText(node, "name", content)
		if name == "tests" || name == "test" {
			return true
		}
	}
	return false
}

var jsAcceptableRoots = map[string]struct{}{
	"function_declaration": {}, "method_definition": {}, "class_declaration": {},
	"interface_declaration": {}, "export_statement": {}, "lexical_declaration": {},
	"program": {},
}

func jsAcceptableParent(nodeType string) bool {
	_, ok := jsAcceptableRoots[nodeType]
	return ok
}

// jsIsTestNode flags describe/it/test(...) call expressions, the Jest/Mocha
// convention the original tool targets.
func jsIsTestNode(node *sitter.Node, content []byte) bool {
	if node.Type() != "call_expression" && node.Type() != "expression_statement" {
		return false
	}
	text := string(content[node.StartByte():node.EndByte()])
	for _, fn := range []string{"describe(", "it(", "test(", "suite("} {
		if strings.HasPrefix(strings.TrimSpace(text), fn) {
			return true
		}
	}
	return false
}

var pythonAcceptableRoots = map[string]struct{}{
	"function_definition": {}, "class_definition": {}, "module": {},
}

func pythonAcceptableParent(nodeType string) bool {
	_, ok := pythonAcceptableRoots[nodeType]
	return ok
}

func pythonIsTestNode(node *sitter.Node, content []byte) bool {
	if node.Type() != "function_definition" && node.Type() != "class_definition" {
		return false
	}
	name := fieldText(node, "name", content)
	return strings.HasPrefix(name, "test_") || strings.Contains(name, "Test")
}

var cAcceptableRoots = map[string]struct{}{
	"function_definition": {}, "struct_specifier": {}, "enum_specifier": {},
	"translation_unit": {},
}

func cAcceptableParent(nodeType string) bool {
	_, ok := cAcceptableRoots[nodeType]
	return ok
}

var cppAcceptableRoots = map[string]struct{}{
	"function_definition": {}, "struct_specifier": {}, "enum_specifier": {},
	"class_specifier": {}, "namespace_definition": {}, "translation_unit": {},
}

func cppAcceptableParent(nodeType string) bool {
	_, ok := cppAcceptableRoots[nodeType]
	return ok
}

var javaAcceptableRoots = map[string]struct{}{
	"method_declaration": {}, "class_declaration": {}, "interface_declaration": {},
	"enum_declaration": {}, "program": {},
}

func javaAcceptableParent(nodeType string) bool {
	_, ok := javaAcceptableRoots[nodeType]
	return ok
}

func javaIsTestNode(node *sitter.Node, content []byte) bool {
	if node.Type() != "method_declaration" {
		return false
	}
	name := fieldText(node, "name", content)
	return strings.HasPrefix(name, "test") || strings.HasPrefix(name, "Test")
}

var rubyAcceptableRoots = map[string]struct{}{
	"method": {}, "class": {}, "module": {}, "program": {},
}

func rubyAcceptableParent(nodeType string) bool {
	_, ok := rubyAcceptableRoots[nodeType]
	return ok
}

var phpAcceptableRoots = map[string]struct{}{
	"function_definition": {}, "method_declaration": {}, "class_declaration": {},
	"interface_declaration": {}, "trait_declaration": {}, "program": {},
}

func phpAcceptableParent(nodeType string) bool {
	_, ok := phpAcceptableRoots[nodeType]
	return ok
}

// nameHeuristicTestNode is the shared fallback for grammars spec.md
// doesn't give an explicit test-construct example for: any named node
// whose "name" field starts with "test" in any letter case. Names that
// only contain "Test" further in are not flagged.
func nameHeuristicTestNode(node *sitter.Node, content []byte) bool {
	name := fieldText(node, "name", content)
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "test")
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return string(content[n.StartByte():n.EndByte()])
}
