// This file is part of compiler - https://github.com/nand2tetris-go/compiler
//
// Copyright 2026 The nand2tetris-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package jackast builds a parse tree for Jack source, for the curriculum
// XML dump (spec.md §6 `jack_analyzer`). It is deliberately simpler than
// the jack package's fused compiler: no symbol table, no code
// generation, just a structural recording of which grammar rule matched
// and which tokens it consumed.
package jackast

// Node is one parse-tree node: either a grammar-rule node with children
// (Tag names a production, e.g. "class", "expression", "ifStatement") or
// a token leaf (Tag is the token's kind name, Text its literal spelling).
type Node struct {
	Tag      string
	Text     string
	Children []*Node
}

// Rule returns a new non-terminal node for the named grammar production.
func Rule(tag string) *Node { return &Node{Tag: tag, Children: []*Node{}} }

// Leaf returns a new terminal node wrapping a single token.
func Leaf(tag, text string) *Node { return &Node{Tag: tag, Text: text} }

// Add appends child to n's children and returns n, for chaining.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// IsLeaf reports whether n is a token leaf rather than a rule node.
func (n *Node) IsLeaf() bool { return n.Children == nil }
