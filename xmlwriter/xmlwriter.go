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

// Package xmlwriter renders a jackast.Node parse tree in the curriculum
// XML format consumed by the nand2tetris test tooling: one element per
// grammar rule, token leaves wrapped in their kind tag with the literal
// text padded by single spaces, two-space indentation per nesting level.
package xmlwriter

import (
	"bufio"
	"io"
	"strings"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
	"github.com/nand2tetris-go/compiler/jackast"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Write renders n and its descendants to w.
func Write(w io.Writer, n *jackast.Node) error {
	bw := bufio.NewWriter(w)
	ew := pipeline.NewErrWriter(bw)
	writeNode(ew, n, 0)
	if ew.Err != nil {
		return ew.Err
	}
	return bw.Flush()
}

func writeNode(w *pipeline.ErrWriter, n *jackast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		w.WriteString(indent)
		w.WriteString("<")
		w.WriteString(n.Tag)
		w.WriteString("> ")
		w.WriteString(xmlEscaper.Replace(n.Text))
		w.WriteString(" </")
		w.WriteString(n.Tag)
		w.WriteString(">\n")
		return
	}
	w.WriteString(indent)
	w.WriteString("<")
	w.WriteString(n.Tag)
	w.WriteString(">\n")
	for _, child := range n.Children {
		writeNode(w, child, depth+1)
	}
	w.WriteString(indent)
	w.WriteString("</")
	w.WriteString(n.Tag)
	w.WriteString(">\n")
}
