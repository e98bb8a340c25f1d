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

package xmlwriter_test

import (
	"strings"
	"testing"

	"github.com/nand2tetris-go/compiler/jackast"
	"github.com/nand2tetris-go/compiler/xmlwriter"
)

func TestWrite_leafAndNesting(t *testing.T) {
	root := jackast.Rule("class")
	root.Add(jackast.Leaf("keyword", "class"))
	root.Add(jackast.Leaf("identifier", "Main"))
	inner := jackast.Rule("subroutineDec")
	inner.Add(jackast.Leaf("keyword", "function"))
	root.Add(inner)

	var buf strings.Builder
	if err := xmlwriter.Write(&buf, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := buf.String()
	want := "<class>\n" +
		"  <keyword> class </keyword>\n" +
		"  <identifier> Main </identifier>\n" +
		"  <subroutineDec>\n" +
		"    <keyword> function </keyword>\n" +
		"  </subroutineDec>\n" +
		"</class>\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWrite_escapesXMLSpecialChars(t *testing.T) {
	leaf := jackast.Leaf("symbol", "<")
	var buf strings.Builder
	if err := xmlwriter.Write(&buf, leaf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "<symbol> &lt; </symbol>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWrite_endToEndFromParse(t *testing.T) {
	src := `class Main { function void main() { return; } }`
	root, err := jackast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf strings.Builder
	if err := xmlwriter.Write(&buf, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "<class>\n") || !strings.HasSuffix(got, "</class>\n") {
		t.Fatalf("unexpected XML shape:\n%s", got)
	}
	if !strings.Contains(got, "<keyword> class </keyword>") {
		t.Fatalf("missing class keyword leaf:\n%s", got)
	}
}
