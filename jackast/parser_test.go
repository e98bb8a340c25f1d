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

package jackast_test

import (
	"strings"
	"testing"

	"github.com/nand2tetris-go/compiler/jackast"
)

func findTag(n *jackast.Node, tag string) *jackast.Node {
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func countTag(n *jackast.Node, tag string, count *int) {
	if n.Tag == tag {
		*count++
	}
	for _, c := range n.Children {
		countTag(c, tag, count)
	}
}

func TestParse_minimalClass(t *testing.T) {
	src := `class Main { function void main() { return; } }`
	root, err := jackast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Tag != "class" {
		t.Fatalf("root tag = %q, want class", root.Tag)
	}
	if sub := findTag(root, "subroutineDec"); sub == nil {
		t.Fatal("expected a subroutineDec node")
	}
	if ret := findTag(root, "returnStatement"); ret == nil {
		t.Fatal("expected a returnStatement node")
	}
}

func TestParse_classVarDecAndFieldList(t *testing.T) {
	src := `class Point { field int x, y; static int count; function void dispose() { return; } }`
	root, err := jackast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var n int
	countTag(root, "classVarDec", &n)
	if n != 2 {
		t.Fatalf("classVarDec count = %d, want 2", n)
	}
}

func TestParse_expressionWithArrayAndCall(t *testing.T) {
	src := `class Main {
		function void main() {
			var Array a;
			let a[0] = Main.compute(1, 2) + 3;
			return;
		}
	}`
	root, err := jackast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	let := findTag(root, "letStatement")
	if let == nil {
		t.Fatal("expected letStatement")
	}
	var exprs int
	countTag(root, "expression", &exprs)
	if exprs == 0 {
		t.Fatal("expected at least one expression node")
	}
}

func TestParse_ifElseAndWhile(t *testing.T) {
	src := `class Main {
		function void main() {
			if (true) { let x = 1; } else { let x = 2; }
			while (false) { let x = x; }
			return;
		}
	}`
	root, err := jackast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if findTag(root, "ifStatement") == nil {
		t.Fatal("expected ifStatement")
	}
	if findTag(root, "whileStatement") == nil {
		t.Fatal("expected whileStatement")
	}
}

func TestParse_unaryAndParenthesizedTerms(t *testing.T) {
	src := `class Main { function void main() { let x = -(1 + 2); let y = ~true; return; } }`
	root, err := jackast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var terms int
	countTag(root, "term", &terms)
	if terms == 0 {
		t.Fatal("expected term nodes")
	}
}

func TestParse_syntaxError(t *testing.T) {
	src := `class Main { function void main( { return; } }`
	_, err := jackast.Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected a syntax error for malformed parameter list")
	}
}
