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

package jack_test

import (
	"strings"
	"testing"

	"github.com/nand2tetris-go/compiler/ir"
	"github.com/nand2tetris-go/compiler/jack"
)

func compile(t *testing.T, src string) []ir.Command {
	t.Helper()
	cmds, err := jack.Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return cmds
}

func texts(cmds []ir.Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}

func assertSequence(t *testing.T, got []ir.Command, want []string) {
	t.Helper()
	g := texts(got)
	if len(g) != len(want) {
		t.Fatalf("got %d commands, want %d\ngot:  %v\nwant: %v", len(g), len(want), g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Errorf("command %d: got %q, want %q", i, g[i], want[i])
		}
	}
}

// TestCompile_precedenceLeftAssociative is spec.md §8 property 6, case 1:
// `let x = 1+2*3` must evaluate `*` eagerly and leave 7 on the stack.
func TestCompile_precedenceLeftAssociative(t *testing.T) {
	src := `class Main { function void main() { var int x; let x = 1+2*3; return; } }`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Main.main 1",
		"push constant 1",
		"push constant 2",
		"push constant 3",
		"call Math.multiply 2",
		"add",
		"pop local 0",
		"push constant 0",
		"return",
	})
}

// TestCompile_parenthesizedExpr is spec.md §8 property 6, case 2:
// `let x = (1+2)*3` must evaluate the parenthesized sum first.
func TestCompile_parenthesizedExpr(t *testing.T) {
	src := `class Main { function void main() { var int x; let x = (1+2)*3; return; } }`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Main.main 1",
		"push constant 1",
		"push constant 2",
		"add",
		"push constant 3",
		"call Math.multiply 2",
		"pop local 0",
		"push constant 0",
		"return",
	})
}

// TestCompile_recursiveFibonacci exercises the full call/return, if/else
// and recursive-call machinery of spec.md §8 property 6, case 3.
func TestCompile_recursiveFibonacci(t *testing.T) {
	src := `class Main {
		function int f(int n) { if (n < 2) { return n; } return f(n-1)+f(n-2); }
		function void main() { do f(6); return; }
	}`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Main.f 0",
		"push argument 0",
		"push constant 2",
		"lt",
		"not",
		"if-goto Main.IF_FALSE1",
		"push argument 0",
		"return",
		"label Main.IF_FALSE1",
		"push argument 0",
		"push constant 1",
		"sub",
		"call Main.f 1",
		"push argument 0",
		"push constant 2",
		"sub",
		"call Main.f 1",
		"add",
		"return",
		"function Main.main 0",
		"push constant 6",
		"call Main.f 1",
		"pop temp 0",
		"push constant 0",
		"return",
	})
}

// TestCompile_staticVariable is spec.md §8 property 6, case 4.
func TestCompile_staticVariable(t *testing.T) {
	src := `class Main { static int s; function void main() { let s = 5; let s = s+s; return; } }`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Main.main 0",
		"push constant 5",
		"pop static 0",
		"push static 0",
		"push static 0",
		"add",
		"pop static 0",
		"push constant 0",
		"return",
	})
}

func TestCompile_constructorPrologue(t *testing.T) {
	src := `class Point {
		field int x, y;
		constructor Point new(int ax, int ay) { let x = ax; let y = ay; return this; }
	}`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Point.new 0",
		"push constant 2",
		"call Memory.alloc 1",
		"pop pointer 0",
		"push argument 0",
		"pop this 0",
		"push argument 1",
		"pop this 1",
		"push pointer 0",
		"return",
	})
}

func TestCompile_methodPrologueAndCall(t *testing.T) {
	src := `class Point {
		field int x;
		method int getX() { return x; }
		method void scaleBy(Point other) { do other.getX(); return; }
	}`
	cmds := compile(t, src)
	// getX
	assertSequence(t, cmds[:5], []string{
		"function Point.getX 0",
		"push argument 0",
		"pop pointer 0",
		"push this 0",
		"return",
	})
	// scaleBy: the receiver argument occupies slot 0 (this), so `other` is
	// argument 1.
	assertSequence(t, cmds[5:], []string{
		"function Point.scaleBy 0",
		"push argument 0",
		"pop pointer 0",
		"push argument 1",
		"call Point.getX 1",
		"pop temp 0",
		"push constant 0",
		"return",
	})
}

func TestCompile_arrayAssignment(t *testing.T) {
	src := `class Main { function void main() { var Array arr; var int i, v; let arr[i] = v; return; } }`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Main.main 3",
		"push local 0",
		"push local 1",
		"add",
		"push local 2",
		"pop temp 0",
		"pop pointer 1",
		"push temp 0",
		"pop that 0",
		"push constant 0",
		"return",
	})
}

func TestCompile_stringConstant(t *testing.T) {
	src := `class Main { function void main() { do Output.printString("Hi"); return; } }`
	cmds := compile(t, src)
	assertSequence(t, cmds, []string{
		"function Main.main 0",
		"push constant 2",
		"call String.new 1",
		"push constant 72",
		"call String.appendChar 2",
		"push constant 105",
		"call String.appendChar 2",
		"call Output.printString 1",
		"pop temp 0",
		"push constant 0",
		"return",
	})
}

func TestCompile_undefinedName(t *testing.T) {
	src := `class Main { function void main() { let x = 1; return; } }`
	_, err := jack.Compile(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected SemError for undefined name")
	}
	semErr, ok := err.(*jack.SemError)
	if !ok || semErr.Kind != jack.UndefinedName {
		t.Fatalf("got %v, want UndefinedName", err)
	}
}

func TestCompile_duplicateDeclaration(t *testing.T) {
	src := `class Main { function void main() { var int x; var int x; return; } }`
	_, err := jack.Compile(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected SemError for duplicate declaration")
	}
	semErr, ok := err.(*jack.SemError)
	if !ok || semErr.Kind != jack.DuplicateName {
		t.Fatalf("got %v, want DuplicateName", err)
	}
}

func TestCompile_subroutineVarMayShadowClassField(t *testing.T) {
	src := `class Main { field int x; method void f(int x) { return; } }`
	if _, err := jack.Compile(strings.NewReader(src)); err != nil {
		t.Fatalf("parameter shadowing a field should be legal, got %v", err)
	}
}

func TestCompile_methodOnPrimitive(t *testing.T) {
	src := `class Main { function void main() { var int x; do x.foo(); return; } }`
	_, err := jack.Compile(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected SemError for method call on primitive")
	}
	semErr, ok := err.(*jack.SemError)
	if !ok || semErr.Kind != jack.MethodOnPrimitive {
		t.Fatalf("got %v, want MethodOnPrimitive", err)
	}
}

func TestCompile_syntaxError(t *testing.T) {
	src := `class Main { function void main() { let = 1; return; } }`
	_, err := jack.Compile(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected SyntaxError")
	}
	if _, ok := err.(*jack.SyntaxError); !ok {
		t.Fatalf("got %T, want *jack.SyntaxError", err)
	}
}
