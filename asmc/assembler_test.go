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

package asmc_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nand2tetris-go/compiler/asmc"
	"github.com/nand2tetris-go/compiler/hack"
)

// TestAssemble_literal is the worked example of spec.md §8 item 7.
func TestAssemble_literal(t *testing.T) {
	src := "@21\nD=A\n@3\nM=D\n"
	words, err := asmc.Assemble("literal", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []string{
		"0000000000010101",
		"1110110000010000",
		"0000000000000011",
		"1110001100001000",
	}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i, w := range words {
		if got := hack.Bits16(w); got != want[i] {
			t.Errorf("word %d: got %s, want %s", i, got, want[i])
		}
	}
}

// TestAssemble_determinism covers spec.md §8 item 3: assembling the same
// source twice yields byte-identical output.
func TestAssemble_determinism(t *testing.T) {
	src := `
	(LOOP)
	@i
	M=M+1
	@LOOP
	0;JMP
	`
	w1, err := asmc.Assemble("t", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble #1: %v", err)
	}
	w2, err := asmc.Assemble("t", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble #2: %v", err)
	}
	if !reflect.DeepEqual(w1, w2) {
		t.Fatalf("non-deterministic assembly: %v != %v", w1, w2)
	}
}

func TestAssemble_labelsAndVariables(t *testing.T) {
	src := `
	@i
	M=0
(LOOP)
	@i
	D=M
	@END
	D;JGE
	@i
	M=M+1
	@LOOP
	0;JMP
(END)
	`
	words, err := asmc.Assemble("t", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(words) != 10 {
		t.Fatalf("got %d words, want 10", len(words))
	}
	// "i" is a user variable, auto-allocated at address 16.
	if got := hack.Bits16(words[0]); got != hack.Bits16(16) {
		t.Errorf("first @i should resolve to address 16, got %s", got)
	}
}

func TestAssemble_duplicateLabel(t *testing.T) {
	_, err := asmc.Assemble("dup", strings.NewReader("(LOOP)\n@0\n(LOOP)\n"))
	if err == nil {
		t.Fatal("expected duplicate label error")
	}
	asmErr, ok := err.(*asmc.Error)
	if !ok || asmErr.Kind != asmc.DuplicateSymbol {
		t.Fatalf("got %v, want DuplicateSymbol", err)
	}
}

func TestAssemble_reservedSymbolRedefinition(t *testing.T) {
	_, err := asmc.Assemble("reserved", strings.NewReader("(SP)\n@0\n"))
	if err == nil {
		t.Fatal("expected duplicate symbol error for reserved name SP")
	}
}

func TestAssemble_immediateTooLarge(t *testing.T) {
	_, err := asmc.Assemble("big", strings.NewReader("@32768\n"))
	if err == nil {
		t.Fatal("expected ImmediateTooLarge error")
	}
	asmErr, ok := err.(*asmc.Error)
	if !ok || asmErr.Kind != asmc.ImmediateTooLarge {
		t.Fatalf("got %v, want ImmediateTooLarge", err)
	}
}

func TestAssemble_badInstruction(t *testing.T) {
	_, err := asmc.Assemble("bad", strings.NewReader("X=Y+Z\n"))
	if err == nil {
		t.Fatal("expected BadInstruction error")
	}
}
