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

package hack_test

import (
	"testing"

	"github.com/nand2tetris-go/compiler/hack"
)

// TestEncode_literal checks the worked example of spec.md §8 item 7:
// @21 / D=A / @3 / M=D
func TestEncode_literal(t *testing.T) {
	instrs := []hack.Instruction{
		{Kind: hack.KindAddress, Address: 21},
		{Kind: hack.KindCompute, Comp: "A", Dest: "D"},
		{Kind: hack.KindAddress, Address: 3},
		{Kind: hack.KindCompute, Comp: "D", Dest: "M"},
	}
	want := []string{
		"0000000000010101",
		"1110110000010000",
		"0000000000000011",
		"1110001100001000",
	}
	for i, instr := range instrs {
		word, err := instr.Encode()
		if err != nil {
			t.Fatalf("instr %d: %v", i, err)
		}
		got := hack.Bits16(word)
		if got != want[i] {
			t.Errorf("instr %d: got %s, want %s", i, got, want[i])
		}
	}
}

// TestEncode_topBitsAlwaysOne confirms spec.md §8 item 5: the top three
// bits of every C-instruction encoding are always 111.
func TestEncode_topBitsAlwaysOne(t *testing.T) {
	comps := []string{"0", "1", "-1", "D", "A", "M", "!D", "!A", "!M", "D+1", "D&A", "D|M"}
	for _, comp := range comps {
		i := hack.Instruction{Kind: hack.KindCompute, Comp: comp}
		word, err := i.Encode()
		if err != nil {
			t.Fatalf("comp %s: %v", comp, err)
		}
		if word&0xE000 != 0xE000 {
			t.Errorf("comp %s: top bits not 111, word=%016b", comp, word)
		}
	}
}

func TestEncode_mRegisterSetsAMux(t *testing.T) {
	i := hack.Instruction{Kind: hack.KindCompute, Comp: "M", Dest: "D"}
	word, err := i.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if word&(1<<12) == 0 {
		t.Errorf("expected A-mux bit set for comp=M, got %016b", word)
	}
}

func TestDisassemble_roundTrip(t *testing.T) {
	cases := []hack.Instruction{
		{Kind: hack.KindAddress, Address: 16384},
		{Kind: hack.KindCompute, Comp: "D+A", Dest: "AMD", Jump: ""},
		{Kind: hack.KindCompute, Comp: "M", Dest: "D", Jump: "JGT"},
		{Kind: hack.KindCompute, Comp: "0", Dest: "", Jump: "JMP"},
	}
	for _, c := range cases {
		word, err := c.Encode()
		if err != nil {
			t.Fatalf("Encode(%+v): %v", c, err)
		}
		back := hack.Disassemble(word)
		word2, err := back.Encode()
		if err != nil {
			t.Fatalf("re-Encode(%+v): %v", back, err)
		}
		if word != word2 {
			t.Errorf("round trip mismatch for %+v: %016b != %016b", c, word, word2)
		}
	}
}
