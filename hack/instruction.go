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

// Package hack defines the 16-bit Hack machine instruction (spec.md §3,
// §4.4): the tagged Address/Compute variant, its bit-exact encoding, and a
// disassembler used to round-trip it back to mnemonic form. The comp/dest/
// jump tables are cross-checked against the teacher's opcode-table idiom
// (asm/asm.go's `opcodes` array) and against the pack's own from-scratch
// Nand2Tetris Go implementation (its-hmny/nand2tetris's pkg/hack tables).
package hack

import "fmt"

// Kind tags the two Hack instruction forms.
type Kind uint8

const (
	KindAddress Kind = iota
	KindCompute
)

// Instruction is either an A-instruction (Address, a 15-bit immediate) or a
// C-instruction (Compute: comp/dest/jump mnemonics).
type Instruction struct {
	Kind    Kind
	Address uint16 // KindAddress: value, must fit in 15 bits
	Comp    string // KindCompute: e.g. "D+A", "0", "!M"
	Dest    string // KindCompute: subset of {A,D,M} in any order, "" for none
	Jump    string // KindCompute: one of JGT/JEQ/JGE/JLT/JNE/JLE/JMP, "" for none
}

// compTable is the fixed computation table of spec.md §4.4: 23 accepted
// spellings mapping to 18 distinct codes (commutative forms share one). Entries
// are keyed on the A-register spelling; callers with an M-based comp look up
// the A-spelling and set the A-mux bit themselves (see Encode).
var compTable = map[string]uint16{
	"0":  0b101010,
	"1":  0b111111,
	"-1": 0b111010,
	"D":  0b001100,
	"A":  0b110000,
	"!D": 0b001101,
	"!A": 0b110001,
	"-D": 0b001111,
	"-A": 0b110011,
	"D+1": 0b011111, "1+D": 0b011111,
	"A+1": 0b110111, "1+A": 0b110111,
	"D-1": 0b001110,
	"A-1": 0b110010,
	"D+A": 0b000010, "A+D": 0b000010,
	"D-A": 0b010011,
	"A-D": 0b000111,
	"D&A": 0b000000, "A&D": 0b000000,
	"D|A": 0b010101, "A|D": 0b010101,
}

var jumpTable = map[string]uint16{
	"":    0,
	"JGT": 0b001,
	"JEQ": 0b010,
	"JGE": 0b011,
	"JLT": 0b100,
	"JNE": 0b101,
	"JLE": 0b110,
	"JMP": 0b111,
}

var jumpNames = func() map[uint16]string {
	m := make(map[uint16]string, len(jumpTable))
	for s, v := range jumpTable {
		m[v] = s
	}
	return m
}()

func destBits(dest string) (uint16, error) {
	var bits uint16
	seen := map[byte]bool{}
	for i := 0; i < len(dest); i++ {
		c := dest[i]
		if seen[c] {
			return 0, fmt.Errorf("dest %q specifies %q more than once", dest, c)
		}
		seen[c] = true
		switch c {
		case 'A':
			bits |= 0b100
		case 'D':
			bits |= 0b010
		case 'M':
			bits |= 0b001
		default:
			return 0, fmt.Errorf("dest %q: invalid register %q", dest, c)
		}
	}
	return bits, nil
}

func destName(bits uint16) string {
	var s string
	if bits&0b100 != 0 {
		s += "A"
	}
	if bits&0b010 != 0 {
		s += "D"
	}
	if bits&0b001 != 0 {
		s += "M"
	}
	return s
}

// Encode returns the 16-bit word for the instruction, or an error if it is
// ill-formed. The asmc parser rejects oversized immediates and structurally
// malformed lines itself, but it does not check comp/dest/jump mnemonics:
// Encode is where those are validated, and asmc reports an Encode error as
// BadInstruction.
func (i Instruction) Encode() (uint16, error) {
	switch i.Kind {
	case KindAddress:
		if i.Address >= 1<<15 {
			return 0, fmt.Errorf("address %d exceeds 15 bits", i.Address)
		}
		return i.Address, nil
	case KindCompute:
		comp := i.Comp
		var aMux uint16
		if containsM(comp) {
			aMux = 1
			comp = replaceMWithA(comp)
		}
		code, ok := compTable[comp]
		if !ok {
			return 0, fmt.Errorf("unknown comp %q", i.Comp)
		}
		dest, err := destBits(i.Dest)
		if err != nil {
			return 0, err
		}
		jump, ok := jumpTable[i.Jump]
		if !ok {
			return 0, fmt.Errorf("unknown jump %q", i.Jump)
		}
		word := uint16(0b111) << 13
		word |= aMux << 12
		word |= code << 6
		word |= dest << 3
		word |= jump
		return word, nil
	default:
		return 0, fmt.Errorf("unknown instruction kind %d", i.Kind)
	}
}

func containsM(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 'M' {
			return true
		}
	}
	return false
}

func replaceMWithA(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == 'M' {
			b[i] = 'A'
		}
	}
	return string(b)
}

// Disassemble decodes a 16-bit Hack word back into an Instruction. It is
// used by the round-trip property test of spec.md §8 item 5/7, not by the
// assembler pipeline itself (which only ever encodes).
func Disassemble(word uint16) Instruction {
	if word&(1<<15) == 0 {
		return Instruction{Kind: KindAddress, Address: word & 0x7FFF}
	}
	aMux := (word >> 12) & 1
	code := (word >> 6) & 0x3F
	dest := (word >> 3) & 0b111
	jump := word & 0b111
	comp := compName(code)
	if aMux == 1 {
		comp = replaceAWithM(comp)
	}
	return Instruction{
		Kind: KindCompute,
		Comp: comp,
		Dest: destName(dest),
		Jump: jumpNames[jump],
	}
}

var compNames = func() map[uint16]string {
	// Canonical spelling per code; ties (e.g. D+A vs A+D) always resolve to
	// the D-first spelling, matching the table order in spec.md §4.4.
	order := []string{
		"0", "1", "-1", "D", "A", "!D", "!A", "-D", "-A",
		"D+1", "A+1", "D-1", "A-1", "D+A", "D-A", "A-D", "D&A", "D|A",
	}
	m := make(map[uint16]string, len(order))
	for _, name := range order {
		m[compTable[name]] = name
	}
	return m
}()

func compName(code uint16) string {
	if s, ok := compNames[code]; ok {
		return s
	}
	return ""
}

func replaceAWithM(comp string) string {
	b := []byte(comp)
	for i := range b {
		if b[i] == 'A' {
			b[i] = 'M'
		}
	}
	return string(b)
}

// Bits16 renders word as 16 ASCII binary digits, the on-disk format of a
// .hack file (spec.md §6).
func Bits16(word uint16) string {
	buf := make([]byte, 16)
	for i := 0; i < 16; i++ {
		if word&(1<<(15-i)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
