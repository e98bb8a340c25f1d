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

package asmc

import (
	"io"

	"github.com/nand2tetris-go/compiler/hack"
	"github.com/nand2tetris-go/compiler/internal/pipeline"
)

// Assemble performs the two-pass ASM→Hack translation of spec.md §4.4 and
// returns the resulting machine words in program order. name is used only
// for diagnostics.
func Assemble(name string, r io.Reader) ([]uint16, error) {
	lines, err := parseAll(name, r)
	if err != nil {
		return nil, err
	}

	table := NewSymbolTable()

	// Pass 1: register labels at their instruction address; real
	// instructions advance the address counter, labels do not.
	addr := uint16(0)
	for _, l := range lines {
		if l.kind == lineLabel {
			if !table.DefineLabel(l.sym, addr) {
				return nil, &Error{Kind: DuplicateSymbol, Line: l.lineNo, Text: l.sym}
			}
			continue
		}
		addr++
	}

	// Pass 2: resolve each real instruction to a 16-bit word.
	words := make([]uint16, 0, len(lines))
	for _, l := range lines {
		var instr hack.Instruction
		switch l.kind {
		case lineLabel:
			continue
		case lineAddrLiteral:
			instr = hack.Instruction{Kind: hack.KindAddress, Address: l.value}
		case lineAddrSymbol:
			instr = hack.Instruction{Kind: hack.KindAddress, Address: table.Resolve(l.sym)}
		case lineCompute:
			instr = hack.Instruction{Kind: hack.KindCompute, Comp: l.comp, Dest: l.dest, Jump: l.jump}
		}
		word, err := instr.Encode()
		if err != nil {
			return nil, &Error{Kind: BadInstruction, Line: l.lineNo, Text: err.Error()}
		}
		words = append(words, word)
	}
	return words, nil
}

// WriteHack writes words in the .hack on-disk format: one 16-digit binary
// line per word, LF-terminated (spec.md §6).
func WriteHack(w io.Writer, words []uint16) error {
	ew := pipeline.NewErrWriter(w)
	for _, word := range words {
		ew.WriteString(hack.Bits16(word))
		ew.WriteString("\n")
	}
	return ew.Err
}
