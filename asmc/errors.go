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

// Package asmc implements the ASM→Hack assembler (spec.md §4.4): a two-pass
// resolver over Hack-ASM text, reusing the teacher's scanner-driven parsing
// technique (asm/parser.go) adapted to Hack's line-oriented syntax instead
// of the teacher's Forth-like whitespace-separated one.
package asmc

import "fmt"

// ErrorKind enumerates the AsmError(kind) variants of spec.md §4.4/§7.
type ErrorKind uint8

const (
	BadInstruction ErrorKind = iota
	ImmediateTooLarge
	DuplicateSymbol
)

func (k ErrorKind) String() string {
	switch k {
	case BadInstruction:
		return "unparseable instruction"
	case ImmediateTooLarge:
		return "address exceeds 15 bits"
	case DuplicateSymbol:
		return "duplicate symbol definition"
	default:
		return "assembler error"
	}
}

// Error is the AsmError(kind, line) variant: the assembler halts on the
// first one encountered (spec.md §7).
type Error struct {
	Kind ErrorKind
	Line int
	Text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Kind, e.Text)
}
