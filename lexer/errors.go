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

package lexer

import (
	"fmt"

	"github.com/nand2tetris-go/compiler/token"
)

// ErrorKind identifies the specific lexical failure (spec.md §4.1).
type ErrorKind uint8

const (
	UnterminatedComment ErrorKind = iota
	UnterminatedString
	IntegerOverflow
	UnknownSymbol
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedComment:
		return "unterminated comment"
	case UnterminatedString:
		return "unterminated string constant"
	case IntegerOverflow:
		return "integer constant overflows 16 bits"
	case UnknownSymbol:
		return "unknown symbol"
	default:
		return "lexical error"
	}
}

// Error is the LexError(kind, line) variant of spec.md §7. It is unrecoverable:
// once returned, the Lexer has stopped producing tokens.
type Error struct {
	Kind ErrorKind
	Pos  token.Pos
	Text string // offending token text, when available
}

func (e *Error) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s: %s: %q", e.Pos, e.Kind, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
}
