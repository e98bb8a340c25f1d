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

package jack

import (
	"fmt"

	"github.com/nand2tetris-go/compiler/token"
)

// SyntaxErrorKind tells whether a grammar mismatch hit an unexpected token or
// the end of input; the expected rule is carried in SyntaxError.Want.
type SyntaxErrorKind uint8

const (
	UnexpectedToken SyntaxErrorKind = iota
	UnexpectedEOF
)

// SyntaxError is the SyntaxError(kind, line) variant of spec.md §4.2: any
// grammar mismatch, carrying the offending token.
type SyntaxError struct {
	Kind  SyntaxErrorKind
	Line  int
	Found token.Token
	Want  string
}

func (e *SyntaxError) Error() string {
	if e.Kind == UnexpectedEOF {
		return fmt.Sprintf("line %d: unexpected end of input, want %s", e.Line, e.Want)
	}
	return fmt.Sprintf("line %d: unexpected %s, want %s", e.Line, e.Found, e.Want)
}

// SemErrorKind tags a semantic error.
type SemErrorKind uint8

const (
	UndefinedName SemErrorKind = iota
	DuplicateName
	MethodOnPrimitive
)

func (k SemErrorKind) String() string {
	switch k {
	case UndefinedName:
		return "undefined name"
	case DuplicateName:
		return "duplicate declaration"
	case MethodOnPrimitive:
		return "method call on primitive-typed variable"
	default:
		return "semantic error"
	}
}

// SemError is the SemError(kind, line) variant of spec.md §4.2.
type SemError struct {
	Kind SemErrorKind
	Line int
	Name string
}

func (e *SemError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Name)
}
