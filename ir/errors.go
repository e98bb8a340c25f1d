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

package ir

import "fmt"

// ErrorKind enumerates the IRError(kind) variants of spec.md §7 that can
// arise while reading the textual .vm syntax. Segment-range and
// flow-placement failures (PopConstant, OutOfRangeIndex,
// FlowOutsideFunction) are raised later by the translate package, since
// spec.md places them in the translator's failure semantics (§4.3), not the
// parser's.
type ErrorKind uint8

const (
	BadSyntax ErrorKind = iota
	UnknownSegment
	BadSymbol
	BadIndex
)

func (k ErrorKind) String() string {
	switch k {
	case BadSyntax:
		return "malformed IR command"
	case UnknownSegment:
		return "unknown memory segment"
	case BadSymbol:
		return "invalid IR symbol"
	case BadIndex:
		return "invalid index"
	default:
		return "IR error"
	}
}

// Error is the IRError(kind) variant, carrying the source line for
// diagnostics even though spec.md's flat error sum does not mandate one for
// this stage.
type Error struct {
	Kind ErrorKind
	Line int
	Text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Kind, e.Text)
}
