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

// Package translate implements the IR→ASM translator (spec.md §4.3): a
// stateful per-run translator that turns a sequence of VM-IR commands,
// tagged with their owning class name, into Hack-ASM lines realizing the
// stack-frame calling convention on Hack's flat memory model.
package translate

import "fmt"

// ErrorKind enumerates the IRError(kind) variants of spec.md §4.3/§7.
type ErrorKind uint8

const (
	PopConstant ErrorKind = iota
	OutOfRangeIndex
	FlowOutsideFunction
)

func (k ErrorKind) String() string {
	switch k {
	case PopConstant:
		return "pop constant is illegal"
	case OutOfRangeIndex:
		return "segment index out of range"
	case FlowOutsideFunction:
		return "flow command outside any function"
	default:
		return "translator error"
	}
}

// Error is the IRError(kind) variant: the translator halts on the first
// one encountered (spec.md §7). Line carries the originating IR command's
// source line when known.
type Error struct {
	Kind ErrorKind
	Line int
	Text string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Text)
}
