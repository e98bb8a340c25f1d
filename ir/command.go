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

// Package ir defines the VM-IR command set (spec.md §3): the stack-machine
// bytecode that sits between the Jack compiler and the ASM translator. A
// Command is a small tagged struct rather than an interface hierarchy,
// mirroring the flat opcode table the teacher repo uses for its own
// stack-machine instruction set (asm/asm.go's `opcodes` table / vm/opcodes.go).
package ir

import "fmt"

// Kind identifies which of the nine command shapes a Command is; together
// they cover the four IR command groups (arithmetic, memory access, program
// flow, function calls).
type Kind uint8

const (
	KindArithmetic Kind = iota
	KindPush
	KindPop
	KindLabel
	KindGoto
	KindIfGoto
	KindFunction
	KindCall
	KindReturn
)

// Op is one of the nine stack-arithmetic operations.
type Op uint8

const (
	Add Op = iota
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not
)

var opNames = [...]string{"add", "sub", "neg", "eq", "gt", "lt", "and", "or", "not"}

func (o Op) String() string { return opNames[o] }

var opIndex = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for i, n := range opNames {
		m[n] = Op(i)
	}
	return m
}()

// Segment is one of the eight memory-access segments (spec.md §3).
type Segment uint8

const (
	Argument Segment = iota
	Local
	Static
	Constant
	This
	That
	Pointer
	Temp
)

var segmentNames = [...]string{"argument", "local", "static", "constant", "this", "that", "pointer", "temp"}

func (s Segment) String() string { return segmentNames[s] }

var segmentIndex = func() map[string]Segment {
	m := make(map[string]Segment, len(segmentNames))
	for i, n := range segmentNames {
		m[n] = Segment(i)
	}
	return m
}()

// Command is a single VM-IR instruction. Only the fields relevant to Kind
// are meaningful; the rest are zero.
type Command struct {
	Kind    Kind
	Op      Op      // KindArithmetic
	Segment Segment // KindPush, KindPop
	Index   uint16  // KindPush, KindPop
	Symbol  string  // KindLabel, KindGoto, KindIfGoto (label); KindFunction, KindCall (name)
	N       uint16  // KindFunction: nLocals; KindCall: nArgs
	Line    int     // source line, for error reporting
}

// String renders the command in the canonical one-line textual syntax of a
// .vm file (spec.md §6).
func (c Command) String() string {
	switch c.Kind {
	case KindArithmetic:
		return c.Op.String()
	case KindPush:
		return fmt.Sprintf("push %s %d", c.Segment, c.Index)
	case KindPop:
		return fmt.Sprintf("pop %s %d", c.Segment, c.Index)
	case KindLabel:
		return fmt.Sprintf("label %s", c.Symbol)
	case KindGoto:
		return fmt.Sprintf("goto %s", c.Symbol)
	case KindIfGoto:
		return fmt.Sprintf("if-goto %s", c.Symbol)
	case KindFunction:
		return fmt.Sprintf("function %s %d", c.Symbol, c.N)
	case KindCall:
		return fmt.Sprintf("call %s %d", c.Symbol, c.N)
	case KindReturn:
		return "return"
	default:
		return "???"
	}
}

// Constructors, used by both the Jack compiler's emitter and the IR parser.

func Arith(op Op) Command                       { return Command{Kind: KindArithmetic, Op: op} }
func Push(seg Segment, idx uint16) Command      { return Command{Kind: KindPush, Segment: seg, Index: idx} }
func Pop(seg Segment, idx uint16) Command       { return Command{Kind: KindPop, Segment: seg, Index: idx} }
func Label(sym string) Command                  { return Command{Kind: KindLabel, Symbol: sym} }
func Goto(sym string) Command                   { return Command{Kind: KindGoto, Symbol: sym} }
func IfGoto(sym string) Command                 { return Command{Kind: KindIfGoto, Symbol: sym} }
func Function(name string, nLocals uint16) Command { return Command{Kind: KindFunction, Symbol: name, N: nLocals} }
func Call(name string, nArgs uint16) Command    { return Command{Kind: KindCall, Symbol: name, N: nArgs} }
func Return() Command                           { return Command{Kind: KindReturn} }
