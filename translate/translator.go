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

package translate

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
	"github.com/nand2tetris-go/compiler/ir"
)

// Translator accumulates ASM lines across however many translation units
// are fed to it. It owns a single monotone label counter and the
// current-function name, shared across all calls to Translate (spec.md
// §5: "multiple source files within a single IR→ASM run share one
// translator instance and thus one label-counter namespace").
type Translator struct {
	lines       []string
	labelNum    int
	className   string
	currentFunc string
}

// New returns an empty Translator.
func New() *Translator { return &Translator{} }

// Lines returns the ASM program accumulated so far, in emission order.
func (t *Translator) Lines() []string { return t.lines }

// Write writes the accumulated ASM lines to w, one per line.
func (t *Translator) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	ew := pipeline.NewErrWriter(bw)
	for _, l := range t.lines {
		ew.WriteString(l)
		ew.WriteString("\n")
	}
	if ew.Err != nil {
		return ew.Err
	}
	return bw.Flush()
}

func (t *Translator) emit(line string)                       { t.lines = append(t.lines, line) }
func (t *Translator) emitf(format string, args ...interface{}) { t.emit(fmt.Sprintf(format, args...)) }
func (t *Translator) emitLabelDef(sym string)                 { t.emit("(" + sym + ")") }

func (t *Translator) newLabel(prefix string) string {
	t.labelNum++
	return fmt.Sprintf("%s%d", prefix, t.labelNum)
}

// pushD emits the ASM fragment that pushes the D register onto the stack
// and advances SP (spec.md §4.3: `*SP=D; SP++`).
func (t *Translator) pushD() {
	t.emit("@SP")
	t.emit("A=M")
	t.emit("M=D")
	t.emit("@SP")
	t.emit("M=M+1")
}

// popD emits the ASM fragment that pops the top of the stack into D and
// retreats SP.
func (t *Translator) popD() {
	t.emit("@SP")
	t.emit("M=M-1")
	t.emit("A=M")
	t.emit("D=M")
}

// Bootstrap emits the unconditional program header of spec.md §4.3: set
// SP=256, then call Sys.init with 0 arguments using the standard call
// sequence. Callers emit this exactly once, at the head of the output.
func (t *Translator) Bootstrap() {
	t.emit("@256")
	t.emit("D=A")
	t.emit("@SP")
	t.emit("M=D")
	t.emitCall("Sys.init", 0)
}

var dynamicSegmentBase = map[ir.Segment]string{
	ir.Argument: "ARG",
	ir.Local:    "LCL",
	ir.This:     "THIS",
	ir.That:     "THAT",
}

// fixedAddress returns the compile-time-known address of a pointer/temp
// cell; pointer 0/1 alias THIS/THAT themselves (R3/R4), temp i aliases
// R5+i (spec.md §4.3 memory map).
func fixedAddress(seg ir.Segment, idx uint16) uint16 {
	if seg == ir.Pointer {
		return 3 + idx
	}
	return 5 + idx
}

func rangeCheck(seg ir.Segment, idx uint16, line int) error {
	switch seg {
	case ir.Pointer:
		if idx > 1 {
			return &Error{Kind: OutOfRangeIndex, Line: line, Text: fmt.Sprintf("pointer %d", idx)}
		}
	case ir.Temp:
		if idx > 7 {
			return &Error{Kind: OutOfRangeIndex, Line: line, Text: fmt.Sprintf("temp %d", idx)}
		}
	}
	return nil
}

// Translate appends the ASM realization of cmds, one translation unit
// (one Jack/VM class) at a time. className mangles that unit's static
// segment (spec.md §9).
func (t *Translator) Translate(className string, cmds []ir.Command) error {
	t.className = className
	for _, cmd := range cmds {
		if err := t.translateOne(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) translateOne(cmd ir.Command) error {
	switch cmd.Kind {
	case ir.KindArithmetic:
		t.translateArithmetic(cmd.Op)
		return nil
	case ir.KindPush:
		return t.translatePush(cmd)
	case ir.KindPop:
		return t.translatePop(cmd)
	case ir.KindLabel:
		return t.translateLabel(cmd)
	case ir.KindGoto:
		return t.translateGoto(cmd)
	case ir.KindIfGoto:
		return t.translateIfGoto(cmd)
	case ir.KindFunction:
		t.translateFunction(cmd)
		return nil
	case ir.KindCall:
		t.emitCall(cmd.Symbol, cmd.N)
		return nil
	case ir.KindReturn:
		return t.translateReturn(cmd)
	default:
		return &Error{Kind: FlowOutsideFunction, Line: cmd.Line, Text: "unknown command"}
	}
}

func (t *Translator) translatePush(cmd ir.Command) error {
	switch cmd.Segment {
	case ir.Constant:
		t.emitf("@%d", cmd.Index)
		t.emit("D=A")
		t.pushD()
	case ir.Argument, ir.Local, ir.This, ir.That:
		t.emitf("@%d", cmd.Index)
		t.emit("D=A")
		t.emitf("@%s", dynamicSegmentBase[cmd.Segment])
		t.emit("A=M+D")
		t.emit("D=M")
		t.pushD()
	case ir.Static:
		t.emitf("@%s.%d", t.className, cmd.Index)
		t.emit("D=M")
		t.pushD()
	case ir.Pointer:
		if err := rangeCheck(cmd.Segment, cmd.Index, cmd.Line); err != nil {
			return err
		}
		t.emitf("@%d", fixedAddress(cmd.Segment, cmd.Index))
		t.emit("D=M")
		t.pushD()
	case ir.Temp:
		if err := rangeCheck(cmd.Segment, cmd.Index, cmd.Line); err != nil {
			return err
		}
		t.emitf("@%d", fixedAddress(cmd.Segment, cmd.Index))
		t.emit("D=M")
		t.pushD()
	}
	return nil
}

func (t *Translator) translatePop(cmd ir.Command) error {
	if cmd.Segment == ir.Constant {
		return &Error{Kind: PopConstant, Line: cmd.Line, Text: "pop constant"}
	}
	switch cmd.Segment {
	case ir.Argument, ir.Local, ir.This, ir.That:
		t.emitf("@%d", cmd.Index)
		t.emit("D=A")
		t.emitf("@%s", dynamicSegmentBase[cmd.Segment])
		t.emit("D=M+D")
		t.emit("@R13")
		t.emit("M=D")
		t.popD()
		t.emit("@R13")
		t.emit("A=M")
		t.emit("M=D")
	case ir.Static:
		t.popD()
		t.emitf("@%s.%d", t.className, cmd.Index)
		t.emit("M=D")
	case ir.Pointer, ir.Temp:
		if err := rangeCheck(cmd.Segment, cmd.Index, cmd.Line); err != nil {
			return err
		}
		t.popD()
		t.emitf("@%d", fixedAddress(cmd.Segment, cmd.Index))
		t.emit("M=D")
	}
	return nil
}

func (t *Translator) translateArithmetic(op ir.Op) {
	switch op {
	case ir.Add:
		t.binaryOp("+")
	case ir.Sub:
		t.binaryOp("-")
	case ir.And:
		t.binaryOp("&")
	case ir.Or:
		t.binaryOp("|")
	case ir.Neg:
		t.unaryOp("-")
	case ir.Not:
		t.unaryOp("!")
	case ir.Eq:
		t.compare("JEQ")
	case ir.Gt:
		t.compare("JGT")
	case ir.Lt:
		t.compare("JLT")
	}
}

func (t *Translator) binaryOp(sym string) {
	t.popD()
	t.emit("@SP")
	t.emit("A=M-1")
	t.emitf("M=M%sD", sym)
}

func (t *Translator) unaryOp(sym string) {
	t.emit("@SP")
	t.emit("A=M-1")
	t.emitf("M=%sM", sym)
}

// compare implements eq/gt/lt using two fresh ASM labels, as required
// since Hack-ASM has no inline conditional move (spec.md §4.3).
func (t *Translator) compare(jump string) {
	trueLabel := t.newLabel("CMP_TRUE")
	endLabel := t.newLabel("CMP_END")
	t.popD()
	t.emit("@SP")
	t.emit("A=M-1")
	t.emit("D=M-D")
	t.emitf("@%s", trueLabel)
	t.emitf("D;%s", jump)
	t.emit("@SP")
	t.emit("A=M-1")
	t.emit("M=0")
	t.emitf("@%s", endLabel)
	t.emit("0;JMP")
	t.emitLabelDef(trueLabel)
	t.emit("@SP")
	t.emit("A=M-1")
	t.emit("M=-1")
	t.emitLabelDef(endLabel)
}

// mangledFlowLabel implements the function-scoped label mangling of
// spec.md §4.3: an IR `label L` inside function F becomes ASM label
// `F$L`.
func (t *Translator) mangledFlowLabel(sym string) string {
	return t.currentFunc + "$" + sym
}

func (t *Translator) requireFunction(line int) error {
	if t.currentFunc == "" {
		return &Error{Kind: FlowOutsideFunction, Line: line, Text: "no enclosing function"}
	}
	return nil
}

func (t *Translator) translateLabel(cmd ir.Command) error {
	if err := t.requireFunction(cmd.Line); err != nil {
		return err
	}
	t.emitLabelDef(t.mangledFlowLabel(cmd.Symbol))
	return nil
}

func (t *Translator) translateGoto(cmd ir.Command) error {
	if err := t.requireFunction(cmd.Line); err != nil {
		return err
	}
	t.emitf("@%s", t.mangledFlowLabel(cmd.Symbol))
	t.emit("0;JMP")
	return nil
}

func (t *Translator) translateIfGoto(cmd ir.Command) error {
	if err := t.requireFunction(cmd.Line); err != nil {
		return err
	}
	t.popD()
	t.emitf("@%s", t.mangledFlowLabel(cmd.Symbol))
	t.emit("D;JNE")
	return nil
}

func (t *Translator) translateFunction(cmd ir.Command) {
	t.currentFunc = cmd.Symbol
	t.emitLabelDef(cmd.Symbol)
	for i := uint16(0); i < cmd.N; i++ {
		t.emit("@0")
		t.emit("D=A")
		t.pushD()
	}
}

// emitCall realizes the call sequence of spec.md §4.3: push a fresh
// return-address label, push the caller's LCL/ARG/THIS/THAT, reposition
// ARG and LCL, jump to the callee, and define the return-address label
// immediately after.
func (t *Translator) emitCall(name string, nArgs uint16) {
	ret := t.newLabel(strings.Replace(name, ".", "_", -1) + "$ret.")

	t.emitf("@%s", ret)
	t.emit("D=A")
	t.pushD()
	for _, reg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		t.emitf("@%s", reg)
		t.emit("D=M")
		t.pushD()
	}
	t.emit("@SP")
	t.emit("D=M")
	t.emitf("@%d", nArgs+5)
	t.emit("D=D-A")
	t.emit("@ARG")
	t.emit("M=D")
	t.emit("@SP")
	t.emit("D=M")
	t.emit("@LCL")
	t.emit("M=D")
	t.emitf("@%s", name)
	t.emit("0;JMP")
	t.emitLabelDef(ret)
}

// translateReturn realizes the 8-step return sequence of spec.md §4.3
// literally: R15 holds the return value, R14 the saved target SP (taken
// from ARG before the frame is unwound), R13 the return address.
func (t *Translator) translateReturn(cmd ir.Command) error {
	if err := t.requireFunction(cmd.Line); err != nil {
		return err
	}
	// 1. R15 <- pop (return value)
	t.popD()
	t.emit("@R15")
	t.emit("M=D")
	// 2. R14 <- ARG (saved target SP)
	t.emit("@ARG")
	t.emit("D=M")
	t.emit("@R14")
	t.emit("M=D")
	// 3. SP <- LCL (unwind frame)
	t.emit("@LCL")
	t.emit("D=M")
	t.emit("@SP")
	t.emit("M=D")
	// 4. pop THAT, THIS, ARG, LCL, in that order, from the saved frame
	for _, reg := range []string{"THAT", "THIS", "ARG", "LCL"} {
		t.popD()
		t.emitf("@%s", reg)
		t.emit("M=D")
	}
	// 5. R13 <- pop (return address)
	t.popD()
	t.emit("@R13")
	t.emit("M=D")
	// 6. SP <- R14
	t.emit("@R14")
	t.emit("D=M")
	t.emit("@SP")
	t.emit("M=D")
	// 7. push R15
	t.emit("@R15")
	t.emit("D=M")
	t.pushD()
	// 8. goto *R13
	t.emit("@R13")
	t.emit("A=M")
	t.emit("0;JMP")
	return nil
}
