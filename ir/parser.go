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

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// isSymbolStart/isSymbolCont implement the IR-symbol grammar of spec.md §3:
// `[A-Za-z_.:][A-Za-z0-9_.:]*`.
func isSymbolStart(b byte) bool {
	return b == '_' || b == '.' || b == ':' || ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

func isSymbolCont(b byte) bool {
	return isSymbolStart(b) || ('0' <= b && b <= '9')
}

func validSymbol(s string) bool {
	if len(s) == 0 || !isSymbolStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isSymbolCont(s[i]) {
			return false
		}
	}
	return true
}

// Parse reads a sequence of IR commands in the textual .vm syntax: one
// command per line, blank lines and `//` line comments ignored, whitespace
// around tokens insignificant (spec.md §6).
func Parse(r io.Reader) ([]Command, error) {
	sc := bufio.NewScanner(r)
	var cmds []Command
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "//")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseLine(fields, line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func parseLine(fields []string, line int) (Command, error) {
	op := fields[0]
	if arithOp, ok := opIndex[op]; ok {
		if len(fields) != 1 {
			return Command{}, &Error{Kind: BadSyntax, Line: line, Text: strings.Join(fields, " ")}
		}
		c := Arith(arithOp)
		c.Line = line
		return c, nil
	}
	switch op {
	case "push", "pop":
		if len(fields) != 3 {
			return Command{}, &Error{Kind: BadSyntax, Line: line, Text: strings.Join(fields, " ")}
		}
		seg, ok := segmentIndex[fields[1]]
		if !ok {
			return Command{}, &Error{Kind: UnknownSegment, Line: line, Text: fields[1]}
		}
		idx, err := strconv.ParseUint(fields[2], 10, 16)
		if err != nil {
			return Command{}, &Error{Kind: BadIndex, Line: line, Text: fields[2]}
		}
		var c Command
		if op == "push" {
			c = Push(seg, uint16(idx))
		} else {
			c = Pop(seg, uint16(idx))
		}
		c.Line = line
		return c, nil
	case "label", "goto", "if-goto":
		if len(fields) != 2 || !validSymbol(fields[1]) {
			return Command{}, &Error{Kind: BadSymbol, Line: line, Text: strings.Join(fields, " ")}
		}
		var c Command
		switch op {
		case "label":
			c = Label(fields[1])
		case "goto":
			c = Goto(fields[1])
		case "if-goto":
			c = IfGoto(fields[1])
		}
		c.Line = line
		return c, nil
	case "function", "call":
		if len(fields) != 3 || !validSymbol(fields[1]) {
			return Command{}, &Error{Kind: BadSymbol, Line: line, Text: strings.Join(fields, " ")}
		}
		n, err := strconv.ParseUint(fields[2], 10, 16)
		if err != nil {
			return Command{}, &Error{Kind: BadIndex, Line: line, Text: fields[2]}
		}
		var c Command
		if op == "function" {
			c = Function(fields[1], uint16(n))
		} else {
			c = Call(fields[1], uint16(n))
		}
		c.Line = line
		return c, nil
	case "return":
		if len(fields) != 1 {
			return Command{}, &Error{Kind: BadSyntax, Line: line, Text: strings.Join(fields, " ")}
		}
		c := Return()
		c.Line = line
		return c, nil
	default:
		return Command{}, &Error{Kind: BadSyntax, Line: line, Text: strings.Join(fields, " ")}
	}
}
