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
	"bufio"
	"io"
	"strconv"
	"strings"
)

type lineKind uint8

const (
	lineLabel lineKind = iota
	lineAddrLiteral
	lineAddrSymbol
	lineCompute
)

// parsedLine is one non-blank, non-comment-only line of Hack-ASM, classified
// but with symbolic addresses not yet resolved (spec.md §4.4 pass 1 input).
type parsedLine struct {
	kind   lineKind
	sym    string // lineLabel, lineAddrSymbol
	value  uint16 // lineAddrLiteral
	dest   string // lineCompute
	comp   string // lineCompute
	jump   string // lineCompute
	lineNo int
}

func isSymbolByte(b byte, first bool) bool {
	switch {
	case b == '_' || b == '.' || b == '$' || b == ':':
		return true
	case 'A' <= b && b <= 'Z', 'a' <= b && b <= 'z':
		return true
	case '0' <= b && b <= '9':
		return !first
	default:
		return false
	}
}

func validSymbolName(s string) bool {
	if len(s) == 0 || !isSymbolByte(s[0], true) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isSymbolByte(s[i], false) {
			return false
		}
	}
	return true
}

// clean strips a trailing `//` comment and all surrounding/interior
// whitespace, mirroring the assembly's line-oriented, whitespace-
// insignificant syntax (spec.md §6).
func clean(raw string) string {
	if i := strings.Index(raw, "//"); i >= 0 {
		raw = raw[:i]
	}
	var b strings.Builder
	for _, r := range raw {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseLine(raw string, lineNo int) (*parsedLine, error) {
	line := clean(raw)
	if line == "" {
		return nil, nil
	}
	switch {
	case strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")"):
		sym := line[1 : len(line)-1]
		if !validSymbolName(sym) {
			return nil, &Error{Kind: BadInstruction, Line: lineNo, Text: raw}
		}
		return &parsedLine{kind: lineLabel, sym: sym, lineNo: lineNo}, nil
	case strings.HasPrefix(line, "@"):
		arg := line[1:]
		if n, err := strconv.ParseUint(arg, 10, 32); err == nil {
			if n >= 1<<15 {
				return nil, &Error{Kind: ImmediateTooLarge, Line: lineNo, Text: raw}
			}
			return &parsedLine{kind: lineAddrLiteral, value: uint16(n), lineNo: lineNo}, nil
		}
		if !validSymbolName(arg) {
			return nil, &Error{Kind: BadInstruction, Line: lineNo, Text: raw}
		}
		return &parsedLine{kind: lineAddrSymbol, sym: arg, lineNo: lineNo}, nil
	default:
		dest, comp, jump, err := splitCInstruction(line)
		if err != nil {
			return nil, &Error{Kind: BadInstruction, Line: lineNo, Text: raw}
		}
		return &parsedLine{kind: lineCompute, dest: dest, comp: comp, jump: jump, lineNo: lineNo}, nil
	}
}

// splitCInstruction splits `[dest=]comp[;jump]` into its three parts without
// validating them against the comp/dest/jump tables; that validation
// happens in pass 2 via hack.Instruction.Encode, which is the single source
// of truth for what is a legal mnemonic.
func splitCInstruction(line string) (dest, comp, jump string, err error) {
	rest := line
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		jump = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '='); i >= 0 {
		dest = rest[:i]
		comp = rest[i+1:]
	} else {
		comp = rest
	}
	if comp == "" {
		return "", "", "", &Error{Kind: BadInstruction}
	}
	return dest, comp, jump, nil
}

// parseAll reads every line of r, skipping blanks and comment-only lines.
func parseAll(name string, r io.Reader) ([]*parsedLine, error) {
	sc := bufio.NewScanner(r)
	var lines []*parsedLine
	n := 0
	for sc.Scan() {
		n++
		pl, err := parseLine(sc.Text(), n)
		if err != nil {
			return nil, err
		}
		if pl != nil {
			lines = append(lines, pl)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
