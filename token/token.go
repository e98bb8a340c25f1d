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

// Package token defines the lexical tokens produced by the Jack tokenizer
// and consumed by the Jack compiler and the Jack parse-tree dumper.
package token

import "fmt"

// Kind identifies which variant of the Token tagged union a value holds.
type Kind uint8

const (
	Keyword Kind = iota
	Symbol
	IntConst
	StringConst
	Identifier
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case IntConst:
		return "integerConstant"
	case StringConst:
		return "stringConstant"
	case Identifier:
		return "identifier"
	default:
		return "unknown"
	}
}

// Keywords, in the 21-entry vocabulary of spec.md §3.
const (
	Class = iota
	Constructor
	Function
	Method
	Field
	Static
	Var
	Int
	Char
	Boolean
	Void
	True
	False
	Null
	This
	Let
	Do
	If
	Else
	While
	Return
)

var keywords = map[string]int{
	"class":       Class,
	"constructor": Constructor,
	"function":    Function,
	"method":      Method,
	"field":       Field,
	"static":      Static,
	"var":         Var,
	"int":         Int,
	"char":        Char,
	"boolean":     Boolean,
	"void":        Void,
	"true":        True,
	"false":       False,
	"null":        Null,
	"this":        This,
	"let":         Let,
	"do":          Do,
	"if":          If,
	"else":        Else,
	"while":       While,
	"return":      Return,
}

var keywordNames = func() map[int]string {
	m := make(map[int]string, len(keywords))
	for s, k := range keywords {
		m[k] = s
	}
	return m
}()

// Lookup returns the Keyword id for s and true if s is one of the 21
// reserved words, false otherwise.
func Lookup(s string) (int, bool) {
	k, ok := keywords[s]
	return k, ok
}

// KeywordName returns the textual spelling of a Keyword id.
func KeywordName(k int) string { return keywordNames[k] }

// The 19 punctuation symbols of spec.md §3.
const symbolChars = "{}()[].,;+-*/&|<>=~"

// IsSymbolRune reports whether r is one of the 19 known Jack symbols.
func IsSymbolRune(r rune) bool {
	for _, c := range symbolChars {
		if c == r {
			return true
		}
	}
	return false
}

// Pos is a source position: 1-based line number.
type Pos struct {
	Line int
}

func (p Pos) String() string { return fmt.Sprintf("line %d", p.Line) }

// Token is a single lexical unit. Exactly one of the fields matching Kind is
// meaningful; the others are zero.
type Token struct {
	Kind    Kind
	Pos     Pos
	Keyword int    // valid when Kind == Keyword
	Sym     rune   // valid when Kind == Symbol
	IntVal  int16  // valid when Kind == IntConst
	Str     string // valid when Kind == StringConst or Kind == Identifier
}

// Text renders the token the way it would appear in source, used for error
// messages and for the XML parse-tree dump.
func (t Token) Text() string {
	switch t.Kind {
	case Keyword:
		return KeywordName(t.Keyword)
	case Symbol:
		return string(t.Sym)
	case IntConst:
		return fmt.Sprintf("%d", t.IntVal)
	case StringConst:
		return t.Str
	case Identifier:
		return t.Str
	default:
		return ""
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Text(), t.Pos)
}
