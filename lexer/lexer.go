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

// Package lexer implements the Jack tokenizer (spec.md §4.1): a lazy,
// single-pass, non-restartable token producer driven by the compiler.
package lexer

import (
	"bufio"
	"io"
	"strconv"
	"unicode"

	"github.com/nand2tetris-go/compiler/token"
)

// Lexer reads runes from an io.Reader and emits token.Token values on demand.
// Once Next returns a non-nil error the Lexer is exhausted; callers must not
// call Next again.
type Lexer struct {
	r    *bufio.Reader
	line int
	err  error
}

// New creates a Lexer reading Jack source from r.
func New(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r), line: 1}
}

// isASCIIDigit/isASCIILetter match spec.md §4.1's identifier and integer
// constant grammars exactly: ASCII only. unicode.IsDigit/IsLetter would
// also accept non-ASCII runes, silently folding them into int literals
// (surfacing as a misleading IntegerOverflow) or identifiers.
func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isIdentStart(r rune) bool { return isASCIILetter(r) || r == '_' }
func isIdentCont(r rune) bool  { return isASCIILetter(r) || isASCIIDigit(r) || r == '_' }

// Next skips whitespace and comments and returns the next token. At end of
// input it returns io.EOF. Any other error is a *Error (spec.md's
// LexError) and is terminal: subsequent calls to Next will return the same
// error.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	t, err := l.next()
	if err != nil {
		l.err = err
	}
	return t, err
}

func (l *Lexer) next() (token.Token, error) {
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			return token.Token{}, io.EOF
		}
		if err != nil {
			return token.Token{}, err
		}
		switch {
		case r == '\n':
			l.line++
			continue
		case unicode.IsSpace(r):
			continue
		case r == '/':
			tok, skip, err := l.slashOrComment()
			if err != nil {
				return token.Token{}, err
			}
			if skip {
				continue
			}
			return tok, nil
		case r == '"':
			return l.stringConstant()
		case isASCIIDigit(r):
			return l.integerConstant(r)
		case isIdentStart(r):
			return l.identifierOrKeyword(r)
		case token.IsSymbolRune(r):
			return token.Token{Kind: token.Symbol, Pos: token.Pos{Line: l.line}, Sym: r}, nil
		default:
			return token.Token{}, &Error{Kind: UnknownSymbol, Pos: token.Pos{Line: l.line}, Text: string(r)}
		}
	}
}

// slashOrComment is called having just consumed a '/'. It either returns the
// Symbol('/') token, or silently consumes a comment and reports skip=true.
func (l *Lexer) slashOrComment() (token.Token, bool, error) {
	pos := token.Pos{Line: l.line}
	next, _, err := l.r.ReadRune()
	if err == io.EOF {
		return token.Token{Kind: token.Symbol, Pos: pos, Sym: '/'}, false, nil
	}
	if err != nil {
		return token.Token{}, false, err
	}
	switch next {
	case '/':
		for {
			r, _, err := l.r.ReadRune()
			if err == io.EOF {
				return token.Token{}, true, nil
			}
			if err != nil {
				return token.Token{}, false, err
			}
			if r == '\n' {
				l.line++
				return token.Token{}, true, nil
			}
		}
	case '*':
		var prevStar bool
		for {
			r, _, err := l.r.ReadRune()
			if err == io.EOF {
				return token.Token{}, false, &Error{Kind: UnterminatedComment, Pos: pos}
			}
			if err != nil {
				return token.Token{}, false, err
			}
			if r == '\n' {
				l.line++
			}
			if prevStar && r == '/' {
				return token.Token{}, true, nil
			}
			prevStar = r == '*'
		}
	default:
		if err := l.r.UnreadRune(); err != nil {
			return token.Token{}, false, err
		}
		return token.Token{Kind: token.Symbol, Pos: pos, Sym: '/'}, false, nil
	}
}

func (l *Lexer) stringConstant() (token.Token, error) {
	pos := token.Pos{Line: l.line}
	var sb []rune
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			return token.Token{}, &Error{Kind: UnterminatedString, Pos: pos, Text: string(sb)}
		}
		if err != nil {
			return token.Token{}, err
		}
		if r == '"' {
			return token.Token{Kind: token.StringConst, Pos: pos, Str: string(sb)}, nil
		}
		if r == '\n' {
			l.line++
		}
		sb = append(sb, r)
	}
}

func (l *Lexer) integerConstant(first rune) (token.Token, error) {
	pos := token.Pos{Line: l.line}
	digits := []rune{first}
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token.Token{}, err
		}
		if !isASCIIDigit(r) {
			if err := l.r.UnreadRune(); err != nil {
				return token.Token{}, err
			}
			break
		}
		digits = append(digits, r)
	}
	s := string(digits)
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n > 32767 {
		return token.Token{}, &Error{Kind: IntegerOverflow, Pos: pos, Text: s}
	}
	return token.Token{Kind: token.IntConst, Pos: pos, IntVal: int16(n)}, nil
}

func (l *Lexer) identifierOrKeyword(first rune) (token.Token, error) {
	pos := token.Pos{Line: l.line}
	word := []rune{first}
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token.Token{}, err
		}
		if !isIdentCont(r) {
			if err := l.r.UnreadRune(); err != nil {
				return token.Token{}, err
			}
			break
		}
		word = append(word, r)
	}
	s := string(word)
	if kw, ok := token.Lookup(s); ok {
		return token.Token{Kind: token.Keyword, Pos: pos, Keyword: kw}, nil
	}
	return token.Token{Kind: token.Identifier, Pos: pos, Str: s}, nil
}
