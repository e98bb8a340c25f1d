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

package jackast

import (
	"fmt"
	"io"

	"github.com/nand2tetris-go/compiler/lexer"
	"github.com/nand2tetris-go/compiler/token"
)

// Parser is a one-token-lookahead recursive-descent parser building a
// Node tree. Unlike jack.Compiler it never needs to rewind: every
// grammar decision here is made on the current token alone.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token
	eof bool
}

// NewParser returns a Parser reading Jack source from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{lex: lexer.New(r)}
}

// Parse reads one complete class declaration and returns its parse tree.
func Parse(r io.Reader) (*Node, error) {
	p := NewParser(r)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseClass()
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err == io.EOF {
		p.eof = true
		return nil
	}
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) leafCur() *Node {
	return Leaf(p.cur.Kind.String(), p.cur.Text())
}

func (p *Parser) atSymbol(s rune) bool {
	return !p.eof && p.cur.Kind == token.Symbol && p.cur.Sym == s
}

func (p *Parser) atKeyword(k int) bool {
	return !p.eof && p.cur.Kind == token.Keyword && p.cur.Keyword == k
}

func (p *Parser) errUnexpected(want string) error {
	if p.eof {
		return fmt.Errorf("unexpected end of input, want %s", want)
	}
	return fmt.Errorf("line %d: unexpected token %q, want %s", p.cur.Pos.Line, p.cur.Text(), want)
}

// consume appends the current token as a leaf to n and advances.
func (p *Parser) consume(n *Node) error {
	if p.eof {
		return p.errUnexpected("a token")
	}
	n.Add(p.leafCur())
	return p.advance()
}

func (p *Parser) consumeSymbol(n *Node, s rune) error {
	if !p.atSymbol(s) {
		return p.errUnexpected(fmt.Sprintf("%q", s))
	}
	return p.consume(n)
}

func (p *Parser) consumeKeyword(n *Node, k int) error {
	if !p.atKeyword(k) {
		return p.errUnexpected(token.KeywordName(k))
	}
	return p.consume(n)
}

func (p *Parser) consumeIdentifier(n *Node) error {
	if p.eof || p.cur.Kind != token.Identifier {
		return p.errUnexpected("identifier")
	}
	return p.consume(n)
}

func (p *Parser) isType() bool {
	if p.eof {
		return false
	}
	if p.cur.Kind == token.Identifier {
		return true
	}
	return p.atKeyword(token.Int) || p.atKeyword(token.Char) || p.atKeyword(token.Boolean)
}

func (p *Parser) parseType(n *Node) error {
	if p.eof {
		return p.errUnexpected("type")
	}
	switch {
	case p.atKeyword(token.Int), p.atKeyword(token.Char), p.atKeyword(token.Boolean):
		return p.consume(n)
	case p.cur.Kind == token.Identifier:
		return p.consume(n)
	default:
		return p.errUnexpected("type")
	}
}

func (p *Parser) parseClass() (*Node, error) {
	n := Rule("class")
	if err := p.consumeKeyword(n, token.Class); err != nil {
		return nil, err
	}
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, '{'); err != nil {
		return nil, err
	}
	for p.atKeyword(token.Static) || p.atKeyword(token.Field) {
		child, err := p.parseClassVarDec()
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	for p.atKeyword(token.Constructor) || p.atKeyword(token.Function) || p.atKeyword(token.Method) {
		child, err := p.parseSubroutineDec()
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	if err := p.consumeSymbol(n, '}'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseClassVarDec() (*Node, error) {
	n := Rule("classVarDec")
	if err := p.consume(n); err != nil { // static | field
		return nil, err
	}
	if err := p.parseType(n); err != nil {
		return nil, err
	}
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	for p.atSymbol(',') {
		if err := p.consumeSymbol(n, ','); err != nil {
			return nil, err
		}
		if err := p.consumeIdentifier(n); err != nil {
			return nil, err
		}
	}
	if err := p.consumeSymbol(n, ';'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseSubroutineDec() (*Node, error) {
	n := Rule("subroutineDec")
	if err := p.consume(n); err != nil { // constructor | function | method
		return nil, err
	}
	if p.atKeyword(token.Void) {
		if err := p.consumeKeyword(n, token.Void); err != nil {
			return nil, err
		}
	} else if err := p.parseType(n); err != nil {
		return nil, err
	}
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, '('); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	n.Add(params)
	if err := p.consumeSymbol(n, ')'); err != nil {
		return nil, err
	}
	body, err := p.parseSubroutineBody()
	if err != nil {
		return nil, err
	}
	n.Add(body)
	return n, nil
}

func (p *Parser) parseParameterList() (*Node, error) {
	n := Rule("parameterList")
	if !p.isType() {
		return n, nil
	}
	if err := p.parseType(n); err != nil {
		return nil, err
	}
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	for p.atSymbol(',') {
		if err := p.consumeSymbol(n, ','); err != nil {
			return nil, err
		}
		if err := p.parseType(n); err != nil {
			return nil, err
		}
		if err := p.consumeIdentifier(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *Parser) parseSubroutineBody() (*Node, error) {
	n := Rule("subroutineBody")
	if err := p.consumeSymbol(n, '{'); err != nil {
		return nil, err
	}
	for p.atKeyword(token.Var) {
		child, err := p.parseVarDec()
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	n.Add(stmts)
	if err := p.consumeSymbol(n, '}'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseVarDec() (*Node, error) {
	n := Rule("varDec")
	if err := p.consumeKeyword(n, token.Var); err != nil {
		return nil, err
	}
	if err := p.parseType(n); err != nil {
		return nil, err
	}
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	for p.atSymbol(',') {
		if err := p.consumeSymbol(n, ','); err != nil {
			return nil, err
		}
		if err := p.consumeIdentifier(n); err != nil {
			return nil, err
		}
	}
	if err := p.consumeSymbol(n, ';'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseStatements() (*Node, error) {
	n := Rule("statements")
	for {
		switch {
		case p.atKeyword(token.Let):
			s, err := p.parseLet()
			if err != nil {
				return nil, err
			}
			n.Add(s)
		case p.atKeyword(token.If):
			s, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			n.Add(s)
		case p.atKeyword(token.While):
			s, err := p.parseWhile()
			if err != nil {
				return nil, err
			}
			n.Add(s)
		case p.atKeyword(token.Do):
			s, err := p.parseDo()
			if err != nil {
				return nil, err
			}
			n.Add(s)
		case p.atKeyword(token.Return):
			s, err := p.parseReturn()
			if err != nil {
				return nil, err
			}
			n.Add(s)
		default:
			return n, nil
		}
	}
}

func (p *Parser) parseLet() (*Node, error) {
	n := Rule("letStatement")
	if err := p.consumeKeyword(n, token.Let); err != nil {
		return nil, err
	}
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	if p.atSymbol('[') {
		if err := p.consumeSymbol(n, '['); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Add(expr)
		if err := p.consumeSymbol(n, ']'); err != nil {
			return nil, err
		}
	}
	if err := p.consumeSymbol(n, '='); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.Add(expr)
	if err := p.consumeSymbol(n, ';'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseIf() (*Node, error) {
	n := Rule("ifStatement")
	if err := p.consumeKeyword(n, token.If); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, '('); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if err := p.consumeSymbol(n, ')'); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, '{'); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	n.Add(body)
	if err := p.consumeSymbol(n, '}'); err != nil {
		return nil, err
	}
	if p.atKeyword(token.Else) {
		if err := p.consumeKeyword(n, token.Else); err != nil {
			return nil, err
		}
		if err := p.consumeSymbol(n, '{'); err != nil {
			return nil, err
		}
		elseBody, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		n.Add(elseBody)
		if err := p.consumeSymbol(n, '}'); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *Parser) parseWhile() (*Node, error) {
	n := Rule("whileStatement")
	if err := p.consumeKeyword(n, token.While); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, '('); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if err := p.consumeSymbol(n, ')'); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, '{'); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	n.Add(body)
	if err := p.consumeSymbol(n, '}'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseDo() (*Node, error) {
	n := Rule("doStatement")
	if err := p.consumeKeyword(n, token.Do); err != nil {
		return nil, err
	}
	if err := p.parseSubroutineCall(n); err != nil {
		return nil, err
	}
	if err := p.consumeSymbol(n, ';'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseReturn() (*Node, error) {
	n := Rule("returnStatement")
	if err := p.consumeKeyword(n, token.Return); err != nil {
		return nil, err
	}
	if !p.atSymbol(';') {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Add(expr)
	}
	if err := p.consumeSymbol(n, ';'); err != nil {
		return nil, err
	}
	return n, nil
}

// parseSubroutineCall consumes `name(...)` or `name.name(...)` directly
// into n, matching the nand2tetris convention of inlining subroutineCall
// rather than wrapping it in its own tagged node.
func (p *Parser) parseSubroutineCall(n *Node) error {
	if err := p.consumeIdentifier(n); err != nil {
		return err
	}
	if p.atSymbol('.') {
		if err := p.consumeSymbol(n, '.'); err != nil {
			return err
		}
		if err := p.consumeIdentifier(n); err != nil {
			return err
		}
	}
	if err := p.consumeSymbol(n, '('); err != nil {
		return err
	}
	args, err := p.parseExpressionList()
	if err != nil {
		return err
	}
	n.Add(args)
	return p.consumeSymbol(n, ')')
}

func (p *Parser) parseExpressionList() (*Node, error) {
	n := Rule("expressionList")
	if p.atSymbol(')') {
		return n, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.Add(expr)
	for p.atSymbol(',') {
		if err := p.consumeSymbol(n, ','); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Add(expr)
	}
	return n, nil
}

const binOpChars = "+-*/&|<>="

func isBinOp(r rune) bool {
	for _, c := range binOpChars {
		if c == r {
			return true
		}
	}
	return false
}

func (p *Parser) parseExpression() (*Node, error) {
	n := Rule("expression")
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	n.Add(term)
	for !p.eof && p.cur.Kind == token.Symbol && isBinOp(p.cur.Sym) {
		if err := p.consume(n); err != nil {
			return nil, err
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		n.Add(term)
	}
	return n, nil
}

func (p *Parser) isKeywordConstant() bool {
	return p.atKeyword(token.True) || p.atKeyword(token.False) || p.atKeyword(token.Null) || p.atKeyword(token.This)
}

func (p *Parser) parseTerm() (*Node, error) {
	n := Rule("term")
	if p.eof {
		return nil, p.errUnexpected("term")
	}
	switch {
	case p.cur.Kind == token.IntConst, p.cur.Kind == token.StringConst:
		return n, p.consume(n)
	case p.isKeywordConstant():
		return n, p.consume(n)
	case p.atSymbol('('):
		if err := p.consumeSymbol(n, '('); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Add(expr)
		return n, p.consumeSymbol(n, ')')
	case p.atSymbol('-'), p.atSymbol('~'):
		if err := p.consume(n); err != nil {
			return nil, err
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		n.Add(term)
		return n, nil
	case p.cur.Kind == token.Identifier:
		return p.parseIdentifierTerm(n)
	default:
		return nil, p.errUnexpected("term")
	}
}

// parseIdentifierTerm disambiguates bare varName, varName[expr],
// name(...), and name.name(...) — all share an identifier lookahead.
func (p *Parser) parseIdentifierTerm(n *Node) (*Node, error) {
	if err := p.consumeIdentifier(n); err != nil {
		return nil, err
	}
	switch {
	case p.atSymbol('['):
		if err := p.consumeSymbol(n, '['); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Add(expr)
		return n, p.consumeSymbol(n, ']')
	case p.atSymbol('('):
		if err := p.consumeSymbol(n, '('); err != nil {
			return nil, err
		}
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		n.Add(args)
		return n, p.consumeSymbol(n, ')')
	case p.atSymbol('.'):
		if err := p.consumeSymbol(n, '.'); err != nil {
			return nil, err
		}
		if err := p.consumeIdentifier(n); err != nil {
			return nil, err
		}
		if err := p.consumeSymbol(n, '('); err != nil {
			return nil, err
		}
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		n.Add(args)
		return n, p.consumeSymbol(n, ')')
	default:
		return n, nil
	}
}
