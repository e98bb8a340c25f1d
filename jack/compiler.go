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
	"io"
	"unicode/utf16"

	"github.com/nand2tetris-go/compiler/ir"
	"github.com/nand2tetris-go/compiler/lexer"
	"github.com/nand2tetris-go/compiler/token"
)

// tokenStream gives the compiler the 2-token lookahead required by the
// grammar of spec.md §4.2 over a lazy, non-restartable Lexer. Tokens stay
// buffered once read (rather than being dropped on advance) so the
// compiler can mark/reset its position; this backs the subroutine-kind
// prescan below without re-invoking the (non-restartable) Lexer.
type tokenStream struct {
	lex  *lexer.Lexer
	buf  []token.Token
	pos  int
	done bool
	err  error
}

func newTokenStream(lex *lexer.Lexer) *tokenStream { return &tokenStream{lex: lex} }

func (s *tokenStream) ensure(n int) {
	for len(s.buf) <= n && !s.done {
		t, err := s.lex.Next()
		if err == io.EOF {
			s.done = true
			return
		}
		if err != nil {
			s.done = true
			s.err = err
			return
		}
		s.buf = append(s.buf, t)
	}
}

func (s *tokenStream) peek(n int) (token.Token, bool) {
	idx := s.pos + n
	s.ensure(idx)
	if idx < len(s.buf) {
		return s.buf[idx], true
	}
	return token.Token{}, false
}

func (s *tokenStream) advance() { s.pos++ }

func (s *tokenStream) mark() int { return s.pos }

func (s *tokenStream) reset(p int) { s.pos = p }

// Compiler is the fused single-pass Jack→IR compiler of spec.md §4.2:
// parsing and emission happen in the same recursive-descent walk, with no
// intermediate AST.
type Compiler struct {
	ts        *tokenStream
	sym       *SymbolTable
	className string
	labelNum  int
	out       []ir.Command
	subKinds  map[string]int // subroutine name -> token.{Constructor,Function,Method}
}

// NewCompiler returns a Compiler reading one Jack translation unit from r.
func NewCompiler(r io.Reader) *Compiler {
	return &Compiler{ts: newTokenStream(lexer.New(r)), sym: NewSymbolTable()}
}

// Compile is the convenience entry point: compile one Jack class file to
// its IR command sequence.
func Compile(r io.Reader) ([]ir.Command, error) {
	return NewCompiler(r).CompileClass()
}

func (c *Compiler) emit(cmd ir.Command) { c.out = append(c.out, cmd) }

func (c *Compiler) newLabel(prefix string) string {
	c.labelNum++
	return fmt.Sprintf("%s.%s%d", c.className, prefix, c.labelNum)
}

func (c *Compiler) peek(n int) (token.Token, error) {
	t, ok := c.ts.peek(n)
	if ok {
		return t, nil
	}
	if c.ts.err != nil {
		return token.Token{}, c.ts.err
	}
	return token.Token{}, io.EOF
}

func (c *Compiler) cur() (token.Token, error) { return c.peek(0) }

func (c *Compiler) advance() { c.ts.advance() }

// eofOrLexErr turns a pending io.EOF into an UnexpectedEOF SyntaxError;
// any other error (a LexError from the tokenizer) is propagated unchanged,
// per the flat error sum of spec.md §7.
func eofOrLexErr(err error, want string) error {
	if err == io.EOF {
		return &SyntaxError{Kind: UnexpectedEOF, Want: want}
	}
	return err
}

func (c *Compiler) atSymbol(sym rune) bool {
	t, err := c.cur()
	return err == nil && t.Kind == token.Symbol && t.Sym == sym
}

func (c *Compiler) atKeyword(kw int) bool {
	t, err := c.cur()
	return err == nil && t.Kind == token.Keyword && t.Keyword == kw
}

func (c *Compiler) expectSymbol(sym rune) error {
	t, err := c.cur()
	if err != nil {
		return eofOrLexErr(err, string(sym))
	}
	if t.Kind != token.Symbol || t.Sym != sym {
		return &SyntaxError{Line: t.Pos.Line, Found: t, Want: string(sym)}
	}
	c.advance()
	return nil
}

func (c *Compiler) expectKeyword(kw int) error {
	t, err := c.cur()
	want := token.KeywordName(kw)
	if err != nil {
		return eofOrLexErr(err, want)
	}
	if t.Kind != token.Keyword || t.Keyword != kw {
		return &SyntaxError{Line: t.Pos.Line, Found: t, Want: want}
	}
	c.advance()
	return nil
}

func (c *Compiler) expectIdentifier() (string, int, error) {
	t, err := c.cur()
	if err != nil {
		return "", 0, eofOrLexErr(err, "identifier")
	}
	if t.Kind != token.Identifier {
		return "", 0, &SyntaxError{Line: t.Pos.Line, Found: t, Want: "identifier"}
	}
	c.advance()
	return t.Str, t.Pos.Line, nil
}

func isPrimitiveType(t string) bool {
	return t == "int" || t == "char" || t == "boolean"
}

func (c *Compiler) parseType() (string, error) {
	t, err := c.cur()
	if err != nil {
		return "", eofOrLexErr(err, "type")
	}
	switch {
	case t.Kind == token.Keyword && (t.Keyword == token.Int || t.Keyword == token.Char || t.Keyword == token.Boolean):
		c.advance()
		return token.KeywordName(t.Keyword), nil
	case t.Kind == token.Identifier:
		c.advance()
		return t.Str, nil
	default:
		return "", &SyntaxError{Line: t.Pos.Line, Found: t, Want: "type"}
	}
}

func kindToSegment(kind Kind) ir.Segment {
	switch kind {
	case KindStatic:
		return ir.Static
	case KindField:
		return ir.This
	case KindArgument:
		return ir.Argument
	default:
		return ir.Local
	}
}

// CompileClass compiles one `class ... { ... }` translation unit and
// returns its IR command sequence.
func (c *Compiler) CompileClass() ([]ir.Command, error) {
	if err := c.expectKeyword(token.Class); err != nil {
		return nil, err
	}
	name, _, err := c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	c.className = name
	c.sym.StartClass()
	if err := c.expectSymbol('{'); err != nil {
		return nil, err
	}
	c.subKinds = c.prescanSubroutineKinds()
	for c.atKeyword(token.Static) || c.atKeyword(token.Field) {
		if err := c.compileClassVarDec(); err != nil {
			return nil, err
		}
	}
	for c.atKeyword(token.Constructor) || c.atKeyword(token.Function) || c.atKeyword(token.Method) {
		if err := c.compileSubroutine(); err != nil {
			return nil, err
		}
	}
	if err := c.expectSymbol('}'); err != nil {
		return nil, err
	}
	return c.out, nil
}

// prescanSubroutineKinds records each subroutine's declared kind
// (constructor/function/method) before the real fused parse+emit pass
// runs, so an unqualified call site (compileCallTail) can tell whether to
// inject an implicit `this` receiver. It only tracks brace depth to skip
// over subroutine bodies; it never builds an AST and restores the token
// position before returning, exactly as the ASM assembler's own pass 1
// restores nothing but leaves the symbol table for pass 2 to consume.
func (c *Compiler) prescanSubroutineKinds() map[string]int {
	kinds := make(map[string]int)
	mark := c.ts.mark()
	defer c.ts.reset(mark)
	for {
		t, err := c.cur()
		if err != nil {
			return kinds
		}
		if t.Kind == token.Symbol && t.Sym == '}' {
			return kinds
		}
		if t.Kind != token.Keyword || (t.Keyword != token.Constructor && t.Keyword != token.Function && t.Keyword != token.Method) {
			c.advance()
			continue
		}
		kind := t.Keyword
		c.advance()
		c.advance() // return type ('void' or a type token)
		name, _, err := c.expectIdentifier()
		if err != nil {
			return kinds
		}
		kinds[name] = kind
		// skip '(' paramList ')'
		for {
			tt, err := c.cur()
			if err != nil {
				return kinds
			}
			c.advance()
			if tt.Kind == token.Symbol && tt.Sym == ')' {
				break
			}
		}
		// skip the '{' ... '}' body, tracking brace depth
		depth := 0
		for {
			tt, err := c.cur()
			if err != nil {
				return kinds
			}
			c.advance()
			if tt.Kind == token.Symbol && tt.Sym == '{' {
				depth++
			}
			if tt.Kind == token.Symbol && tt.Sym == '}' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
}

func (c *Compiler) declare(name, typ string, kind Kind, line int) error {
	if c.sym.DefinedInScope(name, kind) {
		return &SemError{Kind: DuplicateName, Line: line, Name: name}
	}
	c.sym.Define(name, typ, kind)
	return nil
}

func (c *Compiler) compileClassVarDec() error {
	t, _ := c.cur()
	kind := KindStatic
	if t.Keyword == token.Field {
		kind = KindField
	}
	c.advance()
	typ, err := c.parseType()
	if err != nil {
		return err
	}
	for {
		name, line, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		if err := c.declare(name, typ, kind, line); err != nil {
			return err
		}
		if c.atSymbol(',') {
			c.advance()
			continue
		}
		break
	}
	return c.expectSymbol(';')
}

func (c *Compiler) compileParamList() error {
	if c.atSymbol(')') {
		return nil
	}
	for {
		typ, err := c.parseType()
		if err != nil {
			return err
		}
		name, line, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		if err := c.declare(name, typ, KindArgument, line); err != nil {
			return err
		}
		if c.atSymbol(',') {
			c.advance()
			continue
		}
		break
	}
	return nil
}

func (c *Compiler) compileVarDec() error {
	if err := c.expectKeyword(token.Var); err != nil {
		return err
	}
	typ, err := c.parseType()
	if err != nil {
		return err
	}
	for {
		name, line, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		if err := c.declare(name, typ, KindLocal, line); err != nil {
			return err
		}
		if c.atSymbol(',') {
			c.advance()
			continue
		}
		break
	}
	return c.expectSymbol(';')
}

func (c *Compiler) compileSubroutine() error {
	t, _ := c.cur()
	subKind := t.Keyword
	c.advance()
	if c.atKeyword(token.Void) {
		c.advance()
	} else if _, err := c.parseType(); err != nil {
		return err
	}
	name, _, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	c.sym.StartSubroutine()
	if subKind == token.Method {
		c.sym.Define("this", c.className, KindArgument)
	}
	if err := c.expectSymbol('('); err != nil {
		return err
	}
	if err := c.compileParamList(); err != nil {
		return err
	}
	if err := c.expectSymbol(')'); err != nil {
		return err
	}
	if err := c.expectSymbol('{'); err != nil {
		return err
	}
	for c.atKeyword(token.Var) {
		if err := c.compileVarDec(); err != nil {
			return err
		}
	}
	fullName := c.className + "." + name
	c.emit(ir.Function(fullName, c.sym.VarCount(KindLocal)))
	switch subKind {
	case token.Constructor:
		c.emit(ir.Push(ir.Constant, c.sym.VarCount(KindField)))
		c.emit(ir.Call("Memory.alloc", 1))
		c.emit(ir.Pop(ir.Pointer, 0))
	case token.Method:
		c.emit(ir.Push(ir.Argument, 0))
		c.emit(ir.Pop(ir.Pointer, 0))
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	return c.expectSymbol('}')
}

func (c *Compiler) compileStatements() error {
	for {
		switch {
		case c.atKeyword(token.Let):
			if err := c.compileLet(); err != nil {
				return err
			}
		case c.atKeyword(token.If):
			if err := c.compileIf(); err != nil {
				return err
			}
		case c.atKeyword(token.While):
			if err := c.compileWhile(); err != nil {
				return err
			}
		case c.atKeyword(token.Do):
			if err := c.compileDo(); err != nil {
				return err
			}
		case c.atKeyword(token.Return):
			if err := c.compileReturn(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *Compiler) resolveVar(name string, line int) (ir.Segment, uint16, error) {
	_, kind, idx, ok := c.sym.Lookup(name)
	if !ok {
		return 0, 0, &SemError{Kind: UndefinedName, Line: line, Name: name}
	}
	return kindToSegment(kind), idx, nil
}

func (c *Compiler) pushVar(name string, line int) error {
	seg, idx, err := c.resolveVar(name, line)
	if err != nil {
		return err
	}
	c.emit(ir.Push(seg, idx))
	return nil
}

// compileLet handles both `let var = expr` and `let var[expr1] = expr2`
// (spec.md §4.2). The array form uses the two-temporaries dance so the
// right-hand side is fully evaluated before THAT is overwritten (§9 open
// question on `let arr[i] = arr[j]`).
func (c *Compiler) compileLet() error {
	if err := c.expectKeyword(token.Let); err != nil {
		return err
	}
	name, line, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	if c.atSymbol('[') {
		c.advance()
		if err := c.pushVar(name, line); err != nil {
			return err
		}
		if err := c.compileExpr(); err != nil {
			return err
		}
		if err := c.expectSymbol(']'); err != nil {
			return err
		}
		c.emit(ir.Arith(ir.Add))
		if err := c.expectSymbol('='); err != nil {
			return err
		}
		if err := c.compileExpr(); err != nil {
			return err
		}
		if err := c.expectSymbol(';'); err != nil {
			return err
		}
		c.emit(ir.Pop(ir.Temp, 0))
		c.emit(ir.Pop(ir.Pointer, 1))
		c.emit(ir.Push(ir.Temp, 0))
		c.emit(ir.Pop(ir.That, 0))
		return nil
	}
	if err := c.expectSymbol('='); err != nil {
		return err
	}
	if err := c.compileExpr(); err != nil {
		return err
	}
	if err := c.expectSymbol(';'); err != nil {
		return err
	}
	seg, idx, err := c.resolveVar(name, line)
	if err != nil {
		return err
	}
	c.emit(ir.Pop(seg, idx))
	return nil
}

func (c *Compiler) compileIf() error {
	if err := c.expectKeyword(token.If); err != nil {
		return err
	}
	if err := c.expectSymbol('('); err != nil {
		return err
	}
	if err := c.compileExpr(); err != nil {
		return err
	}
	if err := c.expectSymbol(')'); err != nil {
		return err
	}
	elseLabel := c.newLabel("IF_FALSE")
	c.emit(ir.Arith(ir.Not))
	c.emit(ir.IfGoto(elseLabel))
	if err := c.expectSymbol('{'); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if err := c.expectSymbol('}'); err != nil {
		return err
	}
	if c.atKeyword(token.Else) {
		c.advance()
		endLabel := c.newLabel("IF_END")
		c.emit(ir.Goto(endLabel))
		c.emit(ir.Label(elseLabel))
		if err := c.expectSymbol('{'); err != nil {
			return err
		}
		if err := c.compileStatements(); err != nil {
			return err
		}
		if err := c.expectSymbol('}'); err != nil {
			return err
		}
		c.emit(ir.Label(endLabel))
		return nil
	}
	c.emit(ir.Label(elseLabel))
	return nil
}

func (c *Compiler) compileWhile() error {
	if err := c.expectKeyword(token.While); err != nil {
		return err
	}
	top := c.newLabel("WHILE_EXP")
	bottom := c.newLabel("WHILE_END")
	c.emit(ir.Label(top))
	if err := c.expectSymbol('('); err != nil {
		return err
	}
	if err := c.compileExpr(); err != nil {
		return err
	}
	if err := c.expectSymbol(')'); err != nil {
		return err
	}
	c.emit(ir.Arith(ir.Not))
	c.emit(ir.IfGoto(bottom))
	if err := c.expectSymbol('{'); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if err := c.expectSymbol('}'); err != nil {
		return err
	}
	c.emit(ir.Goto(top))
	c.emit(ir.Label(bottom))
	return nil
}

func (c *Compiler) compileDo() error {
	if err := c.expectKeyword(token.Do); err != nil {
		return err
	}
	name, line, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	if err := c.compileCallTail(name, line); err != nil {
		return err
	}
	if err := c.expectSymbol(';'); err != nil {
		return err
	}
	c.emit(ir.Pop(ir.Temp, 0))
	return nil
}

func (c *Compiler) compileReturn() error {
	if err := c.expectKeyword(token.Return); err != nil {
		return err
	}
	if c.atSymbol(';') {
		c.emit(ir.Push(ir.Constant, 0))
	} else if err := c.compileExpr(); err != nil {
		return err
	}
	if err := c.expectSymbol(';'); err != nil {
		return err
	}
	c.emit(ir.Return())
	return nil
}

// compileCallTail compiles the rest of a subroutine call whose leading
// identifier (first) has already been consumed, disambiguating the three
// forms of spec.md §4.2: implicit `this.first(...)`, `var.Name(...)` and
// `ClassName.Name(...)`.
func (c *Compiler) compileCallTail(first string, line int) error {
	if c.atSymbol('(') {
		c.advance()
		// An unqualified call targets a sibling subroutine of this class.
		// Only a method gets an implicit `this` receiver; a function or
		// constructor is called directly (spec.md §4.2, §9).
		kind, known := c.subKinds[first]
		isMethod := !known || kind == token.Method
		if isMethod {
			c.emit(ir.Push(ir.Pointer, 0))
		}
		n, err := c.compileExprList()
		if err != nil {
			return err
		}
		if err := c.expectSymbol(')'); err != nil {
			return err
		}
		if isMethod {
			c.emit(ir.Call(c.className+"."+first, n+1))
		} else {
			c.emit(ir.Call(c.className+"."+first, n))
		}
		return nil
	}
	if err := c.expectSymbol('.'); err != nil {
		return err
	}
	name, _, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	if err := c.expectSymbol('('); err != nil {
		return err
	}
	typ, kind, idx, ok := c.sym.Lookup(first)
	if ok {
		if isPrimitiveType(typ) {
			return &SemError{Kind: MethodOnPrimitive, Line: line, Name: first}
		}
		c.emit(ir.Push(kindToSegment(kind), idx))
		n, err := c.compileExprList()
		if err != nil {
			return err
		}
		if err := c.expectSymbol(')'); err != nil {
			return err
		}
		c.emit(ir.Call(typ+"."+name, n+1))
		return nil
	}
	n, err := c.compileExprList()
	if err != nil {
		return err
	}
	if err := c.expectSymbol(')'); err != nil {
		return err
	}
	c.emit(ir.Call(first+"."+name, n))
	return nil
}

func (c *Compiler) compileExprList() (uint16, error) {
	if c.atSymbol(')') {
		return 0, nil
	}
	var n uint16
	for {
		if err := c.compileExpr(); err != nil {
			return 0, err
		}
		n++
		if c.atSymbol(',') {
			c.advance()
			continue
		}
		break
	}
	return n, nil
}

func binOp(sym rune) (ir.Op, int) {
	switch sym {
	case '+':
		return ir.Add, 3
	case '-':
		return ir.Sub, 3
	case '&':
		return ir.And, 2
	case '|':
		return ir.Or, 1
	case '<':
		return ir.Lt, 0
	case '>':
		return ir.Gt, 0
	default: // '='
		return ir.Eq, 0
	}
}

// compileExpr implements the precedence-stack scheme of spec.md §4.2:
// `*`/`/` are flushed eagerly against the term just parsed, while the
// remaining binary operators are held on a stack. When a new operator
// arrives, every pending operator whose precedence is greater than or equal
// to the new one's is flushed first; the rest are flushed at the end of the
// expression.
func (c *Compiler) compileExpr() error {
	if err := c.compileTerm(); err != nil {
		return err
	}
	var ops []ir.Op
	var prec []int
	for {
		t, err := c.cur()
		if err != nil || t.Kind != token.Symbol {
			break
		}
		switch t.Sym {
		case '*', '/':
			c.advance()
			if err := c.compileTerm(); err != nil {
				return err
			}
			if t.Sym == '*' {
				c.emit(ir.Call("Math.multiply", 2))
			} else {
				c.emit(ir.Call("Math.divide", 2))
			}
		case '+', '-', '&', '|', '<', '>', '=':
			op, p := binOp(t.Sym)
			for len(ops) > 0 && prec[len(prec)-1] >= p {
				c.emit(ir.Arith(ops[len(ops)-1]))
				ops = ops[:len(ops)-1]
				prec = prec[:len(prec)-1]
			}
			ops = append(ops, op)
			prec = append(prec, p)
			c.advance()
			if err := c.compileTerm(); err != nil {
				return err
			}
		default:
			for i := len(ops) - 1; i >= 0; i-- {
				c.emit(ir.Arith(ops[i]))
			}
			return nil
		}
	}
	for i := len(ops) - 1; i >= 0; i-- {
		c.emit(ir.Arith(ops[i]))
	}
	return nil
}

func (c *Compiler) compileTerm() error {
	t, err := c.cur()
	if err != nil {
		return eofOrLexErr(err, "expression")
	}
	switch {
	case t.Kind == token.IntConst:
		c.advance()
		c.emit(ir.Push(ir.Constant, uint16(t.IntVal)))
		return nil
	case t.Kind == token.StringConst:
		c.advance()
		return c.compileStringConstant(t.Str)
	case t.Kind == token.Keyword && t.Keyword == token.True:
		c.advance()
		c.emit(ir.Push(ir.Constant, 0))
		c.emit(ir.Arith(ir.Not))
		return nil
	case t.Kind == token.Keyword && (t.Keyword == token.False || t.Keyword == token.Null):
		c.advance()
		c.emit(ir.Push(ir.Constant, 0))
		return nil
	case t.Kind == token.Keyword && t.Keyword == token.This:
		c.advance()
		c.emit(ir.Push(ir.Pointer, 0))
		return nil
	case t.Kind == token.Symbol && t.Sym == '(':
		c.advance()
		if err := c.compileExpr(); err != nil {
			return err
		}
		return c.expectSymbol(')')
	case t.Kind == token.Symbol && (t.Sym == '-' || t.Sym == '~'):
		c.advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		if t.Sym == '-' {
			c.emit(ir.Arith(ir.Neg))
		} else {
			c.emit(ir.Arith(ir.Not))
		}
		return nil
	case t.Kind == token.Identifier:
		return c.compileIdentTerm()
	default:
		return &SyntaxError{Line: t.Pos.Line, Found: t, Want: "expression"}
	}
}

func (c *Compiler) compileIdentTerm() error {
	name, line, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	switch {
	case c.atSymbol('['):
		c.advance()
		if err := c.pushVar(name, line); err != nil {
			return err
		}
		if err := c.compileExpr(); err != nil {
			return err
		}
		if err := c.expectSymbol(']'); err != nil {
			return err
		}
		c.emit(ir.Arith(ir.Add))
		c.emit(ir.Pop(ir.Pointer, 1))
		c.emit(ir.Push(ir.That, 0))
		return nil
	case c.atSymbol('(') || c.atSymbol('.'):
		return c.compileCallTail(name, line)
	default:
		return c.pushVar(name, line)
	}
}

func (c *Compiler) compileStringConstant(s string) error {
	units := utf16.Encode([]rune(s))
	c.emit(ir.Push(ir.Constant, uint16(len(units))))
	c.emit(ir.Call("String.new", 1))
	for _, u := range units {
		c.emit(ir.Push(ir.Constant, u))
		c.emit(ir.Call("String.appendChar", 2))
	}
	return nil
}
