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

package lexer_test

import (
	"io"
	"strings"
	"testing"

	"github.com/nand2tetris-go/compiler/lexer"
	"github.com/nand2tetris-go/compiler/token"
)

func collect(t *testing.T, src string) ([]token.Token, error) {
	t.Helper()
	l := lexer.New(strings.NewReader(src))
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func TestLexer_basic(t *testing.T) {
	src := `class Main {
		// comment
		function void main() {
			/* ba
			   r */
			do Output.printInt(-15 / 3);
			return;
		}
	}`
	toks, err := collect(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"class", "Main", "{",
		"function", "void", "main", "(", ")", "{",
		"do", "Output", ".", "printInt", "(", "-", "15", "/", "3", ")", ";",
		"return", ";",
		"}",
		"}",
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Text() != want[i] {
			t.Errorf("token %d: got %q, want %q", i, tok.Text(), want[i])
		}
	}
}

func TestLexer_stringConstant(t *testing.T) {
	toks, err := collect(t, `"Hello, world!"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.StringConst || toks[0].Str != "Hello, world!" {
		t.Fatalf("got %v", toks)
	}
}

func TestLexer_errors(t *testing.T) {
	data := []struct {
		name string
		src  string
		kind lexer.ErrorKind
	}{
		{"unterminated_comment", "/* never closed", lexer.UnterminatedComment},
		{"unterminated_string", "\"never closed", lexer.UnterminatedString},
		{"overflow", "32768", lexer.IntegerOverflow},
		{"bad_symbol", "@", lexer.UnknownSymbol},
	}
	for _, d := range data {
		_, err := collect(t, d.src)
		if err == nil {
			t.Errorf("%s: expected error, got nil", d.name)
			continue
		}
		lexErr, ok := err.(*lexer.Error)
		if !ok {
			t.Errorf("%s: expected *lexer.Error, got %T", d.name, err)
			continue
		}
		if lexErr.Kind != d.kind {
			t.Errorf("%s: got kind %v, want %v", d.name, lexErr.Kind, d.kind)
		}
	}
}

func TestLexer_integerBoundary(t *testing.T) {
	toks, err := collect(t, "32767 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].IntVal != 32767 || toks[1].IntVal != 0 {
		t.Fatalf("got %v", toks)
	}
}
