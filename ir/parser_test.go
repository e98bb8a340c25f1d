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

package ir_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/nand2tetris-go/compiler/ir"
)

func TestParse_roundTrip(t *testing.T) {
	cmds := []ir.Command{
		ir.Push(ir.Constant, 7),
		ir.Push(ir.Constant, 8),
		ir.Arith(ir.Add),
		ir.Pop(ir.Temp, 0),
		ir.Label("LOOP"),
		ir.Goto("LOOP"),
		ir.IfGoto("LOOP"),
		ir.Function("Main.main", 2),
		ir.Call("Main.helper", 1),
		ir.Return(),
	}
	var buf bytes.Buffer
	if err := ir.WriteAll(&buf, cmds); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := ir.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != len(cmds) {
		t.Fatalf("got %d commands, want %d", len(got), len(cmds))
	}
	for i := range cmds {
		got[i].Line = 0 // Line is not part of the serialized form
		if !reflect.DeepEqual(got[i], cmds[i]) {
			t.Errorf("command %d: got %+v, want %+v", i, got[i], cmds[i])
		}
	}
}

func TestParse_commentsAndBlankLines(t *testing.T) {
	src := `
	// a leading comment
	push constant 1

	push constant 2 // trailing comment
	add
	`
	cmds, err := ir.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3: %v", len(cmds), cmds)
	}
}

func TestParse_errors(t *testing.T) {
	data := []struct {
		name string
		src  string
	}{
		{"bad_segment", "push nowhere 0"},
		{"bad_symbol", "label 9bad"},
		{"bad_index", "push constant -1"},
		{"unknown_op", "frobnicate"},
	}
	for _, d := range data {
		if _, err := ir.Parse(strings.NewReader(d.src)); err == nil {
			t.Errorf("%s: expected error, got nil", d.name)
		}
	}
}
