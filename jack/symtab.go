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

// Package jack implements the Jack→IR compiler (spec.md §4.2): a
// single-pass recursive-descent parser that emits ir.Command values
// directly instead of building an intermediate AST.
package jack

// Kind classifies a declared Jack identifier by storage (spec.md §3).
type Kind uint8

const (
	KindStatic Kind = iota
	KindField
	KindArgument
	KindLocal
	KindNone // not found
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindField:
		return "field"
	case KindArgument:
		return "argument"
	case KindLocal:
		return "local"
	default:
		return "none"
	}
}

// entry is one declared identifier: its Jack-level type, storage kind and
// index within that kind.
type entry struct {
	typ   string
	kind  Kind
	index uint16
}

// SymbolTable tracks class-scope (static, field) and subroutine-scope
// (argument, local) declarations. Each kind has its own running index
// starting at 0, reset independently by StartClass/StartSubroutine
// (spec.md §3).
type SymbolTable struct {
	class      map[string]entry
	subroutine map[string]entry
	counts     map[Kind]uint16
}

// NewSymbolTable returns an empty table, ready for a first StartClass.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{}
	t.StartClass()
	return t
}

// StartClass clears all class-scope declarations (static, field) and their
// counters. It also clears subroutine scope, since a new class means the
// previous subroutine is gone too.
func (t *SymbolTable) StartClass() {
	t.class = make(map[string]entry)
	t.counts = map[Kind]uint16{KindStatic: 0, KindField: 0}
	t.StartSubroutine()
}

// StartSubroutine clears subroutine-scope declarations (argument, local)
// and their counters, leaving class scope untouched.
func (t *SymbolTable) StartSubroutine() {
	t.subroutine = make(map[string]entry)
	t.counts[KindArgument] = 0
	t.counts[KindLocal] = 0
}

// Define declares name with the given type and kind, assigning it the next
// free index for that kind. Kind must be one of the four concrete storage
// kinds, not KindNone.
func (t *SymbolTable) Define(name, typ string, kind Kind) {
	idx := t.counts[kind]
	t.counts[kind] = idx + 1
	e := entry{typ: typ, kind: kind, index: idx}
	switch kind {
	case KindStatic, KindField:
		t.class[name] = e
	default:
		t.subroutine[name] = e
	}
}

// VarCount returns the number of variables of kind declared so far in the
// current scope.
func (t *SymbolTable) VarCount(kind Kind) uint16 {
	return t.counts[kind]
}

// Lookup resolves name, preferring subroutine scope over class scope, per
// standard Jack shadowing rules. The zero entry and KindNone are returned
// when name is undeclared.
func (t *SymbolTable) Lookup(name string) (typ string, kind Kind, index uint16, ok bool) {
	if e, found := t.subroutine[name]; found {
		return e.typ, e.kind, e.index, true
	}
	if e, found := t.class[name]; found {
		return e.typ, e.kind, e.index, true
	}
	return "", KindNone, 0, false
}

// DefinedInScope reports whether name is already declared in the scope that
// kind belongs to (class scope for KindStatic/KindField, subroutine scope
// for KindArgument/KindLocal). A subroutine-scope declaration shadowing a
// class-scope name of the same spelling is not a collision: only the
// defining scope itself is checked, per spec.md §3 invariant (i).
func (t *SymbolTable) DefinedInScope(name string, kind Kind) bool {
	switch kind {
	case KindStatic, KindField:
		_, found := t.class[name]
		return found
	default:
		_, found := t.subroutine[name]
		return found
	}
}
