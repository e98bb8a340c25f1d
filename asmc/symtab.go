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

import "fmt"

// SymbolTable resolves Hack-ASM symbolic addresses to 15-bit values
// (spec.md §3). It is seeded with the reserved symbols and then grows with
// labels (pass 1) and auto-allocated user variables (pass 2).
type SymbolTable struct {
	addr     map[string]uint16
	nextVar  uint16
	reserved map[string]bool
}

const firstUserAddress = 16

// NewSymbolTable returns a table seeded with SP, LCL, ARG, THIS, THAT,
// R0..R15, SCREEN, KBD.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		addr:     make(map[string]uint16),
		nextVar:  firstUserAddress,
		reserved: make(map[string]bool),
	}
	seed := map[string]uint16{
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		"SCREEN": 0x4000, "KBD": 0x6000,
	}
	for i := 0; i < 16; i++ {
		seed[fmt.Sprintf("R%d", i)] = uint16(i)
	}
	for name, addr := range seed {
		t.addr[name] = addr
		t.reserved[name] = true
	}
	return t
}

// DefineLabel registers sym at the given instruction address (pass 1). It
// returns false if sym is reserved or already a label/variable.
func (t *SymbolTable) DefineLabel(sym string, addr uint16) bool {
	if _, exists := t.addr[sym]; exists {
		return false
	}
	t.addr[sym] = addr
	return true
}

// Resolve returns the address for sym, auto-allocating the next free
// user-variable address starting at 16 if sym is unknown (pass 2).
func (t *SymbolTable) Resolve(sym string) uint16 {
	if addr, ok := t.addr[sym]; ok {
		return addr
	}
	addr := t.nextVar
	t.addr[sym] = addr
	t.nextVar++
	return addr
}

// Lookup reports the address of sym without allocating one. Unlike Resolve,
// it leaves the table unchanged when sym is unknown.
func (t *SymbolTable) Lookup(sym string) (uint16, bool) {
	addr, ok := t.addr[sym]
	return addr, ok
}
