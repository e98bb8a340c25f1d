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

// Package hackvm is a minimal Hack CPU and flat-memory simulator. It is
// not part of the toolchain's user-facing surface; it exists only to
// drive the end-to-end "compiled-program semantics" properties of
// spec.md §8 against real assembled programs, the same role the
// teacher's own vm/core.go switch-dispatch interpreter plays for its
// Forth machine.
package hackvm

const memSize = 1 << 16

// CPU is a Hack machine: program counter, A and D registers, and a flat
// 16-bit-word address space (RAM is memory-mapped: SCREEN/KBD addresses
// are plain cells here, since this simulator drives no real display or
// keyboard).
type CPU struct {
	ROM []uint16
	RAM [memSize]uint16
	PC  uint16
	A   uint16
	D   uint16
}

// New returns a CPU with program rom loaded and all registers/memory
// zeroed.
func New(rom []uint16) *CPU {
	return &CPU{ROM: rom}
}

// Peek reads a RAM cell, for test assertions.
func (c *CPU) Peek(addr uint16) uint16 { return c.RAM[addr] }

// Poke writes a RAM cell, for seeding test input (e.g. simulated
// keyboard state).
func (c *CPU) Poke(addr, value uint16) { c.RAM[addr] = value }

func (c *CPU) fetch() uint16 {
	if int(c.PC) >= len(c.ROM) {
		return 0
	}
	return c.ROM[c.PC]
}

// alu implements the standard 6-control-bit Hack ALU: zx, nx, zy, ny, f,
// no, from most to least significant bit of comp.
func alu(x, y uint16, comp uint8) uint16 {
	if comp&0b100000 != 0 {
		x = 0
	}
	if comp&0b010000 != 0 {
		x = ^x
	}
	if comp&0b001000 != 0 {
		y = 0
	}
	if comp&0b000100 != 0 {
		y = ^y
	}
	var out uint16
	if comp&0b000010 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if comp&0b000001 != 0 {
		out = ^out
	}
	return out
}

// Step executes exactly one instruction.
func (c *CPU) Step() {
	word := c.fetch()
	if word&0x8000 == 0 {
		c.A = word
		c.PC++
		return
	}
	aBit := (word >> 12) & 1
	comp := uint8((word >> 6) & 0x3F)
	dest := (word >> 3) & 0x7
	jump := word & 0x7

	x := c.D
	var y uint16
	if aBit == 1 {
		y = c.RAM[c.A]
	} else {
		y = c.A
	}
	out := alu(x, y, comp)

	if dest&0b100 != 0 {
		c.A = out
	}
	if dest&0b010 != 0 {
		c.D = out
	}
	if dest&0b001 != 0 {
		c.RAM[c.A] = out
	}

	signed := int16(out)
	takeJump := false
	switch {
	case jump&0b100 != 0 && signed < 0:
		takeJump = true
	case jump&0b010 != 0 && signed == 0:
		takeJump = true
	case jump&0b001 != 0 && signed > 0:
		takeJump = true
	}
	if takeJump {
		c.PC = c.A
	} else {
		c.PC++
	}
}

// Run executes up to n instructions. Hack programs that reach a
// steady-state infinite loop (the idiomatic way to halt) are meant to be
// run for a fixed budget and then inspected via Peek.
func (c *CPU) Run(n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}
