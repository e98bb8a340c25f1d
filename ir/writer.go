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

package ir

import (
	"bufio"
	"io"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
)

// WriteAll serializes cmds to w, one command per line, in the textual
// syntax accepted by Parse. Used to produce .vm files and in the
// round-trip test of spec.md §8 item 2.
func WriteAll(w io.Writer, cmds []Command) error {
	bw := bufio.NewWriter(w)
	ew := pipeline.NewErrWriter(bw)
	for _, c := range cmds {
		ew.WriteString(c.String())
		ew.WriteString("\n")
	}
	if ew.Err != nil {
		return ew.Err
	}
	return bw.Flush()
}
