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

package pipeline

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and latches the first write error, so a
// sequence of small, repeated writes (one per IR command, one per ASM
// line, one per parse-tree node) can be written unchecked and inspected
// once at the end, instead of branching on every individual Write.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (e *ErrWriter) Write(p []byte) (int, error) {
	if e.Err != nil {
		return 0, e.Err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.Err = errors.Wrap(err, "write failed")
	}
	return n, e.Err
}

// WriteString is the string-argument convenience the line-oriented
// writers in this module use throughout.
func (e *ErrWriter) WriteString(s string) {
	if e.Err != nil {
		return
	}
	_, _ = io.WriteString(e, s)
}
