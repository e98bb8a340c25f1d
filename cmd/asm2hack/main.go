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

// Command asm2hack is the `assembler` of spec.md §6: it takes a single
// `.asm` file and writes the matching `.hack` machine-code file. Unlike
// the other three programs, spec.md's CLI table gives the assembler only
// a file form (no directory-batch form is named for it), so this one
// does not accept a directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nand2tetris-go/compiler/asmc"
	"github.com/nand2tetris-go/compiler/internal/pipeline"
	"github.com/pkg/errors"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "asm2hack: %+v\n", err)
	os.Exit(1)
}

func run(path string) error {
	info, err := pipeline.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory; asm2hack takes a single .asm file", path)
	}

	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	words, err := asmc.Assemble(path, src)
	if err != nil {
		return errors.Wrapf(err, "assemble %s", path)
	}

	outPath := pipeline.WithExt(path, ".hack")
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	if err := asmc.WriteHack(out, words); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}
	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: asm2hack <file.asm>")
		os.Exit(2)
	}
	atExit(run(flag.Arg(0)))
}
