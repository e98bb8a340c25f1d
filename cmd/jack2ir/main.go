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

// Command jack2ir is the `jack_compiler` of spec.md §6: it compiles every
// Jack source file at its positional argument (a file or a directory)
// into the textual VM-IR syntax of a sibling `.vm` file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
	"github.com/nand2tetris-go/compiler/ir"
	"github.com/nand2tetris-go/compiler/jack"
	"github.com/pkg/errors"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "jack2ir: %+v\n", err)
	os.Exit(1)
}

func compileFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	cmds, err := jack.Compile(src)
	if err != nil {
		return errors.Wrapf(err, "compile %s", path)
	}

	outPath := pipeline.WithExt(path, ".vm")
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	if err := ir.WriteAll(out, cmds); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}
	return nil
}

func run(path string) error {
	files, err := pipeline.SourceFiles(path, ".jack")
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := compileFile(f); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jack2ir <file.jack|directory>")
		os.Exit(2)
	}
	atExit(run(flag.Arg(0)))
}
