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

// Command ir2asm is the `translator` of spec.md §6: it translates VM-IR
// into Hack-ASM. Given a file it writes a sibling `.asm`; given a
// directory it translates every `.vm` file directly under it, in
// directory-listing order, into one shared ASM program (spec.md §4.3/§5:
// one Translator instance, one label-counter namespace, across the whole
// run). Both forms start the output with the Sys.init bootstrap.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
	"github.com/nand2tetris-go/compiler/ir"
	"github.com/nand2tetris-go/compiler/translate"
	"github.com/pkg/errors"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "ir2asm: %+v\n", err)
	os.Exit(1)
}

func translateFile(tr *translate.Translator, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	cmds, err := ir.Parse(src)
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	className := pipeline.Stem(path)
	if err := tr.Translate(className, cmds); err != nil {
		return errors.Wrapf(err, "translate %s", path)
	}
	return nil
}

func run(path string) error {
	info, err := pipeline.Stat(path)
	if err != nil {
		return err
	}
	files, err := pipeline.SourceFiles(path, ".vm")
	if err != nil {
		return err
	}

	tr := translate.New()
	tr.Bootstrap()
	for _, f := range files {
		if err := translateFile(tr, f); err != nil {
			return err
		}
	}

	outPath := pipeline.TranslatorOutputPath(path, info.IsDir())
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	if err := tr.Write(out); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}
	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ir2asm <file.vm|directory>")
		os.Exit(2)
	}
	atExit(run(flag.Arg(0)))
}
