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

// Command jack2xml is the `jack_analyzer` of spec.md §6: the external,
// curriculum-only parse-tree dumper, kept structurally independent of
// the jack2ir compiler (no symbol table, no code generation).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
	"github.com/nand2tetris-go/compiler/jackast"
	"github.com/nand2tetris-go/compiler/xmlwriter"
	"github.com/pkg/errors"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "jack2xml: %+v\n", err)
	os.Exit(1)
}

func dumpFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	root, err := jackast.Parse(src)
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	outPath := pipeline.WithExt(path, ".xml")
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	if err := xmlwriter.Write(out, root); err != nil {
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
		if err := dumpFile(f); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jack2xml <file.jack|directory>")
		os.Exit(2)
	}
	atExit(run(flag.Arg(0)))
}
