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

package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nand2tetris-go/compiler/internal/pipeline"
)

func TestSourceFiles_singleFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "Main.jack")
	if err := os.WriteFile(f, []byte("class Main {}"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := pipeline.SourceFiles(f, ".jack")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != f {
		t.Fatalf("got %v, want [%s]", got, f)
	}
}

func TestSourceFiles_directoryFiltersExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Main.jack", "Util.jack", "Main.vm", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := pipeline.SourceFiles(dir, ".jack")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(got), got)
	}
	for _, g := range got {
		if filepath.Ext(g) != ".jack" {
			t.Fatalf("unexpected non-.jack file in results: %s", g)
		}
	}
}

func TestWithExt(t *testing.T) {
	if got := pipeline.WithExt("Main.jack", ".vm"); got != "Main.vm" {
		t.Fatalf("got %s, want Main.vm", got)
	}
}

func TestStem(t *testing.T) {
	if got := pipeline.Stem("src/Main.jack"); got != "Main" {
		t.Fatalf("got %s, want Main", got)
	}
}

func TestTranslatorOutputPath(t *testing.T) {
	if got := pipeline.TranslatorOutputPath("Main.vm", false); got != "Main.asm" {
		t.Fatalf("file case: got %s, want Main.asm", got)
	}
	want := filepath.Join("Prog", "Prog.asm")
	if got := pipeline.TranslatorOutputPath("Prog", true); got != want {
		t.Fatalf("directory case: got %s, want %s", got, want)
	}
}
