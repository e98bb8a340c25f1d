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

// Package pipeline holds the file/directory plumbing shared by all four
// CLI programs: classifying a positional argument as a file or
// directory, listing same-extension source files directly under a
// directory in a deterministic order, and deriving output paths. None of
// this is specified by the toolchain itself (external collaborator, per
// spec.md's Non-goals) but every CLI needs the same small sliver of it,
// the way the teacher factors shared plumbing into `internal/ngi`.
package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Stat wraps os.Stat with file/directory context, matching the
// pkg/errors-wrapped style used throughout this module.
func Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	return info, nil
}

// SourceFiles returns the files to process for a CLI's positional
// argument: path itself if it is a file (regardless of extension — an
// explicit file argument is trusted), or every file directly under path
// whose name ends in ext, in directory-listing order, if path is a
// directory. os.ReadDir sorts by filename, giving deterministic,
// reproducible output ordering across runs.
func SourceFiles(path, ext string) ([]string, error) {
	info, err := Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", path)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ext) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	return files, nil
}

// WithExt replaces path's extension with ext (ext includes the leading
// dot), e.g. WithExt("Main.jack", ".vm") -> "Main.vm".
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Stem returns path's base name with its extension removed, e.g.
// Stem("src/Main.jack") -> "Main".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TranslatorOutputPath implements spec.md §6's translator output rule:
// a file argument writes <stem>.asm beside it; a directory argument D
// writes D/<basename(D)>.asm, the single-file aggregate of every .vm file
// under D.
func TranslatorOutputPath(path string, isDir bool) string {
	if !isDir {
		return WithExt(path, ".asm")
	}
	clean := filepath.Clean(path)
	return filepath.Join(clean, filepath.Base(clean)+".asm")
}
