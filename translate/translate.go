// This file is part of hackvm - https://github.com/hackvm/translator
//
// Copyright 2026 The hackvm Authors
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

// Package translate drives the VM-to-Hack pipeline: it discovers source
// units, opens the single output sink and feeds each parsed command to
// the assembly writer.
package translate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/hackvm/translator/asm"
	"github.com/hackvm/translator/vm"
)

// Ext is the source file extension.
const Ext = ".vm"

// OutExt is the output file extension.
const OutExt = ".asm"

// Unit is one VM source unit. Name is the base file name without
// extension and namespaces the unit's static symbols; File is the name
// cited in error messages.
type Unit struct {
	File string
	Name string
	R    io.Reader
}

// Notice receives the informational overwrite message. Swapped out in
// tests.
var Notice io.Writer = os.Stdout

// Run translates the file or directory at path. A path that exists but
// is neither a .vm file nor a directory, or a directory without .vm
// files, is an argument error reported before any output is created.
func Run(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "invalid path")
	}
	if fi.IsDir() {
		return Dir(path)
	}
	return File(path)
}

// File translates a single .vm file to a sibling .asm file with the
// same base name.
func File(path string) error {
	if filepath.Ext(path) != Ext {
		return errors.Errorf("%s: not a %s file", path, Ext)
	}
	return translateAll([]string{path}, strings.TrimSuffix(path, Ext)+OutExt)
}

// Dir translates every .vm file directly inside dir (non-recursive)
// into one .asm file named after the directory, placed inside it.
func Dir(dir string) error {
	inputs, err := filepath.Glob(filepath.Join(dir, "*"+Ext))
	if err != nil {
		return errors.Wrap(err, "scan directory")
	}
	if len(inputs) == 0 {
		return errors.Errorf("%s: no %s files", dir, Ext)
	}
	sort.Strings(inputs)
	out := filepath.Join(dir, filepath.Base(filepath.Clean(dir))+OutExt)
	return translateAll(inputs, out)
}

// TrimExt returns path's base name with its extension removed.
func TrimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// translateAll writes the translation of inputs, in order, to outPath.
// Input readers are re-created per file and closed on every path; the
// output is created once and shared by all units.
func translateAll(inputs []string, outPath string) (err error) {
	if _, serr := os.Stat(outPath); serr == nil {
		fmt.Fprintf(Notice, "overwriting %s\n", outPath)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close output")
		}
	}()

	bw := bufio.NewWriter(f)
	w := asm.NewWriter(bw)
	for _, in := range inputs {
		r, oerr := os.Open(in)
		if oerr != nil {
			return errors.Wrap(oerr, "open input")
		}
		uerr := unit(w, Unit{File: filepath.Base(in), Name: TrimExt(in), R: r})
		cerr := r.Close()
		if uerr != nil {
			return uerr
		}
		if cerr != nil {
			return errors.Wrap(cerr, "close input")
		}
	}
	if err := w.Err(); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "flush output")
}

// Program translates units in order into a single assembly stream.
// The writer is shared: only the unit name changes between units.
func Program(units []Unit, out io.Writer) error {
	w := asm.NewWriter(out)
	for _, u := range units {
		if err := unit(w, u); err != nil {
			return err
		}
	}
	return w.Err()
}

// unit drives parser against writer for one source unit.
func unit(w *asm.Writer, u Unit) error {
	w.SetUnit(u.Name)
	p := vm.NewParser(u.File, u.R)
	for p.HasMoreCommands() {
		cmd, err := p.Command()
		if err != nil {
			return err
		}
		if err := w.WriteCommand(cmd); err != nil {
			return errors.Wrap(err, u.File)
		}
		p.Advance()
	}
	return p.Err()
}
