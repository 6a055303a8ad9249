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

package asm

import (
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/hackvm/translator/internal/errio"
	"github.com/hackvm/translator/vm"
)

// maxConstant is the largest value an A-instruction can load.
const maxConstant = 32767

// tempBase is the RAM address of temp slot 0.
const tempBase = 5

// pointerFor maps the dynamically based segments to their pointer symbol.
var pointerFor = map[vm.Segment]string{
	vm.SegLocal:    "LCL",
	vm.SegArgument: "ARG",
	vm.SegThis:     "THIS",
	vm.SegThat:     "THAT",
}

// Writer emits Hack assembly for VM commands. Create one per output
// program; it writes the bootstrap immediately and keeps the unit name,
// function name and label counter that scope all emitted symbols.
type Writer struct {
	out  *errio.Writer
	unit string // current source unit, namespaces static symbols
	fn   string // most recently declared function, empty before the first
	ctr  int    // per-function generated label counter
}

// NewWriter returns a Writer over w and emits the bootstrap sequence.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{out: errio.NewWriter(w)}
	wr.bootstrap()
	return wr
}

// SetUnit names the source unit being translated. Must be called before
// the first command of each unit so static slots of distinct units get
// distinct symbols.
func (w *Writer) SetUnit(name string) { w.unit = name }

// Err returns the first I/O error encountered on the output, if any.
func (w *Writer) Err() error { return w.out.Err }

// WriteCommand dispatches cmd to the matching emitter.
func (w *Writer) WriteCommand(cmd vm.Command) error {
	switch cmd.Kind {
	case vm.Arithmetic:
		return w.WriteArithmetic(cmd.Op)
	case vm.Push:
		return w.WritePush(cmd.Segment, cmd.Index)
	case vm.Pop:
		return w.WritePop(cmd.Segment, cmd.Index)
	case vm.Label:
		return w.WriteLabel(cmd.Name)
	case vm.Goto:
		return w.WriteGoto(cmd.Name)
	case vm.IfGoto:
		return w.WriteIf(cmd.Name)
	case vm.Function:
		return w.WriteFunction(cmd.Name, cmd.N)
	case vm.Call:
		return w.WriteCall(cmd.Name, cmd.N)
	case vm.Return:
		return w.WriteReturn()
	}
	return errors.Errorf("unknown command kind %d", cmd.Kind)
}

// bootstrap sets SP to 256 and enters Sys.init through a pseudo-call:
// SP advances by the five words a real frame would occupy and LCL is set
// to the new SP, but nothing restorable is pushed.
func (w *Writer) bootstrap() {
	w.asm(
		"@256",
		"D=A",
		"@SP",
		"M=D",
		"@5",
		"D=A",
		"@SP",
		"MD=D+M",
		"@LCL",
		"M=D",
		"@Sys.init",
		"0;JMP",
	)
}

// WritePush evaluates the source operand into D and appends it to the
// stack.
func (w *Writer) WritePush(seg vm.Segment, index int) error {
	if err := checkIndex(seg, index); err != nil {
		return err
	}
	switch seg {
	case vm.SegConstant:
		w.asm(at(index), "D=A")
	case vm.SegLocal, vm.SegArgument, vm.SegThis, vm.SegThat:
		w.asm(at(index), "D=A", "@"+pointerFor[seg], "A=D+M", "D=M")
	case vm.SegPointer:
		w.asm("@"+pointerSym(index), "D=M")
	case vm.SegTemp:
		w.asm(at(tempBase+index), "D=M")
	case vm.SegStatic:
		w.asm("@"+w.staticSym(index), "D=M")
	}
	w.append()
	return w.out.Err
}

// WritePop computes the destination address, pops the top of stack into
// D and stores it there. For the dynamically based segments the address
// is carried in R13, computed before the pop.
func (w *Writer) WritePop(seg vm.Segment, index int) error {
	if seg == vm.SegConstant {
		return errors.Errorf("pop constant %d: constant is not writable", index)
	}
	if err := checkIndex(seg, index); err != nil {
		return err
	}
	switch seg {
	case vm.SegLocal, vm.SegArgument, vm.SegThis, vm.SegThat:
		w.asm(at(index), "D=A", "@"+pointerFor[seg], "D=D+M", "@R13", "M=D")
		w.popD()
		w.asm("@R13", "A=M")
	case vm.SegPointer:
		w.popD()
		w.asm("@" + pointerSym(index))
	case vm.SegTemp:
		w.popD()
		w.asm(at(tempBase + index))
	case vm.SegStatic:
		w.popD()
		w.asm("@" + w.staticSym(index))
	}
	// in every branch D holds the popped value and A the destination
	w.asm("M=D")
	return w.out.Err
}

// checkIndex validates the index ranges that the grammar leaves open.
func checkIndex(seg vm.Segment, index int) error {
	switch seg {
	case vm.SegPointer:
		if index != 0 && index != 1 {
			return errors.Errorf("pointer %d: index must be 0 or 1", index)
		}
	case vm.SegTemp:
		if index > 7 {
			return errors.Errorf("temp %d: index must be 0..7", index)
		}
	case vm.SegConstant:
		if index > maxConstant {
			return errors.Errorf("constant %d: exceeds %d", index, maxConstant)
		}
	}
	return nil
}

func pointerSym(index int) string {
	if index == 0 {
		return "THIS"
	}
	return "THAT"
}

func (w *Writer) staticSym(index int) string {
	return w.unit + "." + strconv.Itoa(index)
}

// gen returns the current generated label suffix. Emitters bump ctr once
// after using it.
func (w *Writer) gen() string {
	return w.fn + "." + strconv.Itoa(w.ctr)
}

// append pushes D: increment SP, store D at the slot below the new SP.
func (w *Writer) append() {
	w.asm("@SP", "AM=M+1", "A=A-1", "M=D")
}

// popD pops the top of stack into D, leaving A one past the new top.
func (w *Writer) popD() {
	w.asm("@SP", "AM=M-1", "D=M")
}

func (w *Writer) asm(lines ...string) {
	for _, l := range lines {
		w.out.Line(l)
	}
}

func at(n int) string { return "@" + strconv.Itoa(n) }
