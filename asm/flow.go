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

// scoped renders a user label inside the enclosing function.
func (w *Writer) scoped(label string) string {
	return w.fn + "$" + label
}

// WriteLabel declares user label name in the current function.
func (w *Writer) WriteLabel(name string) error {
	w.asm("(" + w.scoped(name) + ")")
	return w.out.Err
}

// WriteGoto jumps unconditionally to a user label.
func (w *Writer) WriteGoto(name string) error {
	w.asm("@"+w.scoped(name), "0;JMP")
	return w.out.Err
}

// WriteIf pops the top of stack and jumps if it is non-zero.
func (w *Writer) WriteIf(name string) error {
	w.popD()
	w.asm("@"+w.scoped(name), "D;JNE")
	return w.out.Err
}

// WriteFunction declares function name and zeroes its locals slots. The
// new function becomes the scope for user labels and the generated label
// counter restarts.
func (w *Writer) WriteFunction(name string, locals int) error {
	w.asm("(" + name + ")")
	switch {
	case locals == 1:
		w.asm("@SP", "AM=M+1", "A=A-1", "M=0")
	case locals > 1:
		// advance SP in one step, then fill the new slots descending
		w.asm(at(locals), "D=A", "@SP", "AM=D+M")
		for i := 0; i < locals; i++ {
			w.asm("A=A-1", "M=0")
		}
	}
	w.fn = name
	w.ctr = 0
	return w.out.Err
}

// WriteCall pushes the five-word frame, repoints ARG and LCL and jumps
// to the callee. The fresh return-address label lands right after the
// jump.
func (w *Writer) WriteCall(name string, args int) error {
	ret := "RET_ADDR$" + w.gen()
	w.asm("@"+ret, "D=A")
	w.append()
	for _, sym := range []string{"LCL", "ARG", "THIS", "THAT"} {
		w.asm("@"+sym, "D=M")
		w.append()
	}
	w.asm(
		"@SP",
		"D=M",
		at(args+5),
		"D=D-A",
		"@ARG",
		"M=D",
		"@SP",
		"D=M",
		"@LCL",
		"M=D",
		"@"+name,
		"0;JMP",
		"("+ret+")",
	)
	w.ctr++
	return w.out.Err
}

// WriteReturn unwinds the callee: result to ARG, SP rewound, caller
// pointers restored from the frame, jump through the saved address. The
// return address is loaded into R15 before the result is stored at ARG;
// with zero arguments its slot and ARG overlap.
func (w *Writer) WriteReturn() error {
	w.asm(
		"@LCL",
		"D=M",
		"@R14",
		"M=D",
		"@5",
		"A=D-A",
		"D=M",
		"@R15",
		"M=D",
	)
	w.popD()
	w.asm(
		"@ARG",
		"A=M",
		"M=D",
		"@ARG",
		"D=M+1",
		"@SP",
		"M=D",
	)
	for _, sym := range []string{"THAT", "THIS", "ARG", "LCL"} {
		w.restore(sym)
	}
	w.asm("@R15", "A=M", "0;JMP")
	return w.out.Err
}

// restore pops the next saved word off the frame, walking R14 down.
func (w *Writer) restore(sym string) {
	w.asm("@R14", "AM=M-1", "D=M", "@"+sym, "M=D")
}
