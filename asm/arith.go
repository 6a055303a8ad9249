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
	"github.com/pkg/errors"

	"github.com/hackvm/translator/vm"
)

// binaryFor maps the commutative-stack binary operators to the Hack
// computation applied with y in D and x at M.
var binaryFor = map[vm.Op]string{
	vm.OpAdd: "M=D+M",
	vm.OpSub: "M=M-D",
	vm.OpAnd: "M=D&M",
	vm.OpOr:  "M=D|M",
}

// unaryFor maps the unary operators to the in-place computation on the
// top of stack.
var unaryFor = map[vm.Op]string{
	vm.OpNeg: "M=-M",
	vm.OpNot: "M=!M",
}

// jumpFor maps the ordering operators to their jump mnemonic, taken on
// D = x-y once subtraction is known safe.
var jumpFor = map[vm.Op]string{
	vm.OpGt: "JGT",
	vm.OpLt: "JLT",
}

// WriteArithmetic emits one arithmetic-logical command.
func (w *Writer) WriteArithmetic(op vm.Op) error {
	switch op {
	case vm.OpAdd, vm.OpSub, vm.OpAnd, vm.OpOr:
		w.popD()
		w.asm("A=A-1", binaryFor[op])
	case vm.OpNeg, vm.OpNot:
		w.asm("@SP", "A=M-1", unaryFor[op])
	case vm.OpEq:
		w.writeEq()
	case vm.OpGt, vm.OpLt:
		w.writeOrdered(op)
	default:
		return errors.Errorf("unknown operator %q", op)
	}
	return w.out.Err
}

// writeEq replaces the top two values with -1 if equal, 0 otherwise.
// x-y never overflows into a wrong zero test: the difference of two
// 16-bit values is zero exactly when they are equal, wrapped or not.
func (w *Writer) writeEq() {
	s := w.gen()
	w.popD()
	w.asm(
		"A=A-1",
		"D=M-D",
		"@IF_TRUE_"+s,
		"D;JEQ",
		"D=0",
		"@APPEND_TO_STACK_"+s,
		"0;JMP",
		"(IF_TRUE_"+s+")",
		"D=-1",
		"(APPEND_TO_STACK_"+s+")",
	)
	w.replaceTop()
	w.ctr++
}

// writeOrdered emits gt or lt. The operands' signs are inspected first;
// x-y is computed only on the sign-agreeing path, where it cannot
// overflow. With y in R13 and x in R14:
//
//	gt: y<0 and x>=0 is true, y>=0 and x<=0 is false, else decide x-y>0
//	lt: y<0 and x>=0 is false, y>=0 and x<0 is true, else decide x-y<0
func (w *Writer) writeOrdered(op vm.Op) {
	s := w.gen()
	w.popD()
	w.asm(
		"@R13",
		"M=D",
		"@SP",
		"A=M-1",
		"D=M",
		"@R14",
		"M=D",
		"@R13",
		"D=M",
		"@SECOND_CHECK_"+s,
		"D;JGE",
		"@R14",
		"D=M",
	)
	if op == vm.OpGt {
		w.asm("@IF_TRUE_"+s, "D;JGE")
	} else {
		w.asm("@IF_FALSE_"+s, "D;JGE")
	}
	w.asm(
		"@COMPARE_BY_VALUE_"+s,
		"0;JMP",
		"(SECOND_CHECK_"+s+")",
		"@R14",
		"D=M",
	)
	if op == vm.OpGt {
		w.asm("@IF_FALSE_"+s, "D;JLE")
	} else {
		w.asm("@IF_TRUE_"+s, "D;JLT")
	}
	w.asm(
		"(COMPARE_BY_VALUE_"+s+")",
		"@R13",
		"D=M",
		"@R14",
		"D=M-D",
		"@IF_TRUE_"+s,
		"D;"+jumpFor[op],
		"(IF_FALSE_"+s+")",
		"D=0",
		"@APPEND_TO_STACK_"+s,
		"0;JMP",
		"(IF_TRUE_"+s+")",
		"D=-1",
		"(APPEND_TO_STACK_"+s+")",
	)
	w.replaceTop()
	w.ctr++
}

// replaceTop stores D over the current top of stack.
func (w *Writer) replaceTop() {
	w.asm("@SP", "A=M-1", "M=D")
}
