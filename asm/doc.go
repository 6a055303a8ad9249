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

// Package asm emits Hack assembly for VM commands.
//
// The Writer translates one command at a time against the standard Hack
// memory conventions:
//
//	RAM[0]	SP	stack pointer, one past the top of stack
//	RAM[1]	LCL	base of the current function's locals
//	RAM[2]	ARG	base of the current function's arguments
//	RAM[3]	THIS	pointer segment slot 0
//	RAM[4]	THAT	pointer segment slot 1
//	RAM[5-12]	temp segment
//	RAM[13-15]	R13-R15, translator scratch
//
// R13 carries the destination address across a pop into a dynamic
// segment, R14 walks the saved frame during return, and R15 holds the
// return address. Static slot i of source unit U becomes the assembler
// symbol "U.i", so separately translated units never share static state.
//
// Calling convention:
//
// "call f n" pushes a five-word frame (return address, LCL, ARG, THIS,
// THAT), points ARG at the first of the n arguments already on the
// stack, sets LCL to SP and jumps to f. "function f k" declares the
// entry label and zeroes k local slots. "return" stores the result at
// ARG, rewinds SP, restores the caller's four pointers from the frame
// and jumps through the saved return address. The saved return address
// is read before the result is stored at ARG: with zero arguments the
// return-address slot and ARG overlap, so the order is load-bearing.
//
// Output at construction starts with the bootstrap: SP is set to 256 and
// Sys.init is entered through a pseudo-call that advances SP by five
// words and sets LCL, without pushing a restorable frame. Sys.init never
// returns, so there is no caller state to fake.
//
// Label forms:
//
//	f		function entry, global
//	U.i		static slot i of unit U
//	f$L		user label L declared in function f
//	RET_ADDR$f.c	return address of the c-th generated label site in f
//	IF_TRUE_f.c, IF_FALSE_f.c, SECOND_CHECK_f.c,
//	COMPARE_BY_VALUE_f.c, APPEND_TO_STACK_f.c
//			branch targets inside the c-th comparison in f
//
// The counter c restarts at 0 on every function declaration and is
// bumped exactly once per comparison and once per call site, which makes
// every generated label unique across the whole output.
//
// The comparisons gt and lt dispatch on operand signs before ever
// subtracting: x-y is only computed once x and y are known to agree in
// sign, so the decision is exact over the full 16-bit domain even where
// the difference itself is unrepresentable.
package asm
