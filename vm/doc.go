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

// Package vm models the stack-based VM language of the Nand2Tetris
// platform and provides a parser for it.
//
// A VM source unit is a sequence of text lines. Tokens are separated by
// whitespace, comments run from "//" to end of line, and blank lines are
// ignored. Each remaining line is exactly one command:
//
//	add sub neg eq gt lt and or not    arithmetic-logical commands
//	push <segment> <index>             read a value onto the stack
//	pop <segment> <index>              write the top of stack back
//	label <name>                       declare a branch target
//	goto <name>                        unconditional branch
//	if-goto <name>                     branch if popped value is non-zero
//	function <name> <nLocals>          function entry point
//	call <name> <nArgs>                function invocation
//	return                             return to the caller
//
// Segments are argument, local, static, constant, this, that, pointer and
// temp. Names start with a letter, underscore, dot or colon and continue
// with those characters or digits.
//
// Parsing yields Command values: a tagged variant with all arguments
// extracted by value, so later stages never reach back into parser state.
package vm
