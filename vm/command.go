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

package vm

// Kind identifies one of the nine VM command forms.
type Kind int

// VM command kinds.
const (
	Arithmetic Kind = iota
	Push
	Pop
	Label
	Goto
	IfGoto
	Function
	Call
	Return
)

var kindNames = [...]string{
	"arithmetic",
	"push",
	"pop",
	"label",
	"goto",
	"if-goto",
	"function",
	"call",
	"return",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Op is an arithmetic-logical command mnemonic.
type Op string

// The nine arithmetic-logical operations.
const (
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpNeg Op = "neg"
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpLt  Op = "lt"
	OpAnd Op = "and"
	OpOr  Op = "or"
	OpNot Op = "not"
)

// Segment names a virtual memory region addressed by index.
type Segment string

// The eight memory segments.
const (
	SegArgument Segment = "argument"
	SegLocal    Segment = "local"
	SegStatic   Segment = "static"
	SegConstant Segment = "constant"
	SegThis     Segment = "this"
	SegThat     Segment = "that"
	SegPointer  Segment = "pointer"
	SegTemp     Segment = "temp"
)

// Command is a single VM command with its arguments carried by value.
// Which fields are meaningful depends on Kind:
//
//	Arithmetic          Op
//	Push, Pop           Segment, Index
//	Label, Goto, IfGoto Name
//	Function            Name, N (locals)
//	Call                Name, N (arguments)
//	Return              nothing
type Command struct {
	Kind    Kind
	Op      Op
	Segment Segment
	Index   int
	Name    string
	N       int
}
