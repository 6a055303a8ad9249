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

package asm_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackvm/translator/asm"
	"github.com/hackvm/translator/internal/hsim"
	"github.com/hackvm/translator/vm"
)

var labelDecl = regexp.MustCompile(`^\((.+)\)$`)

func declarations(src string) []string {
	var decls []string
	for _, l := range strings.Split(src, "\n") {
		if m := labelDecl.FindStringSubmatch(l); m != nil {
			decls = append(decls, m[1])
		}
	}
	return decls
}

func TestUserLabelScoping(t *testing.T) {
	src := emit(t, func(w *asm.Writer) {
		w.WriteFunction("F", 0)
		w.WriteLabel("LOOP")
		w.WriteGoto("LOOP")
	})
	count := 0
	for _, d := range declarations(src) {
		if d == "F$LOOP" {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one declaration of F$LOOP")
	assert.Contains(t, src, "@F$LOOP\n0;JMP")
}

// The same user label in two functions must not collide.
func TestLabelScopingAcrossFunctions(t *testing.T) {
	src := emit(t, func(w *asm.Writer) {
		w.WriteFunction("F", 0)
		w.WriteLabel("L")
		w.WriteFunction("G", 0)
		w.WriteLabel("L")
	})
	decls := declarations(src)
	assert.Contains(t, decls, "F$L")
	assert.Contains(t, decls, "G$L")
}

// Generated labels restart at .0 inside each function and count up once
// per comparison and call site.
func TestCounterResetPerFunction(t *testing.T) {
	src := emit(t, func(w *asm.Writer) {
		w.WriteFunction("Foo.bar", 2)
		w.WriteArithmetic(vm.OpEq)
		w.WriteArithmetic(vm.OpEq)
		w.WriteCall("X", 0)
		w.WriteFunction("Foo.baz", 0)
		w.WriteArithmetic(vm.OpEq)
	})
	assert.Contains(t, src, "(IF_TRUE_Foo.bar.0)")
	assert.Contains(t, src, "(IF_TRUE_Foo.bar.1)")
	assert.Contains(t, src, "(RET_ADDR$Foo.bar.2)")
	assert.Contains(t, src, "(IF_TRUE_Foo.baz.0)")
	assert.NotContains(t, src, "Foo.bar.3")
	assert.NotContains(t, src, "Foo.baz.1")
}

func TestCallSitesGetDistinctReturnLabels(t *testing.T) {
	src := emit(t, func(w *asm.Writer) {
		w.WriteFunction("F", 0)
		w.WriteCall("X", 0)
		w.WriteCall("X", 0)
	})
	assert.Contains(t, src, "(RET_ADDR$F.0)")
	assert.Contains(t, src, "(RET_ADDR$F.1)")
}

// Every declaration in a whole program must be unique.
func TestDeclarationsUnique(t *testing.T) {
	src := emit(t, func(w *asm.Writer) {
		w.WriteFunction("A.f", 1)
		w.WriteLabel("L")
		w.WriteArithmetic(vm.OpGt)
		w.WriteArithmetic(vm.OpLt)
		w.WriteCall("B.g", 2)
		w.WriteFunction("B.g", 0)
		w.WriteLabel("L")
		w.WriteArithmetic(vm.OpGt)
		w.WriteCall("A.f", 0)
		w.WriteReturn()
	})
	seen := map[string]bool{}
	for _, d := range declarations(src) {
		assert.False(t, seen[d], "duplicate declaration %q", d)
		seen[d] = true
	}
}

// label, goto, function and return must not move SP beyond their
// documented effects.
func TestStackNeutrality(t *testing.T) {
	m := exec(t, nil, func(w *asm.Writer) {
		w.WritePush(vm.SegConstant, 3)
		w.WriteLabel("HERE")
		w.WriteGoto("THERE")
		w.WriteLabel("SKIPPED")
		w.WriteLabel("THERE")
	})
	assert.Equal(t, int16(257), m.SP())
	assert.Equal(t, int16(3), m.Top())
}

func TestIfGotoPopsAndBranches(t *testing.T) {
	m := exec(t, nil, func(w *asm.Writer) {
		w.WritePush(vm.SegConstant, 1)
		w.WriteIf("TAKEN")
		w.WritePush(vm.SegConstant, 100) // skipped
		w.WriteLabel("TAKEN")
		w.WritePush(vm.SegConstant, 0)
		w.WriteIf("NOT_TAKEN")
		w.WritePush(vm.SegConstant, 55)
		w.WriteLabel("NOT_TAKEN")
	})
	assert.Equal(t, int16(55), m.Top())
	assert.Equal(t, int16(257), m.SP(), "both if-goto pops happened")
}

func TestFunctionInitializesLocals(t *testing.T) {
	for _, locals := range []int{0, 1, 2, 5} {
		var buf bytes.Buffer
		w := asm.NewWriter(&buf)
		w.SetUnit("Test")
		require.NoError(t, w.WriteFunction("Sys.init", 0))
		// simulate a callee entry: LCL = SP, then declare the function
		require.NoError(t, w.WriteFunction("Test.f", locals))
		require.NoError(t, w.Err())

		m, err := hsim.Assemble(buf.String())
		require.NoError(t, err)
		m.RAM[0] = 256
		m.RAM[1] = 256
		for i := 0; i < locals; i++ {
			m.RAM[256+i] = 9999 // stale memory the init must clear
		}
		m.PC = m.Symbols["Test.f"]
		require.NoError(t, m.Run(10_000))

		assert.Equal(t, int16(256+locals), m.SP(), "locals=%d", locals)
		for i := 0; i < locals; i++ {
			assert.Equal(t, int16(0), m.RAM[256+i], "local %d zeroed", i)
		}
	}
}

func TestCallAndReturn(t *testing.T) {
	m := exec(t, map[int]int16{3: 31, 4: 41}, func(w *asm.Writer) {
		// Sys.init body
		w.WritePush(vm.SegConstant, 20)
		w.WritePush(vm.SegConstant, 22)
		w.WriteCall("Test.sum2", 2)
		w.WriteLabel("HALT")
		w.WriteGoto("HALT")

		w.WriteFunction("Test.sum2", 1)
		w.WritePush(vm.SegArgument, 0)
		w.WritePush(vm.SegArgument, 1)
		w.WriteArithmetic(vm.OpAdd)
		w.WritePop(vm.SegLocal, 0)
		w.WritePush(vm.SegLocal, 0)
		w.WriteReturn()
	})
	assert.Equal(t, int16(42), m.Top(), "arguments replaced by result")
	assert.Equal(t, int16(257), m.SP())
	assert.Equal(t, int16(31), m.RAM[3], "THIS restored")
	assert.Equal(t, int16(41), m.RAM[4], "THAT restored")
}

// With no arguments the return-address slot and ARG coincide; the
// return sequence must read the address before storing the result.
func TestReturnWithZeroArguments(t *testing.T) {
	m := exec(t, nil, func(w *asm.Writer) {
		w.WriteCall("Test.k", 0)
		w.WritePush(vm.SegConstant, 1)
		w.WriteArithmetic(vm.OpAdd)
		w.WriteLabel("HALT")
		w.WriteGoto("HALT")

		w.WriteFunction("Test.k", 0)
		w.WritePush(vm.SegConstant, 8)
		w.WriteReturn()
	})
	assert.Equal(t, int16(9), m.Top(), "execution resumed at the call site")
	assert.Equal(t, int16(257), m.SP())
}

func TestNestedCalls(t *testing.T) {
	m := exec(t, nil, func(w *asm.Writer) {
		w.WritePush(vm.SegConstant, 5)
		w.WriteCall("Test.addTen", 1)
		w.WriteLabel("HALT")
		w.WriteGoto("HALT")

		w.WriteFunction("Test.addTen", 0)
		w.WritePush(vm.SegArgument, 0)
		w.WriteCall("Test.addFive", 1)
		w.WriteCall("Test.addFive", 1)
		w.WriteReturn()

		w.WriteFunction("Test.addFive", 0)
		w.WritePush(vm.SegArgument, 0)
		w.WritePush(vm.SegConstant, 5)
		w.WriteArithmetic(vm.OpAdd)
		w.WriteReturn()
	})
	assert.Equal(t, int16(15), m.Top())
	assert.Equal(t, int16(257), m.SP())
}

func TestRecursion(t *testing.T) {
	// sum 1..n by naive recursion
	m := exec(t, nil, func(w *asm.Writer) {
		w.WritePush(vm.SegConstant, 10)
		w.WriteCall("Test.sum", 1)
		w.WriteLabel("HALT")
		w.WriteGoto("HALT")

		w.WriteFunction("Test.sum", 0)
		w.WritePush(vm.SegArgument, 0)
		w.WriteIf("recurse")
		w.WritePush(vm.SegConstant, 0)
		w.WriteReturn()
		w.WriteLabel("recurse")
		w.WritePush(vm.SegArgument, 0)
		w.WritePush(vm.SegArgument, 0)
		w.WritePush(vm.SegConstant, 1)
		w.WriteArithmetic(vm.OpSub)
		w.WriteCall("Test.sum", 1)
		w.WriteArithmetic(vm.OpAdd)
		w.WriteReturn()
	})
	assert.Equal(t, int16(55), m.Top())
	assert.Equal(t, int16(257), m.SP())
}

func TestBootstrapThenProgram(t *testing.T) {
	// the real entry path: run from address zero through the bootstrap
	var buf bytes.Buffer
	w := asm.NewWriter(&buf)
	w.SetUnit("Main")
	require.NoError(t, w.WriteFunction("Sys.init", 0))
	require.NoError(t, w.WritePush(vm.SegConstant, 3))
	require.NoError(t, w.WriteCall("Main.triple", 1))
	require.NoError(t, w.WriteLabel("HALT"))
	require.NoError(t, w.WriteGoto("HALT"))

	require.NoError(t, w.WriteFunction("Main.triple", 1))
	require.NoError(t, w.WritePush(vm.SegArgument, 0))
	require.NoError(t, w.WritePush(vm.SegArgument, 0))
	require.NoError(t, w.WriteArithmetic(vm.OpAdd))
	require.NoError(t, w.WritePush(vm.SegArgument, 0))
	require.NoError(t, w.WriteArithmetic(vm.OpAdd))
	require.NoError(t, w.WriteReturn())
	require.NoError(t, w.Err())

	m, err := hsim.Assemble(buf.String())
	require.NoError(t, err)
	require.NoError(t, m.Run(1_000_000))

	assert.Equal(t, int16(261), m.RAM[1], "LCL set by the pseudo-call")
	assert.Equal(t, int16(262), m.SP(), "one value above the bootstrap frame")
	assert.Equal(t, int16(9), m.Top())
}
