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

package hsim

import "github.com/pkg/errors"

const ramSize = 32768

// Machine is a Hack CPU with its data RAM. All arithmetic is 16-bit
// two's complement.
type Machine struct {
	Code    []instr
	Symbols map[string]int // label declarations, by address
	RAM     [ramSize]int16
	A, D    int16
	PC      int
}

// SP returns the stack pointer.
func (m *Machine) SP() int16 { return m.RAM[0] }

// Top returns the value just below the stack pointer.
func (m *Machine) Top() int16 { return m.RAM[int(m.SP())-1] }

// Run interprets instructions until the program counter runs off the
// code, or fails after maxSteps.
func (m *Machine) Run(maxSteps int) error {
	for steps := 0; m.PC >= 0 && m.PC < len(m.Code); steps++ {
		if steps >= maxSteps {
			return errors.Errorf("no halt after %d steps (PC=%d)", maxSteps, m.PC)
		}
		m.step()
	}
	return nil
}

func (m *Machine) step() {
	in := m.Code[m.PC]
	if in.a {
		m.A = in.addr
		m.PC++
		return
	}
	v := m.comp(in.comp)
	if in.dest != "" {
		m.store(in.dest, v)
	}
	if in.jump != "" && taken(in.jump, v) {
		// an unconditional jump to its own A-instruction is a terminal
		// loop; treat it as a halt
		if in.jump == "JMP" && in.comp == "0" && int(m.A) == m.PC-1 {
			m.PC = len(m.Code)
			return
		}
		m.PC = int(m.A)
		return
	}
	m.PC++
}

func (m *Machine) mem() *int16 {
	return &m.RAM[int(m.A)&(ramSize-1)]
}

func (m *Machine) comp(c string) int16 {
	a, d, mm := m.A, m.D, *m.mem()
	switch c {
	case "0":
		return 0
	case "1":
		return 1
	case "-1":
		return -1
	case "D":
		return d
	case "A":
		return a
	case "M":
		return mm
	case "!D":
		return ^d
	case "!A":
		return ^a
	case "!M":
		return ^mm
	case "-D":
		return -d
	case "-A":
		return -a
	case "-M":
		return -mm
	case "D+1":
		return d + 1
	case "A+1":
		return a + 1
	case "M+1":
		return mm + 1
	case "D-1":
		return d - 1
	case "A-1":
		return a - 1
	case "M-1":
		return mm - 1
	case "D+A":
		return d + a
	case "D+M":
		return d + mm
	case "D-A":
		return d - a
	case "D-M":
		return d - mm
	case "A-D":
		return a - d
	case "M-D":
		return mm - d
	case "D&A":
		return d & a
	case "D&M":
		return d & mm
	case "D|A":
		return d | a
	case "D|M":
		return d | mm
	}
	panic("unreachable: comp validated at assembly")
}

func (m *Machine) store(dest string, v int16) {
	// M first: it addresses through the old A
	for i := 0; i < len(dest); i++ {
		if dest[i] == 'M' {
			*m.mem() = v
		}
	}
	for i := 0; i < len(dest); i++ {
		switch dest[i] {
		case 'A':
			m.A = v
		case 'D':
			m.D = v
		}
	}
}

func taken(jump string, v int16) bool {
	switch jump {
	case "JGT":
		return v > 0
	case "JEQ":
		return v == 0
	case "JGE":
		return v >= 0
	case "JLT":
		return v < 0
	case "JNE":
		return v != 0
	case "JLE":
		return v <= 0
	case "JMP":
		return true
	}
	return false
}
