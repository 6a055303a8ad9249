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

// Package hsim is a minimal Hack machine: a two-pass symbol-resolving
// assembler and a 16-bit CPU interpreter, just enough to execute
// translator output in tests.
package hsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// builtins is the predefined Hack symbol table.
var builtins = map[string]int{
	"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
	"R0": 0, "R1": 1, "R2": 2, "R3": 3, "R4": 4, "R5": 5,
	"R6": 6, "R7": 7, "R8": 8, "R9": 9, "R10": 10, "R11": 11,
	"R12": 12, "R13": 13, "R14": 14, "R15": 15,
	"SCREEN": 16384, "KBD": 24576,
}

// varBase is where the assembler allocates unresolved symbols.
const varBase = 16

type instr struct {
	a                bool // A-instruction; addr holds the value
	addr             int16
	dest, comp, jump string
}

// Assemble translates Hack assembly source into a runnable Machine.
// Symbols retains the address of every label declaration.
func Assemble(src string) (*Machine, error) {
	var lines []string
	for _, raw := range strings.Split(src, "\n") {
		text, _, _ := strings.Cut(raw, "//")
		text = strings.TrimSpace(text)
		if text != "" {
			lines = append(lines, text)
		}
	}

	// label pass
	symbols := make(map[string]int)
	pc := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "(") {
			if !strings.HasSuffix(l, ")") {
				return nil, errors.Errorf("malformed label %q", l)
			}
			name := l[1 : len(l)-1]
			if _, dup := symbols[name]; dup {
				return nil, errors.Errorf("duplicate label %q", name)
			}
			symbols[name] = pc
			continue
		}
		pc++
	}

	m := &Machine{Symbols: symbols}
	next := varBase
	vars := make(map[string]int)
	for _, l := range lines {
		if strings.HasPrefix(l, "(") {
			continue
		}
		if strings.HasPrefix(l, "@") {
			sym := l[1:]
			if sym == "" {
				return nil, errors.New("@ with no operand")
			}
			addr, err := resolve(sym, symbols, vars, &next)
			if err != nil {
				return nil, err
			}
			m.Code = append(m.Code, instr{a: true, addr: int16(addr)})
			continue
		}
		in, err := parseC(l)
		if err != nil {
			return nil, err
		}
		m.Code = append(m.Code, in)
	}
	return m, nil
}

func resolve(sym string, symbols, vars map[string]int, next *int) (int, error) {
	if n, err := strconv.Atoi(sym); err == nil {
		if n < 0 || n > 32767 {
			return 0, errors.Errorf("@%d out of range", n)
		}
		return n, nil
	}
	if a, ok := builtins[sym]; ok {
		return a, nil
	}
	if a, ok := symbols[sym]; ok {
		return a, nil
	}
	if a, ok := vars[sym]; ok {
		return a, nil
	}
	a := *next
	vars[sym] = a
	*next++
	return a, nil
}

func parseC(l string) (instr, error) {
	var in instr
	rest := l
	if d, c, ok := strings.Cut(rest, "="); ok {
		in.dest, rest = d, c
	}
	if c, j, ok := strings.Cut(rest, ";"); ok {
		in.comp, in.jump = c, j
	} else {
		in.comp = rest
	}
	if !validComp[in.comp] {
		return in, errors.Errorf("bad computation in %q", l)
	}
	if !validDest[in.dest] {
		return in, errors.Errorf("bad destination in %q", l)
	}
	if !validJump[in.jump] {
		return in, errors.Errorf("bad jump in %q", l)
	}
	return in, nil
}

var validComp = set("0", "1", "-1", "D", "A", "M", "!D", "!A", "!M",
	"-D", "-A", "-M", "D+1", "A+1", "M+1", "D-1", "A-1", "M-1",
	"D+A", "D+M", "D-A", "D-M", "A-D", "M-D",
	"D&A", "D&M", "D|A", "D|M")

var validDest = set("", "M", "D", "A", "MD", "AM", "AD", "AMD")

var validJump = set("", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP")

func set(ss ...string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
