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

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SyntaxError reports a non-blank, non-comment line that matches no
// command form.
type SyntaxError struct {
	File string
	Line int // 1-based
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: syntax error: %q", e.File, e.Line, e.Text)
}

// name matches label and function identifiers: a non-digit first
// character from [A-Za-z_.:], then any of those or digits.
const name = `[A-Za-z_.:][A-Za-z0-9_.:]*`

// Command patterns, tried in order. The arithmetic mnemonics come first
// so that a lone mnemonic is never read as an identifier.
var (
	reArith = regexp.MustCompile(`^(add|sub|neg|eq|gt|lt|and|or|not)$`)
	reStack = regexp.MustCompile(`^(push|pop)\s+(argument|local|static|constant|this|that|pointer|temp)\s+([0-9]+)$`)
	reFlow  = regexp.MustCompile(`^(label|goto|if-goto)\s+(` + name + `)$`)
	reFunc  = regexp.MustCompile(`^function\s+(` + name + `)\s+([0-9]+)$`)
	reCall  = regexp.MustCompile(`^call\s+(` + name + `)\s+([0-9]+)$`)
)

// Parser is a forward-only cursor over the commands of one source unit.
// NewParser primes the cursor on the first command; after consuming the
// current command with Command, move on with Advance.
type Parser struct {
	file string
	sc   *bufio.Scanner
	text string // current command text, comment and whitespace stripped
	line int    // line number of the current command
	read int    // lines consumed so far
	eof  bool
}

// NewParser returns a parser over r. The name is the source unit's file
// name and appears in error messages.
func NewParser(name string, r io.Reader) *Parser {
	p := &Parser{file: name, sc: bufio.NewScanner(r)}
	p.Advance()
	return p
}

// HasMoreCommands reports whether the cursor is positioned on a command.
func (p *Parser) HasMoreCommands() bool { return !p.eof }

// Advance reads lines until a non-blank, non-comment line becomes
// current, or until end of input.
func (p *Parser) Advance() {
	for p.sc.Scan() {
		p.read++
		text, _, _ := strings.Cut(p.sc.Text(), "//")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		p.text, p.line = text, p.read
		return
	}
	p.eof = true
}

// Err returns the first I/O error encountered while reading, if any.
func (p *Parser) Err() error {
	return errors.Wrapf(p.sc.Err(), "read %s", p.file)
}

// Command classifies the current line and returns it with all arguments
// extracted. A line matching no command form yields a *SyntaxError.
func (p *Parser) Command() (Command, error) {
	if m := reArith.FindStringSubmatch(p.text); m != nil {
		return Command{Kind: Arithmetic, Op: Op(m[1])}, nil
	}
	if m := reStack.FindStringSubmatch(p.text); m != nil {
		k := Push
		if m[1] == "pop" {
			k = Pop
		}
		n, err := p.integer(m[3])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: k, Segment: Segment(m[2]), Index: n}, nil
	}
	if m := reFlow.FindStringSubmatch(p.text); m != nil {
		k := Label
		switch m[1] {
		case "goto":
			k = Goto
		case "if-goto":
			k = IfGoto
		}
		return Command{Kind: k, Name: m[2]}, nil
	}
	if m := reFunc.FindStringSubmatch(p.text); m != nil {
		n, err := p.integer(m[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Function, Name: m[1], N: n}, nil
	}
	if m := reCall.FindStringSubmatch(p.text); m != nil {
		n, err := p.integer(m[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Call, Name: m[1], N: n}, nil
	}
	if p.text == "return" {
		return Command{Kind: Return}, nil
	}
	return Command{}, &SyntaxError{File: p.file, Line: p.line, Text: p.text}
}

// integer converts a matched digit run. A value too large for an int is
// reported as a syntax error on the current line.
func (p *Parser) integer(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &SyntaxError{File: p.file, Line: p.line, Text: p.text}
	}
	return n, nil
}
