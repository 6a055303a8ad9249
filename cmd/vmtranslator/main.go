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

// Command vmtranslator translates Nand2Tetris VM programs into Hack
// assembly.
//
//	vmtranslator Prog.vm     translate one file to Prog.asm
//	vmtranslator progdir     translate progdir/*.vm to progdir/progdir.asm
package main

import (
	"fmt"
	"os"

	"github.com/teris-io/cli"

	"github.com/hackvm/translator/translate"
)

var description = "Translates programs written in the VM language of the " +
	"Nand2Tetris platform into Hack assembly. The path may be a single .vm " +
	"file, translated to a sibling .asm file, or a directory whose .vm " +
	"files are translated together into one .asm file named after it."

var debug bool

func main() {
	app := cli.New(description).
		WithArg(cli.NewArg("path", "a .vm file, or a directory of .vm files").
			WithType(cli.TypeString)).
		WithOption(cli.NewOption("debug", "print errors with stack traces").
			WithChar('d').WithType(cli.TypeBool)).
		WithAction(run)
	os.Exit(app.Run(os.Args, os.Stdout))
}

func run(args []string, options map[string]string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one path argument")
		return 2
	}
	debug = options["debug"] == "true"
	if err := translate.Run(args[0]); err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return 1
	}
	return 0
}
