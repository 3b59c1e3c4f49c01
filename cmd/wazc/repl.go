package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/go-wazc/wazc/internal/compiler"
	"github.com/go-wazc/wazc/internal/diag"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const (
	replPrompt = "wazc >>> "
	replBanner = "wazc — a small scripting-language compiler targeting a wasm-like text format"
	replLine   = "----------------------------------------------------------------"
)

// runRepl compiles one top-level snippet at a time, printing its
// emitted module text or diagnostic before reading the next line.
func runRepl() {
	blueColor.Println(replLine)
	greenColor.Println(replBanner)
	blueColor.Println(replLine)
	cyanColor.Println("Type one statement or function per line. Ctrl+D to quit.")
	blueColor.Println(replLine)

	rl, err := readline.New(replPrompt)
	if err != nil {
		errColor.Println(err.Error())
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			yellowColor.Println("bye")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		out, err := compiler.Compile(line)
		if err != nil {
			if de, ok := diag.As(err); ok {
				errColor.Println(de.Error())
			} else {
				errColor.Println(err.Error())
			}
			continue
		}
		yellowColor.Println(out)
	}
}
