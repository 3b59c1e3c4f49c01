// Точка входа CLI для wazc.
//
// Usage:
//
//	wazc <file>        - compile file and print the generated module to stdout
//	wazc               - start an interactive REPL
//	wazc -verbose ...  - either of the above with debug-level logging
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/go-wazc/wazc/internal/compiler"
	"github.com/go-wazc/wazc/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	bannerCol = color.New(color.FgCyan)
)

func main() {
	verbose := flag.Bool("verbose", false, "enable debug-level logging of phase transitions")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		runRepl()
		return
	}

	if err := runFile(args[0]); err != nil {
		printDiag(err)
		os.Exit(1)
	}
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := compiler.Compile(string(src))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func printDiag(err error) {
	if de, ok := diag.As(err); ok {
		errColor.Fprintln(os.Stderr, de.Error())
		return
	}
	errColor.Fprintln(os.Stderr, err.Error())
}
