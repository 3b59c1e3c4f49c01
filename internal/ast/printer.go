package ast

import (
	"fmt"
	"strings"
)

// PrettyPrint renders a Program as an indented tree, used only for
// debug logging (logrus.Debug) — never part of the compiler's output
// contract.
func PrettyPrint(p *Program) string {
	var b strings.Builder
	for _, fn := range p.Functions {
		fmt.Fprintf(&b, "function %s(%s)\n", fn.Name, strings.Join(fn.Params, ", "))
		printStmts(&b, fn.Body, 1)
	}
	fmt.Fprintf(&b, "top_level\n")
	printStmts(&b, p.TopLevel, 1)
	return b.String()
}

func printStmts(b *strings.Builder, stmts []Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, s := range stmts {
		fmt.Fprintf(b, "%s%s\n", indent, s)
		switch n := s.(type) {
		case *BlockStmt:
			printStmts(b, n.Stmts, depth+1)
		case *IfStmt:
			printStmts(b, []Stmt{n.Then}, depth+1)
			if n.Else != nil {
				printStmts(b, []Stmt{n.Else}, depth+1)
			}
		case *WhileStmt:
			printStmts(b, []Stmt{n.Body}, depth+1)
		case *ForStmt:
			printStmts(b, []Stmt{n.Body}, depth+1)
		}
	}
}
