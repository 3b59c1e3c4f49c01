package sema

import (
	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
)

// checkStmt walks one statement, using exprOf to type expressions. The
// same exprOf is threaded into every nested statement so that a call
// nested inside a top-level if/while/for/block is still treated as
// top-level for first-call-wins purposes.
func (c *Checker) checkStmt(s ast.Stmt, exprOf exprTyper) error {
	switch n := s.(type) {
	case *ast.LetStmt:
		t, err := exprOf(n.Init)
		if err != nil {
			return err
		}
		c.define(n.Name, symbol{isConst: false, typ: t})
		return nil

	case *ast.ConstStmt:
		t, err := exprOf(n.Init)
		if err != nil {
			return err
		}
		c.define(n.Name, symbol{isConst: true, typ: t})
		return nil

	case *ast.AssignStmt:
		sym, ok := c.lookupSymbol(n.Name)
		if !ok {
			return diag.Semantic(n.Ln, "undefined name %q", n.Name)
		}
		if sym.isConst {
			return diag.Semantic(n.Ln, "cannot assign to const %q", n.Name)
		}
		t, err := exprOf(n.Expr)
		if err != nil {
			return err
		}
		if t != sym.typ {
			return diag.Semantic(n.Ln, "cannot assign %s to %q of type %s", t, n.Name, sym.typ)
		}
		return nil

	case *ast.IfStmt:
		if _, err := exprOf(n.Cond); err != nil {
			return err
		}
		if err := c.checkStmt(n.Then, exprOf); err != nil {
			return err
		}
		if n.Else != nil {
			return c.checkStmt(n.Else, exprOf)
		}
		return nil

	case *ast.WhileStmt:
		if _, err := exprOf(n.Cond); err != nil {
			return err
		}
		c.loopDepth++
		err := c.checkStmt(n.Body, exprOf)
		c.loopDepth--
		return err

	case *ast.ForStmt:
		c.pushScope()
		defer c.popScope()
		if n.Init != nil {
			if err := c.checkStmt(n.Init, exprOf); err != nil {
				return err
			}
		}
		if n.Cond != nil {
			if _, err := exprOf(n.Cond); err != nil {
				return err
			}
		}
		c.loopDepth++
		defer func() { c.loopDepth-- }()
		if err := c.checkStmt(n.Body, exprOf); err != nil {
			return err
		}
		if n.Step != nil {
			if err := c.checkStmt(n.Step, exprOf); err != nil {
				return err
			}
		}
		return nil

	case *ast.BlockStmt:
		c.pushScope()
		defer c.popScope()
		for _, st := range n.Stmts {
			if err := c.checkStmt(st, exprOf); err != nil {
				return err
			}
		}
		return nil

	case *ast.ReturnStmt:
		t, err := exprOf(n.Expr)
		if err != nil {
			return err
		}
		c.returns = append(c.returns, returnSite{typ: t, ln: n.Ln})
		return nil

	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			return diag.Semantic(n.Ln, "break outside of a loop")
		}
		return nil

	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			return diag.Semantic(n.Ln, "continue outside of a loop")
		}
		return nil

	case *ast.ExprStmt:
		_, err := exprOf(n.Expr)
		return err

	default:
		return diag.Semantic(s.Line(), "internal: unhandled statement kind")
	}
}
