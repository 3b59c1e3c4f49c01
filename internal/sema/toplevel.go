package sema

import (
	"github.com/sirupsen/logrus"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/typerules"
)

// checkTopLevelExpr mirrors typerules.Of's traversal but special-cases
// Call: this is the one place a function's param_types can transition
// from unset to fixed (first-call-wins, §4.S step 3). Every other
// expression kind delegates to the shared promotion rules in
// typerules so the rule exists in exactly one place.
func (c *Checker) checkTopLevelExpr(e ast.Expr) (ast.Type, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.I, nil
	case *ast.FloatLit:
		return ast.F, nil
	case *ast.Ident:
		sym, ok := c.lookupSymbol(n.Name)
		if !ok {
			return ast.Unresolved, diag.Semantic(n.Ln, "undefined name %q", n.Name)
		}
		return sym.typ, nil
	case *ast.Binary:
		left, err := c.checkTopLevelExpr(n.Left)
		if err != nil {
			return ast.Unresolved, err
		}
		right, err := c.checkTopLevelExpr(n.Right)
		if err != nil {
			return ast.Unresolved, err
		}
		if n.Op == ast.Mod && (left == ast.F || right == ast.F) {
			return ast.Unresolved, diag.Semantic(n.Ln, "modulo operator requires integer operands")
		}
		return typerules.BinaryResult(n.Op, left, right), nil
	case *ast.Unary:
		operand, err := c.checkTopLevelExpr(n.Expr)
		if err != nil {
			return ast.Unresolved, err
		}
		return typerules.UnaryResult(n.Op, operand), nil
	case *ast.Logical:
		left, err := c.checkTopLevelExpr(n.Left)
		if err != nil {
			return ast.Unresolved, err
		}
		right, err := c.checkTopLevelExpr(n.Right)
		if err != nil {
			return ast.Unresolved, err
		}
		return typerules.LogicalResult(left, right), nil
	case *ast.Call:
		return c.checkTopLevelCall(n)
	default:
		return ast.Unresolved, diag.Semantic(e.Line(), "internal: unhandled expression kind")
	}
}

func (c *Checker) checkTopLevelCall(n *ast.Call) (ast.Type, error) {
	fn, ok := c.functions[n.Name]
	if !ok {
		return ast.Unresolved, diag.Semantic(n.Ln, "call to undefined function %q", n.Name)
	}
	if len(n.Args) != len(fn.Params) {
		return ast.Unresolved, diag.Semantic(n.Ln, "function %q expects %d argument(s), got %d", n.Name, len(fn.Params), len(n.Args))
	}

	argTypes := make([]ast.Type, len(n.Args))
	for i, a := range n.Args {
		t, err := c.checkTopLevelExpr(a)
		if err != nil {
			return ast.Unresolved, err
		}
		argTypes[i] = t
	}

	fixed, isFixed := c.paramTypesFixed[n.Name]
	if !isFixed {
		logrus.WithField("phase", "semantic").WithField("function", n.Name).Debug("fixing parameter types from first call")
		c.paramTypesFixed[n.Name] = argTypes
		if err := c.reanalyzeFunction(fn, argTypes); err != nil {
			return ast.Unresolved, err
		}
	} else {
		for i, want := range fixed {
			if argTypes[i] != want {
				return ast.Unresolved, diag.Semantic(n.Ln, "argument %d to %q has type %s, expected %s (fixed by its first call)", i+1, n.Name, argTypes[i], want)
			}
		}
	}

	if fn.ReturnType == nil {
		return ast.I, nil
	}
	return *fn.ReturnType, nil
}
