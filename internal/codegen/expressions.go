package codegen

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/typerules"
)

// genExpr emits the instructions evaluating e and returns its type, so
// callers can decide whether a widening conversion is needed around it.
func (g *Generator) genExpr(e ast.Expr) (ast.Type, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		g.emitLine("i32.const %d", n.Value)
		return ast.I, nil

	case *ast.FloatLit:
		g.emitLine("f32.const %s", formatF32(n.Value))
		return ast.F, nil

	case *ast.Ident:
		t, ok := g.locals[n.Name]
		if !ok {
			return ast.Unresolved, diag.Codegen(n.Ln, "internal: undefined local %q reached codegen", n.Name)
		}
		g.emitLine("local.get $%s", n.Name)
		return t, nil

	case *ast.Call:
		return g.genCall(n)

	case *ast.Unary:
		return g.genUnary(n)

	case *ast.Binary:
		return g.genBinary(n)

	case *ast.Logical:
		return g.genLogical(n)

	default:
		return ast.Unresolved, diag.Codegen(e.Line(), "internal: unhandled expression kind")
	}
}

func (g *Generator) genCall(n *ast.Call) (ast.Type, error) {
	for _, a := range n.Args {
		if _, err := g.genExpr(a); err != nil {
			return ast.Unresolved, err
		}
	}
	g.emitLine("call $%s", n.Name)
	fn, ok := g.funcs[n.Name]
	if !ok {
		return ast.Unresolved, diag.Codegen(n.Ln, "internal: call to undefined function %q reached codegen", n.Name)
	}
	if fn.ReturnType == nil {
		return ast.I, nil
	}
	return *fn.ReturnType, nil
}

func (g *Generator) genUnary(n *ast.Unary) (ast.Type, error) {
	operand, err := g.typeOf(n.Expr)
	if err != nil {
		return ast.Unresolved, err
	}

	if n.Op == ast.Neg {
		if operand == ast.F {
			if _, err := g.genExpr(n.Expr); err != nil {
				return ast.Unresolved, err
			}
			g.emitLine("f32.neg")
			return ast.F, nil
		}
		g.emitLine("i32.const 0")
		if _, err := g.genExpr(n.Expr); err != nil {
			return ast.Unresolved, err
		}
		g.emitLine("i32.sub")
		return ast.I, nil
	}

	// ast.Not
	if _, err := g.genExpr(n.Expr); err != nil {
		return ast.Unresolved, err
	}
	if operand == ast.F {
		g.emitLine("f32.const 0.0")
		g.emitLine("f32.eq")
	} else {
		g.emitLine("i32.eqz")
	}
	return ast.I, nil
}

func (g *Generator) genBinary(n *ast.Binary) (ast.Type, error) {
	leftType, err := g.typeOf(n.Left)
	if err != nil {
		return ast.Unresolved, err
	}
	rightType, err := g.typeOf(n.Right)
	if err != nil {
		return ast.Unresolved, err
	}

	operandType := ast.I
	if leftType == ast.F || rightType == ast.F {
		operandType = ast.F
	}

	lt, err := g.genExpr(n.Left)
	if err != nil {
		return ast.Unresolved, err
	}
	if operandType == ast.F && lt == ast.I {
		g.emitLine("f32.convert_i32_s")
	}

	rt, err := g.genExpr(n.Right)
	if err != nil {
		return ast.Unresolved, err
	}
	if operandType == ast.F && rt == ast.I {
		g.emitLine("f32.convert_i32_s")
	}

	mnemonic, err := binaryMnemonic(n.Op, operandType)
	if err != nil {
		return ast.Unresolved, diag.Codegen(n.Ln, "%v", err)
	}
	g.emitLine(mnemonic)
	return typerules.BinaryResult(n.Op, leftType, rightType), nil
}

func (g *Generator) genLogical(n *ast.Logical) (ast.Type, error) {
	leftType, err := g.typeOf(n.Left)
	if err != nil {
		return ast.Unresolved, err
	}
	rightType, err := g.typeOf(n.Right)
	if err != nil {
		return ast.Unresolved, err
	}
	resultType := ast.I
	if leftType == ast.F || rightType == ast.F {
		resultType = ast.F
	}

	lt, err := g.genExpr(n.Left)
	if err != nil {
		return ast.Unresolved, err
	}
	if resultType == ast.F && lt == ast.I {
		g.emitLine("f32.convert_i32_s")
	}
	g.emitLine("local.tee $_result")

	if n.Op == ast.And {
		g.emitFalseTest(resultType)
	} else {
		if resultType == ast.F {
			g.emitLine("f32.const 0.0")
			g.emitLine("f32.ne")
		} else {
			g.emitLine("i32.const 0")
			g.emitLine("i32.ne")
		}
	}

	g.emitLine("if (result %s)", resultType.Wasm())
	g.indent++
	g.emitLine("local.get $_result")
	g.indent--
	g.emitLine("else")
	g.indent++
	rt, err := g.genExpr(n.Right)
	if err != nil {
		return ast.Unresolved, err
	}
	if resultType == ast.F && rt == ast.I {
		g.emitLine("f32.convert_i32_s")
	}
	g.indent--
	g.emitLine("end")
	return resultType, nil
}

func binaryMnemonic(op ast.BinOp, t ast.Type) (string, error) {
	prefix := "i32"
	if t == ast.F {
		prefix = "f32"
	}
	switch op {
	case ast.Add:
		return prefix + ".add", nil
	case ast.Sub:
		return prefix + ".sub", nil
	case ast.Mul:
		return prefix + ".mul", nil
	case ast.Div:
		if t == ast.F {
			return "f32.div", nil
		}
		return "i32.div_s", nil
	case ast.Mod:
		return "i32.rem_s", nil
	case ast.Eq:
		return prefix + ".eq", nil
	case ast.Ne:
		return prefix + ".ne", nil
	case ast.Lt:
		if t == ast.F {
			return "f32.lt", nil
		}
		return "i32.lt_s", nil
	case ast.Gt:
		if t == ast.F {
			return "f32.gt", nil
		}
		return "i32.gt_s", nil
	case ast.Le:
		if t == ast.F {
			return "f32.le", nil
		}
		return "i32.le_s", nil
	case ast.Ge:
		if t == ast.F {
			return "f32.ge", nil
		}
		return "i32.ge_s", nil
	default:
		return "", errors.New("internal: unhandled binary operator")
	}
}

// formatF32 renders a float32 in its shortest form, appending ".0" when
// that form has neither a decimal point nor an exponent (whole numbers),
// so "3" becomes "3.0" while "1e+10" is kept as is.
func formatF32(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
