package optimizer

import "github.com/go-wazc/wazc/internal/ast"

// foldExpr recursively folds literal-only subexpressions. Mixed-type
// literal operands are deliberately left unfolded — the emitter widens
// them at codegen time (§4.O).
func foldExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.Binary:
		n.Left = foldExpr(n.Left)
		n.Right = foldExpr(n.Right)
		return foldBinary(n)
	case *ast.Unary:
		n.Expr = foldExpr(n.Expr)
		return foldUnary(n)
	case *ast.Call:
		for i, a := range n.Args {
			n.Args[i] = foldExpr(a)
		}
		return n
	case *ast.Logical:
		n.Left = foldExpr(n.Left)
		n.Right = foldExpr(n.Right)
		return n
	default:
		return e
	}
}

func foldBinary(n *ast.Binary) ast.Expr {
	li, lIsI := n.Left.(*ast.IntLit)
	ri, rIsI := n.Right.(*ast.IntLit)
	if lIsI && rIsI {
		if (n.Op == ast.Div || n.Op == ast.Mod) && ri.Value == 0 {
			return n
		}
		return foldIntBinary(n.Op, li.Value, ri.Value, n.Ln)
	}

	lf, lIsF := n.Left.(*ast.FloatLit)
	rf, rIsF := n.Right.(*ast.FloatLit)
	if lIsF && rIsF {
		if n.Op == ast.Mod {
			return n // rejected earlier by semantics; left unfolded defensively.
		}
		return foldFloatBinary(n.Op, lf.Value, rf.Value, n.Ln)
	}

	return n
}

func foldIntBinary(op ast.BinOp, a, b int32, ln int) ast.Expr {
	boolInt := func(v bool) ast.Expr {
		if v {
			return &ast.IntLit{Value: 1, Ln: ln}
		}
		return &ast.IntLit{Value: 0, Ln: ln}
	}
	switch op {
	case ast.Add:
		return &ast.IntLit{Value: a + b, Ln: ln}
	case ast.Sub:
		return &ast.IntLit{Value: a - b, Ln: ln}
	case ast.Mul:
		return &ast.IntLit{Value: a * b, Ln: ln}
	case ast.Div:
		return &ast.IntLit{Value: a / b, Ln: ln}
	case ast.Mod:
		return &ast.IntLit{Value: a % b, Ln: ln}
	case ast.Eq:
		return boolInt(a == b)
	case ast.Ne:
		return boolInt(a != b)
	case ast.Lt:
		return boolInt(a < b)
	case ast.Gt:
		return boolInt(a > b)
	case ast.Le:
		return boolInt(a <= b)
	case ast.Ge:
		return boolInt(a >= b)
	default:
		return &ast.IntLit{Value: 0, Ln: ln}
	}
}

func foldFloatBinary(op ast.BinOp, a, b float32, ln int) ast.Expr {
	boolInt := func(v bool) ast.Expr {
		if v {
			return &ast.IntLit{Value: 1, Ln: ln}
		}
		return &ast.IntLit{Value: 0, Ln: ln}
	}
	switch op {
	case ast.Add:
		return &ast.FloatLit{Value: a + b, Ln: ln}
	case ast.Sub:
		return &ast.FloatLit{Value: a - b, Ln: ln}
	case ast.Mul:
		return &ast.FloatLit{Value: a * b, Ln: ln}
	case ast.Div:
		return &ast.FloatLit{Value: a / b, Ln: ln}
	case ast.Eq:
		return boolInt(a == b)
	case ast.Ne:
		return boolInt(a != b)
	case ast.Lt:
		return boolInt(a < b)
	case ast.Gt:
		return boolInt(a > b)
	case ast.Le:
		return boolInt(a <= b)
	case ast.Ge:
		return boolInt(a >= b)
	default:
		return &ast.FloatLit{Value: 0, Ln: ln}
	}
}

func foldUnary(n *ast.Unary) ast.Expr {
	switch operand := n.Expr.(type) {
	case *ast.IntLit:
		if n.Op == ast.Neg {
			return &ast.IntLit{Value: -operand.Value, Ln: n.Ln}
		}
		if operand.Value == 0 {
			return &ast.IntLit{Value: 1, Ln: n.Ln}
		}
		return &ast.IntLit{Value: 0, Ln: n.Ln}
	case *ast.FloatLit:
		if n.Op == ast.Neg {
			return &ast.FloatLit{Value: -operand.Value, Ln: n.Ln}
		}
		if operand.Value == 0 {
			return &ast.IntLit{Value: 1, Ln: n.Ln}
		}
		return &ast.IntLit{Value: 0, Ln: n.Ln}
	default:
		return n
	}
}
