// Пакет optimizer реализует два преобразования над типизированным
// деревом (§4.O): свёртку констант и отсечение недостижимого кода.
// Преобразование выполняется на месте, над тем же AST, который затем
// читает генератор кода — отдельного промежуточного представления нет.
package optimizer

import "github.com/go-wazc/wazc/internal/ast"

// Optimize folds constants and prunes dead branches across every
// function body and the top-level statement sequence. Running it
// twice on an already-optimized program is a no-op (idempotent).
func Optimize(prog *ast.Program) {
	for _, fn := range prog.Functions {
		fn.Body = optimizeStmts(fn.Body)
	}
	prog.TopLevel = optimizeStmts(prog.TopLevel)
}

// optimizeStmts optimizes a statement sequence and drops everything
// after the first return, per the post-return dead-code rule.
func optimizeStmts(stmts []ast.Stmt) []ast.Stmt {
	var result []ast.Stmt
	for _, s := range stmts {
		opt := optimizeStmt(s)
		result = append(result, opt)
		if _, isReturn := opt.(*ast.ReturnStmt); isReturn {
			break
		}
	}
	return result
}

func optimizeStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.LetStmt:
		n.Init = foldExpr(n.Init)
		return n
	case *ast.ConstStmt:
		n.Init = foldExpr(n.Init)
		return n
	case *ast.AssignStmt:
		n.Expr = foldExpr(n.Expr)
		return n
	case *ast.IfStmt:
		return optimizeIf(n)
	case *ast.WhileStmt:
		return optimizeWhile(n)
	case *ast.ForStmt:
		return optimizeFor(n)
	case *ast.BlockStmt:
		n.Stmts = optimizeStmts(n.Stmts)
		return n
	case *ast.ReturnStmt:
		n.Expr = foldExpr(n.Expr)
		return n
	case *ast.ExprStmt:
		n.Expr = foldExpr(n.Expr)
		return n
	default:
		return s
	}
}

func optimizeIf(n *ast.IfStmt) ast.Stmt {
	cond := foldExpr(n.Cond)
	if truthy, isLiteral := literalTruthiness(cond); isLiteral {
		if truthy {
			return optimizeStmt(n.Then)
		}
		if n.Else != nil {
			return optimizeStmt(n.Else)
		}
		return &ast.BlockStmt{Ln: n.Ln}
	}
	n.Cond = cond
	n.Then = optimizeStmt(n.Then)
	if n.Else != nil {
		n.Else = optimizeStmt(n.Else)
	}
	return n
}

func optimizeWhile(n *ast.WhileStmt) ast.Stmt {
	cond := foldExpr(n.Cond)
	if truthy, isLiteral := literalTruthiness(cond); isLiteral && !truthy {
		return &ast.BlockStmt{Ln: n.Ln}
	}
	n.Cond = cond
	n.Body = optimizeStmt(n.Body)
	return n
}

func optimizeFor(n *ast.ForStmt) ast.Stmt {
	var cond ast.Expr
	if n.Cond != nil {
		cond = foldExpr(n.Cond)
	}
	if cond != nil {
		if truthy, isLiteral := literalTruthiness(cond); isLiteral && !truthy {
			if n.Init != nil {
				return optimizeStmt(n.Init)
			}
			return &ast.BlockStmt{Ln: n.Ln}
		}
	}
	if n.Init != nil {
		n.Init = optimizeStmt(n.Init)
	}
	n.Cond = cond
	n.Body = optimizeStmt(n.Body)
	if n.Step != nil {
		n.Step = optimizeStmt(n.Step)
	}
	return n
}

// literalTruthiness reports whether e is a literal and, if so, whether
// it is non-zero (truthy).
func literalTruthiness(e ast.Expr) (truthy bool, isLiteral bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		return n.Value != 0, true
	case *ast.FloatLit:
		return n.Value != 0, true
	default:
		return false, false
	}
}
