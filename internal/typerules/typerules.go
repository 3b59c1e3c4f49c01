// Пакет typerules содержит правила типизации выражений (§4.S), общие
// для семантического анализатора и генератора кода. Генератор кода
// намеренно не хранит типы в дереве — он пересчитывает их тем же
// правилом, что и семантика (§4.C), и оба используют эти функции,
// чтобы правило существовало ровно в одном месте.
package typerules

import (
	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
)

// Resolver даёт доступ к типам имён (переменных/параметров) и сигнатурам
// функций, не привязываясь к конкретной структуре скоупов вызывающей
// стороны.
type Resolver interface {
	// Lookup возвращает тип имени в текущей области видимости.
	Lookup(name string) (ast.Type, bool)
	// Function возвращает объявление функции по имени.
	Function(name string) (*ast.Function, bool)
}

// Of вычисляет тип уже синтаксически корректного выражения. Вызовы
// функций используют уже установленный ReturnType — эта функция не
// занимается закреплением ("first-call-wins") сигнатур, это отдельная
// обязанность семантического анализатора на верхнем уровне.
func Of(e ast.Expr, r Resolver) (ast.Type, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.I, nil
	case *ast.FloatLit:
		return ast.F, nil
	case *ast.Ident:
		t, ok := r.Lookup(n.Name)
		if !ok {
			return ast.Unresolved, diag.Semantic(n.Ln, "undefined name %q", n.Name)
		}
		return t, nil
	case *ast.Binary:
		return binaryType(n, r)
	case *ast.Unary:
		operand, err := Of(n.Expr, r)
		if err != nil {
			return ast.Unresolved, err
		}
		return UnaryResult(n.Op, operand), nil
	case *ast.Logical:
		left, err := Of(n.Left, r)
		if err != nil {
			return ast.Unresolved, err
		}
		right, err := Of(n.Right, r)
		if err != nil {
			return ast.Unresolved, err
		}
		return LogicalResult(left, right), nil
	case *ast.Call:
		fn, ok := r.Function(n.Name)
		if !ok {
			return ast.Unresolved, diag.Semantic(n.Ln, "call to undefined function %q", n.Name)
		}
		if len(n.Args) != len(fn.Params) {
			return ast.Unresolved, diag.Semantic(n.Ln, "function %q expects %d argument(s), got %d", n.Name, len(fn.Params), len(n.Args))
		}
		for _, a := range n.Args {
			if _, err := Of(a, r); err != nil {
				return ast.Unresolved, err
			}
		}
		if fn.ReturnType == nil {
			return ast.I, nil
		}
		return *fn.ReturnType, nil
	default:
		return ast.Unresolved, diag.Semantic(e.Line(), "internal: unhandled expression kind")
	}
}

func binaryType(n *ast.Binary, r Resolver) (ast.Type, error) {
	left, err := Of(n.Left, r)
	if err != nil {
		return ast.Unresolved, err
	}
	right, err := Of(n.Right, r)
	if err != nil {
		return ast.Unresolved, err
	}
	if n.Op == ast.Mod && (left == ast.F || right == ast.F) {
		return ast.Unresolved, diag.Semantic(n.Ln, "modulo operator requires integer operands")
	}
	return BinaryResult(n.Op, left, right), nil
}

// BinaryResult implements the promotion rule: relational operators
// always produce I; arithmetic produces F if either operand is F, else
// I. Callers are responsible for rejecting float modulo beforehand.
func BinaryResult(op ast.BinOp, left, right ast.Type) ast.Type {
	if op.IsRelational() {
		return ast.I
	}
	if left == ast.F || right == ast.F {
		return ast.F
	}
	return ast.I
}

// UnaryResult: negation preserves the operand type; logical not always
// yields I.
func UnaryResult(op ast.UnaryOp, operand ast.Type) ast.Type {
	if op == ast.Not {
		return ast.I
	}
	return operand
}

// LogicalResult: && and || yield F if either side is F, else I — the
// emitter is the one that preserves the actual operand value on the
// short-circuit path, not a boolean.
func LogicalResult(left, right ast.Type) ast.Type {
	if left == ast.F || right == ast.F {
		return ast.F
	}
	return ast.I
}
