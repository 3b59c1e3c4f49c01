// Пакет sema реализует семантический анализ: разрешение имён, проверки
// const/break/continue и двунаправленный вывод типов параметров и
// возвращаемых значений функций (§4.S спецификации).
package sema

import (
	"github.com/sirupsen/logrus"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/typerules"
)

// symbol — запись в таблице имён одной области видимости.
type symbol struct {
	isConst bool
	typ     ast.Type
}

// exprTyper вычисляет тип выражения в данном контексте. Для анализа
// тела функции это typerules.Of (без закрепления сигнатур); для
// верхнего уровня — Checker.checkTopLevelExpr (с first-call-wins).
type exprTyper func(ast.Expr) (ast.Type, error)

// Checker хранит состояние одного прохода семантического анализа.
type Checker struct {
	functions       map[string]*ast.Function
	paramTypesFixed map[string][]ast.Type
	scopes          []map[string]symbol
	loopDepth       int
	returns         []returnSite
}

type returnSite struct {
	typ ast.Type
	ln  int
}

// New создаёт пустой Checker, готовый к одному вызову Check.
func New() *Checker {
	return &Checker{
		functions:       map[string]*ast.Function{},
		paramTypesFixed: map[string][]ast.Type{},
	}
}

// Check выполняет полный пятишаговый алгоритм вывода типов из §4.S и
// возвращает ту же программу с заполненными ParamTypes/ReturnType на
// каждой функции, либо первую встреченную семантическую ошибку.
func (c *Checker) Check(prog *ast.Program) (*ast.Program, error) {
	for _, fn := range prog.Functions {
		c.functions[fn.Name] = fn
	}

	// Шаг 2: проход по умолчанию — все параметры считаются I.
	for _, fn := range prog.Functions {
		logrus.WithField("phase", "semantic").WithField("function", fn.Name).Debug("default-typed pass")
		if err := c.reanalyzeFunction(fn, allI(len(fn.Params))); err != nil {
			return nil, err
		}
	}

	// Шаг 3 (и эквивалентный worklist-вариант шага 4): проход верхнего
	// уровня, закрепляющий сигнатуры по первому вызову.
	c.scopes = []map[string]symbol{{}}
	for _, stmt := range prog.TopLevel {
		if err := c.checkStmt(stmt, c.checkTopLevelExpr); err != nil {
			return nil, err
		}
	}
	c.scopes = nil

	// Шаг 5: то, что ни разу не вызывалось с верхнего уровня, остаётся
	// с параметрами по умолчанию I.
	for _, fn := range prog.Functions {
		if fixed, ok := c.paramTypesFixed[fn.Name]; ok {
			fn.ParamTypes = fixed
		} else {
			fn.ParamTypes = allI(len(fn.Params))
		}
		if fn.ReturnType == nil {
			rt := ast.I
			fn.ReturnType = &rt
		}
	}
	return prog, nil
}

func allI(n int) []ast.Type {
	ts := make([]ast.Type, n)
	for i := range ts {
		ts[i] = ast.I
	}
	return ts
}

// reanalyzeFunction (re)checks a function body under the given
// parameter types, in full isolation from whatever scope stack/loop
// nesting the caller is currently in, and updates fn.ReturnType.
func (c *Checker) reanalyzeFunction(fn *ast.Function, paramTypes []ast.Type) error {
	savedScopes, savedDepth, savedReturns := c.scopes, c.loopDepth, c.returns
	defer func() {
		c.scopes, c.loopDepth, c.returns = savedScopes, savedDepth, savedReturns
	}()

	top := map[string]symbol{}
	for i, p := range fn.Params {
		top[p] = symbol{isConst: false, typ: paramTypes[i]}
	}
	c.scopes = []map[string]symbol{top}
	c.loopDepth = 0
	c.returns = nil

	resolver := &funcResolver{c: c}
	exprOf := func(e ast.Expr) (ast.Type, error) { return typerules.Of(e, resolver) }

	for _, stmt := range fn.Body {
		if err := c.checkStmt(stmt, exprOf); err != nil {
			return err
		}
	}

	rt := ast.I
	if len(c.returns) > 0 {
		rt = c.returns[0].typ
		for _, r := range c.returns[1:] {
			if r.typ != rt {
				return diag.Semantic(r.ln, "inconsistent return types in function %q", fn.Name)
			}
		}
	}
	fn.ReturnType = &rt
	return nil
}

// funcResolver implements typerules.Resolver against the checker's
// current scope stack, for use inside function-body analysis (no
// signature fixing).
type funcResolver struct{ c *Checker }

func (r *funcResolver) Lookup(name string) (ast.Type, bool) {
	sym, ok := r.c.lookupSymbol(name)
	return sym.typ, ok
}

func (r *funcResolver) Function(name string) (*ast.Function, bool) {
	fn, ok := r.c.functions[name]
	return fn, ok
}

func (c *Checker) pushScope()               { c.scopes = append(c.scopes, map[string]symbol{}) }
func (c *Checker) popScope()                { c.scopes = c.scopes[:len(c.scopes)-1] }
func (c *Checker) define(name string, s symbol) { c.scopes[len(c.scopes)-1][name] = s }

func (c *Checker) lookupSymbol(name string) (symbol, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if s, ok := c.scopes[i][name]; ok {
			return s, true
		}
	}
	return symbol{}, false
}
