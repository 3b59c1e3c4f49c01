// Пакет codegen превращает типизированное (после семантики и
// оптимизатора) дерево в текстовую форму целевого модуля (§4.C).
// Генератор не хранит типы выражений в дереве — он пересчитывает их тем
// же правилом, что и семантический анализатор (internal/typerules), и
// строит вывод через strings.Builder с отслеживанием отступа, как
// обычный текстовый бэкенд.
package codegen

import (
	"fmt"
	"strings"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/typerules"
)

// Generator holds the per-compilation emission state. A fresh Generator
// must be used per call to Generate — it is not safe to reuse across
// programs.
type Generator struct {
	b            strings.Builder
	indent       int
	locals       map[string]ast.Type
	funcs        map[string]*ast.Function
	labelCounter int
	loopStack    []int
}

// New creates a Generator ready for a single Generate call.
func New() *Generator {
	return &Generator{}
}

// Generate emits the full module text for prog: every declared
// function followed by the synthesized $_start entry point.
func Generate(prog *ast.Program) (string, error) {
	g := New()
	g.funcs = map[string]*ast.Function{}
	for _, fn := range prog.Functions {
		g.funcs[fn.Name] = fn
	}

	g.emitLine("(module")
	g.indent++
	for _, fn := range prog.Functions {
		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}
	if err := g.genStart(prog.TopLevel); err != nil {
		return "", err
	}
	g.indent--
	g.emitLine(")")
	return g.b.String(), nil
}

func (g *Generator) emitLine(format string, args ...interface{}) {
	g.b.WriteString(strings.Repeat("  ", g.indent))
	fmt.Fprintf(&g.b, format, args...)
	g.b.WriteString("\n")
}

func (g *Generator) resolver() typerules.Resolver { return &genResolver{g} }

type genResolver struct{ g *Generator }

func (r *genResolver) Lookup(name string) (ast.Type, bool) {
	t, ok := r.g.locals[name]
	return t, ok
}

func (r *genResolver) Function(name string) (*ast.Function, bool) {
	fn, ok := r.g.funcs[name]
	return fn, ok
}

func (g *Generator) typeOf(e ast.Expr) (ast.Type, error) {
	t, err := typerules.Of(e, g.resolver())
	if err != nil {
		return ast.Unresolved, diag.Codegen(e.Line(), "internal: %v", err)
	}
	return t, nil
}

// genFunction emits one `(func $name ...)` declaration.
func (g *Generator) genFunction(fn *ast.Function) error {
	g.locals = map[string]ast.Type{}
	for i, p := range fn.Params {
		g.locals[p] = fn.ParamTypes[i]
	}
	order, err := g.collectLocals(fn.Body)
	if err != nil {
		return err
	}

	var params []string
	for i, p := range fn.Params {
		params = append(params, fmt.Sprintf("(param $%s %s)", p, fn.ParamTypes[i].Wasm()))
	}
	resultType := fn.ReturnType.Wasm()

	g.emitLine("(func $%s (export %q) %s (result %s) ;; line %d",
		fn.Name, fn.Name, strings.Join(params, " "), resultType, fn.Ln)
	g.indent++
	for _, name := range order {
		g.emitLine("(local $%s %s)", name, g.locals[name].Wasm())
	}
	g.emitLine("(local $_result %s)", resultType)

	for _, s := range fn.Body {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	if fn.ReturnType.Wasm() == "f32" {
		g.emitLine("f32.const 0.0")
	} else {
		g.emitLine("i32.const 0")
	}
	g.indent--
	g.emitLine(")")
	return nil
}

// genStart emits the synthesized $_start entry point wrapping the
// program's top-level statements.
func (g *Generator) genStart(stmts []ast.Stmt) error {
	g.locals = map[string]ast.Type{}
	order, err := g.collectLocals(stmts)
	if err != nil {
		return err
	}

	startResultType := ast.I
	if n := len(stmts); n > 0 {
		if es, ok := stmts[n-1].(*ast.ExprStmt); ok {
			t, err := g.typeOf(es.Expr)
			if err != nil {
				return err
			}
			startResultType = t
		}
	}
	resultType := startResultType.Wasm()

	g.emitLine("(func $_start (export \"_start\") (result %s)", resultType)
	g.indent++
	for _, name := range order {
		g.emitLine("(local $%s %s)", name, g.locals[name].Wasm())
	}
	g.emitLine("(local $_result %s)", resultType)

	for _, s := range stmts {
		if err := g.genStmtForStart(s, startResultType); err != nil {
			return err
		}
	}

	g.emitLine("local.get $_result")
	g.indent--
	g.emitLine(")")
	return nil
}

// collectLocals walks stmts in execution order, recording every
// let/const binding's inferred type into g.locals (params must already
// be populated) and returning the binding names in declaration order.
// for-loop init bindings participate, per §4.C.
func (g *Generator) collectLocals(stmts []ast.Stmt) ([]string, error) {
	var order []string
	var walk func([]ast.Stmt) error
	walk = func(stmts []ast.Stmt) error {
		for _, s := range stmts {
			switch n := s.(type) {
			case *ast.LetStmt:
				t, err := g.typeOf(n.Init)
				if err != nil {
					return err
				}
				if _, exists := g.locals[n.Name]; !exists {
					order = append(order, n.Name)
				}
				g.locals[n.Name] = t
			case *ast.ConstStmt:
				t, err := g.typeOf(n.Init)
				if err != nil {
					return err
				}
				if _, exists := g.locals[n.Name]; !exists {
					order = append(order, n.Name)
				}
				g.locals[n.Name] = t
			case *ast.BlockStmt:
				if err := walk(n.Stmts); err != nil {
					return err
				}
			case *ast.IfStmt:
				if err := walk([]ast.Stmt{n.Then}); err != nil {
					return err
				}
				if n.Else != nil {
					if err := walk([]ast.Stmt{n.Else}); err != nil {
						return err
					}
				}
			case *ast.WhileStmt:
				if err := walk([]ast.Stmt{n.Body}); err != nil {
					return err
				}
			case *ast.ForStmt:
				if n.Init != nil {
					if err := walk([]ast.Stmt{n.Init}); err != nil {
						return err
					}
				}
				if err := walk([]ast.Stmt{n.Body}); err != nil {
					return err
				}
				if n.Step != nil {
					if err := walk([]ast.Stmt{n.Step}); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	if err := walk(stmts); err != nil {
		return nil, err
	}
	return order, nil
}

func (g *Generator) nextLabel() int {
	id := g.labelCounter
	g.labelCounter++
	return id
}

func (g *Generator) pushLoop(id int) { g.loopStack = append(g.loopStack, id) }
func (g *Generator) popLoop()        { g.loopStack = g.loopStack[:len(g.loopStack)-1] }

func (g *Generator) currentLoop(line int) (int, error) {
	if len(g.loopStack) == 0 {
		return 0, diag.Codegen(line, "internal: break/continue outside any loop reached codegen")
	}
	return g.loopStack[len(g.loopStack)-1], nil
}
