package codegen

import "github.com/go-wazc/wazc/internal/ast"

// genStmt emits one statement inside an ordinary function body: every
// expression statement ends with a drop, since its value is discarded.
func (g *Generator) genStmt(s ast.Stmt) error {
	g.emitLine(";; line %d", s.Line())
	return g.genStmtBody(s)
}

// genStmtForStart emits one statement inside $_start: a direct
// expression statement stores into $_result instead of dropping, so the
// synthesized entry point can return the program's last value. Nested
// statements (inside an if/while/for/block) fall back to the ordinary
// drop behaviour — only the direct top-level sequence participates.
// $_result is declared once with resultType (the type of the *last*
// top-level expression statement); an earlier expression statement of
// the other type is coerced before the store, since every direct
// top-level expression statement feeds the same local on its way to
// being overwritten by whichever one executes last.
func (g *Generator) genStmtForStart(s ast.Stmt, resultType ast.Type) error {
	g.emitLine(";; line %d", s.Line())
	if es, ok := s.(*ast.ExprStmt); ok {
		t, err := g.genExpr(es.Expr)
		if err != nil {
			return err
		}
		if t != resultType {
			if resultType == ast.F {
				g.emitLine("f32.convert_i32_s")
			} else {
				g.emitLine("i32.trunc_f32_s")
			}
		}
		g.emitLine("local.set $_result")
		return nil
	}
	return g.genStmtBody(s)
}

func (g *Generator) genStmtBody(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.LetStmt:
		if _, err := g.genExpr(n.Init); err != nil {
			return err
		}
		g.emitLine("local.set $%s", n.Name)
		return nil

	case *ast.ConstStmt:
		if _, err := g.genExpr(n.Init); err != nil {
			return err
		}
		g.emitLine("local.set $%s", n.Name)
		return nil

	case *ast.AssignStmt:
		if _, err := g.genExpr(n.Expr); err != nil {
			return err
		}
		g.emitLine("local.set $%s", n.Name)
		return nil

	case *ast.IfStmt:
		return g.genIf(n)

	case *ast.WhileStmt:
		return g.genWhile(n)

	case *ast.ForStmt:
		return g.genFor(n)

	case *ast.BlockStmt:
		for _, st := range n.Stmts {
			if err := g.genStmt(st); err != nil {
				return err
			}
		}
		return nil

	case *ast.ReturnStmt:
		return g.genReturn(n)

	case *ast.BreakStmt:
		id, err := g.currentLoop(n.Ln)
		if err != nil {
			return err
		}
		g.emitLine("br $break_%d", id)
		return nil

	case *ast.ContinueStmt:
		id, err := g.currentLoop(n.Ln)
		if err != nil {
			return err
		}
		g.emitLine("br $continue_%d", id)
		return nil

	case *ast.ExprStmt:
		if _, err := g.genExpr(n.Expr); err != nil {
			return err
		}
		g.emitLine("drop")
		return nil

	default:
		return nil
	}
}

func (g *Generator) genIf(n *ast.IfStmt) error {
	condType, err := g.typeOf(n.Cond)
	if err != nil {
		return err
	}
	if _, err := g.genExpr(n.Cond); err != nil {
		return err
	}
	g.emitTruthTest(condType)

	g.emitLine("if")
	g.indent++
	if err := g.genStmt(n.Then); err != nil {
		return err
	}
	g.indent--
	if n.Else != nil {
		g.emitLine("else")
		g.indent++
		if err := g.genStmt(n.Else); err != nil {
			return err
		}
		g.indent--
	}
	g.emitLine("end")
	return nil
}

func (g *Generator) genWhile(n *ast.WhileStmt) error {
	id := g.nextLabel()
	g.pushLoop(id)
	defer g.popLoop()

	g.emitLine("block $break_%d", id)
	g.indent++
	g.emitLine("loop $continue_%d", id)
	g.indent++

	condType, err := g.typeOf(n.Cond)
	if err != nil {
		return err
	}
	if _, err := g.genExpr(n.Cond); err != nil {
		return err
	}
	g.emitFalseTest(condType)
	g.emitLine("br_if $break_%d", id)

	if err := g.genStmt(n.Body); err != nil {
		return err
	}
	g.emitLine("br $continue_%d", id)

	g.indent--
	g.emitLine("end")
	g.indent--
	g.emitLine("end")
	return nil
}

func (g *Generator) genFor(n *ast.ForStmt) error {
	if n.Init != nil {
		if err := g.genStmt(n.Init); err != nil {
			return err
		}
	}

	id := g.nextLabel()
	g.pushLoop(id)
	defer g.popLoop()

	g.emitLine("block $break_%d", id)
	g.indent++
	g.emitLine("loop $loop_%d", id)
	g.indent++

	if n.Cond != nil {
		condType, err := g.typeOf(n.Cond)
		if err != nil {
			return err
		}
		if _, err := g.genExpr(n.Cond); err != nil {
			return err
		}
		g.emitFalseTest(condType)
		g.emitLine("br_if $break_%d", id)
	}

	g.emitLine("block $continue_%d", id)
	g.indent++
	if err := g.genStmt(n.Body); err != nil {
		return err
	}
	g.indent--
	g.emitLine("end")

	if n.Step != nil {
		if err := g.genStmt(n.Step); err != nil {
			return err
		}
	}
	g.emitLine("br $loop_%d", id)

	g.indent--
	g.emitLine("end")
	g.indent--
	g.emitLine("end")
	return nil
}

func (g *Generator) genReturn(n *ast.ReturnStmt) error {
	if call, ok := n.Expr.(*ast.Call); ok {
		for _, a := range call.Args {
			if _, err := g.genExpr(a); err != nil {
				return err
			}
		}
		g.emitLine("return_call $%s", call.Name)
		return nil
	}
	if _, err := g.genExpr(n.Expr); err != nil {
		return err
	}
	g.emitLine("return")
	return nil
}

// emitTruthTest turns the just-pushed value of t into the i32 boolean
// `if` itself requires.
func (g *Generator) emitTruthTest(t ast.Type) {
	if t == ast.F {
		g.emitLine("f32.const 0.0")
		g.emitLine("f32.ne")
	}
}

// emitFalseTest turns the just-pushed value of t into "is this loop
// done" (true when the condition is false).
func (g *Generator) emitFalseTest(t ast.Type) {
	if t == ast.F {
		g.emitLine("f32.const 0.0")
		g.emitLine("f32.eq")
	} else {
		g.emitLine("i32.eqz")
	}
}
