package parser

import (
	"strconv"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/token"
)

// parseFunction parses `function ident '(' params? ')' '{' statement* '}'`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	line := p.cur().Line
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.atPunct(")") {
		if len(params) > 0 {
			if err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		pname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, pname.Literal)
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for !p.atPunct("}") {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.Function{Name: name.Literal, Params: params, Body: body, Ln: line}, nil
}

// parseStatement dispatches on the current token to one of the
// statement productions in §4.P.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.atKeyword("let"):
		stmt, err := p.parseLetNode()
		if err != nil {
			return nil, err
		}
		return stmt, p.expectPunct(";")
	case p.atKeyword("const"):
		stmt, err := p.parseConstNode()
		if err != nil {
			return nil, err
		}
		return stmt, p.expectPunct(";")
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("break"):
		line := p.cur().Line
		p.s.next()
		return &ast.BreakStmt{Ln: line}, p.expectPunct(";")
	case p.atKeyword("continue"):
		line := p.cur().Line
		p.s.next()
		return &ast.ContinueStmt{Ln: line}, p.expectPunct(";")
	case p.atPunct("{"):
		return p.parseBlock()
	case p.cur().Type == token.IDENT && p.s.peekNext().Type == token.OPERATOR && p.s.peekNext().Literal == "=":
		stmt, err := p.parseAssignNode()
		if err != nil {
			return nil, err
		}
		return stmt, p.expectPunct(";")
	default:
		line := p.cur().Line
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: expr, Ln: line}, nil
	}
}

func (p *Parser) parseLetNode() (ast.Stmt, error) {
	line := p.cur().Line
	p.s.next() // 'let'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.LetStmt{Name: name.Literal, Init: init, Ln: line}, nil
}

func (p *Parser) parseConstNode() (ast.Stmt, error) {
	line := p.cur().Line
	p.s.next() // 'const'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ConstStmt{Name: name.Literal, Init: init, Ln: line}, nil
}

func (p *Parser) parseAssignNode() (ast.Stmt, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Name: name.Literal, Expr: expr, Ln: name.Line}, nil
}

func (p *Parser) expectOperator(lit string) error {
	if !p.atOperator(lit) {
		t := p.cur()
		return diag.Parser(t.Line, "expected %q, got %s", lit, describe(t))
	}
	p.s.next()
	return nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	line := p.cur().Line
	p.s.next() // 'if'
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.atKeyword("else") {
		p.s.next()
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Ln: line}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	line := p.cur().Line
	p.s.next() // 'while'
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Ln: line}, nil
}

// parseFor parses the three-clause `for (init?; cond?; step?) body`
// form. Each clause is independently optional.
func (p *Parser) parseFor() (ast.Stmt, error) {
	line := p.cur().Line
	p.s.next() // 'for'
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	if !p.atPunct(";") {
		switch {
		case p.atKeyword("let"):
			init, err = p.parseLetNode()
		case p.atKeyword("const"):
			init, err = p.parseConstNode()
		default:
			init, err = p.parseAssignNode()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.atPunct(";") {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	var step ast.Stmt
	if !p.atPunct(")") {
		if p.cur().Type == token.IDENT && p.s.peekNext().Type == token.OPERATOR && p.s.peekNext().Literal == "=" {
			step, err = p.parseAssignNode()
		} else {
			var expr ast.Expr
			expr, err = p.parseExpr()
			if err == nil {
				step = &ast.ExprStmt{Expr: expr, Ln: line}
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: body, Ln: line}, nil
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	line := p.cur().Line
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.atPunct("}") {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: stmts, Ln: line}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	line := p.cur().Line
	p.s.next() // 'return'
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: expr, Ln: line}, nil
}

// --- expressions: precedence climbing, low to high ---------------------

func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseLogicalOr() }

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.atOperator("||") {
		line := p.cur().Line
		p.s.next()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Left: left, Op: ast.Or, Right: right, Ln: line}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.atOperator("&&") {
		line := p.cur().Line
		p.s.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Left: left, Op: ast.And, Right: right, Ln: line}
	}
	return left, nil
}

var equalityOps = map[string]ast.BinOp{"==": ast.Eq, "!=": ast.Ne}
var relationalOps = map[string]ast.BinOp{"<": ast.Lt, ">": ast.Gt, "<=": ast.Le, ">=": ast.Ge}
var additiveOps = map[string]ast.BinOp{"+": ast.Add, "-": ast.Sub}
var multiplicativeOps = map[string]ast.BinOp{"*": ast.Mul, "/": ast.Div, "%": ast.Mod}

func (p *Parser) parseBinaryLevel(next func() (ast.Expr, error), ops map[string]ast.BinOp) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		op, ok := ops[t.Literal]
		if t.Type != token.OPERATOR || !ok {
			return left, nil
		}
		p.s.next()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Ln: t.Line}
	}
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseRelational, equalityOps)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, relationalOps)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, additiveOps)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseUnary, multiplicativeOps)
}

// parseUnary is right-associative: `- - x` parses as `-(-(x))`.
func (p *Parser) parseUnary() (ast.Expr, error) {
	t := p.cur()
	if t.Type == token.OPERATOR && (t.Literal == "-" || t.Literal == "!") {
		p.s.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := ast.Neg
		if t.Literal == "!" {
			op = ast.Not
		}
		return &ast.Unary{Op: op, Expr: operand, Ln: t.Line}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch {
	case t.Type == token.INT:
		p.s.next()
		n, err := strconv.ParseInt(t.Literal, 10, 32)
		if err != nil {
			return nil, diag.Parser(t.Line, "invalid integer literal %q", t.Literal)
		}
		return &ast.IntLit{Value: int32(n), Ln: t.Line}, nil

	case t.Type == token.FLOAT:
		p.s.next()
		f, err := strconv.ParseFloat(t.Literal, 32)
		if err != nil {
			return nil, diag.Parser(t.Line, "invalid float literal %q", t.Literal)
		}
		return &ast.FloatLit{Value: float32(f), Ln: t.Line}, nil

	case t.Type == token.IDENT:
		p.s.next()
		if p.atPunct("(") {
			return p.parseCallArgs(t)
		}
		return &ast.Ident{Name: t.Literal, Ln: t.Line}, nil

	case t.Type == token.PUNCT && t.Literal == "(":
		p.s.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, diag.Parser(t.Line, "expected expression, got %s", describe(t))
	}
}

func (p *Parser) parseCallArgs(name token.Token) (ast.Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.atPunct(")") {
		if len(args) > 0 {
			if err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.Call{Name: name.Literal, Args: args, Ln: name.Line}, nil
}
