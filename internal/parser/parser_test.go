package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/lexer"
	"github.com/go-wazc/wazc/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	require.NoError(t, err)
	prog, err := parser.New(toks).ParseProgram()
	require.NoError(t, err)
	return prog
}

func TestParseFunctionWithParamsAndReturn(t *testing.T) {
	prog := parse(t, "function add(a, b) { return a + b; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
	_, ok := fn.Body[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseTopLevelCallExpr(t *testing.T) {
	prog := parse(t, "function f(x) { return x; } f(1);")
	require.Len(t, prog.TopLevel, 1)
	es, ok := prog.TopLevel[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = es.Expr.(*ast.Call)
	assert.True(t, ok)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parse(t, "function main() { return 2 + 3 * 4; }")
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	bin, ok := ret.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Add, bin.Op)
	_, rightIsMul := bin.Right.(*ast.Binary)
	assert.True(t, rightIsMul, "expected 3*4 to bind tighter than 2+")
}

func TestParseUnaryIsRightAssociative(t *testing.T) {
	prog := parse(t, "function main() { return - - 1; }")
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	outer, ok := ret.Expr.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.Neg, outer.Op)
	inner, ok := outer.Expr.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.Neg, inner.Op)
}

func TestParseForLoopThreeClauses(t *testing.T) {
	prog := parse(t, "function main() { for (let i = 0; i < 3; i = i + 1) { continue; } return 0; }")
	forStmt, ok := prog.Functions[0].Body[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Cond)
	assert.NotNil(t, forStmt.Step)
}

func TestParseLogicalOperators(t *testing.T) {
	prog := parse(t, "function main() { return 1 && 0 || 1; }")
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	outer, ok := ret.Expr.(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.Or, outer.Op)
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	toks, err := lexer.New().Lex("function main() { let x = 1 return x; }")
	require.NoError(t, err)
	_, err = parser.New(toks).ParseProgram()
	assert.Error(t, err)
}

func TestParseDanglingDotIsParserError(t *testing.T) {
	toks, err := lexer.New().Lex("function main() { return 3.foo; }")
	require.NoError(t, err)
	_, err = parser.New(toks).ParseProgram()
	assert.Error(t, err)
}
