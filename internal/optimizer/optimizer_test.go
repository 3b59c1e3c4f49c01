package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/lexer"
	"github.com/go-wazc/wazc/internal/optimizer"
	"github.com/go-wazc/wazc/internal/parser"
	"github.com/go-wazc/wazc/internal/sema"
)

func compileToAST(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	require.NoError(t, err)
	prog, err := parser.New(toks).ParseProgram()
	require.NoError(t, err)
	prog, err = sema.New().Check(prog)
	require.NoError(t, err)
	return prog
}

func TestConstantFoldingArithmetic(t *testing.T) {
	prog := compileToAST(t, "function main() { return 2 + 3 * 4; } main();")
	optimizer.Optimize(prog)
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	lit, ok := ret.Expr.(*ast.IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 14, lit.Value)
}

func TestConstantFoldingIsIdempotent(t *testing.T) {
	prog := compileToAST(t, "function main() { return 2 + 3 * 4; } main();")
	optimizer.Optimize(prog)
	once := prog.Functions[0].Body[0].(*ast.ReturnStmt).Expr.(*ast.IntLit).Value
	optimizer.Optimize(prog)
	twice := prog.Functions[0].Body[0].(*ast.ReturnStmt).Expr.(*ast.IntLit).Value
	assert.Equal(t, once, twice)
}

func TestDeadBranchPruningIfFalse(t *testing.T) {
	prog := compileToAST(t, "function main() { if (0) return 1; else return 2; } main();")
	optimizer.Optimize(prog)
	ret, ok := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	require.True(t, ok, "expected the if/else to collapse to a bare return")
	assert.EqualValues(t, 2, ret.Expr.(*ast.IntLit).Value)
}

func TestDeadLoopPruningWhileFalse(t *testing.T) {
	prog := compileToAST(t, "function main() { while (0) { } return 1; } main();")
	optimizer.Optimize(prog)
	_, ok := prog.Functions[0].Body[0].(*ast.BlockStmt)
	assert.True(t, ok, "expected while(0) to optimize away to an empty block")
}

func TestDivByLiteralZeroIsNotFolded(t *testing.T) {
	prog := compileToAST(t, "function main() { return 4 / 0; } main();")
	optimizer.Optimize(prog)
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	_, stillBinary := ret.Expr.(*ast.Binary)
	assert.True(t, stillBinary, "division by literal zero must not be folded, to avoid a divide-by-zero panic while folding")
}

func TestPostReturnDeadCodeIsDropped(t *testing.T) {
	prog := compileToAST(t, "function main() { return 1; let x = 2; } main();")
	optimizer.Optimize(prog)
	assert.Len(t, prog.Functions[0].Body, 1)
}
