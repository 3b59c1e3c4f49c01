package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/lexer"
	"github.com/go-wazc/wazc/internal/parser"
	"github.com/go-wazc/wazc/internal/sema"
)

func checkSrc(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	require.NoError(t, err)
	prog, err := parser.New(toks).ParseProgram()
	require.NoError(t, err)
	return sema.New().Check(prog)
}

func TestFirstCallFixesParamAndReturnType(t *testing.T) {
	prog, err := checkSrc(t, "function f(x) { return x * 2.0; } f(3.0);")
	require.NoError(t, err)
	fn := prog.Functions[0]
	assert.Equal(t, []ast.Type{ast.F}, fn.ParamTypes)
	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, ast.F, *fn.ReturnType)
}

func TestSecondCallMustMatchFixedTypes(t *testing.T) {
	_, err := checkSrc(t, "function f(x) { return x; } f(1); f(1.0);")
	require.Error(t, err)
}

func TestFunctionCalledOnlyFromFunctionsStaysDefaultInt(t *testing.T) {
	prog, err := checkSrc(t, "function helper(n) { return n; } function caller(n) { return helper(n); } caller(1);")
	require.NoError(t, err)
	var helper *ast.Function
	for _, fn := range prog.Functions {
		if fn.Name == "helper" {
			helper = fn
		}
	}
	require.NotNil(t, helper)
	assert.Equal(t, []ast.Type{ast.I}, helper.ParamTypes)
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	_, err := checkSrc(t, "function main() { break; return 0; }")
	assert.Error(t, err)
}

func TestConstReassignmentIsError(t *testing.T) {
	_, err := checkSrc(t, "const x = 1; x = 2;")
	assert.Error(t, err)
}

func TestAssignTypeMismatchIsError(t *testing.T) {
	_, err := checkSrc(t, "let x = 1; x = 1.0;")
	assert.Error(t, err)
}

func TestFloatModuloIsError(t *testing.T) {
	_, err := checkSrc(t, "let x = 1.0 % 2.0;")
	assert.Error(t, err)
}

func TestInconsistentReturnTypesIsError(t *testing.T) {
	_, err := checkSrc(t, "function f() { if (1) { return 1; } else { return 1.0; } } f();")
	assert.Error(t, err)
}

func TestForLoopHasOwnScope(t *testing.T) {
	prog, err := checkSrc(t, "let i = 1.0; for (let i = 0; i < 3; i = i + 1) {} i;")
	require.NoError(t, err)
	assert.NotNil(t, prog)
}
