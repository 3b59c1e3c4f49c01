package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wazc/wazc/internal/compiler"
)

func TestCompileConstantFoldedReturn(t *testing.T) {
	out, err := compiler.Compile("function main(){ return 2 + 3 * 4; } main();")
	require.NoError(t, err)
	assert.Contains(t, out, "i32.const 14")
	assert.NotContains(t, out, "i32.add")
	assert.NotContains(t, out, "i32.mul")
}

func TestCompileAddFunctionAndCallSite(t *testing.T) {
	out, err := compiler.Compile("function add(a,b){ return a+b; } add(1,2);")
	require.NoError(t, err)
	assert.Contains(t, out, `(func $add (export "add") (param $a i32) (param $b i32) (result i32)`)
	assert.Contains(t, out, "call $add")
	assert.Contains(t, out, "(func $_start (export \"_start\") (result i32)")
}

func TestCompileFloatInferenceFromCallSite(t *testing.T) {
	out, err := compiler.Compile("function f(x){ return x*2.0; } f(3.0);")
	require.NoError(t, err)
	assert.Contains(t, out, "(param $x f32)")
	assert.Contains(t, out, "(result f32)")
	assert.Contains(t, out, "f32.mul")
	assert.Contains(t, out, "f32.const 3.0")
}

func TestCompileDeadBranchEliminatesIfElse(t *testing.T) {
	out, err := compiler.Compile("function main(){ if (0) { return 1; } else { return 2; } } main();")
	require.NoError(t, err)
	assert.NotContains(t, out, "if")
	assert.NotContains(t, out, "else")
	assert.Contains(t, out, "i32.const 2")
}

func TestCompileForLoopContinueLabels(t *testing.T) {
	out, err := compiler.Compile("function main(){ for (let i=0; i<3; i=i+1) { if (i==1) continue; } return 0; } main();")
	require.NoError(t, err)
	assert.Contains(t, out, "block $break_")
	assert.Contains(t, out, "loop $loop_")
	assert.Contains(t, out, "block $continue_")
	assert.True(t, strings.Contains(out, "br $continue_"))
}

// A recursive call wrapped in a further operation (here, `* n`) is not
// in tail position — return_call would silently drop the multiplication,
// so ordinary call+return must be used.
func TestCompileNonTailRecursiveCallUsesOrdinaryCall(t *testing.T) {
	out, err := compiler.Compile("function fact(n){ if (n<=1) return 1; return fact(n-1)*n; } fact(5);")
	require.NoError(t, err)
	assert.Contains(t, out, "call $fact")
	assert.NotContains(t, out, "return_call $fact")
}

func TestCompileDirectTailCallUsesReturnCall(t *testing.T) {
	out, err := compiler.Compile("function h(n){ return n; } function g(n){ return h(n); } g(1);")
	require.NoError(t, err)
	assert.Contains(t, out, "return_call $h")
}

func TestCompileLexerErrorPropagatesAsDiag(t *testing.T) {
	_, err := compiler.Compile("let x = 1 & 2;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lexer Error")
}

func TestCompileSemanticErrorPropagatesAsDiag(t *testing.T) {
	_, err := compiler.Compile("function f(x){ return x; } f(1); f(1.0);")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Semantic Error")
}
