package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wazc/wazc/internal/codegen"
	"github.com/go-wazc/wazc/internal/lexer"
	"github.com/go-wazc/wazc/internal/optimizer"
	"github.com/go-wazc/wazc/internal/parser"
	"github.com/go-wazc/wazc/internal/sema"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	require.NoError(t, err)
	prog, err := parser.New(toks).ParseProgram()
	require.NoError(t, err)
	prog, err = sema.New().Check(prog)
	require.NoError(t, err)
	optimizer.Optimize(prog)
	out, err := codegen.Generate(prog)
	require.NoError(t, err)
	return out
}

func TestGenerateWrapsModule(t *testing.T) {
	out := generate(t, "function main(){ return 0; } main();")
	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "(module")
}

func TestGenerateEveryStatementHasLineComment(t *testing.T) {
	out := generate(t, "function f(x){ return x; } f(1);")
	assert.Contains(t, out, ";; line 1")
	// One comment on the function header, plus one for each of the two
	// statements (the return inside f and the top-level call).
	assert.Equal(t, 3, strings.Count(out, ";; line "))
}

func TestGenerateLocalDeclarationsPrecedeUse(t *testing.T) {
	out := generate(t, "function f(){ let x = 1; let y = 2; return x+y; } f();")
	assert.Contains(t, out, "(local $x i32)")
	assert.Contains(t, out, "(local $y i32)")
	assert.Less(t, strings.Index(out, "(local $x i32)"), strings.Index(out, "local.set $x"))
}

func TestGenerateLogicalShortCircuitUsesResultLocal(t *testing.T) {
	out := generate(t, "let x = 1 && 0;")
	assert.Contains(t, out, "$_result")
	assert.Contains(t, out, "if (result i32)")
}

func TestGenerateMixedTypeBinaryWidensIntOperand(t *testing.T) {
	out := generate(t, "function f(){ return 1 + 2.0; } f();")
	assert.Contains(t, out, "f32.convert_i32_s")
	assert.Contains(t, out, "f32.add")
}
