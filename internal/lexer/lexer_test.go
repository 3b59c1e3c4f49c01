package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wazc/wazc/internal/lexer"
	"github.com/go-wazc/wazc/internal/token"
)

func TestLexKeywordsAndPunct(t *testing.T) {
	toks, err := lexer.New().Lex("function let const if else while for return break continue")
	require.NoError(t, err)

	for i := 0; i < len(toks)-1; i++ {
		assert.Equal(t, token.KEYWORD, toks[i].Type)
	}
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestLexNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.Type
		literal string
	}{
		{"42", token.INT, "42"},
		{"3.5", token.FLOAT, "3.5"},
		{".5", token.FLOAT, ".5"},
		{"1e10", token.FLOAT, "1e10"},
		{"1.5e-3", token.FLOAT, "1.5e-3"},
	}
	for _, tt := range tests {
		toks, err := lexer.New().Lex(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.typ, toks[0].Type, tt.input)
		assert.Equal(t, tt.literal, toks[0].Literal, tt.input)
	}
}

func TestLexDotFollowedByIdentDoesNotError(t *testing.T) {
	toks, err := lexer.New().Lex("3.foo")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, "3", toks[0].Literal)
	assert.Equal(t, token.PUNCT, toks[1].Type)
	assert.Equal(t, ".", toks[1].Literal)
	assert.Equal(t, token.IDENT, toks[2].Type)
}

func TestLexOperators(t *testing.T) {
	toks, err := lexer.New().Lex("+ - * / % == != < > <= >= && || ! =")
	require.NoError(t, err)
	expected := []string{"+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">=", "&&", "||", "!", "="}
	for i, lit := range expected {
		assert.Equal(t, token.OPERATOR, toks[i].Type, i)
		assert.Equal(t, lit, toks[i].Literal, i)
	}
}

func TestLexComments(t *testing.T) {
	toks, err := lexer.New().Lex("let x = 1; // trailing\n/* block /* nested */ comment */ let y = 2;")
	require.NoError(t, err)
	assert.Greater(t, len(toks), 0)
}

func TestLexUnterminatedBlockCommentErrors(t *testing.T) {
	_, err := lexer.New().Lex("/* never closed")
	require.Error(t, err)
	de, ok := err.(interface{ Error() string })
	require.True(t, ok)
	assert.Contains(t, de.Error(), "Lexer Error")
}

func TestLexLineNumbersTrackNewlines(t *testing.T) {
	toks, err := lexer.New().Lex("let x = 1;\nlet y = 2;")
	require.NoError(t, err)

	var line2 bool
	for _, tk := range toks {
		if tk.Literal == "y" {
			line2 = tk.Line == 2
		}
	}
	assert.True(t, line2, "expected identifier y on line 2")
}

func TestLexUnexpectedCharacterErrors(t *testing.T) {
	_, err := lexer.New().Lex("let x = 1 & 2;")
	require.Error(t, err)
}
