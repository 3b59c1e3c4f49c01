// Пакет lexer реализует лексический анализ исходного текста: превращает
// поток символов в последовательность token.Token, см. Lex(input).
package lexer

import (
	"fmt"
	"strings"

	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/token"
)

// Interface отделяет реализацию лексера от места его использования —
// компилятор зависит только от этой сигнатуры.
type Interface interface {
	Lex(input string) ([]token.Token, error)
}

// lexer — приватная структура, хранящая состояние сканирования. Вход
// хранится как []rune, чтобы корректно работать с многобайтовыми
// символами в комментариях и (в будущем) строковых литералах.
type lexer struct {
	input  []rune
	length int
	pos    int
	ch     rune
	line   int
}

// New создаёт новый лексер, готовый к вызову Lex.
func New() Interface {
	return &lexer{}
}

// Lex лексирует всю входную строку целиком и возвращает токены вместе
// с завершающим token.EOF. Останавливается на первой ошибке — в
// соответствии с политикой конвейера (первая ошибка прерывает все
// дальнейшие фазы), накопление нескольких ошибок не производится.
func (l *lexer) Lex(input string) ([]token.Token, error) {
	l.input = []rune(input)
	l.length = len(l.input)
	l.pos = 0
	l.line = 1
	if l.length > 0 {
		l.ch = l.input[0]
	} else {
		l.ch = 0
	}

	var tokens []token.Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// readChar продвигает позицию на одну руну вперёд.
func (l *lexer) readChar() {
	l.pos++
	if l.pos >= l.length {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

// peek возвращает следующую руну без продвижения позиции, либо 0 на
// конце входа.
func (l *lexer) peek() rune {
	if l.pos+1 >= l.length {
		return 0
	}
	return l.input[l.pos+1]
}

// skipWhitespaceAndComments пропускает пробелы, перевод строк и оба
// вида комментариев, считая строки по мере прохождения переводов строки.
// Возвращает ошибку, если блочный комментарий не закрыт до конца входа.
func (l *lexer) skipWhitespaceAndComments() error {
	for {
		switch {
		case l.ch == '\n':
			l.line++
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peek() == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipBlockComment пропускает `/* ... */`, поддерживая вложенность.
// Строка, на которой начался самый внешний комментарий, запоминается
// для диагностики незакрытого комментария.
func (l *lexer) skipBlockComment() error {
	startLine := l.line
	depth := 0
	l.readChar() // '/'
	l.readChar() // '*'
	depth++
	for depth > 0 {
		switch {
		case l.ch == 0:
			return diag.Lexer(startLine, "unterminated block comment")
		case l.ch == '\n':
			l.line++
			l.readChar()
		case l.ch == '/' && l.peek() == '*':
			l.readChar()
			l.readChar()
			depth++
		case l.ch == '*' && l.peek() == '/':
			l.readChar()
			l.readChar()
			depth--
		default:
			l.readChar()
		}
	}
	return nil
}

// nextToken produces the next token from the current position.
func (l *lexer) nextToken() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	line := l.line

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Line: line}, nil

	case isDigit(l.ch), l.ch == '.' && isDigit(l.peek()):
		return l.readNumber(line)

	case isIdentStart(l.ch):
		return l.readIdentifier(line), nil

	case l.ch == '.':
		l.readChar()
		return token.Token{Type: token.PUNCT, Literal: ".", Line: line}, nil

	case token.IsPunctuation(byte(l.ch)) && l.ch < 128:
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: token.PUNCT, Literal: lit, Line: line}, nil

	case l.ch < 128 && token.IsOneCharOperator(byte(l.ch)):
		return l.readOperator(line)

	case l.ch == '&' && l.peek() == '&':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.OPERATOR, Literal: "&&", Line: line}, nil

	case l.ch == '|' && l.peek() == '|':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.OPERATOR, Literal: "||", Line: line}, nil

	case l.ch == '&' || l.ch == '|':
		return token.Token{}, diag.Lexer(line, fmt.Sprintf("unexpected character %q", l.ch))

	default:
		return token.Token{}, diag.Lexer(line, fmt.Sprintf("unexpected character %q", l.ch))
	}
}

// readOperator reads a one- or two-character operator, preferring the
// maximal (two-character) match per §4.L.
func (l *lexer) readOperator(line int) (token.Token, error) {
	first := l.ch
	second := l.peek()
	if second != 0 {
		candidate := string(first) + string(second)
		if token.IsTwoCharOperator(candidate) {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.OPERATOR, Literal: candidate, Line: line}, nil
		}
	}
	lit := string(first)
	l.readChar()
	return token.Token{Type: token.OPERATOR, Literal: lit, Line: line}, nil
}

// readIdentifier reads `[A-Za-z_][A-Za-z0-9_]*` and classifies it as a
// keyword or a plain identifier.
func (l *lexer) readIdentifier(line int) token.Token {
	var b strings.Builder
	for isIdentPart(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}
	lit := b.String()
	if token.Keywords[lit] {
		return token.Token{Type: token.KEYWORD, Literal: lit, Line: line}
	}
	return token.Token{Type: token.IDENT, Literal: lit, Line: line}
}

// readNumber implements the §4.L numeric-literal rule exactly: digits,
// then a conditionally-consumed '.', then an optional exponent. The
// same routine serves both digit-led literals ("3.5") and dot-led
// literals (".5") — isDigit(ch) is simply false on entry for the latter.
func (l *lexer) readNumber(line int) (token.Token, error) {
	var b strings.Builder
	isFloat := false

	for isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch == '.' {
		ahead := l.peek()
		if isDigit(ahead) || ahead == 'e' || ahead == 'E' || !isIdentStart(ahead) {
			isFloat = true
			b.WriteRune(l.ch)
			l.readChar()
			for isDigit(l.ch) {
				b.WriteRune(l.ch)
				l.readChar()
			}
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		b.WriteRune(l.ch)
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			b.WriteRune(l.ch)
			l.readChar()
		}
		if !isDigit(l.ch) {
			return token.Token{}, diag.Lexer(line, "invalid literal: missing exponent digits")
		}
		for isDigit(l.ch) {
			b.WriteRune(l.ch)
			l.readChar()
		}
	}

	typ := token.INT
	if isFloat {
		typ = token.FLOAT
	}
	return token.Token{Type: typ, Literal: b.String(), Line: line}, nil
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool { return isIdentStart(ch) || isDigit(ch) }
