// Пакет parser реализует рекурсивный спуск с явным подъёмом по
// приоритетам: превращает поток токенов в ast.Program. Следуя политике
// ошибок конвейера (§7 спецификации), парсер останавливается на первой
// же ошибке — список ошибок не накапливается, восстановление не
// производится.
package parser

import (
	"strconv"

	"github.com/go-wazc/wazc/internal/ast"
	"github.com/go-wazc/wazc/internal/diag"
	"github.com/go-wazc/wazc/internal/token"
)

// Parser разбирает один поток токенов в одно дерево Program.
type Parser struct {
	s tokenStream
}

// New создаёт парсер для уже полученной от лексера последовательности
// токенов.
func New(tokens []token.Token) *Parser {
	return &Parser{s: newSliceStream(tokens)}
}

// ParseProgram разбирает весь вход: объявления функций и операторы
// верхнего уровня могут перемежаться в исходном тексте в произвольном
// порядке.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.s.isEOF() {
		if p.atKeyword("function") {
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fn)
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.TopLevel = append(prog.TopLevel, stmt)
	}
	return prog, nil
}

// --- helpers -----------------------------------------------------------

func (p *Parser) cur() token.Token { return p.s.peek() }

func (p *Parser) atKeyword(lit string) bool {
	t := p.cur()
	return t.Type == token.KEYWORD && t.Literal == lit
}

func (p *Parser) atOperator(lit string) bool {
	t := p.cur()
	return t.Type == token.OPERATOR && t.Literal == lit
}

func (p *Parser) atPunct(lit string) bool {
	t := p.cur()
	return t.Type == token.PUNCT && t.Literal == lit
}

// expectPunct consumes the current token if it is the given punctuation,
// otherwise raises a parser error naming what was expected and what was
// actually found.
func (p *Parser) expectPunct(lit string) error {
	if !p.atPunct(lit) {
		t := p.cur()
		return diag.Parser(t.Line, "expected %q, got %s", lit, describe(t))
	}
	p.s.next()
	return nil
}

func (p *Parser) expectKeyword(lit string) error {
	if !p.atKeyword(lit) {
		t := p.cur()
		return diag.Parser(t.Line, "expected keyword %q, got %s", lit, describe(t))
	}
	p.s.next()
	return nil
}

func (p *Parser) expectIdent() (token.Token, error) {
	t := p.cur()
	if t.Type != token.IDENT {
		return token.Token{}, diag.Parser(t.Line, "expected identifier, got %s", describe(t))
	}
	p.s.next()
	return t, nil
}

func describe(t token.Token) string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return t.Type.String() + " " + strconv.Quote(t.Literal)
}
