// Пакет diag определяет единый тип ошибки для всех фаз компилятора:
// Lexer, Parser, Semantic и Codegen. Формат вывода зафиксирован
// спецификацией: "<Kind> Error at line L: <message>".
package diag

import (
	"errors"
	"fmt"
)

// Kind — вид ошибки компиляции.
type Kind string

const (
	KindLexer    Kind = "Lexer"
	KindParser   Kind = "Parser"
	KindSemantic Kind = "Semantic"
	KindCodegen  Kind = "Codegen"
)

// Error — ошибка одной из четырёх фаз, всегда привязанная к строке
// исходного текста.
type Error struct {
	Kind    Kind
	Line    int
	Message string
}

// Error реализует интерфейс error. Формат однострочный и стабильный —
// на него полагаются вызывающие (CLI, тесты).
func (e *Error) Error() string {
	return fmt.Sprintf("%s Error at line %d: %s", e.Kind, e.Line, e.Message)
}

// Lexer создаёт ошибку лексера.
func Lexer(line int, format string, args ...interface{}) error {
	return &Error{Kind: KindLexer, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Parser создаёт ошибку парсера.
func Parser(line int, format string, args ...interface{}) error {
	return &Error{Kind: KindParser, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Semantic создаёт семантическую ошибку.
func Semantic(line int, format string, args ...interface{}) error {
	return &Error{Kind: KindSemantic, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Codegen создаёт ошибку генератора кода. Согласно спецификации такие
// ошибки не должны быть достижимы ни для одной программы, прошедшей
// семантический анализ — они сигнализируют о нарушении внутреннего
// инварианта, а не об ошибке пользователя.
func Codegen(line int, format string, args ...interface{}) error {
	return &Error{Kind: KindCodegen, Line: line, Message: fmt.Sprintf(format, args...)}
}

// As — удобный хелпер поверх errors.As для тестов и CLI, которым нужно
// достать Kind/Line из произвольной error-цепочки.
func As(err error) (*Error, bool) {
	var de *Error
	ok := errors.As(err, &de)
	return de, ok
}
