// Пакет token определяет лексемы (токены) исходного языка и их позицию
// в исходном тексте.
package token

// Type — тип токена. Замкнутое перечисление: лексер не выделяет ничего,
// что сюда не входит.
type Type int

const (
	// EOF — конец входного потока. Лексер всегда добавляет один такой
	// токен последним, даже для пустого входа.
	EOF Type = iota

	// IDENT — идентификатор: имя переменной, функции или параметра.
	IDENT

	// KEYWORD — зарезервированное слово языка (let, const, function, ...).
	// Конкретное слово хранится в Literal.
	KEYWORD

	// INT — целочисленный литерал (знаковые 32 бита).
	INT

	// FLOAT — литерал с плавающей точкой (32 бита).
	FLOAT

	// OPERATOR — оператор (+, -, ==, &&, = и т.д.). Конкретный оператор
	// хранится в Literal.
	OPERATOR

	// PUNCT — разделитель: ( ) { } , ; а также одиночная '.', которая
	// не входит ни в одно грамматическое правило, но лексируется без ошибки.
	PUNCT

	// ILLEGAL — символ, который не удалось отнести ни к одной категории.
	ILLEGAL
)

// String возвращает имя типа токена, используемое в диагностике.
func (t Type) String() string {
	switch t {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case KEYWORD:
		return "KEYWORD"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case OPERATOR:
		return "OPERATOR"
	case PUNCT:
		return "PUNCT"
	case ILLEGAL:
		return "ILLEGAL"
	default:
		return "UNKNOWN"
	}
}

// Token — один лексический токен вместе со строкой, на которой он начинается.
// Колонка намеренно не хранится: диагностика этого компилятора различает
// только номер строки.
type Token struct {
	Type    Type
	Literal string
	Line    int
}

// String возвращает отладочное представление токена.
func (t Token) String() string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return t.Type.String() + "(" + t.Literal + ")"
}

// Keywords перечисляет зарезервированные слова языка.
var Keywords = map[string]bool{
	"let": true, "const": true, "function": true,
	"if": true, "else": true, "while": true, "for": true,
	"return": true, "break": true, "continue": true,
}

// twoCharOperators — операторы, которые обязаны распознаваться целиком
// (максимальным совпадением) прежде своих однобуквенных префиксов.
var twoCharOperators = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
}

// oneCharOperators — однобуквенные операторы языка.
var oneCharOperators = map[byte]bool{
	'+': true, '-': true, '*': true, '/': true, '%': true,
	'!': true, '<': true, '>': true, '=': true,
}

// Punctuations — разделители языка помимо операторов.
var Punctuations = map[byte]bool{
	'(': true, ')': true, '{': true, '}': true, ',': true, ';': true,
}

// IsTwoCharOperator сообщает, является ли пара символов распознаваемым
// двухсимвольным оператором.
func IsTwoCharOperator(s string) bool { return twoCharOperators[s] }

// IsOneCharOperator сообщает, является ли символ однобуквенным оператором.
func IsOneCharOperator(b byte) bool { return oneCharOperators[b] }

// IsPunctuation сообщает, является ли символ разделителем из набора
// `( ) { } , ;`.
func IsPunctuation(b byte) bool { return Punctuations[b] }
