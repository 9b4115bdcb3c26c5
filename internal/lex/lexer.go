package lex

import (
	"unicode"

	"github.com/dekarrin/parsrgen/internal/perrors"
)

// defaultKeywords are the reserved words recognized directly by the scanner,
// ahead of the general identifier rule.
var defaultKeywords = []string{"if", "else", "true", "false", "and", "or", "not", "int", "float"}

// Lexer performs a single forward pass over an input string, producing one
// Token per call to Next and recording every distinct token it sees in a
// SymbolTable.
type Lexer struct {
	input  []rune
	pos    int // next unread rune
	table  *SymbolTable
	peeked *Token
	// consumed accumulates the tokens handed out by Next so far. The
	// remaining input itself is read from the source buffer at pos (see
	// RemainingInputString), not derived from this list.
	consumed []Token
}

// NewLexer returns a Lexer over input, pre-seeded with the standard keyword
// set.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		table: NewSymbolTable(defaultKeywords),
	}
}

// SymbolTable returns the table of distinct tokens seen so far.
func (l *Lexer) SymbolTable() *SymbolTable {
	return l.table
}

// RemainingInputString returns the portion of the original input that has
// not yet been handed out as a token, computed by subtracting the consumed
// prefix rather than mutating the source buffer.
func (l *Lexer) RemainingInputString() string {
	if l.pos >= len(l.input) {
		return ""
	}
	return string(l.input[l.pos:])
}

// HasNext returns whether there is any more input to lex (including
// whitespace-only remainder, which resolves to the end-of-input token).
func (l *Lexer) HasNext() bool {
	if l.peeked != nil {
		return l.peeked.class.ID() != ClassEndOfInput.ID()
	}
	tok, err := l.lexOne()
	l.peeked = &tok
	_ = err
	return tok.class.ID() != ClassEndOfInput.ID()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.lexOne()
	if err != nil {
		return tok, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, error) {
	var tok Token
	var err error
	if l.peeked != nil {
		tok = *l.peeked
		l.peeked = nil
	} else {
		tok, err = l.lexOne()
	}
	if err == nil {
		l.consumed = append(l.consumed, tok)
	}
	return tok, err
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// lexOne scans exactly one token starting at l.pos, advancing l.pos past it.
// It implements the scanning rules for identifiers/keywords, integer/float/
// scientific-notation literals (with invalid-num/invalid-id detection),
// single-character operators, and a fallback invalid-char rule.
func (l *Lexer) lexOne() (Token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}

	if l.pos >= len(l.input) {
		return Token{class: ClassEndOfInput, lexeme: "$", col: l.pos + 1}, nil
	}

	startCol := l.pos + 1
	c := l.input[l.pos]

	switch {
	case isIdentStart(c):
		return l.lexIdentifier(startCol)
	case unicode.IsDigit(c):
		return l.lexNumber(startCol)
	case isOperator(c):
		l.pos++
		lexeme := string(c)
		tok := Token{class: simpleClass(lexeme), lexeme: lexeme, col: startCol}
		if _, ok := l.table.SearchByClass(lexeme); !ok {
			l.table.Insert(tok)
		}
		return tok, nil
	default:
		l.pos++
		return Token{}, perrors.Lexicalf(startCol, "Invalid character '%c'.", c)
	}
}

func isOperator(c rune) bool {
	switch c {
	case '+', '-', '*', '/', '(', ')', '=':
		return true
	}
	return false
}

func (l *Lexer) lexIdentifier(startCol int) (Token, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	id := string(l.input[start:l.pos])

	if kw, ok := l.table.SearchByClass(id); ok && kw.lexeme == id {
		return Token{class: kw.class, lexeme: id, col: startCol}, nil
	}

	tok := Token{class: ClassIdentifier, lexeme: id, col: startCol}
	if _, ok := l.table.SearchByLexeme(id); !ok {
		l.table.Insert(tok)
	}
	return tok, nil
}

func (l *Lexer) lexNumber(startCol int) (Token, error) {
	start := l.pos
	isFloat := false
	l.pos++
	for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
		l.pos++
	}

	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		isFloat = true
		l.pos++
		if l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
			l.pos++
			for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
				l.pos++
			}
		} else {
			l.consumeTrailingGarbage()
			num := string(l.input[start:l.pos])
			return Token{}, perrors.Lexicalf(startCol, "Invalid numeric literal '%s'.", num)
		}
	}

	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
			l.pos++
			for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
				l.pos++
			}
		} else if l.pos >= len(l.input) || !unicode.IsLetter(l.input[l.pos]) {
			num := string(l.input[start:l.pos])
			return Token{}, perrors.Lexicalf(startCol, "Invalid numeric literal '%s'.", num)
		}
	}

	if l.pos < len(l.input) && isIdentStart(l.input[l.pos]) {
		l.consumeTrailingGarbage()
		num := string(l.input[start:l.pos])
		return Token{}, perrors.Lexicalf(startCol, "Invalid identifier '%s' (numbers cannot be followed by letters).", num)
	}

	num := string(l.input[start:l.pos])
	class := ClassIntNum
	if isFloat {
		class = ClassFloatNum
	}
	tok := Token{class: class, lexeme: num, col: startCol}
	if _, ok := l.table.SearchByLexeme(num); !ok {
		l.table.Insert(tok)
	}
	return tok, nil
}

// consumeTrailingGarbage swallows any run of alnum characters immediately
// following a malformed numeric literal, consuming the whole offending run
// before resuming.
func (l *Lexer) consumeTrailingGarbage() {
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
}
