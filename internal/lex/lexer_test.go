package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drainTokens(t *testing.T, l *Lexer) ([]Token, []error) {
	t.Helper()
	var toks []Token
	var errs []error
	for {
		tok, err := l.Next()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		toks = append(toks, tok)
		if tok.Class().ID() == ClassEndOfInput.ID() {
			return toks, errs
		}
	}
}

func Test_Lexer_recognizesKeywordsIdentifiersAndOperators(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer("if x = 1 + y")
	toks, errs := drainTokens(t, l)
	assert.Empty(errs)

	var classes []string
	for _, tok := range toks {
		classes = append(classes, tok.Class().ID())
	}
	assert.Equal([]string{"if", "id", "=", "intNum", "+", "id", "$"}, classes)
}

func Test_Lexer_endOfInputReportsColumnPastLastRune(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer("id +")
	_, errs := drainTokens(t, l)
	assert.Empty(errs)

	tok, err := l.Next()
	assert.NoError(err)
	assert.Equal(ClassEndOfInput.ID(), tok.Class().ID())
	assert.Equal(5, tok.Col(), "end-of-input column should sit one past the last consumed rune")
}

func Test_Lexer_floatAndScientificNotation(t *testing.T) {
	assert := assert.New(t)

	// Only a decimal point marks a literal as floatNum; an exponent alone
	// does not, matching the reference lexer this scanner is grounded on.
	l := NewLexer("3.14 2e10 1.5e-3")
	toks, errs := drainTokens(t, l)
	assert.Empty(errs)

	var lexemes, classes []string
	for _, tok := range toks {
		if tok.Class().ID() == ClassEndOfInput.ID() {
			continue
		}
		lexemes = append(lexemes, tok.Lexeme())
		classes = append(classes, tok.Class().ID())
	}
	assert.Equal([]string{"3.14", "2e10", "1.5e-3"}, lexemes)
	assert.Equal([]string{"floatNum", "intNum", "floatNum"}, classes)
}

func Test_Lexer_malformedExponentAtEndOfInputIsRejected(t *testing.T) {
	assert := assert.New(t)

	for _, input := range []string{"1e", "1e+", "2.5e"} {
		l := NewLexer(input)
		_, errs := drainTokens(t, l)
		if !assert.Len(errs, 1, "input %q should produce exactly one lexical error", input) {
			continue
		}
		assert.Contains(errs[0].Error(), "Invalid numeric literal")
	}
}

func Test_Lexer_malformedExponentFollowedByMoreInputIsRejected(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer("1e +")
	_, errs := drainTokens(t, l)
	if assert.Len(errs, 1) {
		assert.Contains(errs[0].Error(), "Invalid numeric literal")
	}
}

func Test_Lexer_numberFollowedByLetterIsInvalidIdentifier(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer("1abc")
	_, errs := drainTokens(t, l)
	if assert.Len(errs, 1) {
		assert.Contains(errs[0].Error(), "Invalid identifier")
		assert.Contains(errs[0].Error(), "1abc")
		assert.Contains(errs[0].Error(), "Column number: [1]")
	}
}

func Test_Lexer_invalidCharacterReportsItsColumn(t *testing.T) {
	assert := assert.New(t)

	l := NewLexer("x @ y")
	_, errs := drainTokens(t, l)
	if assert.Len(errs, 1) {
		assert.Contains(errs[0].Error(), "Column number: [3]")
	}
}

func Test_Lexer_distinctLexemesDedupIntoOneSymbolTableEntry(t *testing.T) {
	assert := assert.New(t)

	baseline := NewLexer("").SymbolTable().Count()

	l := NewLexer("x x x")
	drainTokens(t, l)
	assert.Equal(baseline+1, l.SymbolTable().Count(), "three uses of the same identifier should add exactly one entry beyond the seeded keyword set")
}
