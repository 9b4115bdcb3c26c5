package parse

import (
	"testing"

	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/lex"
	"github.com/stretchr/testify/assert"
)

func Test_LRDriver_acceptsWellFormedInput(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}
	d, err := GenerateCanonicalLR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	res := d.Parse(lex.NewLexer("id + id"))
	assert.True(res.Accepted)
	assert.Empty(res.Errors)
}

func Test_LRDriver_rejectsTruncatedInputWithEndOfInputError(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}
	d, err := GenerateCanonicalLR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	res := d.Parse(lex.NewLexer("id +"))
	assert.False(res.Accepted)
	if assert.Len(res.Errors, 1) {
		assert.Contains(res.Errors[0].Error(), "Unexpected end of input")
	}
}

func Test_LRDriver_acceptedIsFalseWheneverAnyErrorWasReported(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}
	d, err := GenerateCanonicalLR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	// The stray '@' is a lexical error the lexer skips over, not a parse
	// error; the surrounding tokens still complete a valid "id + id", so
	// this would have wrongly driven the parser to Accepted before the
	// accept step started deferring to len(res.Errors).
	res := d.Parse(lex.NewLexer("id + @ id"))
	if assert.NotEmpty(res.Errors) {
		assert.False(res.Accepted, "a driver that reported an error must never also report acceptance")
	}
}
