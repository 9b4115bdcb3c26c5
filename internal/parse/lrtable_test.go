package parse

import (
	"testing"

	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/lex"
	"github.com/stretchr/testify/assert"
)

func Test_GenerateCanonicalLR1Parser_bracketGrammarAccepts(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> ( S ) S | e\n")
	if !assert.NoError(err) {
		return
	}

	d, err := GenerateCanonicalLR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("CLR(1)", d.Kind)
	assert.NotEmpty(d.Table.Collection.States)

	res := d.Parse(lex.NewLexer("( ( ) ( ) )"))
	assert.True(res.Accepted)
	assert.Empty(res.Errors)
}

func Test_GenerateLALR1Parser_reportsNoConflictsForUnambiguousGrammar(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}

	d, err := GenerateLALR1Parser(g)
	if !assert.NoError(err) {
		return
	}
	assert.Empty(d.Conflicts)
}

func Test_LRParseTable_String_listsEveryState(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}

	d, err := GenerateCanonicalLR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	out := d.Table.String()
	assert.Contains(out, "state")
	assert.NotEmpty(out)
}
