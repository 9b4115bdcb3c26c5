package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		expectErr bool
	}{
		{
			name: "simple expression grammar",
			text: "E -> E + T | T\n" +
				"T -> T * F | F\n" +
				"F -> ( E ) | id\n",
		},
		{
			name: "epsilon alternative",
			text: "S -> a S | e\n",
		},
		{
			name:      "empty text",
			text:      "",
			expectErr: true,
		},
		{
			name:      "missing arrow",
			text:      "S a b\n",
			expectErr: true,
		},
		{
			name:      "multi-symbol lhs",
			text:      "S T -> a\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := Parse(tc.text)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.NotEmpty(g.Productions)
			assert.Equal(g.Productions[0].LHS, g.StartSymbol())
		})
	}
}

func Test_Parse_startSymbolIsFirstRuleLHS(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("S -> A b\nA -> a\n")
	if !assert.NoError(err) {
		return
	}
	assert.Equal("S", g.StartSymbol())
}

func Test_Parse_derivesTerminalsAndNonTerminals(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}

	assert.True(g.NonTerminals.Has("E"))
	assert.True(g.NonTerminals.Has("T"))
	assert.True(g.Terminals.Has("+"))
	assert.True(g.Terminals.Has("id"))
	assert.True(g.Terminals.Has(EndOfInput))
	assert.False(g.Terminals.Has("E"))
}
