package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EliminateLeftRecursion_directRecursion(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("A -> A a | b\n")
	if !assert.NoError(err) {
		return
	}

	out := EliminateLeftRecursion(g)

	for _, p := range out.Productions {
		assert.False(len(p.RHS) > 0 && p.RHS[0] == p.LHS, "production %s is still left-recursive", p)
	}

	// A -> b A'; A' -> a A' | e
	assert.Contains(out.NonTerminals.Elements(), "A")
	found := false
	for _, nt := range out.NonTerminals.Elements() {
		if nt != "A" {
			found = true
		}
	}
	assert.True(found, "expected a fresh primed non-terminal to have been introduced")
}

func Test_EliminateLeftRecursion_indirectRecursion(t *testing.T) {
	assert := assert.New(t)

	// classic indirect-then-direct example: A -> B a | b; B -> A c | d
	g, err := Parse("A -> B a | b\nB -> A c | d\n")
	if !assert.NoError(err) {
		return
	}

	out := EliminateLeftRecursion(g)

	for _, p := range out.Productions {
		assert.False(len(p.RHS) > 0 && p.RHS[0] == p.LHS, "production %s is still left-recursive", p)
	}
}

func Test_EliminateLeftRecursion_idempotent(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("A -> A a | b\n")
	if !assert.NoError(err) {
		return
	}

	once := EliminateLeftRecursion(g)
	twice := EliminateLeftRecursion(once)

	assert.Equal(len(once.Productions), len(twice.Productions))
	for i := range once.Productions {
		assert.True(once.Productions[i].Equal(twice.Productions[i]), "production %d changed on second pass: %s vs %s", i, once.Productions[i], twice.Productions[i])
	}
}

func Test_EliminateLeftRecursion_noRecursionIsUnchangedInStructure(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("S -> a S | b\n")
	if !assert.NoError(err) {
		return
	}

	out := EliminateLeftRecursion(g)
	assert.Equal(len(g.Productions), len(out.Productions))
}
