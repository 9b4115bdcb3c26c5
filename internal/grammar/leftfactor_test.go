package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// hasCommonPrefix reports whether any two distinct productions sharing lhs
// share a non-empty symbol-level prefix.
func hasCommonPrefix(g *Grammar, lhs string) bool {
	prods := g.ProductionsFor(lhs)
	for i := 0; i < len(prods); i++ {
		for j := i + 1; j < len(prods); j++ {
			if len(prods[i].RHS) == 0 || len(prods[j].RHS) == 0 {
				continue
			}
			if prods[i].RHS[0] == prods[j].RHS[0] {
				return true
			}
		}
	}
	return false
}

func Test_LeftFactor_removesCommonPrefixes(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("A -> a b c | a b d | a e\n")
	if !assert.NoError(err) {
		return
	}

	out := LeftFactor(g)

	for _, nt := range out.NonTerminals.Elements() {
		assert.False(hasCommonPrefix(out, nt), "non-terminal %s still has alternatives sharing a prefix", nt)
	}
}

func Test_LeftFactor_idempotent(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("A -> a b c | a b d | a e\n")
	if !assert.NoError(err) {
		return
	}

	once := LeftFactor(g)
	twice := LeftFactor(once)

	assert.Equal(len(once.Productions), len(twice.Productions))
	for i := range once.Productions {
		assert.True(once.Productions[i].Equal(twice.Productions[i]), "production %d changed on second pass: %s vs %s", i, once.Productions[i], twice.Productions[i])
	}
}

func Test_LeftFactor_noSharedPrefixIsUnchanged(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("A -> a | b | c\n")
	if !assert.NoError(err) {
		return
	}

	out := LeftFactor(g)
	assert.Equal(len(g.Productions), len(out.Productions))
}

func Test_LeftFactor_groupsByGreatestCommonPrefix(t *testing.T) {
	assert := assert.New(t)

	// A -> a b | a c | a b d: "a b" and "a b d" share a longer prefix with
	// each other than either shares with "a c" alone; factoring out "a"
	// alone would leave "b" and "b d" sharing "b" under the fresh
	// non-terminal, so that one must be factored again.
	g, err := Parse("A -> a b | a c | a b d\n")
	if !assert.NoError(err) {
		return
	}

	out := LeftFactor(g)
	for _, nt := range out.NonTerminals.Elements() {
		assert.False(hasCommonPrefix(out, nt), "non-terminal %s still has alternatives sharing a prefix", nt)
	}
}
