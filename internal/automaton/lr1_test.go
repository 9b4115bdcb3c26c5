package automaton

import (
	"testing"

	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_BuildCanonicalCollection_bracketGrammarStateCounts(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> ( S ) S | e\n")
	if !assert.NoError(err) {
		return
	}

	augmented := g.Augment()
	canonical := BuildCanonicalCollection(augmented)
	merged := MergeByCore(canonical)

	// the states reached with lookahead $ and with lookahead ) pair up by
	// core, four pairs in all
	assert.Equal(10, len(canonical.States))
	assert.Equal(6, len(merged.States))
}

func Test_BuildCanonicalCollection_cCdGrammarStateCounts(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> C C\nC -> c C | d\n")
	if !assert.NoError(err) {
		return
	}

	augmented := g.Augment()
	canonical := BuildCanonicalCollection(augmented)
	merged := MergeByCore(canonical)

	assert.Equal(10, len(canonical.States))
	assert.Equal(7, len(merged.States))
}

func Test_MergeByCore_preservesEveryTransitionSymbol(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("S -> C C\nC -> c C | d\n")
	if !assert.NoError(err) {
		return
	}

	augmented := g.Augment()
	canonical := BuildCanonicalCollection(augmented)
	merged := MergeByCore(canonical)

	canonicalSymbols := map[string]bool{}
	for _, row := range canonical.Transitions() {
		for sym := range row {
			canonicalSymbols[sym] = true
		}
	}
	mergedSymbols := map[string]bool{}
	for _, row := range merged.Transitions() {
		for sym := range row {
			mergedSymbols[sym] = true
		}
	}

	for sym := range canonicalSymbols {
		assert.True(mergedSymbols[sym], "symbol %q had a transition in the canonical collection but none in the merged one", sym)
	}
}

func Test_BuildCanonicalCollection_startStateIsAugmentedProduction(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.Parse("E -> E + T | T\nT -> id\n")
	if !assert.NoError(err) {
		return
	}

	augmented := g.Augment()
	assert.Equal("E'", augmented.StartSymbol())

	col := BuildCanonicalCollection(augmented)
	start := col.States[col.StartState]
	_, hasAugStart := start.Items[Core{ProdIndex: 0, Dot: 0}]
	assert.True(hasAugStart)
}
