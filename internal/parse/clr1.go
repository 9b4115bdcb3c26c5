package parse

import (
	"github.com/dekarrin/parsrgen/internal/automaton"
	"github.com/dekarrin/parsrgen/internal/grammar"
)

// GenerateCanonicalLR1Parser builds the canonical LR(1) collection for g,
// constructs its ACTION/GOTO table in strict mode, and returns a driver over
// it. Returns an error if the grammar is not LR(1) (some state has a
// shift/reduce or reduce/reduce conflict).
func GenerateCanonicalLR1Parser(g *grammar.Grammar) (*LRDriver, error) {
	augmented := g.Augment()
	col := automaton.BuildCanonicalCollection(augmented)

	table, err := buildLRTable(col, true)
	if err != nil {
		return nil, err
	}

	return &LRDriver{Table: table, Kind: "CLR(1)"}, nil
}
