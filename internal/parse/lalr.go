package parse

import (
	"github.com/dekarrin/parsrgen/internal/automaton"
	"github.com/dekarrin/parsrgen/internal/grammar"
)

// GenerateLALR1Parser builds the canonical LR(1) collection for g, merges
// states with identical cores into the LALR(1) collection, constructs its
// ACTION/GOTO table in non-strict mode, and returns a driver over it.
//
// Unlike the canonical builder, this never fails outright on a conflict:
// merging can introduce reduce-reduce conflicts the canonical collection
// didn't have, and the table is still built (last write wins) with
// the conflicts surfaced on the returned driver's Conflicts field rather
// than masked. Callers that need strict LALR(1) compliance should check
// len(driver.Conflicts) == 0.
func GenerateLALR1Parser(g *grammar.Grammar) (*LRDriver, error) {
	augmented := g.Augment()
	canonical := automaton.BuildCanonicalCollection(augmented)
	merged := automaton.MergeByCore(canonical)

	table, err := buildLRTable(merged, false)
	if err != nil {
		return nil, err
	}

	return &LRDriver{Table: table, Kind: "LALR(1)", Conflicts: table.Conflicts}, nil
}
