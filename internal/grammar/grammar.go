// Package grammar holds context-free grammars, their transformations
// (left-recursion elimination, left factoring), and FIRST/FOLLOW analysis.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/parsrgen/internal/util"
	"github.com/dekarrin/rosed"
)

// Epsilon is the literal symbol denoting the empty production, both in the
// textual grammar format and internally whenever a production's right-hand
// side needs to be displayed.
const Epsilon = "e"

// EndOfInput is the terminal added to every grammar's terminal set once
// loading completes; it never appears in a loaded production's rhs.
const EndOfInput = "$"

// Production is an ordered pair (LHS, RHS). An empty RHS denotes the
// epsilon production.
type Production struct {
	LHS string
	RHS []string
}

// IsEpsilon returns whether p produces the empty string.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 0
}

// Equal compares LHS and RHS exactly (pair equality, per the production
// identity rule productions are looked up by).
func (p Production) Equal(o Production) bool {
	if p.LHS != o.LHS || len(p.RHS) != len(o.RHS) {
		return false
	}
	for i := range p.RHS {
		if p.RHS[i] != o.RHS[i] {
			return false
		}
	}
	return true
}

// String renders the production in "LHS -> s1 s2 s3" form, or "LHS -> e"
// when epsilon.
func (p Production) String() string {
	if p.IsEpsilon() {
		return fmt.Sprintf("%s -> %s", p.LHS, Epsilon)
	}
	return fmt.Sprintf("%s -> %s", p.LHS, strings.Join(p.RHS, " "))
}

// Grammar is an ordered list of productions together with the derived
// terminal and non-terminal sets.
type Grammar struct {
	Productions  []Production
	NonTerminals util.StringSet
	Terminals    util.StringSet
}

// New returns an empty Grammar ready to have productions added with AddRule.
func New() *Grammar {
	return &Grammar{
		NonTerminals: util.NewStringSet(),
		Terminals:    util.NewStringSet(),
	}
}

// StartSymbol returns the lhs of production 0, the grammar's start symbol.
// Panics if the grammar has no productions.
func (g *Grammar) StartSymbol() string {
	if len(g.Productions) == 0 {
		panic("grammar has no productions")
	}
	return g.Productions[0].LHS
}

// AddRule appends one production (lhs -> rhs) to the grammar, in place,
// updating the non-terminal set. The terminal set is not finalized until
// FinalizeTerminals is called, since until all rules are loaded it's not
// possible to tell a terminal from a not-yet-seen non-terminal.
func (g *Grammar) AddRule(lhs string, rhs []string) {
	prod := Production{LHS: lhs, RHS: rhs}
	g.Productions = append(g.Productions, prod)
	g.NonTerminals.Add(lhs)
}

// FinalizeTerminals derives the terminal set as every rhs symbol that is not
// a non-terminal and is not epsilon, then adds the end-of-input marker.
// Called once after all rules have been added via AddRule (by Parse, or
// directly by callers building a Grammar programmatically).
func (g *Grammar) FinalizeTerminals() {
	g.Terminals = util.NewStringSet()
	for _, p := range g.Productions {
		for _, sym := range p.RHS {
			if sym == Epsilon {
				continue
			}
			if !g.NonTerminals.Has(sym) {
				g.Terminals.Add(sym)
			}
		}
	}
	g.Terminals.Add(EndOfInput)
}

// ProductionsFor returns, in order, every production whose lhs is nt.
func (g *Grammar) ProductionsFor(nt string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS == nt {
			out = append(out, p)
		}
	}
	return out
}

// IndexOf returns the index of the first production pair-equal to p, and
// true, or (0, false) if none matches. Duplicate productions resolve to
// their first occurrence.
func (g *Grammar) IndexOf(p Production) (int, bool) {
	for i, existing := range g.Productions {
		if existing.Equal(p) {
			return i, true
		}
	}
	return 0, false
}

// OrderedNonTerminals returns the grammar's non-terminals sorted
// lexicographically, the row order the LL(1) table is built in.
func (g *Grammar) OrderedNonTerminals() []string {
	nts := g.NonTerminals.Elements()
	sort.Strings(nts)
	return nts
}

// OrderedTerminals returns the grammar's terminals sorted lexicographically,
// excluding none; $ sorts wherever it falls ('$' < letters in ASCII, so it
// will lead).
func (g *Grammar) OrderedTerminals() []string {
	ts := g.Terminals.Elements()
	sort.Strings(ts)
	return ts
}

// Copy returns a deep copy of g.
func (g *Grammar) Copy() *Grammar {
	newG := &Grammar{
		Productions:  make([]Production, len(g.Productions)),
		NonTerminals: util.NewStringSet(),
		Terminals:    util.NewStringSet(),
	}
	for i, p := range g.Productions {
		rhs := make([]string, len(p.RHS))
		copy(rhs, p.RHS)
		newG.Productions[i] = Production{LHS: p.LHS, RHS: rhs}
	}
	newG.NonTerminals.AddAll(g.NonTerminals)
	newG.Terminals.AddAll(g.Terminals)
	return newG
}

// Augment returns a new grammar with a fresh start production S' -> S
// prepended, where S' does not collide with any existing symbol. This is
// the grammar LR(1)/LALR(1) construction builds its canonical collection
// over; the LL(1) path never augments.
func (g *Grammar) Augment() *Grammar {
	newStart := g.StartSymbol() + "'"
	for g.NonTerminals.Has(newStart) || g.Terminals.Has(newStart) {
		newStart += "'"
	}

	augmented := g.Copy()
	augmented.Productions = append([]Production{{LHS: newStart, RHS: []string{g.StartSymbol()}}}, augmented.Productions...)
	augmented.NonTerminals.Add(newStart)
	return augmented
}

// Validate checks the grammar's basic well-formedness invariants: at least
// one production, a non-empty terminal set, and every rhs symbol accounted
// for in either the terminal or non-terminal set.
func (g *Grammar) Validate() error {
	if len(g.Productions) == 0 {
		return fmt.Errorf("grammar has no productions")
	}
	if g.Terminals.Empty() {
		return fmt.Errorf("grammar has no terminals")
	}
	for _, p := range g.Productions {
		for _, sym := range p.RHS {
			if sym == Epsilon {
				continue
			}
			if !g.NonTerminals.Has(sym) && !g.Terminals.Has(sym) {
				return fmt.Errorf("symbol %q in production %q is neither a terminal nor a non-terminal", sym, p)
			}
		}
	}
	return nil
}

// String renders the grammar's productions as an indexed table, the form
// used for debug output and test comparisons.
func (g *Grammar) String() string {
	data := [][]string{{"#", "Production"}}
	for i, p := range g.Productions {
		data = append(data, []string{fmt.Sprintf("%d", i), p.String()})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
