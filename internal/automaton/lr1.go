// Package automaton builds the canonical collection of LR(1) item sets for
// a grammar: closure, GOTO, and the state graph reachable from the start
// item, by fixed-point expansion per production.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/util"
)

// Core identifies an LR item's production and dot position, ignoring its
// lookahead set. Two items with the same Core are core-equivalent, the
// relation LALR(1) merging groups states by.
type Core struct {
	ProdIndex int
	Dot       int
}

// State is one node of the canonical collection: a closed set of LR(1)
// items, each identified by its Core and carrying the set of lookaheads
// that apply to it.
type State struct {
	ID    int
	Items map[Core]util.StringSet
}

// SortedCores returns the state's cores in a stable order, used for
// signature computation and for rendering.
func (s *State) SortedCores() []Core {
	cores := make([]Core, 0, len(s.Items))
	for c := range s.Items {
		cores = append(cores, c)
	}
	sort.Slice(cores, func(i, j int) bool {
		if cores[i].ProdIndex != cores[j].ProdIndex {
			return cores[i].ProdIndex < cores[j].ProdIndex
		}
		return cores[i].Dot < cores[j].Dot
	})
	return cores
}

// ItemString renders one item, e.g. "E -> E + . T , $".
func ItemString(g *grammar.Grammar, c Core, lookaheads util.StringSet) string {
	p := g.Productions[c.ProdIndex]
	var sb strings.Builder
	sb.WriteString(p.LHS)
	sb.WriteString(" -> ")
	for i, sym := range p.RHS {
		if i == c.Dot {
			sb.WriteString(". ")
		}
		sb.WriteString(sym)
		sb.WriteString(" ")
	}
	if c.Dot >= len(p.RHS) {
		sb.WriteString(".")
	}
	las := lookaheads.Elements()
	sort.Strings(las)
	return fmt.Sprintf("%s , %s", strings.TrimSpace(sb.String()), strings.Join(las, "/"))
}

// Collection is the canonical collection of LR(1) states for an augmented
// grammar, together with the GOTO map driving transitions between them.
type Collection struct {
	Grammar    *grammar.Grammar
	Analysis   *grammar.Analysis
	States     []*State
	StartState int

	// gotoMap[state][symbol] = target state index.
	gotoMap map[int]map[string]int
}

// Next returns the target state for (state, symbol), or (-1, false) if
// there is no such transition.
func (c *Collection) Next(state int, symbol string) (int, bool) {
	row, ok := c.gotoMap[state]
	if !ok {
		return -1, false
	}
	t, ok := row[symbol]
	return t, ok
}

// Transitions returns the full (state, symbol) -> target map, for callers
// that need to enumerate every edge (LALR merging, table construction).
func (c *Collection) Transitions() map[int]map[string]int {
	return c.gotoMap
}

// BuildCanonicalCollection constructs the canonical LR(1) collection for an
// already-augmented grammar (one whose production 0 is S' -> S). Expansion
// is breadth-first: closure of the start item, then GOTO over every symbol
// appearing after a dot in each newly discovered state, assigning states
// fresh integer ids as they're discovered (the standard item-set BFS
// construction, Algorithm 4.56).
func BuildCanonicalCollection(augmented *grammar.Grammar) *Collection {
	an := grammar.ComputeFirstFollow(augmented)

	startCore := Core{ProdIndex: 0, Dot: 0}
	startItems := closure(augmented, an, map[Core]util.StringSet{
		startCore: util.StringSetOf([]string{grammar.EndOfInput}),
	})

	col := &Collection{
		Grammar:  augmented,
		Analysis: an,
		gotoMap:  map[int]map[string]int{},
	}

	sigToIdx := map[string]int{}

	addState := func(items map[Core]util.StringSet) (int, bool) {
		sig := signature(items)
		if idx, ok := sigToIdx[sig]; ok {
			return idx, false
		}
		idx := len(col.States)
		col.States = append(col.States, &State{ID: idx, Items: items})
		sigToIdx[sig] = idx
		return idx, true
	}

	startIdx, _ := addState(startItems)
	col.StartState = startIdx

	worklist := []int{startIdx}
	for len(worklist) > 0 {
		idx := worklist[0]
		worklist = worklist[1:]
		state := col.States[idx]

		for _, sym := range symbolsAfterDot(augmented, state.Items) {
			target := gotoSet(augmented, an, state.Items, sym)
			if len(target) == 0 {
				continue
			}
			tIdx, isNew := addState(target)
			if isNew {
				worklist = append(worklist, tIdx)
			}
			if col.gotoMap[idx] == nil {
				col.gotoMap[idx] = map[string]int{}
			}
			col.gotoMap[idx][sym] = tIdx
		}
	}

	return col
}

// closure expands items to a fixed point: for every item
// (A -> alpha . B beta, a) with B a non-terminal, and every production
// B -> gamma, add (B -> . gamma, b) for every b in FIRST(beta a), merging
// lookaheads into any existing kernel item rather than duplicating it.
func closure(g *grammar.Grammar, an *grammar.Analysis, items map[Core]util.StringSet) map[Core]util.StringSet {
	result := map[Core]util.StringSet{}
	for c, la := range items {
		result[c] = la.Copy()
	}

	changed := true
	for changed {
		changed = false

		cores := make([]Core, 0, len(result))
		for c := range result {
			cores = append(cores, c)
		}

		for _, c := range cores {
			prod := g.Productions[c.ProdIndex]
			if c.Dot >= len(prod.RHS) {
				continue
			}
			b := prod.RHS[c.Dot]
			if !g.NonTerminals.Has(b) {
				continue
			}
			beta := prod.RHS[c.Dot+1:]

			for _, a := range result[c].Elements() {
				seq := append(append([]string{}, beta...), a)
				lookaheads := an.First(seq)

				for prodIdx, p := range g.Productions {
					if p.LHS != b {
						continue
					}
					newCore := Core{ProdIndex: prodIdx, Dot: 0}
					for _, la := range lookaheads.Elements() {
						if la == grammar.Epsilon {
							continue
						}
						if result[newCore] == nil {
							result[newCore] = util.NewStringSet()
						}
						if !result[newCore].Has(la) {
							result[newCore].Add(la)
							changed = true
						}
					}
				}
			}
		}
	}

	return result
}

// gotoSet computes GOTO(items, symbol): advance the dot past symbol in every
// item that has it immediately after the dot, then close the result.
func gotoSet(g *grammar.Grammar, an *grammar.Analysis, items map[Core]util.StringSet, symbol string) map[Core]util.StringSet {
	kernel := map[Core]util.StringSet{}
	for c, la := range items {
		prod := g.Productions[c.ProdIndex]
		if c.Dot >= len(prod.RHS) || prod.RHS[c.Dot] != symbol {
			continue
		}
		newCore := Core{ProdIndex: c.ProdIndex, Dot: c.Dot + 1}
		if kernel[newCore] == nil {
			kernel[newCore] = util.NewStringSet()
		}
		kernel[newCore].AddAll(la)
	}
	if len(kernel) == 0 {
		return nil
	}
	return closure(g, an, kernel)
}

// symbolsAfterDot returns, in sorted order, every distinct symbol that
// appears immediately after some item's dot in items.
func symbolsAfterDot(g *grammar.Grammar, items map[Core]util.StringSet) []string {
	seen := util.NewStringSet()
	for c := range items {
		prod := g.Productions[c.ProdIndex]
		if c.Dot < len(prod.RHS) {
			seen.Add(prod.RHS[c.Dot])
		}
	}
	syms := seen.Elements()
	sort.Strings(syms)
	return syms
}

// signature returns a deterministic string identifying a full item set
// (core and lookaheads both), used to detect when GOTO reaches a state
// that's already in the collection.
func signature(items map[Core]util.StringSet) string {
	cores := make([]Core, 0, len(items))
	for c := range items {
		cores = append(cores, c)
	}
	sort.Slice(cores, func(i, j int) bool {
		if cores[i].ProdIndex != cores[j].ProdIndex {
			return cores[i].ProdIndex < cores[j].ProdIndex
		}
		return cores[i].Dot < cores[j].Dot
	})

	var sb strings.Builder
	for _, c := range cores {
		las := items[c].Elements()
		sort.Strings(las)
		fmt.Fprintf(&sb, "%d.%d[%s];", c.ProdIndex, c.Dot, strings.Join(las, ","))
	}
	return sb.String()
}
