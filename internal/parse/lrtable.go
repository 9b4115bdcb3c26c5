package parse

import (
	"fmt"

	"github.com/dekarrin/parsrgen/internal/automaton"
	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/perrors"
	"github.com/dekarrin/rosed"
)

// LRParseTable is the ACTION/GOTO table shared by the canonical LR(1) and
// LALR(1) drivers — one table shape, two ways of building the state
// collection underneath it.
type LRParseTable struct {
	Collection *automaton.Collection
	action     map[int]map[string]LRAction
	goTo       map[int]map[string]int
	// Conflicts records every (state, symbol) cell that a later write
	// overwrote. Non-empty only for a table built in non-strict (LALR)
	// mode; the canonical builder returns an error instead of reporting
	// here, since a canonical-LR(1) conflict means the grammar itself is
	// not LR(1).
	Conflicts []string
}

// Initial returns the collection's start state.
func (t *LRParseTable) Initial() int {
	return t.Collection.StartState
}

// Action returns the ACTION cell for (state, terminal).
func (t *LRParseTable) Action(state int, terminal string) (LRAction, bool) {
	row, ok := t.action[state]
	if !ok {
		return LRAction{}, false
	}
	a, ok := row[terminal]
	return a, ok
}

// Goto returns the GOTO cell for (state, non-terminal).
func (t *LRParseTable) Goto(state int, nonTerminal string) (int, bool) {
	row, ok := t.goTo[state]
	if !ok {
		return -1, false
	}
	s, ok := row[nonTerminal]
	return s, ok
}

// ExpectedTerminals returns, sorted, every terminal with a non-error ACTION
// cell in the given state — the expected-set an LR error reports.
func (t *LRParseTable) ExpectedTerminals() func(state int) []string {
	return func(state int) []string {
		row := t.action[state]
		var out []string
		for term := range row {
			out = append(out, term)
		}
		return out
	}
}

// buildLRTable constructs the ACTION/GOTO table for col. When strict is
// true (canonical LR(1) construction), a conflicting write
// returns an error immediately, since that means the grammar is not LR(1).
// When strict is false (LALR(1), where merging states can itself introduce
// conflicts that canonical construction didn't have), conflicting writes are
// last-write-wins and recorded in the returned table's Conflicts, per the
// documented LALR limitation (see DESIGN.md).
func buildLRTable(col *automaton.Collection, strict bool) (*LRParseTable, error) {
	t := &LRParseTable{
		Collection: col,
		action:     map[int]map[string]LRAction{},
		goTo:       map[int]map[string]int{},
	}

	augmentedStart := col.Grammar.Productions[0].LHS

	setAction := func(state int, symbol string, a LRAction) error {
		if t.action[state] == nil {
			t.action[state] = map[string]LRAction{}
		}
		if existing, ok := t.action[state][symbol]; ok && !existing.Equal(a) {
			msg := fmt.Sprintf("state %d, symbol %q: %s vs %s", state, symbol, conflictDescription(existing), conflictDescription(a))
			if strict {
				return perrors.LRConflict(fmt.Sprintf("%d", state), symbol, conflictDescription(existing), conflictDescription(a))
			}
			t.Conflicts = append(t.Conflicts, msg)
		}
		t.action[state][symbol] = a
		return nil
	}

	for s, row := range col.Transitions() {
		for sym, target := range row {
			if col.Grammar.NonTerminals.Has(sym) {
				if t.goTo[s] == nil {
					t.goTo[s] = map[string]int{}
				}
				t.goTo[s][sym] = target
				continue
			}
			if err := setAction(s, sym, LRAction{Type: LRShift, State: target}); err != nil {
				return nil, err
			}
		}
	}

	for _, state := range col.States {
		for core, lookaheads := range state.Items {
			prod := col.Grammar.Productions[core.ProdIndex]
			if core.Dot != len(prod.RHS) {
				continue
			}
			if prod.LHS == augmentedStart {
				if err := setAction(state.ID, grammar.EndOfInput, LRAction{Type: LRAccept}); err != nil {
					return nil, err
				}
				continue
			}
			for _, a := range lookaheads.Elements() {
				if err := setAction(state.ID, a, LRAction{
					Type:       LRReduce,
					ProdIndex:  core.ProdIndex,
					Production: prod,
				}); err != nil {
					return nil, err
				}
			}
		}
	}

	return t, nil
}

// String renders the table as terminals-then-nonterminals columns, with
// states as rows.
func (t *LRParseTable) String() string {
	terms := t.Collection.Grammar.OrderedTerminals()
	nts := t.Collection.Grammar.OrderedNonTerminals()

	header := []string{"state"}
	header = append(header, terms...)
	header = append(header, "|")
	header = append(header, nts...)
	data := [][]string{header}

	for i := range t.Collection.States {
		row := []string{fmt.Sprintf("%d", i)}
		for _, term := range terms {
			cell := ""
			if a, ok := t.Action(i, term); ok {
				cell = a.String()
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nts {
			cell := ""
			if s, ok := t.Goto(i, nt); ok {
				cell = fmt.Sprintf("%d", s)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
