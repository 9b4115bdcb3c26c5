package parse

import (
	"fmt"

	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/lex"
	"github.com/dekarrin/parsrgen/internal/perrors"
	"github.com/dekarrin/parsrgen/internal/trace"
	"github.com/dekarrin/parsrgen/internal/util"
)

// RDDriver is the recursive-descent driver: for each
// non-terminal it tries its productions in declaration order and commits to
// the first whose FIRST set contains the lookahead (falling back to an
// epsilon production when the lookahead is in FOLLOW instead), with no
// backtracking once a production is chosen. It only accepts LL(1) grammars,
// the same property check the table-driven LL(1) driver requires, since a
// first-match choice is only ever correct under that property.
type RDDriver struct {
	Grammar  *grammar.Grammar
	Analysis *grammar.Analysis
}

// NewRDDriver checks g for the LL(1) property and, if it holds, returns a
// recursive-descent driver over it.
func NewRDDriver(g *grammar.Grammar) (*RDDriver, error) {
	an := grammar.ComputeFirstFollow(g)
	if err := CheckLL1(g, an); err != nil {
		return nil, err
	}
	return &RDDriver{Grammar: g, Analysis: an}, nil
}

// selectProduction picks the production to expand nt by under lookahead,
// per the first-match policy: the first non-epsilon production in
// declaration order whose FIRST set contains lookahead, or else the
// non-terminal's epsilon production if lookahead is in FOLLOW(nt).
func (d *RDDriver) selectProduction(nt, lookahead string) (grammar.Production, bool) {
	var epsilonCandidate *grammar.Production
	for _, p := range d.Grammar.ProductionsFor(nt) {
		p := p
		if p.IsEpsilon() {
			epsilonCandidate = &p
			continue
		}
		if d.Analysis.First(p.RHS).Has(lookahead) {
			return p, true
		}
	}
	if epsilonCandidate != nil && d.Analysis.Follow(nt).Has(lookahead) {
		return *epsilonCandidate, true
	}
	return grammar.Production{}, false
}

// Parse drives the recursive-descent parse over lx, simulated with an
// explicit pending-symbol stack (rather than the Go call stack) so that
// trace records carry the same "remaining symbols" view the table-driven
// LL(1) driver produces.
func (d *RDDriver) Parse(lx *lex.Lexer) *Result {
	res := &Result{Trace: trace.New()}

	stack := util.Stack[string]{Of: []string{grammar.EndOfInput, d.Grammar.StartSymbol()}}
	var matched []string

	advance := func() (lex.Token, error) {
		for {
			tok, err := lx.Next()
			if err != nil {
				res.Errors = append(res.Errors, err)
				d.record(res, matched, stack, lx, "lexical error, skipping")
				continue
			}
			return tok, nil
		}
	}

	lookahead, _ := advance()

	for {
		top := stack.Peek()

		if top == grammar.EndOfInput && lookahead.Class().ID() == grammar.EndOfInput {
			d.record(res, matched, stack, lx, "accept")
			res.Accepted = len(res.Errors) == 0
			return res
		}

		if d.Grammar.Terminals.Has(top) {
			if top == lookahead.Class().ID() {
				stack.Pop()
				matched = append(matched, lookahead.Lexeme())
				d.record(res, matched, stack, lx, fmt.Sprintf("match %s", top))
				lookahead, _ = advance()
				continue
			}
			expected := []string{top}
			err := perrors.UnexpectedToken(lookahead.Lexeme(), expected, lookahead.Col())
			res.Errors = append(res.Errors, err)
			d.record(res, matched, stack, lx, fmt.Sprintf("error: %s", err.Error()))
			return res
		}

		prod, ok := d.selectProduction(top, lookahead.Class().ID())
		if !ok {
			expected := d.Analysis.First([]string{top}).Elements()
			err := perrors.UnexpectedToken(lookahead.Lexeme(), expected, lookahead.Col())
			res.Errors = append(res.Errors, err)
			d.record(res, matched, stack, lx, fmt.Sprintf("error: %s", err.Error()))
			return res
		}

		stack.Pop()
		for i := len(prod.RHS) - 1; i >= 0; i-- {
			if prod.RHS[i] == grammar.Epsilon {
				continue
			}
			stack.Push(prod.RHS[i])
		}
		d.record(res, matched, stack, lx, fmt.Sprintf("descend %s", prod))
	}
}

func (d *RDDriver) record(res *Result, matched []string, stack util.Stack[string], lx *lex.Lexer, action string) {
	res.Trace.TopDown(joinLexemes(matched), stack.Of, lx.RemainingInputString(), action)
}
