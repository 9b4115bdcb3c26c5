package parse

import (
	"fmt"

	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/lex"
	"github.com/dekarrin/parsrgen/internal/perrors"
	"github.com/dekarrin/parsrgen/internal/trace"
	"github.com/dekarrin/parsrgen/internal/util"
	"github.com/dekarrin/rosed"
)

// LL1CellKind distinguishes the three kinds of LL(1) table cell.
type LL1CellKind int

const (
	LL1Error LL1CellKind = iota
	LL1Production
	LL1Synch
)

// LL1Cell is one M[nonTerminal, terminal] entry.
type LL1Cell struct {
	Kind      LL1CellKind
	ProdIndex int // valid when Kind == LL1Production
}

// LL1Table is the predictive parsing table built over a grammar's
// non-terminals (rows) and terminals (columns).
type LL1Table struct {
	Grammar *grammar.Grammar
	cells   map[string]map[string]LL1Cell
}

func (t *LL1Table) get(nt, term string) LL1Cell {
	row, ok := t.cells[nt]
	if !ok {
		return LL1Cell{Kind: LL1Error}
	}
	return row[term]
}

func (t *LL1Table) set(nt, term string, c LL1Cell) {
	if t.cells[nt] == nil {
		t.cells[nt] = map[string]LL1Cell{}
	}
	t.cells[nt][term] = c
}

// String renders the table as rows of non-terminals against columns of
// terminals, each cell showing the production index, "synch", or blank for
// error.
func (t *LL1Table) String() string {
	terms := t.Grammar.OrderedTerminals()

	header := []string{"non-terminal"}
	header = append(header, terms...)
	data := [][]string{header}

	for _, nt := range t.Grammar.OrderedNonTerminals() {
		row := []string{nt}
		for _, term := range terms {
			cell := ""
			switch c := t.get(nt, term); c.Kind {
			case LL1Production:
				cell = fmt.Sprintf("%d", c.ProdIndex)
			case LL1Synch:
				cell = "synch"
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

// CheckLL1 verifies the LL(1) property: for every pair of
// distinct productions sharing a lhs, their FIRST sets are disjoint, and if
// one is nullable, its partner's FIRST set is disjoint from the lhs's
// FOLLOW set. Returns a descriptive error naming the first violation found.
func CheckLL1(g *grammar.Grammar, an *grammar.Analysis) error {
	for _, nt := range g.OrderedNonTerminals() {
		prods := g.ProductionsFor(nt)
		for i := 0; i < len(prods); i++ {
			for j := i + 1; j < len(prods); j++ {
				a, b := prods[i], prods[j]
				if a.Equal(b) {
					continue
				}
				firstA := an.First(a.RHS)
				firstB := an.First(b.RHS)

				if !firstA.Intersection(firstB).Empty() {
					return perrors.NotLL1(fmt.Sprintf("FIRST(%s) and FIRST(%s) intersect for non-terminal %s", a, b, nt))
				}
				if firstA.Has(grammar.Epsilon) {
					follow := an.Follow(nt)
					if !firstB.Intersection(follow).Empty() {
						return perrors.NotLL1(fmt.Sprintf("FIRST(%s) intersects FOLLOW(%s), but %s is nullable", b, nt, a))
					}
				}
				if firstB.Has(grammar.Epsilon) {
					follow := an.Follow(nt)
					if !firstA.Intersection(follow).Empty() {
						return perrors.NotLL1(fmt.Sprintf("FIRST(%s) intersects FOLLOW(%s), but %s is nullable", a, nt, b))
					}
				}
			}
		}
	}
	return nil
}

// BuildLL1Table checks the LL(1) property and, if it holds, builds the
// predictive parsing table, including synchronization entries in any cell
// FOLLOW(A) would otherwise leave empty.
func BuildLL1Table(g *grammar.Grammar, an *grammar.Analysis) (*LL1Table, error) {
	if err := CheckLL1(g, an); err != nil {
		return nil, err
	}

	t := &LL1Table{Grammar: g, cells: map[string]map[string]LL1Cell{}}

	for i, p := range g.Productions {
		first := an.First(p.RHS)
		for _, a := range first.Elements() {
			if a == grammar.Epsilon {
				continue
			}
			t.set(p.LHS, a, LL1Cell{Kind: LL1Production, ProdIndex: i})
		}
		if first.Has(grammar.Epsilon) {
			for _, b := range an.Follow(p.LHS).Elements() {
				t.set(p.LHS, b, LL1Cell{Kind: LL1Production, ProdIndex: i})
			}
		}
	}

	for _, nt := range g.NonTerminals.Elements() {
		for _, b := range an.Follow(nt).Elements() {
			if t.get(nt, b).Kind == LL1Error {
				t.set(nt, b, LL1Cell{Kind: LL1Synch})
			}
		}
	}

	return t, nil
}

// LL1Driver drives the table-based LL(1) predictive parser, including
// synchronization-marker panic-mode recovery (see DESIGN.md).
type LL1Driver struct {
	Grammar  *grammar.Grammar
	Analysis *grammar.Analysis
	Table    *LL1Table
}

// NewLL1Driver builds the LL(1) table for g and returns a driver over it, or
// an error if g is not LL(1).
func NewLL1Driver(g *grammar.Grammar) (*LL1Driver, error) {
	an := grammar.ComputeFirstFollow(g)
	table, err := BuildLL1Table(g, an)
	if err != nil {
		return nil, err
	}
	return &LL1Driver{Grammar: g, Analysis: an, Table: table}, nil
}

// Parse drives the stack-based LL(1) predictive loop over lx.
func (d *LL1Driver) Parse(lx *lex.Lexer) *Result {
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
			err := perrors.MissingToken(top, lookahead.Lexeme(), lookahead.Col())
			res.Errors = append(res.Errors, err)
			stack.Pop()
			d.record(res, matched, stack, lx, fmt.Sprintf("error: %s", err.Error()))
			continue
		}

		cell := d.Table.get(top, lookahead.Class().ID())
		switch cell.Kind {
		case LL1Production:
			prod := d.Grammar.Productions[cell.ProdIndex]
			stack.Pop()
			for i := len(prod.RHS) - 1; i >= 0; i-- {
				if prod.RHS[i] == grammar.Epsilon {
					continue
				}
				stack.Push(prod.RHS[i])
			}
			d.record(res, matched, stack, lx, fmt.Sprintf("output %s", prod))

		case LL1Synch:
			// top is the last real symbol above the bottom-of-stack marker:
			// popping it here would discard the rest of the derivation with
			// nothing left to resynchronize against, so instead restore it
			// (leave it on the stack) and skip input until the lookahead
			// lands in FIRST(top), or input runs out.
			if stack.Len() >= 2 && stack.PeekAt(1) == grammar.EndOfInput {
				expected := d.Analysis.First([]string{top}).Elements()
				for !d.Analysis.First([]string{top}).Has(lookahead.Class().ID()) && lookahead.Class().ID() != grammar.EndOfInput {
					err := perrors.UnexpectedToken(lookahead.Lexeme(), expected, lookahead.Col())
					res.Errors = append(res.Errors, err)
					d.record(res, matched, stack, lx, fmt.Sprintf("synch: skipping %s to resynchronize", lookahead.Lexeme()))
					lookahead, _ = advance()
				}
				if !d.Analysis.First([]string{top}).Has(lookahead.Class().ID()) {
					// input ran out before the lookahead ever resynchronized
					err := perrors.EndOfInput(expected, lookahead.Col())
					res.Errors = append(res.Errors, err)
					d.record(res, matched, stack, lx, fmt.Sprintf("error: %s", err.Error()))
					return res
				}
				continue
			}

			err := perrors.MissingToken(top, lookahead.Lexeme(), lookahead.Col())
			res.Errors = append(res.Errors, err)
			stack.Pop()
			d.record(res, matched, stack, lx, fmt.Sprintf("synch: popped %s", top))

		default:
			expected := d.Analysis.First([]string{top}).Elements()
			err := perrors.UnexpectedToken(lookahead.Lexeme(), expected, lookahead.Col())
			res.Errors = append(res.Errors, err)
			d.record(res, matched, stack, lx, fmt.Sprintf("error: %s", err.Error()))
			lookahead, _ = advance()
		}

		if stack.Empty() {
			break
		}
	}

	return res
}

func (d *LL1Driver) record(res *Result, matched []string, stack util.Stack[string], lx *lex.Lexer, action string) {
	res.Trace.TopDown(joinLexemes(matched), stack.Of, lx.RemainingInputString(), action)
}

func joinLexemes(toks []string) string {
	out := ""
	for i, t := range toks {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
