package parse

import (
	"fmt"

	"github.com/dekarrin/parsrgen/internal/lex"
	"github.com/dekarrin/parsrgen/internal/perrors"
	"github.com/dekarrin/parsrgen/internal/trace"
)

// LRDriver drives either a canonical-LR(1) or an LALR(1) table — the two
// only differ in how their table was built, not in how parsing proceeds.
type LRDriver struct {
	Table     *LRParseTable
	Kind      string
	Conflicts []string
}

// Result is the outcome of driving a parser over one input: whether it
// accepted, the accumulated trace, and the accumulated errors (empty iff
// Accepted).
type Result struct {
	Accepted bool
	Trace    *trace.Recorder
	Errors   []error
}

// Parse drives the shift-reduce-accept loop (Dragon Book Algorithm 4.44)
// over lx, recording a bottom-up trace record at each step.
func (d *LRDriver) Parse(lx *lex.Lexer) *Result {
	res := &Result{Trace: trace.New()}

	stateStack := []int{d.Table.Initial()}
	var symbolStack []string

	advance := func() (lex.Token, error) {
		for {
			tok, err := lx.Next()
			if err != nil {
				res.Errors = append(res.Errors, err)
				d.recordStep(res, stateStack, symbolStack, lx, "lexical error, skipping")
				continue
			}
			return tok, nil
		}
	}

	lookahead, _ := advance()

	for {
		top := stateStack[len(stateStack)-1]

		action, ok := d.Table.Action(top, lookahead.Class().ID())
		if !ok {
			expected := d.Table.ExpectedTerminals()(top)
			var err error
			if lookahead.Class().ID() == "$" {
				err = perrors.EndOfInput(expected, lookahead.Col())
			} else {
				err = perrors.UnexpectedToken(lookahead.Lexeme(), expected, lookahead.Col())
			}
			res.Errors = append(res.Errors, err)
			d.recordStep(res, stateStack, symbolStack, lx, fmt.Sprintf("error: %s", err.Error()))
			return res
		}

		switch action.Type {
		case LRShift:
			symbolStack = append(symbolStack, lookahead.Lexeme())
			stateStack = append(stateStack, action.State)
			d.recordStep(res, stateStack, symbolStack, lx, fmt.Sprintf("shift %s", lookahead.Class().ID()))
			lookahead, _ = advance()

		case LRReduce:
			n := len(action.Production.RHS)
			if !action.Production.IsEpsilon() {
				stateStack = stateStack[:len(stateStack)-n]
				symbolStack = symbolStack[:len(symbolStack)-n]
			}
			newTop := stateStack[len(stateStack)-1]
			symbolStack = append(symbolStack, action.Production.LHS)
			gotoState, ok := d.Table.Goto(newTop, action.Production.LHS)
			if !ok {
				panic(fmt.Sprintf("no GOTO[%d, %s] after reducing by %s", newTop, action.Production.LHS, action.Production))
			}
			stateStack = append(stateStack, gotoState)
			d.recordStep(res, stateStack, symbolStack, lx, fmt.Sprintf("reduce %d (%s)", action.ProdIndex, action.Production))

		case LRAccept:
			d.recordStep(res, stateStack, symbolStack, lx, "accept")
			res.Accepted = len(res.Errors) == 0
			return res
		}
	}
}

func (d *LRDriver) recordStep(res *Result, stateStack []int, symbolStack []string, lx *lex.Lexer, action string) {
	res.Trace.BottomUp(stateStack, symbolStack, lx.RemainingInputString(), action)
}
