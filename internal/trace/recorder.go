// Package trace records the per-step history of a parse: for top-down
// drivers (recursive-descent, LL(1)) the matched prefix, symbol stack, and
// remaining input at each step; for bottom-up drivers (LR) the state stack,
// symbol stack, and remaining input. The record list is append-only and
// published as part of a session's data once the parse completes.
package trace

import "fmt"

// Record is one step of a parse. Only the fields relevant to the driver
// kind that produced it are populated; StateStack is nil for top-down
// records and MatchedPrefix is empty for bottom-up ones.
type Record struct {
	// MatchedPrefix is the input consumed so far, rendered as lexemes
	// separated by spaces (top-down only).
	MatchedPrefix string

	// Stack is the symbol stack, bottom first (the top of the stack is the
	// last element) — what's left to match (top-down only).
	Stack []string

	// StateStack is the LR state stack, bottom first (bottom-up only).
	StateStack []int

	// SymbolStack is the LR symbol stack, bottom first (bottom-up only).
	SymbolStack []string

	// RemainingInput is the unconsumed suffix of the original input,
	// computed by subtracting what's been consumed rather than mutating a
	// shared buffer.
	RemainingInput string

	// Action describes what this step did, e.g. "shift id", "reduce 3 (E ->
	// E + T)", "match +", "error: unexpected token".
	Action string
}

func (r Record) String() string {
	if r.StateStack != nil {
		return fmt.Sprintf("states=%v symbols=%v remaining=%q : %s", r.StateStack, r.SymbolStack, r.RemainingInput, r.Action)
	}
	return fmt.Sprintf("matched=%q stack=%v remaining=%q : %s", r.MatchedPrefix, r.Stack, r.RemainingInput, r.Action)
}

// Recorder accumulates Records for a single parse session. It is not safe
// for concurrent use — per the session model, a Recorder belongs to exactly
// one parse running on exactly one goroutine.
type Recorder struct {
	records []Record
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// TopDown appends a top-down step record.
func (r *Recorder) TopDown(matchedPrefix string, stack []string, remaining, action string) {
	stackCopy := make([]string, len(stack))
	copy(stackCopy, stack)
	r.records = append(r.records, Record{
		MatchedPrefix:  matchedPrefix,
		Stack:          stackCopy,
		RemainingInput: remaining,
		Action:         action,
	})
}

// BottomUp appends a bottom-up step record.
func (r *Recorder) BottomUp(stateStack []int, symbolStack []string, remaining, action string) {
	stateCopy := make([]int, len(stateStack))
	copy(stateCopy, stateStack)
	symCopy := make([]string, len(symbolStack))
	copy(symCopy, symbolStack)
	r.records = append(r.records, Record{
		StateStack:     stateCopy,
		SymbolStack:    symCopy,
		RemainingInput: remaining,
		Action:         action,
	})
}

// Records returns every record appended so far, in order.
func (r *Recorder) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns how many records have been appended.
func (r *Recorder) Len() int {
	return len(r.records)
}
