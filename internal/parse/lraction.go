package parse

import (
	"fmt"

	"github.com/dekarrin/parsrgen/internal/grammar"
)

// LRActionType distinguishes the four kinds of LR parse-table cell.
type LRActionType int

const (
	LRError LRActionType = iota
	LRShift
	LRReduce
	LRAccept
)

func (t LRActionType) String() string {
	switch t {
	case LRShift:
		return "shift"
	case LRReduce:
		return "reduce"
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

// LRAction is one ACTION-table cell: a shift to a state, a reduce by a
// production, an accept, or an error.
type LRAction struct {
	Type       LRActionType
	State      int               // valid when Type == LRShift
	Production grammar.Production // valid when Type == LRReduce
	ProdIndex  int                // valid when Type == LRReduce
}

func (a LRAction) String() string {
	switch a.Type {
	case LRShift:
		return fmt.Sprintf("shift %d", a.State)
	case LRReduce:
		return fmt.Sprintf("reduce %d (%s)", a.ProdIndex, a.Production)
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

func (a LRAction) Equal(o LRAction) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case LRShift:
		return a.State == o.State
	case LRReduce:
		return a.ProdIndex == o.ProdIndex
	default:
		return true
	}
}

// conflictDescription names the kind of conflict detected when a table
// build attempts to write two different actions into the same cell.
func conflictDescription(a LRAction) string {
	switch a.Type {
	case LRShift:
		return fmt.Sprintf("shift(%d)", a.State)
	case LRReduce:
		return fmt.Sprintf("reduce(%d)", a.ProdIndex)
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}
