// Package session ties a lexer, a grammar's derived analysis, a parsing
// table, and a trace recorder together for the lifetime of one parse run,
// exposing New*Session constructors as the entry points over the lower-level
// grammar/automaton/parse packages.
package session

import (
	"github.com/dekarrin/parsrgen/internal/automaton"
	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/lex"
	"github.com/dekarrin/parsrgen/internal/parse"
	"github.com/dekarrin/parsrgen/internal/trace"
	"github.com/google/uuid"
)

// Mode names which parsing strategy a Session drives.
type Mode string

const (
	ModeRecursiveDescent Mode = "recursive-descent"
	ModeLL1              Mode = "ll1"
	ModeCanonicalLR1     Mode = "clr1"
	ModeLALR1            Mode = "lalr1"
)

type driver interface {
	Parse(lx *lex.Lexer) *parse.Result
}

// Session owns exactly one lexer, one grammar, one derived analysis, one
// table, and one trace — nothing is shared across sessions. A zero-value
// Session is not usable; build one
// with one of the New*Session constructors.
type Session struct {
	ID   uuid.UUID
	Mode Mode

	Grammar  *grammar.Grammar
	Analysis *grammar.Analysis

	// LL1Table is populated only for ModeLL1.
	LL1Table *parse.LL1Table

	// LRTable and Collection are populated only for ModeCanonicalLR1 and
	// ModeLALR1.
	LRTable    *parse.LRParseTable
	Collection *automaton.Collection

	// Conflicts holds any ACTION/GOTO conflicts merging introduced;
	// always empty outside ModeLALR1.
	Conflicts []string

	driver driver
	lexer  *lex.Lexer
	result *parse.Result
}

func newSession(mode Mode, g *grammar.Grammar) *Session {
	return &Session{ID: uuid.New(), Mode: mode, Grammar: g}
}

// NewRecursiveDescentSession builds a recursive-descent session over g.
// Returns an error if g is not LL(1), the property the driver's first-match
// policy depends on.
func NewRecursiveDescentSession(g *grammar.Grammar) (*Session, error) {
	d, err := parse.NewRDDriver(g)
	if err != nil {
		return nil, err
	}
	s := newSession(ModeRecursiveDescent, g)
	s.Analysis = d.Analysis
	s.driver = d
	return s, nil
}

// NewLL1Session builds a table-driven LL(1) session over g. Returns an error
// if g is not LL(1).
func NewLL1Session(g *grammar.Grammar) (*Session, error) {
	d, err := parse.NewLL1Driver(g)
	if err != nil {
		return nil, err
	}
	s := newSession(ModeLL1, g)
	s.Analysis = d.Analysis
	s.LL1Table = d.Table
	s.driver = d
	return s, nil
}

// NewCanonicalLR1Session builds a canonical-LR(1) session over g. Returns an
// error if g is not LR(1).
func NewCanonicalLR1Session(g *grammar.Grammar) (*Session, error) {
	d, err := parse.GenerateCanonicalLR1Parser(g)
	if err != nil {
		return nil, err
	}
	s := newSession(ModeCanonicalLR1, g)
	s.LRTable = d.Table
	s.Collection = d.Table.Collection
	s.Analysis = d.Table.Collection.Analysis
	s.driver = d
	return s, nil
}

// NewLALR1Session builds an LALR(1) session over g by merging the canonical
// LR(1) collection by core. Unlike the canonical constructor this never
// fails on a conflict; check s.Conflicts after construction to know whether
// merging introduced any.
func NewLALR1Session(g *grammar.Grammar) (*Session, error) {
	d, err := parse.GenerateLALR1Parser(g)
	if err != nil {
		return nil, err
	}
	s := newSession(ModeLALR1, g)
	s.LRTable = d.Table
	s.Collection = d.Table.Collection
	s.Analysis = d.Table.Collection.Analysis
	s.Conflicts = d.Conflicts
	s.driver = d
	return s, nil
}

// Parse lexes input and drives the session's parser over it, recording the
// result for later retrieval via Accepted, Errors, Trace, and SymbolTable.
func (s *Session) Parse(input string) *parse.Result {
	s.lexer = lex.NewLexer(input)
	s.result = s.driver.Parse(s.lexer)
	return s.result
}

// Accepted reports whether the most recent Parse call accepted its input.
// Panics if Parse has not yet been called.
func (s *Session) Accepted() bool {
	return s.result.Accepted
}

// Errors returns the diagnostic errors accumulated by the most recent
// Parse call, in the order they were raised.
func (s *Session) Errors() []error {
	return s.result.Errors
}

// Trace returns the per-step trace records produced by the most recent
// Parse call, in order.
func (s *Session) Trace() []trace.Record {
	return s.result.Trace.Records()
}

// SymbolTable returns the symbol table accumulated by the most recent
// Parse call's lexer.
func (s *Session) SymbolTable() *lex.SymbolTable {
	return s.lexer.SymbolTable()
}

// Close releases any resources the session holds. It is a no-op: a Session
// never acquires an OS handle, and Go's garbage collector reclaims
// everything else, but the method exists for interface symmetry with
// callers used to an explicit resource-scoping pattern.
func (s *Session) Close() error {
	return nil
}
