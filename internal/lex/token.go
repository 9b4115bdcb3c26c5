// Package lex implements the lexical analysis phase: scanning an input
// string into a stream of classified tokens while building a symbol table of
// the distinct identifiers, literals, and keywords encountered.
package lex

import (
	"fmt"
	"strings"
)

// TokenClass identifies the lexical category a Token belongs to (an
// identifier, a keyword, an operator, an end-of-input marker, and so on).
type TokenClass interface {
	// ID returns the class's unique identifier, used as the terminal symbol
	// name in a grammar.
	ID() string

	// Human returns a human-readable name for the class, used in error
	// messages.
	Human() string

	Equal(o any) bool
}

type simpleClass string

func (c simpleClass) ID() string     { return string(c) }
func (c simpleClass) Human() string  { return string(c) }
func (c simpleClass) Equal(o any) bool {
	other, ok := o.(TokenClass)
	if !ok {
		return false
	}
	return other.ID() == c.ID()
}

// ClassOf returns the default TokenClass for the given terminal name; ID and
// Human are both the name itself.
func ClassOf(name string) TokenClass {
	return simpleClass(name)
}

// Well-known token classes. The lexer produces the end-of-input, identifier
// and number classes; it does not produce tokens of the three invalid-*
// classes, since it reports malformed input as a lexical error returned from
// Next or Peek instead.
const (
	ClassEndOfInput = simpleClass("$")
	ClassIdentifier = simpleClass("id")
	ClassIntNum     = simpleClass("intNum")
	ClassFloatNum   = simpleClass("floatNum")
	ClassInvalidNum = simpleClass("invalid-num")
	ClassInvalidID  = simpleClass("invalid-id")
	ClassInvalidChr = simpleClass("invalid-char")
)

// Token is a single lexeme read from input along with its class and the
// position it was found at.
type Token struct {
	class  TokenClass
	lexeme string
	// col is the 1-indexed character offset of the first rune of the
	// lexeme within the overall input string.
	col int
}

// Class returns the token's class.
func (t Token) Class() TokenClass { return t.class }

// Lexeme returns the token's literal text as found in the input.
func (t Token) Lexeme() string { return t.lexeme }

// Col returns the 1-indexed column (character offset within the input) that
// the token's first character occupies.
func (t Token) Col() int { return t.col }

func (t Token) String() string {
	return fmt.Sprintf("(%s %q)", t.class.ID(), t.lexeme)
}

// IsError returns whether t is one of the lexer's invalid-token classes.
func (t Token) IsError() bool {
	switch t.class.ID() {
	case ClassInvalidNum.ID(), ClassInvalidID.ID(), ClassInvalidChr.ID():
		return true
	}
	return false
}

// EndOfInput is the sentinel token the lexer and every driver treat as "no
// more input."
var EndOfInput = Token{class: ClassEndOfInput, lexeme: "$"}

// classList renders a slice of TokenClass IDs for diagnostics.
func classList(classes []TokenClass) string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.ID()
	}
	return strings.Join(names, ", ")
}
