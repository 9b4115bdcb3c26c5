// Package perrors defines the error values produced while lexing, loading a
// grammar, or parsing input, in the exact string forms consumers match
// against.
package perrors

import "fmt"

// lexError is a lexical-analysis failure tied to a specific column of input.
type lexError struct {
	msg    string
	column int
	wrap   error
}

func (e *lexError) Error() string {
	return e.msg
}

// Column returns the 1-indexed column the error occurred at.
func (e *lexError) Column() int {
	return e.column
}

func (e *lexError) Unwrap() error {
	return e.wrap
}

// Lexical returns an error describing why the input could not be tokenized
// at the given column.
func Lexical(description string, column int) error {
	return &lexError{
		msg:    fmt.Sprintf("Lexical Error: %s Column number: [%d]", description, column),
		column: column,
	}
}

// Lexicalf is Lexical with a format string for the description.
func Lexicalf(column int, format string, a ...interface{}) error {
	return Lexical(fmt.Sprintf(format, a...), column)
}

// syntaxError is a parse-time failure tied to a specific column of input.
type syntaxError struct {
	msg    string
	column int
	wrap   error
}

func (e *syntaxError) Error() string {
	return e.msg
}

func (e *syntaxError) Column() int {
	return e.column
}

func (e *syntaxError) Unwrap() error {
	return e.wrap
}

// Syntax returns an error describing why input could not be parsed at the
// given column.
func Syntax(description string, column int) error {
	return &syntaxError{
		msg:    fmt.Sprintf("Syntax Error: %s Column number: [%d]", description, column),
		column: column,
	}
}

// Syntaxf is Syntax with a format string for the description.
func Syntaxf(column int, format string, a ...interface{}) error {
	return Syntax(fmt.Sprintf(format, a...), column)
}

// UnexpectedToken builds the standard "unexpected token" syntax error, the
// message produced when a driver's lookahead does not match any expected
// symbol.
func UnexpectedToken(lexeme string, expected []string, column int) error {
	return Syntaxf(column, "Unexpected token '%s'. Expected one of: %s.", lexeme, quoteJoin(expected))
}

// MissingToken builds the standard "missing token" syntax error produced by
// the LL(1) driver when it pops a stack symbol it cannot match: a terminal
// that differs from the lookahead, or a non-terminal whose table cell for
// the lookahead is a synchronization marker.
func MissingToken(missing, before string, column int) error {
	return Syntaxf(column, "Missing '%s' before '%s'.", missing, before)
}

// EndOfInput builds the syntax error produced when input ends before the
// stack (LL(1)) or state machine (LR) has reached an accepting configuration.
func EndOfInput(expected []string, column int) error {
	return Syntaxf(column, "Unexpected end of input. Expected one of: %s.", quoteJoin(expected))
}

// NotLL1 reports that a grammar failed the LL(1) property check, naming the
// symbol and the conflicting first/follow sets that caused the failure.
func NotLL1(reason string) error {
	return fmt.Errorf("grammar is not LL(1): %s", reason)
}

// LRConflict reports that constructing an ACTION table produced more than
// one entry for some (state, terminal) pair.
func LRConflict(state, symbol, existing, incoming string) error {
	return fmt.Errorf("grammar is not LR(1): found both %s and %s actions for input %q in state %s", existing, incoming, symbol, state)
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + it + "'"
	}
	return joinOxford(quoted)
}

func joinOxford(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		out := ""
		for i, it := range items {
			if i == len(items)-1 {
				out += "or " + it
			} else {
				out += it + ", "
			}
		}
		return out
	}
}
