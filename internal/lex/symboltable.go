package lex

// SymbolTable collects the distinct tokens encountered while lexing.
// Token classes that only ever carry one value (keywords, operators) are
// deduplicated by class, while value-bearing classes (identifiers, numbers)
// are deduplicated by spelling so repeated uses of the same identifier
// don't create duplicate entries.
type SymbolTable struct {
	entries []Token
}

// NewSymbolTable returns a table pre-seeded with the keyword set a program's
// lexer recognizes.
func NewSymbolTable(keywords []string) *SymbolTable {
	t := &SymbolTable{}
	for _, kw := range keywords {
		t.entries = append(t.entries, Token{class: simpleClass(kw), lexeme: kw})
	}
	return t
}

// SearchByClass returns the entry with the given class ID, if any.
func (t *SymbolTable) SearchByClass(classID string) (Token, bool) {
	for _, tok := range t.entries {
		if tok.class.ID() == classID {
			return tok, true
		}
	}
	return Token{}, false
}

// SearchByLexeme returns the entry with the given spelling, if any.
func (t *SymbolTable) SearchByLexeme(lexeme string) (Token, bool) {
	for _, tok := range t.entries {
		if tok.lexeme == lexeme {
			return tok, true
		}
	}
	return Token{}, false
}

// Insert adds tok to the table. No dedup check is performed; callers decide
// via SearchByClass/SearchByLexeme whether an insert is needed.
func (t *SymbolTable) Insert(tok Token) {
	t.entries = append(t.entries, tok)
}

// Remove deletes the first entry with the given spelling, reporting whether
// anything was removed.
func (t *SymbolTable) Remove(lexeme string) bool {
	for i, tok := range t.entries {
		if tok.lexeme == lexeme {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns every token recorded in the table, in insertion order.
func (t *SymbolTable) Entries() []Token {
	out := make([]Token, len(t.entries))
	copy(out, t.entries)
	return out
}

// Count returns the number of entries in the table.
func (t *SymbolTable) Count() int {
	return len(t.entries)
}
