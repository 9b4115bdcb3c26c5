package grammar

import (
	"fmt"
	"strings"
)

// MaxLineLength is the longest a single grammar-file line may be.
const MaxLineLength = 99

// Parse reads a textual grammar, one rule per line in the form
// "LHS -> RHS1 | RHS2 | ... | RHSk", and returns the Grammar it describes.
// Blank trailing lines are ignored. The lhs of the first rule becomes the
// grammar's start symbol.
func Parse(text string) (*Grammar, error) {
	g := New()

	lines := strings.Split(text, "\n")
	// drop trailing blank lines
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	for lineNum, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) > MaxLineLength {
			return nil, fmt.Errorf("grammar line %d exceeds maximum length of %d characters", lineNum+1, MaxLineLength)
		}

		lhs, alts, err := parseRuleLine(line)
		if err != nil {
			return nil, fmt.Errorf("grammar line %d: %w", lineNum+1, err)
		}

		for _, rhs := range alts {
			g.AddRule(lhs, rhs)
		}
	}

	g.FinalizeTerminals()

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// parseRuleLine splits a single "LHS -> RHS1 | RHS2 | ..." line into its lhs
// and the symbol sequences of each alternative.
func parseRuleLine(line string) (lhs string, alts [][]string, err error) {
	const arrow = "->"

	arrowIdx := strings.Index(line, arrow)
	if arrowIdx < 0 {
		return "", nil, fmt.Errorf("missing '->' in rule %q", line)
	}

	lhs = strings.TrimSpace(line[:arrowIdx])
	if lhs == "" {
		return "", nil, fmt.Errorf("rule %q has no left-hand side", line)
	}
	if len(strings.Fields(lhs)) != 1 {
		return "", nil, fmt.Errorf("left-hand side %q must be a single non-terminal", lhs)
	}

	rhsPart := line[arrowIdx+len(arrow):]
	rawAlts := strings.Split(rhsPart, "|")

	for _, raw := range rawAlts {
		fields := strings.Fields(raw)
		if len(fields) == 1 && fields[0] == Epsilon {
			alts = append(alts, []string{})
			continue
		}
		alts = append(alts, fields)
	}

	return lhs, alts, nil
}
