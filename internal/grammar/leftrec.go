package grammar

// EliminateLeftRecursion returns a new grammar equivalent to g with all
// direct and indirect left recursion removed, following the standard
// ordered substitution: non-terminals are processed in order of first
// appearance, indirect left recursion through earlier non-terminals is
// substituted away first, then direct left recursion on the current
// non-terminal is eliminated by introducing a fresh primed non-terminal.
//
// Running this twice on an already-transformed grammar is a no-op: no
// production of the form A -> A alpha remains, so neither the indirect
// substitution step nor the direct-recursion split has anything to do.
func EliminateLeftRecursion(g *Grammar) *Grammar {
	order := firstAppearanceOrder(g)

	prodsByLHS := map[string][]Production{}
	for _, nt := range order {
		prodsByLHS[nt] = append(prodsByLHS[nt], g.ProductionsFor(nt)...)
	}

	knownNames := collectSymbolNames(g)

	for i, ai := range order {
		for j := 0; j < i; j++ {
			aj := order[j]
			var rewritten []Production
			for _, p := range prodsByLHS[ai] {
				if len(p.RHS) > 0 && p.RHS[0] == aj {
					gamma := p.RHS[1:]
					for _, q := range prodsByLHS[aj] {
						var newRHS []string
						if !q.IsEpsilon() {
							newRHS = append(newRHS, q.RHS...)
						}
						newRHS = append(newRHS, gamma...)
						rewritten = append(rewritten, Production{LHS: ai, RHS: newRHS})
					}
				} else {
					rewritten = append(rewritten, p)
				}
			}
			prodsByLHS[ai] = rewritten
		}

		var alphas [][]string
		var betas [][]string
		for _, p := range prodsByLHS[ai] {
			if len(p.RHS) > 0 && p.RHS[0] == ai {
				alphas = append(alphas, p.RHS[1:])
			} else {
				betas = append(betas, p.RHS)
			}
		}

		if len(alphas) == 0 {
			continue
		}

		aiPrime := freshSymbol(ai+"'", knownNames)
		knownNames[aiPrime] = true

		var newAi []Production
		for _, beta := range betas {
			rhs := append(append([]string{}, beta...), aiPrime)
			newAi = append(newAi, Production{LHS: ai, RHS: rhs})
		}
		prodsByLHS[ai] = newAi

		var newPrime []Production
		for _, alpha := range alphas {
			rhs := append(append([]string{}, alpha...), aiPrime)
			newPrime = append(newPrime, Production{LHS: aiPrime, RHS: rhs})
		}
		newPrime = append(newPrime, Production{LHS: aiPrime, RHS: nil})
		prodsByLHS[aiPrime] = newPrime

		order = insertAfter(order, ai, aiPrime)
	}

	out := New()
	for _, nt := range order {
		for _, p := range prodsByLHS[nt] {
			out.AddRule(p.LHS, p.RHS)
		}
	}
	out.FinalizeTerminals()
	return out
}

// firstAppearanceOrder returns the grammar's non-terminals ordered by the
// position of the first production that has them as lhs.
func firstAppearanceOrder(g *Grammar) []string {
	seen := map[string]bool{}
	var order []string
	for _, p := range g.Productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			order = append(order, p.LHS)
		}
	}
	return order
}

func insertAfter(order []string, after, newName string) []string {
	out := make([]string, 0, len(order)+1)
	for _, nt := range order {
		out = append(out, nt)
		if nt == after {
			out = append(out, newName)
		}
	}
	return out
}

func freshSymbol(base string, known map[string]bool) string {
	candidate := base
	for known[candidate] {
		candidate += "'"
	}
	return candidate
}

func collectSymbolNames(g *Grammar) map[string]bool {
	names := map[string]bool{}
	for _, nt := range g.NonTerminals.Elements() {
		names[nt] = true
	}
	for _, t := range g.Terminals.Elements() {
		names[t] = true
	}
	return names
}
