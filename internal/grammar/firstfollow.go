package grammar

import "github.com/dekarrin/parsrgen/internal/util"

// Analysis holds the FIRST and FOLLOW sets computed for a grammar's symbols.
// Both are computed once, by explicit worklist fixed-point iteration rather
// than on-demand recursion, so that mutually-recursive nullable
// non-terminals are handled correctly (see the correctness note in
// ComputeFirstFollow).
type Analysis struct {
	g       *Grammar
	first   map[string]util.StringSet // per single symbol (terminal or non-terminal)
	follow  map[string]util.StringSet // per non-terminal
	firstMemo map[string]util.StringSet // per whitespace-joined sequence, on demand
}

// ComputeFirstFollow runs FIRST and FOLLOW to a fixed point over g.
//
// A one-pass recursive computation of FOLLOW is insufficient whenever two
// non-terminals are mutually left-nullable-dependent on each other (A's
// FOLLOW depends on B's, and vice versa, before either stabilizes), so this
// repeats full sweeps over every production until neither FIRST nor FOLLOW
// changes — each sweep only ever grows the sets, so termination is
// guaranteed by the sets' finite universe.
func ComputeFirstFollow(g *Grammar) *Analysis {
	a := &Analysis{
		g:         g,
		first:     map[string]util.StringSet{},
		follow:    map[string]util.StringSet{},
		firstMemo: map[string]util.StringSet{},
	}

	for _, t := range g.Terminals.Elements() {
		a.first[t] = util.StringSetOf([]string{t})
	}
	for _, nt := range g.NonTerminals.Elements() {
		a.first[nt] = util.NewStringSet()
	}
	for _, nt := range g.NonTerminals.Elements() {
		a.follow[nt] = util.NewStringSet()
	}
	a.follow[g.StartSymbol()].Add(EndOfInput)

	for {
		changed := false

		for _, p := range g.Productions {
			before := a.first[p.LHS].Len()
			seqFirst := a.sequenceFirst(p.RHS)
			a.first[p.LHS].AddAll(seqFirst)
			if a.first[p.LHS].Len() != before {
				changed = true
			}
		}

		for _, p := range g.Productions {
			for i, sym := range p.RHS {
				if !g.NonTerminals.Has(sym) {
					continue
				}
				beta := p.RHS[i+1:]
				betaFirst := a.sequenceFirst(beta)

				before := a.follow[sym].Len()

				for _, t := range betaFirst.Elements() {
					if t != Epsilon {
						a.follow[sym].Add(t)
					}
				}
				if betaFirst.Has(Epsilon) {
					a.follow[sym].AddAll(a.follow[p.LHS])
				}

				if a.follow[sym].Len() != before {
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}

	return a
}

// sequenceFirst computes FIRST(X1 X2 ... Xk) from the (possibly still
// growing, during the fixed-point loop) per-symbol FIRST sets in a.first.
// An empty seq (epsilon) has FIRST = {epsilon}.
func (a *Analysis) sequenceFirst(seq []string) util.StringSet {
	result := util.NewStringSet()

	if len(seq) == 0 {
		result.Add(Epsilon)
		return result
	}

	allNullableSoFar := true
	for _, sym := range seq {
		if sym == Epsilon {
			continue
		}
		symFirst := a.first[sym]
		if symFirst == nil {
			symFirst = util.NewStringSet()
		}
		for _, t := range symFirst.Elements() {
			if t != Epsilon {
				result.Add(t)
			}
		}
		if !symFirst.Has(Epsilon) {
			allNullableSoFar = false
			break
		}
	}
	if allNullableSoFar {
		result.Add(Epsilon)
	}

	return result
}

// FirstSymbol returns FIRST(sym) for a single terminal, non-terminal, or
// epsilon.
func (a *Analysis) FirstSymbol(sym string) util.StringSet {
	if sym == Epsilon {
		return util.StringSetOf([]string{Epsilon})
	}
	if s, ok := a.first[sym]; ok {
		return s.Copy()
	}
	return util.NewStringSet()
}

// First returns FIRST(seq) for an arbitrary symbol sequence, memoized keyed
// by the sequence's exact spelling.
func (a *Analysis) First(seq []string) util.StringSet {
	key := joinSeq(seq)
	if cached, ok := a.firstMemo[key]; ok {
		return cached.Copy()
	}
	result := a.sequenceFirst(seq)
	a.firstMemo[key] = result
	return result.Copy()
}

// Follow returns FOLLOW(nt).
func (a *Analysis) Follow(nt string) util.StringSet {
	if s, ok := a.follow[nt]; ok {
		return s.Copy()
	}
	return util.NewStringSet()
}

// Nullable returns whether seq can derive the empty string.
func (a *Analysis) Nullable(seq []string) bool {
	return a.sequenceFirst(seq).Has(Epsilon)
}

func joinSeq(seq []string) string {
	if len(seq) == 0 {
		return Epsilon
	}
	out := seq[0]
	for _, s := range seq[1:] {
		out += " " + s
	}
	return out
}
