package grammar

// LeftFactor returns a new grammar equivalent to g with left factoring
// applied to every non-terminal's alternatives.
//
// Each pass groups a non-terminal's alternatives by their single leading
// symbol (an alternative with an empty RHS, the epsilon production, has no
// leading symbol and never joins a group). Any group with two or more
// members is split off into a fresh non-terminal whose own alternatives are
// the group's tails — and that fresh non-terminal is queued for its own
// factoring pass, exactly like any other non-terminal. It's this recursion,
// not a single pairwise best-prefix match, that reaches the "greatest
// common prefix" grouping spec.md §4.4/§9 calls for: a prefix shared by
// three alternatives but only two symbols long, versus a longer prefix two
// of those three also share beyond it, is discovered one symbol at a time,
// factoring the second symbol out of the tails only after the first symbol
// has already separated everything that doesn't share it. See DESIGN.md for
// the worked example this replaced a broken single-pass grouping for.
//
// Running this twice is a no-op: once no two alternatives of any
// non-terminal share a leading symbol, grouping finds nothing to factor.
func LeftFactor(g *Grammar) *Grammar {
	order := firstAppearanceOrder(g)
	knownNames := collectSymbolNames(g)

	prodsByLHS := map[string][]Production{}
	for _, nt := range order {
		prodsByLHS[nt] = append(prodsByLHS[nt], g.ProductionsFor(nt)...)
	}

	// queue of non-terminals still needing a factoring pass; fresh
	// non-terminals introduced during factoring are appended to both the
	// emission order and this queue, since their own alternative sets may
	// in turn need factoring — this is what carries the single-symbol
	// grouping below to a fixed point over the whole common prefix.
	queue := append([]string{}, order...)

	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]

		factored, newNTs := factorOnce(nt, prodsByLHS[nt], knownNames)
		// factored mixes nt's own productions with those of the fresh
		// non-terminals; file each under its own lhs so the fresh ones get
		// their own pass below.
		prodsByLHS[nt] = nil
		for _, p := range factored {
			prodsByLHS[p.LHS] = append(prodsByLHS[p.LHS], p)
		}

		for _, newNT := range newNTs {
			knownNames[newNT] = true
			order = append(order, newNT)
			queue = append(queue, newNT)
		}
	}

	final := dedupOrder(order, prodsByLHS)

	out := New()
	for _, nt := range final {
		for _, p := range prodsByLHS[nt] {
			out.AddRule(p.LHS, p.RHS)
		}
	}
	out.FinalizeTerminals()
	return out
}

// group is one bucket of prods sharing a single leading symbol, in the
// order that symbol was first seen; epsilon is its own always-singleton
// bucket, since it has no leading symbol to share.
type group struct {
	leadSymbol string
	isEpsilon  bool
	members    []Production
}

// factorOnce groups prods (all sharing lhs nt) by their leading symbol and
// replaces any group of two or more with a single production headed by that
// symbol plus a fresh non-terminal, whose own alternatives are the group's
// tails. It returns the replacement productions (nt's own together with
// those of any fresh non-terminals) plus the names of the fresh
// non-terminals introduced, so the caller can queue them for their own
// factoring pass.
func factorOnce(nt string, prods []Production, known map[string]bool) ([]Production, []string) {
	var groups []*group
	bySymbol := map[string]*group{}

	for _, p := range prods {
		if p.IsEpsilon() {
			groups = append(groups, &group{isEpsilon: true, members: []Production{p}})
			continue
		}
		lead := p.RHS[0]
		gr, ok := bySymbol[lead]
		if !ok {
			gr = &group{leadSymbol: lead}
			bySymbol[lead] = gr
			groups = append(groups, gr)
		}
		gr.members = append(gr.members, p)
	}

	var out []Production
	var fresh []string

	for _, gr := range groups {
		if gr.isEpsilon || len(gr.members) == 1 {
			out = append(out, gr.members[0])
			continue
		}

		factoredName := freshSymbol(nt+"^", known)
		known[factoredName] = true
		fresh = append(fresh, factoredName)

		out = append(out, Production{LHS: nt, RHS: []string{gr.leadSymbol, factoredName}})
		for _, m := range gr.members {
			tail := append([]string{}, m.RHS[1:]...)
			out = append(out, Production{LHS: factoredName, RHS: tail})
		}
	}

	return out, fresh
}

// dedupOrder collapses an emission order down to each non-terminal's first
// occurrence, while keeping every non-terminal that still has productions
// recorded for it.
func dedupOrder(order []string, prodsByLHS map[string][]Production) []string {
	seen := map[string]bool{}
	var out []string
	for _, nt := range order {
		if seen[nt] {
			continue
		}
		if _, ok := prodsByLHS[nt]; !ok {
			continue
		}
		seen[nt] = true
		out = append(out, nt)
	}
	return out
}
