package automaton

import (
	"sort"
	"strconv"

	"github.com/dekarrin/parsrgen/internal/util"
)

// MergeByCore collapses a canonical LR(1) collection into its LALR(1)
// collection: states sharing an identical core (set of production+dot
// pairs, ignoring lookaheads) are merged into one state whose per-core
// lookahead sets are the union of the lookaheads from every state in the
// group, and every transition is rewritten to target the merged state ids.
//
// This does not implement the kernel/lookahead-propagation algorithm
// (Dragon Book Algorithm 4.63) — see DESIGN.md for why — and instead builds
// on an already-complete canonical collection, which costs more memory for
// large grammars but is substantially simpler and was actually finished.
func MergeByCore(col *Collection) *Collection {
	coreSigToGroup := map[string][]int{}
	var order []string
	for _, s := range col.States {
		sig := coreOnlySignature(s)
		if _, ok := coreSigToGroup[sig]; !ok {
			order = append(order, sig)
		}
		coreSigToGroup[sig] = append(coreSigToGroup[sig], s.ID)
	}

	// groups ordered by the smallest original state id they contain, so
	// state 0 (the start state) still maps to merged state 0.
	sort.Slice(order, func(i, j int) bool {
		return minInt(coreSigToGroup[order[i]]) < minInt(coreSigToGroup[order[j]])
	})

	oldToNew := map[int]int{}
	merged := &Collection{
		Grammar:  col.Grammar,
		Analysis: col.Analysis,
		gotoMap:  map[int]map[string]int{},
	}

	for _, sig := range order {
		group := coreSigToGroup[sig]
		newID := len(merged.States)
		items := map[Core]util.StringSet{}
		for _, oldID := range group {
			oldToNew[oldID] = newID
			for core, la := range col.States[oldID].Items {
				if items[core] == nil {
					items[core] = util.NewStringSet()
				}
				items[core].AddAll(la)
			}
		}
		merged.States = append(merged.States, &State{ID: newID, Items: items})
	}

	merged.StartState = oldToNew[col.StartState]

	for s, row := range col.gotoMap {
		newS := oldToNew[s]
		for sym, target := range row {
			newTarget := oldToNew[target]
			if merged.gotoMap[newS] == nil {
				merged.gotoMap[newS] = map[string]int{}
			}
			merged.gotoMap[newS][sym] = newTarget
		}
	}

	return merged
}

func coreOnlySignature(s *State) string {
	cores := s.SortedCores()
	sig := ""
	for _, c := range cores {
		sig += strconv.Itoa(c.ProdIndex) + "." + strconv.Itoa(c.Dot) + ";"
	}
	return sig
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
