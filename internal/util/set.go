package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a map[string]bool with methods added to make it behave like a
// proper set. Every set this module ever needs — FIRST/FOLLOW sets,
// terminal/non-terminal vocabularies, LR(1) item lookaheads, conflict
// tracking — is a set of grammar symbols, so unlike the wider collection
// library this is descended from, there is exactly one concrete set type
// here rather than a family of generic ones.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded with the keys of
// one or more maps (only the keys are used; the bool values are ignored).
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// StringSetOf returns a StringSet containing exactly the elements of sl.
// Returns nil if sl is nil.
func StringSetOf(sl []string) StringSet {
	if sl == nil {
		return nil
	}

	s := StringSet{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

// Add adds value to the set. Has no effect if it's already present.
func (s StringSet) Add(value string) {
	s[value] = true
}

// Remove removes value from the set. Has no effect if it isn't present.
func (s StringSet) Remove(value string) {
	delete(s, value)
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

// Len returns the number of elements in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Empty returns whether the set has no elements.
func (s StringSet) Empty() bool {
	return s.Len() == 0
}

// Any returns whether any element in the set satisfies predicate.
func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Copy returns a set with the same elements, backed by a distinct map.
func (s StringSet) Copy() StringSet {
	newS := NewStringSet()
	for k := range s {
		newS[k] = true
	}
	return newS
}

// AddAll adds every element of s2 to s.
func (s StringSet) AddAll(s2 StringSet) {
	for k := range s2 {
		s.Add(k)
	}
}

// Union returns a new set containing every element of s or s2 (or both).
func (s StringSet) Union(s2 StringSet) StringSet {
	newSet := s.Copy()
	newSet.AddAll(s2)
	return newSet
}

// Intersection returns a new set containing the elements present in both s
// and s2.
func (s StringSet) Intersection(s2 StringSet) StringSet {
	newSet := NewStringSet()
	for k := range s {
		if s2.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Difference returns a new set containing the elements of s that are not in
// s2.
func (s StringSet) Difference(s2 StringSet) StringSet {
	newSet := s.Copy()
	for k := range s2 {
		newSet.Remove(k)
	}
	return newSet
}

// DisjointWith returns whether s and s2 share no elements.
func (s StringSet) DisjointWith(s2 StringSet) bool {
	for k := range s {
		if s2.Has(k) {
			return false
		}
	}
	return true
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on; use StringOrdered for a stable
// rendering.
func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}

	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

// StringOrdered shows the contents of the set with its elements
// alphabetized, the rendering used for FIRST/FOLLOW sets and parse-table
// cells so that output is reproducible across runs.
func (s StringSet) StringOrdered() string {
	convs := s.Elements()
	sort.Strings(convs)
	return braced(convs)
}

// String shows the contents of the set. Elements are not guaranteed to be
// in any particular order; see StringOrdered for deterministic output.
func (s StringSet) String() string {
	return braced(s.Elements())
}

func braced(items []string) string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%v", item))
		if i+1 < len(items) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// Equal returns whether s and o contain the same elements. Anything other
// than a StringSet (or non-nil *StringSet) is never equal.
func (s StringSet) Equal(o any) bool {
	other, ok := o.(StringSet)
	if !ok {
		otherPtr, ok := o.(*StringSet)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}
