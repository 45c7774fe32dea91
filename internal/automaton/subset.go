package automaton

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/scanforge/scanforge/internal/charclass"
	"github.com/scanforge/scanforge/internal/rxnfa"
)

// BuildFromNFA performs subset construction over nfa: each DFA state is
// a set of NFA states reachable by the same run of input, closed under
// epsilon/split edges. Configurations are deduplicated by a
// sorted-StateID-slice key; a queue drives discovery of new ones.
//
// registry is consulted (and written to) to split a state's possibly
// overlapping outgoing classes into the disjoint atomic alphabet
// disjointAtoms needs: see that function's doc comment for why classes
// cannot be treated as already disjoint here.
func BuildFromNFA(nfa rxnfa.NFA, registry *charclass.Registry) DFA {
	closureBuf := newSparseSet(len(nfa.States))

	startClosure := closure(nfa, []rxnfa.StateID{nfa.Start}, closureBuf)
	startKey := configKey(startClosure)

	seen := map[string]StateID{startKey: 0}
	queue := [][]rxnfa.StateID{startClosure}
	var states []State

	for i := 0; i < len(queue); i++ {
		config := queue[i]
		states = append(states, buildState(nfa, config))

		byClass := map[charclass.ID][]rxnfa.StateID{}
		for _, id := range config {
			s := nfa.States[id]
			if s.Kind == rxnfa.KindClass {
				byClass[s.Class] = append(byClass[s.Class], s.Next)
			}
		}

		for _, a := range disjointAtoms(registry, byClass) {
			nextConfig := closure(nfa, a.targets, closureBuf)
			key := configKey(nextConfig)
			nextID, ok := seen[key]
			if !ok {
				nextID = StateID(len(queue))
				seen[key] = nextID
				queue = append(queue, nextConfig)
			}
			states[i].Transitions = append(states[i].Transitions, Transition{Class: a.class, Next: nextID})
		}
		sort.Slice(states[i].Transitions, func(a, b int) bool {
			return states[i].Transitions[a].Class < states[i].Transitions[b].Class
		})
	}

	return DFA{States: states, Start: 0}
}

// atom is one member of the disjoint alphabet disjointAtoms computes for a
// single DFA state's outgoing edges: an interned class ID covering exactly
// the runes that fire the same set of NFA successors.
type atom struct {
	class   charclass.ID
	targets []rxnfa.StateID
}

// disjointAtoms splits a state's outgoing classes (byClass, keyed by the
// possibly-overlapping charclass.ID the parser interned) into a disjoint
// atomic alphabet before computing successor configurations.
//
// charclass.Registry deliberately does not guarantee its interned classes
// are pairwise disjoint (registry.go interns "[a-z]" and the singleton "i"
// as separate IDs even though "i" is a member of "[a-z]"). Grouping
// successors "by class ID present on any transition" therefore cannot mean
// grouping by the original class literally: a rune belonging to two
// overlapping classes must follow both of their edges, and treating the
// classes as independent alternatives (as if they partitioned the rune
// space) silently drops whichever edge is visited second.
//
// The fix is alphabet reduction: every range endpoint of every class
// present is a potential boundary where membership can change, so sorting
// and deduplicating those endpoints yields a set of atomic ranges that no
// original class's boundary falls inside. A single representative rune
// per atom then safely stands in for the whole atom when testing which
// original classes contain it, and the atom's target config is the union
// of every one of those classes' successors, closed the same way a single
// class's successors would be, not just the first class found.
func disjointAtoms(registry *charclass.Registry, byClass map[charclass.ID][]rxnfa.StateID) []atom {
	if len(byClass) == 0 {
		return nil
	}

	classIDs := make([]charclass.ID, 0, len(byClass))
	for c := range byClass {
		classIDs = append(classIDs, c)
	}
	sort.Slice(classIDs, func(a, b int) bool { return classIDs[a] < classIDs[b] })

	boundarySet := map[rune]bool{}
	for _, c := range classIDs {
		set, _ := registry.ClassSet(c)
		for _, r := range set.Ranges {
			boundarySet[r.Lo] = true
			if r.Hi < unicode.MaxRune {
				boundarySet[r.Hi+1] = true
			}
		}
	}
	points := make([]rune, 0, len(boundarySet))
	for p := range boundarySet {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

	var atoms []atom
	for i, lo := range points {
		hi := rune(unicode.MaxRune)
		if i+1 < len(points) {
			hi = points[i+1] - 1
		}
		if hi < lo {
			continue
		}

		rep := lo
		var targets []rxnfa.StateID
		member := false
		for _, c := range classIDs {
			set, _ := registry.ClassSet(c)
			if set.Contains(rep) {
				member = true
				targets = append(targets, byClass[c]...)
			}
		}
		if !member {
			continue
		}

		atomID, err := registry.Intern(charclass.NewRangeSet([]charclass.Range{{Lo: lo, Hi: hi}}))
		if err != nil {
			continue
		}
		atoms = append(atoms, atom{class: atomID, targets: targets})
	}
	return atoms
}

// closure computes the epsilon/split closure of roots, returning the
// sorted set of reachable rxnfa.StateIDs (including KindClass and
// KindMatch states themselves, which are the "visible" members of a DFA
// configuration; only KindEpsilon/KindSplit are transparent).
func closure(nfa rxnfa.NFA, roots []rxnfa.StateID, buf *sparseSet) []rxnfa.StateID {
	buf.Clear()
	stack := append([]rxnfa.StateID(nil), roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !buf.Insert(id) {
			continue
		}
		s := nfa.States[id]
		switch s.Kind {
		case rxnfa.KindEpsilon:
			stack = append(stack, s.Next)
		case rxnfa.KindSplit:
			stack = append(stack, s.Next, s.Alt)
		}
	}
	out := make([]rxnfa.StateID, 0, len(buf.Values()))
	for _, v := range buf.Values() {
		out = append(out, rxnfa.StateID(v))
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// buildState collects every Accept simultaneously reachable in a
// configuration, sorted ascending by priority so the earliest-declared
// pattern (the one that wins an ordinary tie) is tried first.
func buildState(nfa rxnfa.NFA, config []rxnfa.StateID) State {
	var accepts []Accept
	for _, id := range config {
		s := nfa.States[id]
		if s.Kind != rxnfa.KindMatch {
			continue
		}
		accepts = append(accepts, Accept{TerminalID: s.TerminalID, Priority: s.Priority, LookaheadID: s.LookaheadID})
	}
	sort.Slice(accepts, func(a, b int) bool { return accepts[a].Priority < accepts[b].Priority })
	return State{Accepts: accepts}
}

// configKey builds a canonical string key for a sorted StateID slice, used
// to deduplicate DFA states that represent the same NFA configuration.
func configKey(config []rxnfa.StateID) string {
	var b strings.Builder
	for i, id := range config {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}
