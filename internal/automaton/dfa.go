package automaton

import "github.com/scanforge/scanforge/internal/charclass"

// StateID indexes a DFA's state table. Distinct from rxnfa.StateID: a DFA
// state is a whole NFA configuration, not a single NFA state.
type StateID uint32

// Transition is one outgoing edge, keyed by character class. Class is
// always one of the disjoint atomic classes disjointAtoms builds during
// subset construction, not necessarily a class a pattern's author wrote
// directly: a state's transitions never overlap, so at most one can match
// any given rune.
type Transition struct {
	Class charclass.ID
	Next  StateID
}

// Accept records that reaching this state accepts the given terminal. The
// pair (TerminalID, Priority) comes straight from the rxnfa.State that
// produced it.
type Accept struct {
	TerminalID  uint32
	Priority    int
	LookaheadID int
}

// State is one DFA state: a sorted-by-Class transition table plus every
// Accept simultaneously reachable there, sorted ascending by Priority.
// Most states have zero or one; a state can legitimately hold more than
// one when two patterns both complete at the same position (e.g. the
// literal "World" and the class [a-zA-Z]+ both accept after "World").
// Keeping all of them, not just the highest-priority winner, is what lets
// the scan driver fall back to the runner-up when the winner's lookahead
// rejects the match. Sorting by Class lets Step binary search instead of
// scanning; the alphabet is the set of interned class IDs rather than
// all 256 byte values, so a sorted sparse slice beats a dense
// stride-indexed table that would be mostly padding.
type State struct {
	Transitions []Transition
	Accepts     []Accept
}

// DFA is the full compiled automaton: a start state plus a dead state
// implicitly reachable whenever Step returns ok == false.
type DFA struct {
	States []State
	Start  StateID
}

// Step returns the state reached from state on class, or ok == false if
// no such transition exists (the implicit dead state). Used internally by
// minimization, which reasons about raw class identity rather than the
// rune predicate.
func (d *DFA) Step(state StateID, class charclass.ID) (StateID, bool) {
	trans := d.States[state].Transitions
	lo, hi := 0, len(trans)
	for lo < hi {
		mid := (lo + hi) / 2
		if trans[mid].Class < class {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(trans) && trans[lo].Class == class {
		return trans[lo].Next, true
	}
	return 0, false
}

// Match is the scan-time transition lookup: it resolves r's class by a
// linear scan of state's own outgoing edges (not a global scan of every
// class interned in the ScannerSpec), testing pred.Matches against each
// one in turn and taking the first edge whose class contains r. Exactly
// one edge can ever match, never more: BuildFromNFA's disjointAtoms
// splits a state's outgoing classes into a disjoint atomic alphabet
// before transitions are built. The parser's own interned classes overlap
// freely (an identifier-chars class and a single-keyword-letter literal
// class both contain that letter), but by the time subset construction
// finishes, every class actually labeling a transition out of the same
// state partitions the rune space instead of merely covering it, so this
// loop is a membership search over a partition, not a priority order.
func (d *DFA) Match(pred *charclass.Predicate, state StateID, r rune) (StateID, bool) {
	for _, t := range d.States[state].Transitions {
		if pred.Matches(t.Class, r) {
			return t.Next, true
		}
	}
	return 0, false
}
