// Package rxnfa builds the multi-pattern NFA stage of the compilation
// pipeline: one Thompson-construction subtree per pattern, unioned under
// a single unanchored start state via epsilon edges.
//
// States live in an arena addressed by integer StateID, never by
// pointer, so cycles introduced by * and + are trivial to build and to
// walk.
package rxnfa

import "github.com/scanforge/scanforge/internal/charclass"

// StateID indexes into an NFA's state arena.
type StateID uint32

// Kind discriminates the union of state shapes an NFA can contain.
type Kind uint8

const (
	// KindFail never matches and has no successors; used as a
	// placeholder target before Patch resolves a forward reference.
	KindFail Kind = iota
	// KindMatch accepts at this state for the pattern recorded in
	// TerminalID/Priority/LookaheadID. Match states have no outgoing
	// edges: reaching one ends that pattern's alternative.
	KindMatch
	// KindClass consumes one input scalar belonging to character class
	// Class and moves to Next.
	KindClass
	// KindSplit is an epsilon-fork with two successors, Next and Alt,
	// tried in that order. Used for alternation and for quantifiers
	// (Next is the "take the body again" branch, Alt is "exit").
	KindSplit
	// KindEpsilon is an unconditional epsilon edge to Next. Compile does
	// not emit it (loops and unions are built from KindSplit states);
	// it is available through Builder.AddEpsilon.
	KindEpsilon
)

// State is one arena slot. Only the fields relevant to Kind are
// meaningful; the rest are zero.
type State struct {
	Kind Kind

	// KindClass
	Class charclass.ID
	Next  StateID

	// KindSplit
	Alt StateID

	// KindMatch
	TerminalID  uint32
	Priority    int
	LookaheadID int // -1 if the pattern carries no lookahead
}

// NFA is the arena of States plus its unanchored union start.
type NFA struct {
	States []State
	Start  StateID
}

// add appends a new state to the arena and returns its ID.
func (n *NFA) add(s State) StateID {
	id := StateID(len(n.States))
	n.States = append(n.States, s)
	return id
}
