package rxnfa

import "github.com/scanforge/scanforge/internal/charclass"

// Builder accumulates States into an NFA under construction. Forward
// references (the back-edge of a * or + loop) are built by first
// reserving a state with AddFail pointing nowhere in particular, then
// fixing it up with Patch once the target is known.
type Builder struct {
	nfa NFA
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddFail reserves a placeholder state, later fixed up with Patch.
func (b *Builder) AddFail() StateID {
	return b.nfa.add(State{Kind: KindFail})
}

// AddClass appends a state that consumes one scalar of class and
// continues to next.
func (b *Builder) AddClass(class charclass.ID, next StateID) StateID {
	return b.nfa.add(State{Kind: KindClass, Class: class, Next: next})
}

// AddEpsilon appends an unconditional epsilon edge to next.
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.nfa.add(State{Kind: KindEpsilon, Next: next})
}

// AddSplit appends an epsilon fork preferring next over alt.
func (b *Builder) AddSplit(next, alt StateID) StateID {
	return b.nfa.add(State{Kind: KindSplit, Next: next, Alt: alt})
}

// AddMatch appends an accepting state for terminalID at the given
// priority (lower value wins ties), with lookaheadID -1 if the pattern
// carries no trailing context.
func (b *Builder) AddMatch(terminalID uint32, priority, lookaheadID int) StateID {
	return b.nfa.add(State{Kind: KindMatch, TerminalID: terminalID, Priority: priority, LookaheadID: lookaheadID})
}

// Patch overwrites a previously reserved state (typically an AddFail or
// an AddEpsilon/AddSplit whose target wasn't known yet) in place, so that
// every StateID handed out earlier still points at the right state.
func (b *Builder) Patch(id StateID, s State) {
	b.nfa.States[id] = s
}

// Get returns a copy of the state currently stored at id, used when a
// caller needs to patch only one field of an already-built split.
func (b *Builder) Get(id StateID) State {
	return b.nfa.States[id]
}

// SetStart records the NFA's unanchored union start state.
func (b *Builder) SetStart(id StateID) {
	b.nfa.Start = id
}

// Build finalizes and returns the constructed NFA. The Builder must not
// be used afterward.
func (b *Builder) Build() NFA {
	return b.nfa
}
