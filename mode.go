package scanforge

import (
	"sort"

	"github.com/scanforge/scanforge/internal/automaton"
	"github.com/scanforge/scanforge/internal/litscan"
	"github.com/scanforge/scanforge/internal/lookahead"
)

// compiledMode is one ScannerMode after compilation: its minimized
// primary DFA, the lookahead sub-DFAs its patterns reference
// (indexed by automaton.Accept.LookaheadID), and the terminal→mode
// transition table kept sorted for binary search.
type compiledMode struct {
	name        string
	dfa         automaton.DFA
	lookaheads  []*lookahead.Compiled
	transitions []ModeTransition // sorted by TerminalID
	accelerator *litscan.Accelerator
}

// successorMode binary-searches the transition table: if terminalID has
// an entry, return its target mode ID; otherwise the mode is unchanged
// after emitting that token.
func (m *compiledMode) successorMode(terminalID uint32) (int, bool) {
	i := sort.Search(len(m.transitions), func(i int) bool {
		return m.transitions[i].TerminalID >= terminalID
	})
	if i < len(m.transitions) && m.transitions[i].TerminalID == terminalID {
		return m.transitions[i].ModeID, true
	}
	return 0, false
}
