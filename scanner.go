// Package scanforge is a multi-mode lexical scanner library: it compiles
// a prioritized set of regular expressions per scanner mode into one
// minimized multi-terminal DFA each, then partitions an input string into
// tokens by longest match with priority tie-break.
//
//   - Patterns may carry a trailing-context lookahead (positive or
//     negative) gating acceptance without consuming input.
//   - A mode's terminal→mode transition table re-points the active DFA
//     after matching tokens, for context-sensitive scanning (e.g. string
//     interiors).
//   - Matching is DFA-based and linear in the input length; there is no
//     backtracking.
//
// Compile a ScannerSpec with Build (or BuildCached), then iterate matches
// with FindIter.
package scanforge

import (
	"errors"
	"fmt"

	"github.com/scanforge/scanforge/internal/automaton"
	"github.com/scanforge/scanforge/internal/charclass"
	"github.com/scanforge/scanforge/internal/litscan"
	"github.com/scanforge/scanforge/internal/lookahead"
	"github.com/scanforge/scanforge/internal/rxnfa"
	"github.com/scanforge/scanforge/internal/synparse"
)

// CompiledScanner is the output of Build: an ordered sequence of
// compiled modes sharing one character-class registry and predicate, plus
// the mutable current-mode cursor owned by this particular instance
// rather than shared across clones.
type CompiledScanner struct {
	modes       []*compiledMode
	predicate   *charclass.Predicate
	currentMode int
}

// Build compiles spec into a CompiledScanner: parser front-end, then
// per-mode multi-pattern NFA, subset construction and minimization, then
// lookahead sub-DFAs, assembled into compiled modes sharing a single
// character-class registry across the whole spec.
func Build(spec ScannerSpec) (*CompiledScanner, error) {
	if len(spec.Modes) == 0 {
		return nil, &CompileError{Err: fmt.Errorf("scanforge: spec has no modes")}
	}

	registry := charclass.NewRegistry()
	modes := make([]*compiledMode, len(spec.Modes))

	for i, m := range spec.Modes {
		cm, err := compileMode(m, registry)
		if err != nil {
			return nil, err
		}
		modes[i] = cm
	}

	for _, m := range spec.Modes {
		for _, t := range m.Transitions {
			if t.ModeID < 0 || t.ModeID >= len(spec.Modes) {
				return nil, &CompileError{ModeName: m.Name, Err: fmt.Errorf("scanforge: transition targets mode %d, out of range", t.ModeID)}
			}
		}
	}

	return &CompiledScanner{modes: modes, predicate: registry.BuildPredicate(), currentMode: 0}, nil
}

func compileMode(m ScannerMode, registry *charclass.Registry) (*compiledMode, error) {
	if err := validateTransitions(m.Transitions); err != nil {
		return nil, &CompileError{ModeName: m.Name, Err: err}
	}
	if err := validateUniqueTerminals(m.Patterns); err != nil {
		return nil, &CompileError{ModeName: m.Name, Err: err}
	}

	sources := make([]rxnfa.PatternSource, len(m.Patterns))
	var lookaheads []*lookahead.Compiled
	literals := make([]string, 0, len(m.Patterns))
	allLiteral := true

	for i, p := range m.Patterns {
		h, err := synparse.Parse(p.Regex)
		if err != nil {
			return nil, wrapCompileError(m.Name, p.Regex, err)
		}

		lookaheadID := -1
		if p.HasLookahead {
			compiled, err := lookahead.Compile(p.Lookahead.Regex, p.Lookahead.IsPositive, registry)
			if err != nil {
				return nil, wrapCompileError(m.Name, p.Lookahead.Regex, err)
			}
			lookaheadID = len(lookaheads)
			lookaheads = append(lookaheads, compiled)
		}

		sources[i] = rxnfa.PatternSource{HIR: h, TerminalID: p.TerminalID, Priority: i, LookaheadID: lookaheadID}

		if lit, ok := synparse.AsLiteral(h); ok && lit != "" {
			literals = append(literals, lit)
		} else {
			allLiteral = false
		}
	}

	nfa, err := rxnfa.Compile(sources, registry)
	if err != nil {
		pattern := ""
		if errors.Is(err, rxnfa.ErrEmptyToken) {
			// Compile's error does not name the nullable pattern: find
			// the first pattern that is rejected on its own.
			for i, src := range sources {
				if _, e := rxnfa.Compile([]rxnfa.PatternSource{src}, registry); errors.Is(e, rxnfa.ErrEmptyToken) {
					pattern = m.Patterns[i].Regex
					break
				}
			}
		}
		return nil, wrapCompileError(m.Name, pattern, err)
	}

	dfa := automaton.Minimize(automaton.BuildFromNFA(nfa, registry))

	var accel *litscan.Accelerator
	if allLiteral {
		accel, err = litscan.Build(literals)
		if err != nil {
			return nil, &CompileError{ModeName: m.Name, Err: err}
		}
	}

	return &compiledMode{
		name:        m.Name,
		dfa:         dfa,
		lookaheads:  lookaheads,
		transitions: m.Transitions,
		accelerator: accel,
	}, nil
}

func validateTransitions(transitions []ModeTransition) error {
	for i := 1; i < len(transitions); i++ {
		if transitions[i].TerminalID <= transitions[i-1].TerminalID {
			return ErrUnsortedTransitions
		}
	}
	return nil
}

func validateUniqueTerminals(patterns []Pattern) error {
	seen := map[uint32]bool{}
	for _, p := range patterns {
		if seen[p.TerminalID] {
			return ErrDuplicateTerminal
		}
		seen[p.TerminalID] = true
	}
	return nil
}

func wrapCompileError(modeName, pattern string, err error) error {
	switch {
	case errors.Is(err, synparse.ErrSyntax):
		return &CompileError{ModeName: modeName, Pattern: pattern, Err: ErrSyntax}
	case errors.Is(err, synparse.ErrUnsupported):
		return &CompileError{ModeName: modeName, Pattern: pattern, Err: ErrUnsupported}
	case errors.Is(err, synparse.ErrInvalidClass), errors.Is(err, rxnfa.ErrInvalidClass), errors.Is(err, charclass.ErrEmptyClass):
		return &CompileError{ModeName: modeName, Pattern: pattern, Err: ErrInvalidClass}
	case errors.Is(err, rxnfa.ErrEmptyToken):
		return &CompileError{ModeName: modeName, Pattern: pattern, Err: ErrEmptyToken}
	default:
		return &CompileError{ModeName: modeName, Pattern: pattern, Err: err}
	}
}

// Clone returns a scanner sharing this one's immutable compiled state
// (DFAs, registry-derived predicate, mode tables) with its own
// independent current-mode cursor. Cloning is cheap: the only per-clone
// state is the current-mode ID.
func (s *CompiledScanner) Clone() *CompiledScanner {
	return &CompiledScanner{modes: s.modes, predicate: s.predicate, currentMode: s.currentMode}
}

// CurrentMode returns the scanner's current mode ID.
func (s *CompiledScanner) CurrentMode() int {
	return s.currentMode
}

// SetMode overrides the scanner's current mode ID.
func (s *CompiledScanner) SetMode(modeID int) error {
	if modeID < 0 || modeID >= len(s.modes) {
		return fmt.Errorf("scanforge: mode id %d out of range", modeID)
	}
	s.currentMode = modeID
	return nil
}

// ModeName returns the name of modeID, or false if it is out of range.
func (s *CompiledScanner) ModeName(modeID int) (string, bool) {
	if modeID < 0 || modeID >= len(s.modes) {
		return "", false
	}
	return s.modes[modeID].name, true
}
