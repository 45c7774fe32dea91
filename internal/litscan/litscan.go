// Package litscan accelerates the scan driver's "no pattern matched at
// the current position, advance one scalar and retry" fallback by
// relocating the cursor directly to the next position where some purely
// literal pattern (a keyword, an operator) could begin, instead of
// retrying one scalar at a time.
//
// An Aho-Corasick automaton over the mode's literals does the jumping.
// The scanner is rune-based while the automaton is byte-based, so
// literals are re-encoded to UTF-8 on the way in and the match offset
// translated back.
package litscan

import "github.com/coregx/ahocorasick"

// Accelerator finds the next byte offset at which one of a fixed set of
// literal patterns could start matching. A nil *Accelerator (returned by
// Build when there are no literal patterns to index) is always a valid,
// inert receiver: its methods report no finding.
type Accelerator struct {
	automaton *ahocorasick.Automaton
}

// Build indexes literals for fast skip-ahead. Duplicate or empty entries
// are harmless; an empty literals slice yields a nil Accelerator.
func Build(literals []string) (*Accelerator, error) {
	nonEmpty := literals[:0:0]
	for _, lit := range literals {
		if lit != "" {
			nonEmpty = append(nonEmpty, lit)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range nonEmpty {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Accelerator{automaton: auto}, nil
}

// NextCandidate returns the byte offset of the next occurrence, at or
// after byteOffset, of any indexed literal within data. ok is false if
// none remains; the scan driver then skips straight to end of input.
func (a *Accelerator) NextCandidate(data []byte, byteOffset int) (offset int, ok bool) {
	if a == nil || a.automaton == nil || byteOffset >= len(data) {
		return 0, false
	}
	m := a.automaton.Find(data, byteOffset)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}
