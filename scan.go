package scanforge

import (
	"unicode/utf8"

	"github.com/scanforge/scanforge/internal/automaton"
	"github.com/scanforge/scanforge/internal/swar"
)

// MatchIter is the lazy, pull-based sequence of Matches produced by
// FindIter: each call to Next runs one complete match attempt to
// completion; there is no suspension point mid-attempt.
type MatchIter struct {
	scanner     *CompiledScanner
	runes       []rune
	byteOffsets []int // byteOffsets[i] is the byte offset of runes[i]; len == len(runes)+1, final entry is len(input)
	data        []byte
	pos         int // index into runes of the next attempt's start
	mode        int
}

// FindIter decodes input once and returns an iterator over scanner
// starting at its current mode. input must be valid UTF-8; malformed
// input is reported as ErrInvalidUTF8 the first time decoding reaches
// the bad byte.
func FindIter(scanner *CompiledScanner, input string) (*MatchIter, error) {
	data := []byte(input)
	runes := make([]rune, 0, len(data))
	offsets := make([]int, 0, len(data)+1)

	if swar.IsASCII(data) {
		// Every byte is its own scalar: skip the per-byte
		// utf8.DecodeRune dispatch entirely.
		for i, c := range data {
			offsets = append(offsets, i)
			runes = append(runes, rune(c))
		}
	} else {
		for i := 0; i < len(data); {
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				return nil, ErrInvalidUTF8
			}
			offsets = append(offsets, i)
			runes = append(runes, r)
			i += size
		}
	}
	offsets = append(offsets, len(data))

	return &MatchIter{
		scanner:     scanner,
		runes:       runes,
		byteOffsets: offsets,
		data:        data,
		pos:         0,
		mode:        scanner.CurrentMode(),
	}, nil
}

// Next runs match attempts, silently skipping unmatched scalars, until
// it yields a Match or reaches end of input.
func (it *MatchIter) Next() (Match, bool) {
	for it.pos < len(it.runes) {
		m, endPos, ok := it.attempt(it.pos, it.mode)
		if !ok {
			it.pos = it.advanceOnNoMatch(it.pos)
			continue
		}
		it.pos = endPos
		if next, has := it.scanner.modes[it.mode].successorMode(m.TerminalID); has {
			it.mode = next
		}
		it.scanner.currentMode = it.mode
		return m, true
	}
	return Match{}, false
}

// advanceOnNoMatch implements the "advance by one scalar and retry"
// policy, accelerated by internal/litscan when the current mode's
// patterns are all plain literals (see compileMode): in that case any
// match can only begin at a byte offset where one of those literals
// occurs, so the cursor can jump straight there instead of retrying one
// scalar at a time.
func (it *MatchIter) advanceOnNoMatch(pos int) int {
	accel := it.scanner.modes[it.mode].accelerator
	if accel == nil {
		return pos + 1
	}
	fromByte := it.byteOffsets[pos] + 1
	nextByte, found := accel.NextCandidate(it.data, fromByte)
	if !found {
		return len(it.runes)
	}
	for i := pos + 1; i < len(it.byteOffsets); i++ {
		if it.byteOffsets[i] >= nextByte {
			return i
		}
	}
	return len(it.runes)
}

// acceptCandidate is one accepting position visited during an attempt,
// carrying every pattern simultaneously accepting there (priority-sorted:
// see automaton.State.Accepts) so a lookahead rejection can fall back to
// a same-length runner-up before giving up the whole position.
type acceptCandidate struct {
	runePos int
	accepts []automaton.Accept
}

// attempt runs the longest-match, priority-breaking, lookahead-gated
// loop starting at rune index start in mode modeID, without mutating the
// iterator. It records every accepting position reached, not just the
// last one: a lookahead rejection at the longest position must be able
// to fall back to shorter accepts visited earlier in the same attempt.
func (it *MatchIter) attempt(start, modeID int) (Match, int, bool) {
	mode := it.scanner.modes[modeID]
	pred := it.scanner.predicate

	state := mode.dfa.Start
	var candidates []acceptCandidate

	pos := start
	for pos < len(it.runes) {
		next, ok := mode.dfa.Match(pred, state, it.runes[pos])
		if !ok {
			break
		}
		state = next
		pos++
		if accepts := mode.dfa.States[next].Accepts; len(accepts) > 0 {
			candidates = append(candidates, acceptCandidate{runePos: pos, accepts: accepts})
		}
	}

	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		for _, a := range c.accepts {
			if a.LookaheadID < 0 {
				return it.buildMatch(start, c.runePos, a), c.runePos, true
			}
			if ok, _ := mode.lookaheads[a.LookaheadID].Satisfies(pred, it.runes, c.runePos); ok {
				return it.buildMatch(start, c.runePos, a), c.runePos, true
			}
		}
	}
	return Match{}, 0, false
}

func (it *MatchIter) buildMatch(start, endRunePos int, a automaton.Accept) Match {
	return Match{TerminalID: a.TerminalID, Span: Span{Start: it.byteOffsets[start], End: it.byteOffsets[endRunePos]}}
}

// PeekN returns up to n upcoming matches without advancing the
// iterator's real cursor or switching its real mode: peeking runs over a
// throwaway copy of the iterator's position and mode.
func PeekN(it *MatchIter, n int) PeekResult {
	sim := &MatchIter{scanner: it.scanner, runes: it.runes, byteOffsets: it.byteOffsets, data: it.data, pos: it.pos, mode: it.mode}

	var matches []Match
	for len(matches) < n {
		if sim.pos >= len(sim.runes) {
			if len(matches) == 0 {
				return PeekResult{Outcome: PeekNotFound}
			}
			return PeekResult{Outcome: PeekReachedEnd, Matches: matches}
		}

		m, endPos, ok := sim.attempt(sim.pos, sim.mode)
		if !ok {
			sim.pos = sim.advanceOnNoMatch(sim.pos)
			continue
		}

		if next, has := it.scanner.modes[sim.mode].successorMode(m.TerminalID); has {
			matches = append(matches, m)
			return PeekResult{Outcome: PeekReachedModeSwitch, Matches: matches, NextMode: next}
		}

		matches = append(matches, m)
		sim.pos = endPos
	}
	if len(matches) == 0 {
		return PeekResult{Outcome: PeekNotFound}
	}
	return PeekResult{Outcome: PeekMatches, Matches: matches}
}

// WithPositions wraps it, attaching 1-based line/column positions to
// every Match using tracker.
func WithPositions(it *MatchIter, tracker *PositionTracker) func() (MatchExt, bool) {
	return func() (MatchExt, bool) {
		m, ok := it.Next()
		if !ok {
			return MatchExt{}, false
		}
		return MatchExt{
			Match: m,
			Start: tracker.PositionAt(m.Span.Start),
			End:   tracker.PositionAt(m.Span.End),
		}, true
	}
}
