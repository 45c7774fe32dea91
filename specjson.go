package scanforge

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Wire form of a persisted ScannerSpec: an ordered JSON list of modes,
// each `{ name, patterns: [{ pattern, token_type, lookahead? }],
// transitions: [[terminalID, modeID], ...] }`. The transitions list is
// written sorted by terminal ID; on decode an unsorted list is sorted
// rather than rejected, but a duplicate terminal ID is an error.
type modeJSON struct {
	Name        string        `json:"name"`
	Patterns    []patternJSON `json:"patterns"`
	Transitions [][2]int64    `json:"transitions"`
}

type patternJSON struct {
	Pattern   string         `json:"pattern"`
	TokenType uint32         `json:"token_type"`
	Lookahead *lookaheadJSON `json:"lookahead,omitempty"`
}

type lookaheadJSON struct {
	IsPositive bool   `json:"is_positive"`
	Pattern    string `json:"pattern"`
}

// MarshalJSON renders the spec in its persisted form.
func (s ScannerSpec) MarshalJSON() ([]byte, error) {
	modes := make([]modeJSON, len(s.Modes))
	for i, m := range s.Modes {
		mj := modeJSON{Name: m.Name, Patterns: make([]patternJSON, len(m.Patterns)), Transitions: make([][2]int64, len(m.Transitions))}
		for j, p := range m.Patterns {
			pj := patternJSON{Pattern: p.Regex, TokenType: p.TerminalID}
			if p.HasLookahead {
				pj.Lookahead = &lookaheadJSON{IsPositive: p.Lookahead.IsPositive, Pattern: p.Lookahead.Regex}
			}
			mj.Patterns[j] = pj
		}
		for j, t := range m.Transitions {
			mj.Transitions[j] = [2]int64{int64(t.TerminalID), int64(t.ModeID)}
		}
		modes[i] = mj
	}
	return json.Marshal(modes)
}

// UnmarshalJSON parses the persisted form back into a ScannerSpec. The
// transitions of each mode are sorted by terminal ID if the stored order
// is not already sorted; a duplicated terminal ID within one mode's table
// is rejected.
func (s *ScannerSpec) UnmarshalJSON(data []byte) error {
	var modes []modeJSON
	if err := json.Unmarshal(data, &modes); err != nil {
		return err
	}

	out := make([]ScannerMode, len(modes))
	for i, mj := range modes {
		m := ScannerMode{Name: mj.Name, Patterns: make([]Pattern, len(mj.Patterns)), Transitions: make([]ModeTransition, len(mj.Transitions))}
		for j, pj := range mj.Patterns {
			p := NewPattern(pj.Pattern, pj.TokenType)
			if pj.Lookahead != nil {
				p = p.WithLookahead(Lookahead{IsPositive: pj.Lookahead.IsPositive, Regex: pj.Lookahead.Pattern})
			}
			m.Patterns[j] = p
		}
		for j, t := range mj.Transitions {
			if t[0] < 0 {
				return fmt.Errorf("scanforge: mode %q: negative terminal ID %d in transitions", mj.Name, t[0])
			}
			m.Transitions[j] = ModeTransition{TerminalID: uint32(t[0]), ModeID: int(t[1])}
		}
		sort.Slice(m.Transitions, func(a, b int) bool {
			return m.Transitions[a].TerminalID < m.Transitions[b].TerminalID
		})
		for j := 1; j < len(m.Transitions); j++ {
			if m.Transitions[j].TerminalID == m.Transitions[j-1].TerminalID {
				return fmt.Errorf("scanforge: mode %q: duplicate terminal ID %d in transitions", mj.Name, m.Transitions[j].TerminalID)
			}
		}
		out[i] = m
	}
	s.Modes = out
	return nil
}

type spanJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type matchJSON struct {
	TokenType uint32   `json:"token_type"`
	Span      spanJSON `json:"span"`
}

type positionJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type matchExtJSON struct {
	matchJSON
	StartPosition positionJSON `json:"start_position"`
	EndPosition   positionJSON `json:"end_position"`
}

// MarshalJSON renders m in its wire form,
// `{ token_type, span: { start, end } }`.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchJSON{TokenType: m.TerminalID, Span: spanJSON{Start: m.Span.Start, End: m.Span.End}})
}

// UnmarshalJSON parses the wire form of a Match.
func (m *Match) UnmarshalJSON(data []byte) error {
	var mj matchJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return err
	}
	*m = Match{TerminalID: mj.TokenType, Span: Span{Start: mj.Span.Start, End: mj.Span.End}}
	return nil
}

// MarshalJSON renders m in the extended wire form: the Match fields plus
// 1-based start_position and end_position.
func (m MatchExt) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchExtJSON{
		matchJSON:     matchJSON{TokenType: m.TerminalID, Span: spanJSON{Start: m.Span.Start, End: m.Span.End}},
		StartPosition: positionJSON{Line: m.Start.Line, Column: m.Start.Column},
		EndPosition:   positionJSON{Line: m.End.Line, Column: m.End.Column},
	})
}
