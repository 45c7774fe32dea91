package scanforge

import "strconv"

// Lookahead is a trailing-context clause attached to a Pattern: a regex
// evaluated immediately after a candidate match, gating whether that
// match is accepted. IsPositive true requires the clause to match there;
// false requires it not to.
type Lookahead struct {
	IsPositive bool
	Regex      string
}

// String renders la in conventional lookaround notation, "(?=...)" for a
// positive lookahead and "(?!...)" for a negative one, with the regex
// escaped the way a Go string literal would escape it.
func (la Lookahead) String() string {
	open := "(?="
	if !la.IsPositive {
		open = "(?!"
	}
	return open + escapeRegex(la.Regex) + ")"
}

// Pattern is one regular expression a scanner mode recognizes: its
// source text, the terminal ID reported on a match, and an optional
// trailing-context clause. Two Patterns are equal exactly when all three
// components are equal; HasLookahead distinguishes "no lookahead" from a
// lookahead that happens to be the zero value, keeping Pattern comparable
// with ==.
type Pattern struct {
	Regex        string
	TerminalID   uint32
	HasLookahead bool
	Lookahead    Lookahead
}

// NewPattern builds a Pattern with no lookahead clause.
func NewPattern(regex string, terminalID uint32) Pattern {
	return Pattern{Regex: regex, TerminalID: terminalID}
}

// WithLookahead returns a copy of p carrying the given trailing-context
// clause.
func (p Pattern) WithLookahead(la Lookahead) Pattern {
	p.HasLookahead = true
	p.Lookahead = la
	return p
}

// String renders p for diagnostics: the regex source, escaped, followed
// by its lookahead's own String (if any).
func (p Pattern) String() string {
	s := escapeRegex(p.Regex)
	if p.HasLookahead {
		s += p.Lookahead.String()
	}
	return s
}

// escapeRegex escapes s the way a Go string literal would (backslashes,
// double quotes, control and non-printable characters), reusing
// strconv.Quote and trimming its surrounding quotes rather than
// hand-rolling an escaper.
func escapeRegex(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
