package scanforge

import "testing"

func TestPatternString(t *testing.T) {
	p := NewPattern(`[a-z]+`, 2)
	if got, want := p.String(), `[a-z]+`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPatternStringWithLookahead(t *testing.T) {
	p := NewPattern(`World`, 11).WithLookahead(Lookahead{IsPositive: true, Regex: "!"})
	if got, want := p.String(), `World(?=!)`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	p = NewPattern(`World`, 13).WithLookahead(Lookahead{IsPositive: false, Regex: "!"})
	if got, want := p.String(), `World(?!!)`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
