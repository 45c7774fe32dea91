package scanforge

import (
	"strings"
	"testing"
)

func mustBuild(t *testing.T, spec ScannerSpec) *CompiledScanner {
	t.Helper()
	s, err := Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func collect(t *testing.T, s *CompiledScanner, input string) []Match {
	t.Helper()
	it, err := FindIter(s, input)
	if err != nil {
		t.Fatalf("FindIter: %v", err)
	}
	var out []Match
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, m)
	}
	return out
}

// Scenario A: simple pattern list, single mode.
func TestScenarioA(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{{
		Name: "INITIAL",
		Patterns: []Pattern{
			NewPattern(`;`, 0),
			NewPattern(`0|[1-9][0-9]*`, 1),
			NewPattern(`//.*(\r\n|\r|\n)`, 2),
			NewPattern(`/\*([^*]|\*[^/])*\*/`, 3),
			NewPattern(`[a-zA-Z_]\w*`, 4),
			NewPattern(`=`, 5),
		},
	}}}
	s := mustBuild(t, spec)
	got := collect(t, s, "// hi\na = 10;\n")

	want := []Match{
		{TerminalID: 2, Span: Span{0, 6}},
		{TerminalID: 4, Span: Span{6, 7}},
		{TerminalID: 5, Span: Span{8, 9}},
		{TerminalID: 1, Span: Span{10, 12}},
		{TerminalID: 0, Span: Span{12, 13}},
	}
	assertMatches(t, got, want)
}

// Scenario B: two modes with a mode switch on the string delimiter.
func TestScenarioB(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{
		{
			Name: "INITIAL",
			Patterns: []Pattern{
				NewPattern(`\r\n|\r|\n`, 0),
				NewPattern(`[a-zA-Z_]\w*`, 4),
				NewPattern(`"`, 6),
			},
			Transitions: []ModeTransition{{TerminalID: 6, ModeID: 1}},
		},
		{
			Name: "STRING",
			Patterns: []Pattern{
				NewPattern(`"`, 6),
				NewPattern(`[^"]+`, 5),
			},
			Transitions: []ModeTransition{{TerminalID: 6, ModeID: 0}},
		},
	}}
	s := mustBuild(t, spec)
	got := collect(t, s, `Id1 "1. String" "2. String"`)

	want := []Match{
		{TerminalID: 4, Span: Span{0, 3}},
		{TerminalID: 6, Span: Span{4, 5}},
		{TerminalID: 5, Span: Span{5, 14}},
		{TerminalID: 6, Span: Span{14, 15}},
		{TerminalID: 6, Span: Span{16, 17}},
		{TerminalID: 5, Span: Span{17, 26}},
		{TerminalID: 6, Span: Span{26, 27}},
	}
	assertMatches(t, got, want)
}

// Scenario C: priority tie-break.
func TestScenarioC(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{{
		Name: "INITIAL",
		Patterns: []Pattern{
			NewPattern(`if`, 1),
			NewPattern(`[a-z]+`, 2),
		},
	}}}
	s := mustBuild(t, spec)
	got := collect(t, s, "if")
	assertMatches(t, got, []Match{{TerminalID: 1, Span: Span{0, 2}}})
}

// TestOverlappingClassesMaximalMunch exercises longest-match on a pattern
// pair whose classes genuinely overlap: the keyword "if" is a proper
// prefix of the identifier class [a-z]+, so after consuming "if" a DFA
// state must simultaneously carry both the literal's accept and the
// identifier loop's continuation.
func TestOverlappingClassesMaximalMunch(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{{
		Name: "INITIAL",
		Patterns: []Pattern{
			NewPattern(`if`, 1),
			NewPattern(`[a-z]+`, 2),
		},
	}}}
	s := mustBuild(t, spec)

	got := collect(t, s, "is")
	assertMatches(t, got, []Match{{TerminalID: 2, Span: Span{0, 2}}})

	got = collect(t, s, "iffy")
	assertMatches(t, got, []Match{{TerminalID: 2, Span: Span{0, 4}}})

	got = collect(t, s, "if")
	assertMatches(t, got, []Match{{TerminalID: 1, Span: Span{0, 2}}})
}

// Scenario D: positive lookahead.
func TestScenarioD(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{{
		Name: "INITIAL",
		Patterns: []Pattern{
			NewPattern(`World`, 11).WithLookahead(Lookahead{IsPositive: true, Regex: `!`}),
			NewPattern(`[a-zA-Z]+`, 13),
		},
	}}}
	s := mustBuild(t, spec)

	got := collect(t, s, "World!")
	assertMatches(t, got, []Match{{TerminalID: 11, Span: Span{0, 5}}})

	got = collect(t, s, "World?")
	assertMatches(t, got, []Match{{TerminalID: 13, Span: Span{0, 5}}})
}

// Scenario E: pathological nested repetition must still run to
// completion in linear time.
func TestScenarioE(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{{
		Name:     "INITIAL",
		Patterns: []Pattern{NewPattern(`((a*)*b)`, 1)},
	}}}
	s := mustBuild(t, spec)
	input := strings.Repeat("a", 26) + "b"
	got := collect(t, s, input)
	assertMatches(t, got, []Match{{TerminalID: 1, Span: Span{0, 27}}})
}

// Scenario F: peek stopping at a mode switch.
func TestScenarioF(t *testing.T) {
	spec := ScannerSpec{Modes: []ScannerMode{
		{
			Name: "INITIAL",
			Patterns: []Pattern{
				NewPattern(`\r\n|\r|\n`, 0),
				NewPattern(`[a-zA-Z_]\w*`, 4),
				NewPattern(`"`, 6),
			},
			Transitions: []ModeTransition{{TerminalID: 6, ModeID: 1}},
		},
		{
			Name: "STRING",
			Patterns: []Pattern{
				NewPattern(`"`, 6),
				NewPattern(`[^"]+`, 5),
			},
			Transitions: []ModeTransition{{TerminalID: 6, ModeID: 0}},
		},
	}}
	s := mustBuild(t, spec)
	it, err := FindIter(s, `Id1 "1. String" "2. String"`)
	if err != nil {
		t.Fatalf("FindIter: %v", err)
	}

	m, ok := it.Next()
	if !ok || m.TerminalID != 4 {
		t.Fatalf("first Next() = (%+v,%v), want identifier", m, ok)
	}

	res := PeekN(it, 4)
	if res.Outcome != PeekReachedModeSwitch {
		t.Fatalf("PeekN outcome = %v, want PeekReachedModeSwitch", res.Outcome)
	}
	if res.NextMode != 1 {
		t.Errorf("NextMode = %d, want 1", res.NextMode)
	}
	if len(res.Matches) != 1 || res.Matches[0].TerminalID != 6 {
		t.Fatalf("Matches = %+v, want single terminal-6 match through the opening quote", res.Matches)
	}

	// Peeking must not have advanced the real cursor or switched mode.
	if it.scanner.CurrentMode() != 0 {
		t.Errorf("real scanner mode = %d, want still 0 after peek", it.scanner.CurrentMode())
	}
	m, ok = it.Next()
	if !ok || m.TerminalID != 6 || m.Span != (Span{4, 5}) {
		t.Fatalf("Next() after peek = (%+v,%v), want the real opening-quote match", m, ok)
	}
}

func assertMatches(t *testing.T, got, want []Match) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d matches %+v, want %d matches %+v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
