package automaton

import (
	"math/rand"
	"testing"

	"github.com/scanforge/scanforge/internal/charclass"
	"github.com/scanforge/scanforge/internal/rxnfa"
	"github.com/scanforge/scanforge/internal/synparse"
)

// simulateNFA runs nfa over input by direct closure simulation, reporting
// whether the whole input is accepted. It is the independent oracle the
// randomized equivalence test below compares subset construction and
// minimization against.
func simulateNFA(nfa rxnfa.NFA, pred *charclass.Predicate, input string) bool {
	cur := map[rxnfa.StateID]bool{}
	var add func(id rxnfa.StateID, set map[rxnfa.StateID]bool)
	add = func(id rxnfa.StateID, set map[rxnfa.StateID]bool) {
		if set[id] {
			return
		}
		set[id] = true
		s := nfa.States[id]
		switch s.Kind {
		case rxnfa.KindEpsilon:
			add(s.Next, set)
		case rxnfa.KindSplit:
			add(s.Next, set)
			add(s.Alt, set)
		}
	}
	add(nfa.Start, cur)

	for _, r := range input {
		next := map[rxnfa.StateID]bool{}
		for id := range cur {
			s := nfa.States[id]
			if s.Kind == rxnfa.KindClass && pred.Matches(s.Class, r) {
				add(s.Next, next)
			}
		}
		cur = next
		if len(cur) == 0 {
			return false
		}
	}
	for id := range cur {
		if nfa.States[id].Kind == rxnfa.KindMatch {
			return true
		}
	}
	return false
}

// The language of the minimized DFA equals the language of the NFA it
// was built from, checked by random string generation over the patterns'
// own alphabet.
func TestMinimizedDFAEquivalentToNFA(t *testing.T) {
	patterns := []string{
		`a(b|c)*`,
		`(ab)+c?`,
		`a{2,4}b`,
		`[ab]+c`,
		`((a*)*b)`,
		`a|bc|b+a`,
	}
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte("abc")

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			h, err := synparse.Parse(pattern)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			reg := charclass.NewRegistry()
			nfa, err := rxnfa.Compile([]rxnfa.PatternSource{{HIR: h, TerminalID: 1, Priority: 0, LookaheadID: -1}}, reg)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			min := Minimize(BuildFromNFA(nfa, reg))
			pred := reg.BuildPredicate()

			for i := 0; i < 500; i++ {
				buf := make([]byte, rng.Intn(10))
				for j := range buf {
					buf[j] = alphabet[rng.Intn(len(alphabet))]
				}
				input := string(buf)

				wantAccept := simulateNFA(nfa, pred, input)
				_, gotAccept := run(min, pred, input)
				if gotAccept != wantAccept {
					t.Fatalf("input %q: minimized DFA accept = %v, NFA accept = %v", input, gotAccept, wantAccept)
				}
			}
		})
	}
}
