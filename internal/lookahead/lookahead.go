// Package lookahead compiles and evaluates trailing-context clauses: a
// pattern may carry a lookahead, which does not itself consume input but
// gates whether an otherwise-complete match is accepted. Each clause
// wraps its own small standalone automaton and exposes a single
// Satisfies query: whether the condition holds, and how much of the
// lookahead pattern matched.
package lookahead

import (
	"github.com/scanforge/scanforge/internal/automaton"
	"github.com/scanforge/scanforge/internal/charclass"
	"github.com/scanforge/scanforge/internal/rxnfa"
	"github.com/scanforge/scanforge/internal/synparse"
)

// Compiled is one compiled lookahead clause: its own DFA, evaluated
// starting at the position immediately following a candidate match, plus
// whether the clause is positive ("(?=x)" in Pattern.String's notation,
// satisfied when x can match there) or negative ("(?!x)", satisfied when
// x cannot).
type Compiled struct {
	dfa        automaton.DFA
	IsPositive bool
}

// Compile builds a Compiled lookahead from pattern's source text,
// interning its character classes into registry so the lookahead shares
// class IDs with the rest of the ScannerSpec it belongs to.
func Compile(pattern string, isPositive bool, registry *charclass.Registry) (*Compiled, error) {
	h, err := synparse.Parse(pattern)
	if err != nil {
		return nil, err
	}
	nfa, err := rxnfa.CompileLookahead(h, registry)
	if err != nil {
		return nil, err
	}
	dfa := automaton.Minimize(automaton.BuildFromNFA(nfa, registry))
	return &Compiled{dfa: dfa, IsPositive: isPositive}, nil
}

// Satisfies evaluates the clause against input starting at pos, trying
// every prefix greedily and remembering the longest one that lands on an
// accepting state. consumed is that longest accepting prefix's length in
// scalars (0 if the lookahead matches only the empty string, and always 0
// for a satisfied negative clause). The lookahead never advances the
// caller's scan cursor; consumed is informational only.
func (c *Compiled) Satisfies(pred *charclass.Predicate, input []rune, pos int) (ok bool, consumed int) {
	state := c.dfa.Start
	longest := -1
	if len(c.dfa.States[state].Accepts) > 0 {
		longest = 0
	}
	n := 0
	for i := pos; i < len(input); i++ {
		next, matched := c.dfa.Match(pred, state, input[i])
		if !matched {
			break
		}
		state = next
		n++
		if len(c.dfa.States[state].Accepts) > 0 {
			longest = n
		}
	}
	found := longest >= 0
	if found != c.IsPositive {
		return false, 0
	}
	if longest < 0 {
		longest = 0
	}
	return true, longest
}
