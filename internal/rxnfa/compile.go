package rxnfa

import (
	"fmt"

	"github.com/scanforge/scanforge/internal/charclass"
	"github.com/scanforge/scanforge/internal/synparse"
)

// PatternSource is one pattern ready to be woven into the multi-pattern
// NFA: its parsed HIR plus the terminal identity and priority it accepts
// under, and the index of its compiled lookahead sub-DFA if it has a
// trailing-context clause, or -1 if it has none.
type PatternSource struct {
	HIR         *synparse.HIR
	TerminalID  uint32
	Priority    int
	LookaheadID int
}

// Compile performs Thompson construction over every pattern in patterns
// and unions the results under a single unanchored start state reached by
// epsilon edges. Every character class encountered is interned into
// registry, so the resulting class IDs are shared with every other
// pattern and mode compiled against the same registry.
func Compile(patterns []PatternSource, registry *charclass.Registry) (NFA, error) {
	if len(patterns) == 0 {
		return NFA{}, fmt.Errorf("rxnfa: no patterns to compile")
	}

	b := NewBuilder()
	starts := make([]StateID, len(patterns))
	for i, p := range patterns {
		if nullable(p.HIR) {
			return NFA{}, ErrEmptyToken
		}
		match := b.AddMatch(p.TerminalID, p.Priority, p.LookaheadID)
		start, err := build(b, registry, p.HIR, match)
		if err != nil {
			return NFA{}, err
		}
		starts[i] = start
	}

	union := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		union = b.AddSplit(starts[i], union)
	}
	b.SetStart(union)
	return b.Build(), nil
}

// CompileLookahead builds a standalone single-pattern NFA for a
// trailing-context clause. Unlike Compile, it does not
// reject a nullable pattern: a lookahead clause is allowed to match the
// empty string (e.g. a lookahead for end-of-input), since it never by
// itself drives the main scan cursor forward.
func CompileLookahead(hir *synparse.HIR, registry *charclass.Registry) (NFA, error) {
	b := NewBuilder()
	match := b.AddMatch(0, 0, -1)
	start, err := build(b, registry, hir, match)
	if err != nil {
		return NFA{}, err
	}
	b.SetStart(start)
	return b.Build(), nil
}

// build translates node into a fragment whose successful exit continues
// at cont, using continuation-passing Thompson construction: rather than
// tracking lists of dangling "out" pointers to patch later (as a
// capture-aware NFA builder must), every State already knows its single
// Next (or Next/Alt) successor because cont is always known before the
// fragment for node is built. Only the back-edge of a repetition loop
// needs a placeholder-then-Patch step.
func build(b *Builder, registry *charclass.Registry, node *synparse.HIR, cont StateID) (StateID, error) {
	switch node.Op {
	case synparse.OpEmpty:
		return cont, nil

	case synparse.OpLiteral:
		set := charclass.NewRangeSet([]charclass.Range{{Lo: node.Rune, Hi: node.Rune}})
		id, err := registry.Intern(set)
		if err != nil {
			return 0, ErrInvalidClass
		}
		return b.AddClass(id, cont), nil

	case synparse.OpClass, synparse.OpAnyChar:
		id, err := registry.Intern(node.Set)
		if err != nil {
			return 0, ErrInvalidClass
		}
		return b.AddClass(id, cont), nil

	case synparse.OpConcat:
		tail := cont
		for i := len(node.Sub) - 1; i >= 0; i-- {
			var err error
			tail, err = build(b, registry, node.Sub[i], tail)
			if err != nil {
				return 0, err
			}
		}
		return tail, nil

	case synparse.OpAlternate:
		starts := make([]StateID, len(node.Sub))
		for i, sub := range node.Sub {
			s, err := build(b, registry, sub, cont)
			if err != nil {
				return 0, err
			}
			starts[i] = s
		}
		union := starts[len(starts)-1]
		for i := len(starts) - 2; i >= 0; i-- {
			union = b.AddSplit(starts[i], union)
		}
		return union, nil

	case synparse.OpStar:
		return buildStar(b, registry, node.Sub[0], cont)

	case synparse.OpPlus:
		return buildPlus(b, registry, node.Sub[0], cont)

	case synparse.OpQuest:
		body, err := build(b, registry, node.Sub[0], cont)
		if err != nil {
			return 0, err
		}
		return b.AddSplit(body, cont), nil

	case synparse.OpRepeat:
		return buildRepeat(b, registry, node.Sub[0], node.Min, node.Max, cont)

	default:
		return 0, fmt.Errorf("rxnfa: unexpected HIR op %v", node.Op)
	}
}

// buildStar builds the classic Thompson loop: a split either enters the
// body (looping back to itself) or exits to cont.
func buildStar(b *Builder, registry *charclass.Registry, sub *synparse.HIR, cont StateID) (StateID, error) {
	split := b.AddFail()
	bodyStart, err := build(b, registry, sub, split)
	if err != nil {
		return 0, err
	}
	b.Patch(split, State{Kind: KindSplit, Next: bodyStart, Alt: cont})
	return split, nil
}

// buildPlus is buildStar with the body mandatory on entry: the fragment's
// entry point is the body itself, not the split.
func buildPlus(b *Builder, registry *charclass.Registry, sub *synparse.HIR, cont StateID) (StateID, error) {
	split := b.AddFail()
	bodyStart, err := build(b, registry, sub, split)
	if err != nil {
		return 0, err
	}
	b.Patch(split, State{Kind: KindSplit, Next: bodyStart, Alt: cont})
	return bodyStart, nil
}

// buildRepeat unrolls {min,max} into min mandatory copies followed either
// by (max-min) nested optional copies, or (when max is unbounded) a star
// of the body. Each optional copy's skip branch jumps straight to cont,
// not to the next optional copy, because once the repetition stops it
// stops for good.
func buildRepeat(b *Builder, registry *charclass.Registry, sub *synparse.HIR, min, max int, cont StateID) (StateID, error) {
	tail := cont
	if max < 0 {
		var err error
		tail, err = buildStar(b, registry, sub, cont)
		if err != nil {
			return 0, err
		}
	} else {
		for i := 0; i < max-min; i++ {
			body, err := build(b, registry, sub, tail)
			if err != nil {
				return 0, err
			}
			tail = b.AddSplit(body, cont)
		}
	}
	for i := 0; i < min; i++ {
		var err error
		tail, err = build(b, registry, sub, tail)
		if err != nil {
			return 0, err
		}
	}
	return tail, nil
}

// nullable reports whether node can match the empty string, which would
// make the pattern accept at every position; no pattern may match the
// empty string.
func nullable(node *synparse.HIR) bool {
	switch node.Op {
	case synparse.OpEmpty:
		return true
	case synparse.OpLiteral, synparse.OpClass, synparse.OpAnyChar:
		return false
	case synparse.OpConcat:
		for _, s := range node.Sub {
			if !nullable(s) {
				return false
			}
		}
		return true
	case synparse.OpAlternate:
		for _, s := range node.Sub {
			if nullable(s) {
				return true
			}
		}
		return false
	case synparse.OpStar, synparse.OpQuest:
		return true
	case synparse.OpPlus:
		return nullable(node.Sub[0])
	case synparse.OpRepeat:
		if node.Min == 0 {
			return true
		}
		return nullable(node.Sub[0])
	default:
		return false
	}
}
