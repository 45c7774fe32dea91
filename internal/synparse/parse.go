// Package synparse is the parser front-end of the compilation pipeline:
// it turns a pattern's source text into scanforge's HIR, using the
// standard library's regexp/syntax parser for the surface syntax and
// walking the resulting tree.
package synparse

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/scanforge/scanforge/internal/charclass"
)

// Parse compiles pattern's source text into a HIR tree. Only a DFA-able
// subset of regexp/syntax.Op values is supported; anchors, word
// boundaries and any op requiring backtracking semantics are rejected
// with ErrUnsupported.
func Parse(pattern string) (*HIR, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		// regexp/syntax reports lookaround and backreferences as parse
		// errors; classify them as unsupported rather than ill-formed.
		var se *syntax.Error
		if errors.As(err, &se) {
			for _, prefix := range []string{"(?=", "(?!", "(?<=", "(?<!"} {
				if strings.HasPrefix(se.Expr, prefix) {
					return nil, fmt.Errorf("%w: lookaround: %v", ErrUnsupported, err)
				}
			}
			if len(se.Expr) == 2 && se.Expr[0] == '\\' && se.Expr[1] >= '1' && se.Expr[1] <= '9' {
				return nil, fmt.Errorf("%w: backreference: %v", ErrUnsupported, err)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	// No Simplify: it rewrites counted repetitions into nested quests,
	// and {n,m} is a first-class HIR op here (buildRepeat unrolls it
	// during Thompson construction instead).
	return walk(re)
}

func walk(re *syntax.Regexp) (*HIR, error) {
	switch re.Op {
	case syntax.OpEmptyMatch:
		return &HIR{Op: OpEmpty}, nil

	case syntax.OpLiteral:
		return literalRun(re), nil

	case syntax.OpCharClass:
		set := classFromRunePairs(re.Rune)
		if set.IsEmpty() {
			return nil, ErrInvalidClass
		}
		return &HIR{Op: OpClass, Set: set}, nil

	case syntax.OpAnyCharNotNL:
		nl := charclass.NewRangeSet([]charclass.Range{{Lo: '\n', Hi: '\n'}})
		return &HIR{Op: OpAnyChar, Set: nl.Negate(0, 0x10FFFF)}, nil

	case syntax.OpAnyChar:
		return &HIR{Op: OpAnyChar, Set: charclass.NewRangeSet([]charclass.Range{{Lo: 0, Hi: 0x10FFFF}})}, nil

	case syntax.OpCapture:
		return walk(re.Sub[0])

	case syntax.OpStar:
		sub, err := walk(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return &HIR{Op: OpStar, Sub: []*HIR{sub}}, nil

	case syntax.OpPlus:
		sub, err := walk(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return &HIR{Op: OpPlus, Sub: []*HIR{sub}}, nil

	case syntax.OpQuest:
		sub, err := walk(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return &HIR{Op: OpQuest, Sub: []*HIR{sub}}, nil

	case syntax.OpRepeat:
		sub, err := walk(re.Sub[0])
		if err != nil {
			return nil, err
		}
		max := re.Max
		if re.Max < 0 {
			max = -1
		}
		return &HIR{Op: OpRepeat, Sub: []*HIR{sub}, Min: re.Min, Max: max}, nil

	case syntax.OpConcat:
		return concatOf(re.Sub)

	case syntax.OpAlternate:
		subs := make([]*HIR, 0, len(re.Sub))
		for _, s := range re.Sub {
			h, err := walk(s)
			if err != nil {
				return nil, err
			}
			subs = append(subs, h)
		}
		return &HIR{Op: OpAlternate, Sub: subs}, nil

	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, fmt.Errorf("%w: anchors are not supported", ErrUnsupported)

	case syntax.OpNoMatch:
		return nil, fmt.Errorf("%w: pattern can never match", ErrUnsupported)

	default:
		return nil, fmt.Errorf("%w: unsupported regex construct", ErrUnsupported)
	}
}

// literalRun turns a run of literal runes (regexp/syntax folds adjacent
// literals together) into a single flat concatenation of OpLiteral nodes.
func literalRun(re *syntax.Regexp) *HIR {
	if len(re.Rune) == 1 {
		return &HIR{Op: OpLiteral, Rune: re.Rune[0]}
	}
	subs := make([]*HIR, len(re.Rune))
	for i, r := range re.Rune {
		subs[i] = &HIR{Op: OpLiteral, Rune: r}
	}
	return &HIR{Op: OpConcat, Sub: subs}
}

func concatOf(subExprs []*syntax.Regexp) (*HIR, error) {
	subs := make([]*HIR, 0, len(subExprs))
	for _, s := range subExprs {
		h, err := walk(s)
		if err != nil {
			return nil, err
		}
		subs = append(subs, h)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return &HIR{Op: OpConcat, Sub: subs}, nil
}

// classFromRunePairs converts regexp/syntax's flattened [lo,hi,lo,hi,...]
// rune-pair slice into a charclass.RangeSet.
func classFromRunePairs(pairs []rune) charclass.RangeSet {
	ranges := make([]charclass.Range, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ranges = append(ranges, charclass.Range{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return charclass.NewRangeSet(ranges)
}
