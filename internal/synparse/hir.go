package synparse

import "github.com/scanforge/scanforge/internal/charclass"

// Op identifies the kind of a HIR node. The set is deliberately small:
// empty, literal character, concatenation, alternation, bounded and
// unbounded repetition (*, +, ?, {n}, {n,}, {n,m}), character class,
// and dot.
type Op uint8

const (
	OpEmpty Op = iota
	OpLiteral
	OpConcat
	OpAlternate
	OpStar
	OpPlus
	OpQuest
	OpRepeat
	OpClass
	OpAnyChar
)

// HIR is scanforge's intermediate regex representation: the surface
// syntax tree produced by regexp/syntax, narrowed to the supported subset
// and with every character set reduced to a charclass.RangeSet ready for
// interning.
type HIR struct {
	Op   Op
	Sub  []*HIR             // Concat, Alternate: operands. Star/Plus/Quest/Repeat: single operand.
	Rune rune               // OpLiteral
	Set  charclass.RangeSet // OpClass
	Min  int                // OpRepeat
	Max  int                // OpRepeat; -1 means unbounded
}
