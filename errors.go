package scanforge

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is against these to classify a failure
// returned from Build or from compiling a single pattern.
var (
	// ErrSyntax indicates a pattern is not a valid regex of the supported
	// subset.
	ErrSyntax = errors.New("scanforge: syntax error")

	// ErrUnsupported indicates a pattern uses a feature the engine does not
	// model: lookaround (other than scanforge's own Lookahead field),
	// backreferences, or anchors other than the implicit start-of-match.
	ErrUnsupported = errors.New("scanforge: unsupported feature")

	// ErrInvalidClass indicates a character-class expression could not be
	// realized as a set of Unicode scalar values.
	ErrInvalidClass = errors.New("scanforge: invalid character class")

	// ErrEmptyToken indicates a pattern admits the empty string as a
	// match. Raised at compile time.
	ErrEmptyToken = errors.New("scanforge: pattern matches the empty string")

	// ErrInvalidUTF8 indicates the scan input is not valid Unicode text.
	ErrInvalidUTF8 = errors.New("scanforge: input is not valid UTF-8")

	// ErrDuplicateTerminal indicates two patterns in the same mode share a
	// terminal ID; a terminal ID must appear in exactly one pattern of a
	// mode.
	ErrDuplicateTerminal = errors.New("scanforge: duplicate terminal ID in mode")

	// ErrUnsortedTransitions indicates a mode's terminal->mode transition
	// table was not supplied in terminal-ID sorted order.
	ErrUnsortedTransitions = errors.New("scanforge: transition table is not sorted by terminal ID")
)

// CompileError wraps a build-time failure with the offending pattern and
// mode attached for diagnostics.
type CompileError struct {
	// ModeName is the name of the scanner mode being compiled.
	ModeName string
	// Pattern is the offending pattern's source text, empty if the error
	// is not attributable to a single pattern (e.g. a bad transition
	// table).
	Pattern string
	// Err is the underlying sentinel error (one of the Err* values above).
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	switch {
	case e.Pattern != "" && e.ModeName != "":
		return fmt.Sprintf("scanforge: mode %q: pattern %q: %v", e.ModeName, e.Pattern, e.Err)
	case e.Pattern != "":
		return fmt.Sprintf("scanforge: pattern %q: %v", e.Pattern, e.Err)
	case e.ModeName != "":
		return fmt.Sprintf("scanforge: mode %q: %v", e.ModeName, e.Err)
	default:
		return fmt.Sprintf("scanforge: %v", e.Err)
	}
}

// Unwrap returns the underlying sentinel error so callers can use
// errors.Is(err, scanforge.ErrSyntax) and friends.
func (e *CompileError) Unwrap() error {
	return e.Err
}
