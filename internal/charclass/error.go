package charclass

import "errors"

// ErrEmptyClass indicates a character-class expression denotes no scalars
// at all (e.g. a bracket expression whose ranges cancel out entirely),
// which cannot be realized as a usable predicate. Surfaced by the caller
// as scanforge.ErrInvalidClass.
var ErrEmptyClass = errors.New("charclass: expression denotes an empty set of scalars")
