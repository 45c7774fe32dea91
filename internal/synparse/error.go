package synparse

import "errors"

// Local sentinel errors. The root package recognizes these with errors.Is
// and rewraps them as scanforge.ErrSyntax / scanforge.ErrUnsupported /
// scanforge.ErrInvalidClass so callers outside this module never need to
// import an internal package to classify a compile failure.
var (
	ErrSyntax       = errors.New("synparse: syntax error")
	ErrUnsupported  = errors.New("synparse: unsupported construct")
	ErrInvalidClass = errors.New("synparse: invalid character class")
)
