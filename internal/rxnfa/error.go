package rxnfa

import "errors"

// Local sentinels, rewrapped by the root package as scanforge.ErrEmptyToken
// and scanforge.ErrInvalidClass so callers need not import this package.
var (
	ErrEmptyToken   = errors.New("rxnfa: pattern matches the empty string")
	ErrInvalidClass = errors.New("rxnfa: invalid character class")
)
