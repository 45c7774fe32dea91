package synparse

// AsLiteral reports whether h denotes exactly one fixed string with no
// alternation, repetition, or character class involved, returning that
// string. Used to pick out patterns eligible for Aho-Corasick
// acceleration (internal/litscan): a keyword like "func" is a literal, an
// identifier class [a-zA-Z_]+ is not.
func AsLiteral(h *HIR) (string, bool) {
	switch h.Op {
	case OpEmpty:
		return "", true
	case OpLiteral:
		return string(h.Rune), true
	case OpConcat:
		var out []rune
		for _, sub := range h.Sub {
			s, ok := AsLiteral(sub)
			if !ok {
				return "", false
			}
			out = append(out, []rune(s)...)
		}
		return string(out), true
	default:
		return "", false
	}
}
