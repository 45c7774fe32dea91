package scanforge

// ModeTransition is one entry of a mode's terminal→mode switch table:
// after a token of TerminalID is emitted, the scanner's current mode
// becomes ModeID.
type ModeTransition struct {
	TerminalID uint32
	ModeID     int
}

// ScannerMode is one mode descriptor: a human-readable Name, the ordered
// Patterns recognized in this mode (order is priority: earlier patterns
// win length ties), and the Transitions table, which must be supplied
// sorted by TerminalID with no duplicate entries.
type ScannerMode struct {
	Name        string
	Patterns    []Pattern
	Transitions []ModeTransition
}

// ScannerSpec is the compilation pipeline's sole input: an ordered
// sequence of mode descriptors. A mode's index in Modes is its mode ID;
// mode 0 is the scanner's initial mode.
type ScannerSpec struct {
	Modes []ScannerMode
}
