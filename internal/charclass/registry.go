package charclass

// ID is a stable identifier for an interned character class, shared by
// every NFA and DFA produced from a single ScannerSpec. The alphabet of
// every compiled DFA is a set of these IDs.
type ID uint32

// Registry deduplicates character-class expressions across all patterns
// in all modes of a ScannerSpec and exposes a single predicate
// isClass(classID, char) -> bool once construction is finished.
type Registry struct {
	classes []RangeSet
	byKey   map[string]ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]ID)}
}

// Intern returns the ID for set, allocating a new one if an equivalent
// set (by canonical key) is not already registered.
func (r *Registry) Intern(set RangeSet) (ID, error) {
	if set.IsEmpty() {
		return 0, ErrEmptyClass
	}
	key := set.CanonicalKey()
	if id, ok := r.byKey[key]; ok {
		return id, nil
	}
	id := ID(len(r.classes))
	r.classes = append(r.classes, set)
	r.byKey[key] = id
	return id, nil
}

// Len returns the number of distinct classes interned so far.
func (r *Registry) Len() int {
	return len(r.classes)
}

// ClassSet returns the RangeSet registered under id. The second return
// value is false for an id that was never returned by Intern.
func (r *Registry) ClassSet(id ID) (RangeSet, bool) {
	if int(id) >= len(r.classes) {
		return RangeSet{}, false
	}
	return r.classes[id], true
}

// Predicate is the total function isClass(classID, char) -> bool. It is
// built once per compiled scanner, immutable thereafter, and safe to
// share across clones of a CompiledScanner.
type Predicate struct {
	classes []RangeSet
}

// BuildPredicate snapshots the registry's interned classes into an
// immutable Predicate. Callers must only query IDs that were returned by
// a prior call to Intern on this registry; an unknown ID's behavior is
// undefined.
func (r *Registry) BuildPredicate() *Predicate {
	classes := make([]RangeSet, len(r.classes))
	copy(classes, r.classes)
	return &Predicate{classes: classes}
}

// Matches reports whether r belongs to the class identified by id.
func (p *Predicate) Matches(id ID, r rune) bool {
	return p.classes[id].Contains(r)
}
