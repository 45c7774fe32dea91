package charclass

import "testing"

func TestNewRangeSetCanonicalizes(t *testing.T) {
	a := NewRangeSet([]Range{{Lo: 'a', Hi: 'c'}})
	b := NewRangeSet([]Range{{Lo: 'c', Hi: 'c'}, {Lo: 'a', Hi: 'b'}})
	c := NewRangeSet([]Range{{Lo: 'b', Hi: 'c'}, {Lo: 'a', Hi: 'b'}})

	if a.CanonicalKey() != b.CanonicalKey() || a.CanonicalKey() != c.CanonicalKey() {
		t.Errorf("equivalent sets canonicalize differently: %q / %q / %q",
			a.CanonicalKey(), b.CanonicalKey(), c.CanonicalKey())
	}
}

func TestInternDedups(t *testing.T) {
	reg := NewRegistry()

	id1, err := reg.Intern(NewRangeSet([]Range{{Lo: 'a', Hi: 'c'}}))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	id2, err := reg.Intern(NewRangeSet([]Range{{Lo: 'c', Hi: 'c'}, {Lo: 'a', Hi: 'b'}}))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if id1 != id2 {
		t.Errorf("equivalent classes got distinct IDs %d and %d", id1, id2)
	}

	id3, err := reg.Intern(NewRangeSet([]Range{{Lo: '0', Hi: '9'}}))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if id3 == id1 {
		t.Errorf("distinct classes share ID %d", id3)
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2", reg.Len())
	}
}

func TestInternRejectsEmptySet(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Intern(RangeSet{}); err != ErrEmptyClass {
		t.Fatalf("Intern(empty) err = %v, want ErrEmptyClass", err)
	}
}

func TestPredicateMatches(t *testing.T) {
	reg := NewRegistry()
	id, err := reg.Intern(NewRangeSet([]Range{{Lo: 'a', Hi: 'z'}, {Lo: '0', Hi: '9'}}))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	pred := reg.BuildPredicate()

	for _, tc := range []struct {
		r    rune
		want bool
	}{
		{'a', true}, {'z', true}, {'5', true},
		{'A', false}, {' ', false}, {'α', false},
	} {
		if got := pred.Matches(id, tc.r); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestNegate(t *testing.T) {
	set := NewRangeSet([]Range{{Lo: 'b', Hi: 'c'}})
	neg := set.Negate('a', 'e')

	for _, tc := range []struct {
		r    rune
		want bool
	}{
		{'a', true}, {'b', false}, {'c', false}, {'d', true}, {'e', true},
	} {
		if got := neg.Contains(tc.r); got != tc.want {
			t.Errorf("negated Contains(%q) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestUnion(t *testing.T) {
	u := NewRangeSet([]Range{{Lo: 'a', Hi: 'c'}}).Union(NewRangeSet([]Range{{Lo: 'd', Hi: 'f'}}))
	if len(u.Ranges) != 1 || u.Ranges[0] != (Range{Lo: 'a', Hi: 'f'}) {
		t.Errorf("adjacent ranges did not merge: %+v", u.Ranges)
	}
}
