package litscan

import "testing"

func TestNextCandidate(t *testing.T) {
	accel, err := Build([]string{"foo", "ba"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	data := []byte("xxfooyybarz")
	off, ok := accel.NextCandidate(data, 0)
	if !ok || off != 2 {
		t.Fatalf("NextCandidate(0) = (%d,%v), want (2,true)", off, ok)
	}
	off, ok = accel.NextCandidate(data, 3)
	if !ok || off != 7 {
		t.Fatalf("NextCandidate(3) = (%d,%v), want (7,true)", off, ok)
	}
	if _, ok = accel.NextCandidate(data, 9); ok {
		t.Fatal("NextCandidate(9) found a literal past the last occurrence")
	}
}

func TestBuildEmptyYieldsNil(t *testing.T) {
	accel, err := Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if accel != nil {
		t.Fatal("Build(nil) returned a non-nil accelerator")
	}
	// The nil receiver stays usable.
	if _, ok := accel.NextCandidate([]byte("abc"), 0); ok {
		t.Fatal("nil accelerator reported a candidate")
	}
}
