package lookahead

import (
	"testing"

	"github.com/scanforge/scanforge/internal/charclass"
)

func TestPositiveLookahead(t *testing.T) {
	reg := charclass.NewRegistry()
	c, err := Compile("[0-9]+", true, reg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	pred := reg.BuildPredicate()

	input := []rune("x123y")
	ok, consumed := c.Satisfies(pred, input, 1)
	if !ok || consumed != 3 {
		t.Errorf("Satisfies at pos 1 = (%v,%d), want (true,3)", ok, consumed)
	}
	ok, _ = c.Satisfies(pred, input, 4)
	if ok {
		t.Errorf("Satisfies at pos 4 should fail, no digits follow")
	}
}

func TestNegativeLookahead(t *testing.T) {
	reg := charclass.NewRegistry()
	c, err := Compile("[0-9]", false, reg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	pred := reg.BuildPredicate()

	input := []rune("a1 b")
	ok, _ := c.Satisfies(pred, input, 1)
	if ok {
		t.Errorf("pos 1: next char '1' is a digit, negative lookahead should fail but reported ok")
	}
	ok, _ = c.Satisfies(pred, input, 2)
	if !ok {
		t.Errorf("pos 2: next char is ' ', not a digit, negative lookahead should hold")
	}
}
