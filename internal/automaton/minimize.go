package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/scanforge/scanforge/internal/charclass"
)

// Minimize collapses equivalent states of d using iterative partition
// refinement in the tradition of Hopcroft's algorithm: states start out
// partitioned by accept signature, then any two states in the same block
// that transition to different blocks on some class are split apart,
// repeating until the partition stops changing. What remains is the
// unique minimal DFA recognizing the same per-class language with the
// same accept signatures: two states merge only when they agree on every
// accept and on the block of every successor.
func Minimize(d DFA) DFA {
	classes := alphabetOf(d)
	blockOf := initialPartition(d)

	for {
		next, numBlocks := refine(d, classes, blockOf)
		if numBlocks == countBlocks(blockOf) {
			blockOf = next
			break
		}
		blockOf = next
	}

	return rebuild(d, blockOf)
}

func alphabetOf(d DFA) []charclass.ID {
	seen := map[charclass.ID]bool{}
	for _, s := range d.States {
		for _, t := range s.Transitions {
			seen[t.Class] = true
		}
	}
	out := make([]charclass.ID, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

func initialPartition(d DFA) []int {
	sigToBlock := map[string]int{}
	blockOf := make([]int, len(d.States))
	for i, s := range d.States {
		sig := acceptSignature(s.Accepts)
		b, ok := sigToBlock[sig]
		if !ok {
			b = len(sigToBlock)
			sigToBlock[sig] = b
		}
		blockOf[i] = b
	}
	return blockOf
}

// acceptSignature distinguishes states by their full set of simultaneous
// accepts (order matters: Accepts is always priority-sorted by
// construction), not just the highest-priority one, so minimization never
// merges two states that differ only in their runner-up accept.
func acceptSignature(accepts []Accept) string {
	if len(accepts) == 0 {
		return "-"
	}
	var b strings.Builder
	for i, a := range accepts {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatUint(uint64(a.TerminalID), 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(a.Priority))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(a.LookaheadID))
	}
	return b.String()
}

func refine(d DFA, classes []charclass.ID, blockOf []int) ([]int, int) {
	sigToBlock := map[string]int{}
	next := make([]int, len(d.States))
	var b strings.Builder
	for i := range d.States {
		b.Reset()
		b.WriteString(strconv.Itoa(blockOf[i]))
		for _, c := range classes {
			b.WriteByte('|')
			if n, ok := d.Step(StateID(i), c); ok {
				b.WriteString(strconv.Itoa(blockOf[n]))
			} else {
				b.WriteString("-1")
			}
		}
		key := b.String()
		nb, ok := sigToBlock[key]
		if !ok {
			nb = len(sigToBlock)
			sigToBlock[key] = nb
		}
		next[i] = nb
	}
	return next, len(sigToBlock)
}

func countBlocks(blockOf []int) int {
	max := -1
	for _, b := range blockOf {
		if b > max {
			max = b
		}
	}
	return max + 1
}

func rebuild(d DFA, blockOf []int) DFA {
	numBlocks := countBlocks(blockOf)
	rep := make([]int, numBlocks)
	for i := range rep {
		rep[i] = -1
	}
	for i, b := range blockOf {
		if rep[b] == -1 {
			rep[b] = i
		}
	}

	states := make([]State, numBlocks)
	for b, i := range rep {
		src := d.States[i]
		states[b].Accepts = src.Accepts
		states[b].Transitions = make([]Transition, len(src.Transitions))
		for j, t := range src.Transitions {
			states[b].Transitions[j] = Transition{Class: t.Class, Next: StateID(blockOf[t.Next])}
		}
	}
	return DFA{States: states, Start: StateID(blockOf[d.Start])}
}
