package scanforge

import (
	"sort"
	"unicode/utf8"

	"github.com/scanforge/scanforge/internal/swar"
)

// PositionTracker converts byte offsets into 1-based (line, column)
// pairs. Newline offsets are found lazily on first query, using
// internal/swar's byte search rather than decoding the whole input as
// UTF-8 up front, and column is only computed for the one line actually
// asked about.
type PositionTracker struct {
	data           []byte
	newlineOffsets []int
	built          bool
}

// NewPositionTracker wraps data; no work happens until the first query.
func NewPositionTracker(data []byte) *PositionTracker {
	return &PositionTracker{data: data}
}

func (t *PositionTracker) ensureBuilt() {
	if t.built {
		return
	}
	from := 0
	for {
		i := swar.IndexByte(t.data, from, '\n')
		if i < 0 {
			break
		}
		t.newlineOffsets = append(t.newlineOffsets, i)
		from = i + 1
	}
	t.built = true
}

// PositionAt returns the 1-based (line, column) of byteOffset. Column
// counts Unicode scalars, not bytes, from the start of the line.
func (t *PositionTracker) PositionAt(byteOffset int) Position {
	t.ensureBuilt()

	line := sort.SearchInts(t.newlineOffsets, byteOffset) + 1

	lineStart := 0
	if line > 1 {
		lineStart = t.newlineOffsets[line-2] + 1
	}

	column := 1
	for i := lineStart; i < byteOffset; {
		_, size := utf8.DecodeRune(t.data[i:])
		if size == 0 {
			break
		}
		i += size
		column++
	}

	return Position{Line: line, Column: column}
}
