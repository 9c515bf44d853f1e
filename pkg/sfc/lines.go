package sfc

import (
	"slices"
	"sort"
)

// lineIndex converts byte offsets into line/column positions.
type lineIndex struct {
	// starts holds the offset of the first byte of every line.
	starts []int
	size   int
}

func newLineIndex(src string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts, size: len(src)}
}

// position returns the 1-based line and column for offset. Offsets past the
// end clamp to the end of the source.
func (li lineIndex) position(offset int) Position {
	offset = max(0, min(offset, li.size))
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - li.starts[line] + 1,
	}
}

func (li lineIndex) location(src string, start, end int) Location {
	return Location{
		Start:  li.position(start),
		End:    li.position(end),
		Source: src[start:end],
	}
}

func sortByStart(blocks []*Block) {
	slices.SortStableFunc(blocks, func(a, b *Block) int {
		return a.StartOffset() - b.StartOffset()
	})
}
