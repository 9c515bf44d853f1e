// Package rewrite writes edited block contents back into component source.
//
// Only whole block ranges are replaced. Every byte outside a block range is
// copied through untouched.
package rewrite

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gosfc/pkg/sfc"
)

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string

	// Label names the edited region in error messages.
	Label string
}

// Changes reports whether applying e to original alters it.
func (e TextEdit) Changes(original string) bool {
	return original[e.StartOffset:e.EndOffset] != e.NewText
}

// EditBuilder accumulates edits for one source text.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// ReplaceBlock adds an edit that overwrites blk's range with its current
// content.
func (b *EditBuilder) ReplaceBlock(label string, blk *sfc.Block) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: blk.StartOffset(),
		EndOffset:   blk.EndOffset(),
		NewText:     blk.Content,
		Label:       label,
	})
}

// Edits returns one edit per present block of d, ordered by start offset.
func Edits(d *sfc.Descriptor) []TextEdit {
	b := NewEditBuilder()
	if d == nil {
		return b.Edits
	}
	for _, blk := range d.Blocks() {
		b.ReplaceBlock(d.Selector(blk), blk)
	}
	return b.Edits
}

// SortEdits sorts edits by start offset, then by end offset. Equal edits keep
// their relative order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}
