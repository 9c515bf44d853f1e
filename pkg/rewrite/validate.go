package rewrite

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gosfc/pkg/sfc"
)

// ErrSourceMismatch is returned when a descriptor was parsed from a different
// text than the one being rewritten.
var ErrSourceMismatch = errors.New("descriptor does not match source text")

// RangeError describes an edit whose range does not fit the text.
type RangeError struct {
	Edit    TextEdit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %s[%d:%d]: %s",
		labelPrefix(e.Edit), e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// OverlapError describes two edits whose ranges overlap.
type OverlapError struct {
	First  TextEdit
	Second TextEdit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping ranges: %s[%d:%d] and %s[%d:%d]",
		labelPrefix(e.First), e.First.StartOffset, e.First.EndOffset,
		labelPrefix(e.Second), e.Second.StartOffset, e.Second.EndOffset)
}

func labelPrefix(e TextEdit) string {
	if e.Label == "" {
		return ""
	}
	return e.Label + " "
}

// ValidateEdits checks that every edit has a valid range for content of
// length contentLen. It returns the first problem found as a *RangeError.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if edit.StartOffset < 0 {
			return &RangeError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.EndOffset < edit.StartOffset {
			return &RangeError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.EndOffset > contentLen {
			return &RangeError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// DetectOverlaps checks a sorted slice for overlapping ranges and returns the
// first as an *OverlapError. Edits must be sorted with SortEdits.
func DetectOverlaps(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &OverlapError{First: prev, Second: curr}
		}
	}
	return nil
}

// Validate checks that d can be rewritten into original: the descriptor
// must come from original, and its block ranges must lie inside it without
// overlapping.
func Validate(original string, d *sfc.Descriptor) error {
	if d == nil {
		return nil
	}
	if d.Source != "" && d.Source != original {
		return fmt.Errorf("%w: %s", ErrSourceMismatch, d.Filename)
	}

	edits := Edits(d)
	if err := ValidateEdits(edits, len(original)); err != nil {
		return err
	}
	SortEdits(edits)
	return DetectOverlaps(edits)
}
