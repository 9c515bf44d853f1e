package rewrite

import "slices"

// ApplyEdits overwrites each edit's range in content and reports whether the
// text changed.
//
// Edits are sorted by start offset and applied from last to first, so the
// offsets of edits not yet applied still refer to content. Edits whose new
// text equals the range they cover are skipped. When nothing changes the
// returned string is content itself.
//
// ApplyEdits does not validate ranges. Use Validate first for edits that may
// be out of bounds or overlap.
func ApplyEdits(content string, edits []TextEdit) (string, bool) {
	if len(edits) == 0 {
		return content, false
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	var buf []byte
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		if !e.Changes(content) {
			continue
		}
		if buf == nil {
			buf = []byte(content)
		}
		buf = slices.Replace(buf, e.StartOffset, e.EndOffset, []byte(e.NewText)...)
	}

	if buf == nil {
		return content, false
	}
	return string(buf), true
}
