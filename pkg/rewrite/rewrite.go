package rewrite

import "github.com/yaklabco/gosfc/pkg/sfc"

// Result is the outcome of a rewrite.
type Result struct {
	// HasChanged is true when at least one block's content differs from the
	// range it replaced.
	HasChanged bool `json:"hasChanged"`

	// Text is the updated source. It is the original string when HasChanged
	// is false.
	Text string `json:"text"`
}

// Rewrite writes the current content of every block in d back into original.
//
// original must be the text d was parsed from. Block ranges are trusted: an
// out-of-range offset panics and overlapping ranges give unspecified output.
// Use RewriteStrict for descriptors that may not match original.
func Rewrite(original string, d *sfc.Descriptor) Result {
	text, changed := ApplyEdits(original, Edits(d))
	return Result{HasChanged: changed, Text: text}
}

// RewriteStrict validates d against original and then rewrites it.
func RewriteStrict(original string, d *sfc.Descriptor) (Result, error) {
	if err := Validate(original, d); err != nil {
		return Result{Text: original}, err
	}
	return Rewrite(original, d), nil
}
