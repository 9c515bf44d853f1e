package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gosfc/pkg/rewrite"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		edits       []rewrite.TextEdit
		want        string
		wantChanged bool
	}{
		{
			name:    "empty edits returns original",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "identical replacement is no change",
			content: "hello world",
			edits: []rewrite.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "hello"},
			},
			want: "hello world",
		},
		{
			name:    "single replacement",
			content: "hello world",
			edits: []rewrite.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "hi"},
			},
			want:        "hi world",
			wantChanged: true,
		},
		{
			name:    "insertion into empty range",
			content: "<a></a>",
			edits: []rewrite.TextEdit{
				{StartOffset: 3, EndOffset: 3, NewText: "body"},
			},
			want:        "<a>body</a>",
			wantChanged: true,
		},
		{
			name:    "clear a range",
			content: "<a>body</a>",
			edits: []rewrite.TextEdit{
				{StartOffset: 3, EndOffset: 7, NewText: ""},
			},
			want:        "<a></a>",
			wantChanged: true,
		},
		{
			name:    "edits given out of order",
			content: "[aa] [bb] [cc]",
			edits: []rewrite.TextEdit{
				{StartOffset: 11, EndOffset: 13, NewText: "CCCC"},
				{StartOffset: 1, EndOffset: 3, NewText: "A"},
				{StartOffset: 6, EndOffset: 8, NewText: "bbbbbb"},
			},
			want:        "[A] [bbbbbb] [CCCC]",
			wantChanged: true,
		},
		{
			name:    "growing earlier edit does not shift later ones",
			content: "abcdef",
			edits: []rewrite.TextEdit{
				{StartOffset: 0, EndOffset: 1, NewText: "XXXXXXXX"},
				{StartOffset: 5, EndOffset: 6, NewText: "Z"},
			},
			want:        "XXXXXXXXbcdeZ",
			wantChanged: true,
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []rewrite.TextEdit{
				{StartOffset: 0, EndOffset: 2, NewText: "XX"},
				{StartOffset: 2, EndOffset: 4, NewText: "YY"},
				{StartOffset: 4, EndOffset: 6, NewText: "ZZ"},
			},
			want:        "XXYYZZ",
			wantChanged: true,
		},
		{
			name:    "only changed edits are applied",
			content: "one two",
			edits: []rewrite.TextEdit{
				{StartOffset: 0, EndOffset: 3, NewText: "one"},
				{StartOffset: 4, EndOffset: 7, NewText: "2"},
			},
			want:        "one 2",
			wantChanged: true,
		},
		{
			name:    "multibyte content",
			content: "<i18n>héllo</i18n>",
			edits: []rewrite.TextEdit{
				{StartOffset: 6, EndOffset: 12, NewText: "wörld"},
			},
			want:        "<i18n>wörld</i18n>",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := rewrite.ApplyEdits(tt.content, tt.edits)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
			if !tt.wantChanged {
				assert.True(t, sameString(tt.content, got))
			}
		})
	}
}

func TestApplyEdits_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	edits := []rewrite.TextEdit{
		{StartOffset: 4, EndOffset: 5, NewText: "b"},
		{StartOffset: 0, EndOffset: 1, NewText: "a"},
	}
	want := append([]rewrite.TextEdit(nil), edits...)

	_, _ = rewrite.ApplyEdits("xxxxxx", edits)

	assert.Equal(t, want, edits)
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	b := rewrite.NewEditBuilder()
	b.ReplaceRange(6, 8, "Y")
	b.ReplaceRange(0, 2, "X")

	assert.Len(t, b.Edits, 2)

	got, changed := rewrite.ApplyEdits("ab cd ef", b.Edits)
	assert.True(t, changed)
	assert.Equal(t, "X cd Y", got)
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []rewrite.TextEdit{
		{StartOffset: 5, EndOffset: 9, Label: "c"},
		{StartOffset: 1, EndOffset: 3, Label: "b"},
		{StartOffset: 1, EndOffset: 1, Label: "a"},
		{StartOffset: 5, EndOffset: 9, Label: "d"},
	}

	rewrite.SortEdits(edits)

	labels := make([]string, len(edits))
	for i, e := range edits {
		labels[i] = e.Label
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels)
}
