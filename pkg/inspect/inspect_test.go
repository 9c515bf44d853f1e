package inspect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/inspect"
	"github.com/yaklabco/gosfc/pkg/langdetect"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

const component = `<docs lang="md">
# Button

A button.

## Props
</docs>

<template>
  <button :class="$style.btn"><slot /></button>
</template>

<script setup lang="ts">
defineProps<{ label: string }>()
</script>

<style module>
.btn { color: v-bind(color); }
</style>

<i18n>
{"en": {"ok": "OK"}}
</i18n>
`

func TestInspect(t *testing.T) {
	t.Parallel()

	desc, diags := sfc.Parse("Button.vue", component)
	require.Empty(t, diags)

	s := inspect.Inspect(desc, diags)

	assert.Equal(t, "Button.vue", s.Filename)
	assert.Equal(t, []string{"color"}, s.CSSVars)
	require.Len(t, s.Blocks, 5)

	selectors := make([]string, len(s.Blocks))
	for i, b := range s.Blocks {
		selectors[i] = b.Selector
	}
	assert.Equal(t, []string{"custom:docs:0", "template", "script-setup", "style:0", "custom:i18n:0"}, selectors)

	docs := s.Blocks[0]
	assert.Equal(t, "markdown", docs.Language)
	assert.Equal(t, langdetect.SourceAttribute, docs.LangSource)
	assert.Equal(t, 1, docs.Start.Line)
	assert.Equal(t, 5, docs.Lines)
	assert.Equal(t, []inspect.Heading{
		{Level: 1, Text: "Button", Line: 2},
		{Level: 2, Text: "Props", Line: 6},
	}, docs.Outline)

	tmpl := s.Blocks[1]
	assert.Equal(t, "html", tmpl.Language)
	assert.Equal(t, 1, tmpl.Lines)
	assert.Empty(t, tmpl.Outline)

	script := s.Blocks[2]
	assert.Equal(t, "typescript", script.Language)
	assert.Equal(t, "ts", script.Attrs.Get("lang"))

	i18n := s.Blocks[4]
	assert.Equal(t, "json", i18n.Language)
	assert.Equal(t, langdetect.SourceContent, i18n.LangSource)
	assert.Equal(t, len(desc.CustomBlocks[1].Content), i18n.Bytes)
	assert.False(t, i18n.Empty)
}

func TestInspect_EmptyTemplate(t *testing.T) {
	t.Parallel()

	desc, diags := sfc.Parse("Empty.vue", "<template>\n</template>\n")
	s := inspect.Inspect(desc, diags)

	require.Len(t, s.Blocks, 1)
	assert.True(t, s.Blocks[0].Empty)
	assert.Equal(t, 0, s.Blocks[0].Lines)
}

func TestOutline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []inspect.Heading
	}{
		{
			name:    "no headings",
			content: "just text\n",
		},
		{
			name:    "atx with inline code",
			content: "# Using `v-model`\n",
			want:    []inspect.Heading{{Level: 1, Text: "Using v-model", Line: 1}},
		},
		{
			name:    "setext",
			content: "\nTitle\n=====\n\nSub\n---\n",
			want: []inspect.Heading{
				{Level: 1, Text: "Title", Line: 2},
				{Level: 2, Text: "Sub", Line: 5},
			},
		},
		{
			name:    "heading inside fence is ignored",
			content: "```md\n# not a heading\n```\n### Real\n",
			want:    []inspect.Heading{{Level: 3, Text: "Real", Line: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.Outline([]byte(tt.content)))
		})
	}
}
