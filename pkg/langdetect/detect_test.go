package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/langdetect"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", "text"},
		{"whitespace", "  \n\t", "text"},
		{"json object", `{"en": {"hello": "Hello"}}`, "json"},
		{"json array", `[{"id": 1}]`, "json"},
		{"yaml", "en:\n  hello: Hello\nfr:\n  hello: Bonjour", "yaml"},
		{"yaml list", "- one\n- two", "yaml"},
		{"markdown heading", "# Button\n\nA clickable button.", "markdown"},
		{"markdown fence", "Usage:\n\n```vue\n<Button/>\n```", "markdown"},
		{"html", "<div class=\"demo\"><Button/></div>", "html"},
		{"javascript", "export default { name: 'demo' }", "javascript"},
		{"typescript", "interface Props { label: string }", "typescript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestFromAttr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang     string
		expected string
	}{
		{"ts", "typescript"},
		{"js", "javascript"},
		{"scss", "scss"},
		{"yaml", "yaml"},
		{"json", "json"},
		{"md", "markdown"},
		{"Mystery", "mystery"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.FromAttr(tt.lang))
		})
	}
}

func TestForBlock(t *testing.T) {
	t.Parallel()

	source := `<template><p/></template>
<script setup lang="ts">const a: number = 1</script>
<style lang="scss">.a { .b {} }</style>
<style>.c {}</style>
<i18n>{"en": {"hi": "Hi"}}</i18n>
<docs lang="md">plain words</docs>
`
	desc, diags := sfc.Parse("Lang.vue", source)
	require.Empty(t, diags)

	tests := []struct {
		selector string
		want     langdetect.Result
	}{
		{"template", langdetect.Result{Language: "html", Source: langdetect.SourceDefault}},
		{"script-setup", langdetect.Result{Language: "typescript", Source: langdetect.SourceAttribute}},
		{"style:0", langdetect.Result{Language: "scss", Source: langdetect.SourceAttribute}},
		{"style:1", langdetect.Result{Language: "css", Source: langdetect.SourceDefault}},
		{"custom:i18n", langdetect.Result{Language: "json", Source: langdetect.SourceContent}},
		{"custom:docs", langdetect.Result{Language: "markdown", Source: langdetect.SourceAttribute}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			b, err := desc.Select(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, langdetect.ForBlock(b))
		})
	}
}
