package sfc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/sfc"
)

const selectorSource = `<template><p/></template>
<script setup>const a = 1</script>
<style>.a{}</style>
<style scoped>.b{}</style>
<i18n>{"en":{}}</i18n>
<docs># One</docs>
<docs># Two</docs>
`

func TestDescriptor_Select(t *testing.T) {
	t.Parallel()

	desc, diags := sfc.Parse("Select.vue", selectorSource)
	require.Empty(t, diags)

	tests := []struct {
		selector string
		want     string
		err      error
	}{
		{selector: "template", want: "<p/>"},
		{selector: "script-setup", want: "const a = 1"},
		{selector: "style", want: ".a{}"},
		{selector: "style:0", want: ".a{}"},
		{selector: "style:1", want: ".b{}"},
		{selector: "custom:i18n", want: `{"en":{}}`},
		{selector: "custom:docs:1", want: "# Two"},
		{selector: "custom:DOCS:0", want: "# One"},
		{selector: "script", err: sfc.ErrNoSuchBlock},
		{selector: "style:2", err: sfc.ErrNoSuchBlock},
		{selector: "custom:docs:2", err: sfc.ErrNoSuchBlock},
		{selector: "custom:missing", err: sfc.ErrNoSuchBlock},
		{selector: "style:-1", err: sfc.ErrInvalidSelector},
		{selector: "style:x", err: sfc.ErrInvalidSelector},
		{selector: "template:0", err: sfc.ErrInvalidSelector},
		{selector: "custom", err: sfc.ErrInvalidSelector},
		{selector: "custom:", err: sfc.ErrInvalidSelector},
		{selector: "header", err: sfc.ErrInvalidSelector},
		{selector: "", err: sfc.ErrInvalidSelector},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			b, err := desc.Select(tt.selector)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Content)
		})
	}
}

func TestDescriptor_SelectorRoundTrip(t *testing.T) {
	t.Parallel()

	desc, _ := sfc.Parse("Select.vue", selectorSource)

	for _, b := range desc.Blocks() {
		sel := desc.Selector(b)
		require.NotEmpty(t, sel)

		got, err := desc.Select(sel)
		require.NoError(t, err)
		assert.Same(t, b, got, sel)
	}

	assert.Empty(t, desc.Selector(nil))
	assert.Empty(t, desc.Selector(&sfc.Block{Type: "docs"}))
}
