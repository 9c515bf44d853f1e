package rewrite_test

import (
	"context"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/loader"
	"github.com/yaklabco/gosfc/pkg/parsecache"
	"github.com/yaklabco/gosfc/pkg/rewrite"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

func load(t *testing.T, name string, opts ...loader.Option) *loader.Result {
	t.Helper()

	opts = append([]loader.Option{loader.WithCache(parsecache.New(0, 0))}, opts...)
	res, err := loader.Load(context.Background(), filepath.Join("testdata", name), opts...)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	return res
}

func sameString(a, b string) bool {
	return len(a) == len(b) && unsafe.StringData(a) == unsafe.StringData(b)
}

func TestRewrite_NoChanges(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"basic.vue", "preserve.vue"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := load(t, name)
			out := rewrite.Rewrite(res.Text, res.Descriptor)

			assert.False(t, out.HasChanged)
			assert.Equal(t, res.Text, out.Text)
			assert.True(t, sameString(res.Text, out.Text), "unchanged text must be the original string")
		})
	}
}

func TestRewrite_ReassigningSameContentIsNoChange(t *testing.T) {
	t.Parallel()

	res := load(t, "basic.vue")
	res.Descriptor.Template.Content = string([]byte(res.Descriptor.Template.Content))

	out := rewrite.Rewrite(res.Text, res.Descriptor)

	assert.False(t, out.HasChanged)
	assert.True(t, sameString(res.Text, out.Text))
}

func TestRewrite_SingleBlock(t *testing.T) {
	t.Parallel()

	res := load(t, "basic.vue")
	res.Descriptor.Template.Content = "<div>Modified Template</div>"

	out := rewrite.Rewrite(res.Text, res.Descriptor)

	assert.True(t, out.HasChanged)
	assert.Contains(t, out.Text, "<div>Modified Template</div>")
	assert.NotContains(t, out.Text, "<div>Original Template</div>")
	assert.Contains(t, out.Text, "const msg = 'original'")
	assert.Contains(t, out.Text, ".foo { color: red; }")
	assert.Contains(t, out.Text, "original custom")
	assert.Equal(t,
		"<template><div>Modified Template</div></template>\n",
		out.Text[:len("<template><div>Modified Template</div></template>\n")])
}

func TestRewrite_MultipleBlocks(t *testing.T) {
	t.Parallel()

	mutations := []func(d *sfc.Descriptor){
		func(d *sfc.Descriptor) { d.ScriptSetup.Content = `const msg = "modified"` },
		func(d *sfc.Descriptor) { d.Styles[0].Content = ".foo { color: blue; }" },
		func(d *sfc.Descriptor) { d.CustomBlocks[0].Content = "modified custom" },
	}

	forward := load(t, "basic.vue")
	for _, m := range mutations {
		m(forward.Descriptor)
	}
	backward := load(t, "basic.vue")
	for i := len(mutations) - 1; i >= 0; i-- {
		mutations[i](backward.Descriptor)
	}

	out := rewrite.Rewrite(forward.Text, forward.Descriptor)

	assert.True(t, out.HasChanged)
	assert.Contains(t, out.Text, `const msg = "modified"`)
	assert.Contains(t, out.Text, ".foo { color: blue; }")
	assert.Contains(t, out.Text, "modified custom")
	assert.NotContains(t, out.Text, "original custom")
	assert.Contains(t, out.Text, "<div>Original Template</div>")

	assert.Equal(t, out, rewrite.Rewrite(backward.Text, backward.Descriptor), "mutation order must not matter")
}

func TestRewrite_PreservesNonBlockContent(t *testing.T) {
	t.Parallel()

	res := load(t, "preserve.vue")
	res.Descriptor.ScriptSetup.Content = `const msg = "modified"`
	res.Descriptor.Styles[0].Content = ""
	res.Descriptor.Template.Content = "\n  <section>\n    <p>{{ msg }}</p>\n  </section>\n"

	out := rewrite.Rewrite(res.Text, res.Descriptor)

	assert.True(t, out.HasChanged)
	for _, comment := range []string{
		"<!-- This is a comment 1 outside blocks -->",
		"<!-- This is a comment 2 outside blocks -->",
		"<!-- This is a comment 3 outside blocks -->",
		"<!-- This is a comment 4 outside blocks -->",
		"<!-- This is a comment 5 outside blocks -->",
	} {
		assert.Contains(t, out.Text, comment)
	}
	assert.Contains(t, out.Text, `const msg = "modified"`)
	assert.Contains(t, out.Text, "<style></style>")
}

func TestRewrite_CachedDescriptorReflectsItsOwnMutations(t *testing.T) {
	t.Parallel()

	cache := parsecache.New(0, 0)
	opts := []loader.Option{loader.WithCache(cache), loader.WithDisableCache(false)}

	first := load(t, "basic.vue", opts...)
	first.Descriptor.ScriptSetup.Content = `const msg = "first"`
	firstOut := rewrite.Rewrite(first.Text, first.Descriptor)
	require.True(t, firstOut.HasChanged)

	second := load(t, "basic.vue", opts...)
	require.True(t, second.Cached)

	unchanged := rewrite.Rewrite(second.Text, second.Descriptor)
	assert.False(t, unchanged.HasChanged, "cached copy must not carry the first caller's edits")

	second.Descriptor.ScriptSetup.Content = `const msg = "second"`
	out := rewrite.Rewrite(second.Text, second.Descriptor)

	assert.True(t, out.HasChanged)
	assert.Contains(t, out.Text, `const msg = "second"`)
	assert.NotContains(t, out.Text, `const msg = "first"`)
}

func TestRewrite_NilDescriptor(t *testing.T) {
	t.Parallel()

	original := "<template></template>"
	out := rewrite.Rewrite(original, nil)

	assert.False(t, out.HasChanged)
	assert.True(t, sameString(original, out.Text))
}

func TestRewriteStrict(t *testing.T) {
	t.Parallel()

	t.Run("valid descriptor", func(t *testing.T) {
		t.Parallel()

		res := load(t, "basic.vue")
		res.Descriptor.CustomBlocks[0].Content = "strict"

		out, err := rewrite.RewriteStrict(res.Text, res.Descriptor)
		require.NoError(t, err)
		assert.True(t, out.HasChanged)
		assert.Contains(t, out.Text, "<docs>strict</docs>")
	})

	t.Run("different source", func(t *testing.T) {
		t.Parallel()

		res := load(t, "basic.vue")
		other := res.Text + "\n"

		out, err := rewrite.RewriteStrict(other, res.Descriptor)
		require.ErrorIs(t, err, rewrite.ErrSourceMismatch)
		assert.False(t, out.HasChanged)
		assert.Equal(t, other, out.Text)
	})
}
