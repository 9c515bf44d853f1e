package parsecache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/parsecache"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

const source = "<template><p>hi</p></template>\n<style>.a{}</style>\n"

func TestKey(t *testing.T) {
	t.Parallel()

	opts := sfc.DefaultOptions()
	base := parsecache.Key("A.vue", source, opts)

	assert.Equal(t, base, parsecache.Key("A.vue", source, opts), "key must be deterministic")
	assert.NotEqual(t, base, parsecache.Key("B.vue", source, opts))
	assert.NotEqual(t, base, parsecache.Key("A.vue", source+" ", opts))
	assert.NotEqual(t, base, parsecache.Key("A.vue", source, sfc.Options{IgnoreEmpty: false, CheckExpressions: true}))
}

func TestCache_GetReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	cache := parsecache.New(0, 0)
	desc, diags := sfc.Parse("A.vue", source)
	key := parsecache.Key("A.vue", source, sfc.DefaultOptions())

	cache.Put(key, desc, diags)
	desc.Template.Content = "mutated after put"

	first, _, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "<p>hi</p>", first.Template.Content)

	first.Template.Content = "mutated first copy"

	second, _, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "<p>hi</p>", second.Template.Content)
	assert.NotSame(t, first.Template, second.Template)
}

func TestCache_Miss(t *testing.T) {
	t.Parallel()

	cache := parsecache.New(0, 0)
	desc, diags, ok := cache.Get("missing")

	assert.False(t, ok)
	assert.Nil(t, desc)
	assert.Nil(t, diags)
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	cache := parsecache.New(0, 0)
	desc, diags := sfc.Parse("A.vue", source)
	cache.Put("a", desc, diags)
	cache.Put("b", desc, diags)
	require.Equal(t, 2, cache.Len())

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	_, _, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	require.NotNil(t, parsecache.Default())
	assert.Same(t, parsecache.Default(), parsecache.Default())
}
