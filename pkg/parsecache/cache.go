// Package parsecache memoizes parsed descriptors keyed by file content.
//
// The cache hands out deep copies: a descriptor returned by Get can be edited
// freely without affecting the cached entry or any other caller's copy.
package parsecache

import (
	"encoding/hex"
	"io"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/blake3"

	"github.com/yaklabco/gosfc/pkg/sfc"
)

const (
	// DefaultExpiration is how long an entry stays cached without being replaced.
	DefaultExpiration = 10 * time.Minute

	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = 30 * time.Minute
)

type entry struct {
	descriptor  *sfc.Descriptor
	diagnostics []sfc.Diagnostic
}

// Cache maps content keys to parse results.
// It is safe for concurrent use.
type Cache struct {
	store *gocache.Cache
}

// New creates an empty cache. A zero expiration means entries never expire.
func New(expiration, cleanupInterval time.Duration) *Cache {
	if expiration == 0 {
		expiration = gocache.NoExpiration
	}
	return &Cache{store: gocache.New(expiration, cleanupInterval)}
}

//nolint:gochecknoglobals // Process-wide cache is opt-in through the loader.
var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// Default returns the process-wide cache.
func Default() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = New(DefaultExpiration, DefaultCleanupInterval)
	})
	return defaultCache
}

// Key derives the cache key for parsing source as filename with opts.
func Key(filename, source string, opts sfc.Options) string {
	h := blake3.New()
	for _, part := range []string{
		filename,
		strconv.FormatBool(opts.IgnoreEmpty),
		strconv.FormatBool(opts.CheckExpressions),
		source,
	} {
		_, _ = io.WriteString(h, part)
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a copy of the cached result for key.
func (c *Cache) Get(key string) (*sfc.Descriptor, []sfc.Diagnostic, bool) {
	v, found := c.store.Get(key)
	if !found {
		return nil, nil, false
	}
	e, ok := v.(entry)
	if !ok {
		return nil, nil, false
	}
	return e.descriptor.Clone(), cloneDiagnostics(e.diagnostics), true
}

// Put stores a copy of desc and diags under key.
func (c *Cache) Put(key string, desc *sfc.Descriptor, diags []sfc.Diagnostic) {
	c.store.SetDefault(key, entry{
		descriptor:  desc.Clone(),
		diagnostics: cloneDiagnostics(diags),
	})
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.store.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func cloneDiagnostics(diags []sfc.Diagnostic) []sfc.Diagnostic {
	if diags == nil {
		return nil
	}
	return append([]sfc.Diagnostic(nil), diags...)
}
