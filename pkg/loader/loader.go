// Package loader reads single-file components from disk and parses them into
// descriptors.
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gosfc/internal/logging"
	"github.com/yaklabco/gosfc/pkg/fsutil"
	"github.com/yaklabco/gosfc/pkg/parsecache"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

// Result is the outcome of loading one file.
type Result struct {
	// Text is the raw file content the descriptor's offsets refer to.
	Text string

	// Descriptor holds the parsed blocks. Block contents may be edited in
	// place and written back with the rewrite package.
	Descriptor *sfc.Descriptor

	// Errors lists structural problems found while parsing.
	Errors []sfc.Diagnostic

	// File records the on-disk state at read time. Nil for LoadSource.
	File *fsutil.FileInfo

	// Cached is true when the descriptor came from the parse cache.
	Cached bool
}

// HasErrors reports whether parsing produced any diagnostics.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// IOError reports a file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Options configures Load and LoadSource.
type Options struct {
	// DisableCache clears the parse cache before parsing so every call
	// yields a fresh descriptor. Defaults to true.
	DisableCache bool

	// Cache is the parse cache to consult. Defaults to parsecache.Default().
	Cache *parsecache.Cache

	// Parse controls the parser.
	Parse sfc.Options

	// Logger overrides the logger carried by the context.
	Logger *log.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		DisableCache: true,
		Parse:        sfc.DefaultOptions(),
	}
}

// WithDisableCache sets whether the parse cache is bypassed.
func WithDisableCache(disable bool) Option {
	return func(o *Options) {
		o.DisableCache = disable
	}
}

// WithCache uses cache instead of the process-wide parse cache.
func WithCache(cache *parsecache.Cache) Option {
	return func(o *Options) {
		o.Cache = cache
	}
}

// WithParseOptions sets the parser options.
func WithParseOptions(opts sfc.Options) Option {
	return func(o *Options) {
		o.Parse = opts
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Cache == nil {
		o.Cache = parsecache.Default()
	}
	return o
}

// Load reads path and parses it.
//
// Read failures are returned as *IOError. Structural problems in the file are
// never errors; they are reported in Result.Errors next to a best-effort
// descriptor.
func Load(ctx context.Context, path string, opts ...Option) (*Result, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &IOError{Path: path, Err: err}
	}

	res := parse(ctx, path, string(content), buildOptions(opts))
	res.File = info
	return res, nil
}

// LoadSource parses source as if it had been read from filename.
func LoadSource(ctx context.Context, filename, source string, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}
	return parse(ctx, filename, source, buildOptions(opts)), nil
}

func parse(ctx context.Context, filename, source string, o Options) *Result {
	logger := logging.FromContext(logging.WithComponent(ctx, filename))
	if o.Logger != nil {
		logger = o.Logger.With(logging.FieldPath, filename)
	}

	key := parsecache.Key(filename, source, o.Parse)

	if o.DisableCache {
		o.Cache.Clear()
	} else if desc, diags, ok := o.Cache.Get(key); ok {
		logger.Debug("parse cache hit")
		return &Result{Text: source, Descriptor: desc, Errors: diags, Cached: true}
	}

	desc, diags := sfc.NewParser(o.Parse).Parse(filename, source)
	o.Cache.Put(key, desc, diags)

	logger.Debug("parsed component",
		logging.FieldBlocks, len(desc.Blocks()),
		logging.FieldDiagnosticsTotal, len(diags),
	)

	return &Result{Text: source, Descriptor: desc, Errors: diags}
}
