// Package runner loads many component files concurrently.
package runner

import (
	"strings"

	"github.com/yaklabco/gosfc/pkg/config"
	"github.com/yaklabco/gosfc/pkg/loader"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

// Options controls discovery and loading.
type Options struct {
	// Paths are files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore patterns.
	// Defaults to the process working directory.
	WorkingDir string

	// Extensions are the component file extensions. A missing leading dot is
	// added. Defaults to [".vue"].
	Extensions []string

	// Ignore holds patterns in .gitignore syntax, relative to WorkingDir.
	Ignore []string

	// Gitignore skips files matched by .gitignore files found while walking.
	Gitignore bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds concurrent loads. 0 or negative means runtime.NumCPU().
	Jobs int
}

// OptionsFromConfig builds discovery options from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	return Options{
		Paths:      paths,
		WorkingDir: workDir,
		Extensions: cfg.ComponentExtensions(),
		Ignore:     cfg.Ignore,
		Gitignore:  cfg.UseGitignore(),
		Jobs:       cfg.Jobs,
	}
}

// LoaderOptions translates cfg into loader options.
func LoaderOptions(cfg *config.Config) []loader.Option {
	return []loader.Option{
		loader.WithDisableCache(cfg.CacheDisabled()),
		loader.WithParseOptions(sfc.Options{
			IgnoreEmpty:      cfg.IgnoreEmptyBlocks(),
			CheckExpressions: cfg.ExpressionChecks(),
		}),
	}
}

// effectiveExtensions returns lowercased extensions with a leading dot.
func (o Options) effectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = []string{config.DefaultExtension}
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
