// Package config defines core configuration types for gosfc.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Default values for configuration fields.
const (
	DefaultBackupMode = "sidecar"
	DefaultExtension  = ".vue"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	// Enabled defaults to true when unset.
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Mode    string `mapstructure:"mode" yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure for gosfc.
//
// Boolean options are pointers so that a config layer can leave them unset
// without overriding a lower layer.
type Config struct {
	// DisableCache parses every file fresh instead of reusing cached
	// descriptors for identical content. Defaults to true.
	DisableCache *bool `mapstructure:"disable_cache" yaml:"disable_cache,omitempty"`

	// IgnoreEmpty drops whitespace-only blocks other than <template>.
	// Defaults to true.
	IgnoreEmpty *bool `mapstructure:"ignore_empty" yaml:"ignore_empty,omitempty"`

	// CheckExpressions validates template expressions. Defaults to true.
	CheckExpressions *bool `mapstructure:"check_expressions" yaml:"check_expressions,omitempty"`

	// Gitignore skips files matched by .gitignore. Defaults to true.
	Gitignore *bool `mapstructure:"gitignore" yaml:"gitignore,omitempty"`

	// Extensions lists the file extensions treated as components.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups,omitempty"`

	// Jobs is the number of parallel workers. 0 means one per CPU.
	Jobs int `mapstructure:"jobs" yaml:"jobs,omitempty"`

	// Format is the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would change without writing.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// Bool returns a pointer to b, for filling optional fields.
func Bool(b bool) *bool {
	return &b
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// NewConfig returns a Config with every field set to its default.
func NewConfig() *Config {
	return &Config{
		DisableCache:     Bool(true),
		IgnoreEmpty:      Bool(true),
		CheckExpressions: Bool(true),
		Gitignore:        Bool(true),
		Extensions:       []string{DefaultExtension},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    DefaultBackupMode,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// CacheDisabled reports whether the parse cache is bypassed.
func (c *Config) CacheDisabled() bool {
	return boolOr(c.DisableCache, true)
}

// IgnoreEmptyBlocks reports whether whitespace-only blocks are dropped.
func (c *Config) IgnoreEmptyBlocks() bool {
	return boolOr(c.IgnoreEmpty, true)
}

// ExpressionChecks reports whether template expressions are validated.
func (c *Config) ExpressionChecks() bool {
	return boolOr(c.CheckExpressions, true)
}

// UseGitignore reports whether .gitignore files are honoured.
func (c *Config) UseGitignore() bool {
	return boolOr(c.Gitignore, true)
}

// BackupsEnabled reports whether backups should be written, taking the
// CLI-level NoBackups switch into account.
func (c *Config) BackupsEnabled() bool {
	return !c.NoBackups && boolOr(c.Backups.Enabled, true) && c.Backups.Mode != "none"
}

// ComponentExtensions returns the configured extensions, or the default.
func (c *Config) ComponentExtensions() []string {
	if len(c.Extensions) == 0 {
		return []string{DefaultExtension}
	}
	return c.Extensions
}
