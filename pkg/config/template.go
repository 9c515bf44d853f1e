package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its default value. If false, options are
	// left commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// optionDoc documents one configuration key for templates.
type optionDoc struct {
	key     string
	comment string
	value   string
}

//nolint:gochecknoglobals // Read-only lookup table.
var optionDocs = []optionDoc{
	{"disable_cache", "Parse every file fresh instead of reusing cached results", "true"},
	{"ignore_empty", "Drop script, style and custom blocks that contain only whitespace", "true"},
	{"check_expressions", "Validate template interpolations and directive values", "true"},
	{"gitignore", "Skip files matched by .gitignore", "true"},
	{"extensions", "File extensions treated as components", "\n  - .vue"},
	{"ignore", "File patterns to skip (glob patterns)", "\n  - \"node_modules/**\"\n  - \"dist/**\""},
	{"jobs", "Number of parallel workers (0 = auto)", "0"},
	{"format", "Output format: text or json", "text"},
	{"backups", "Backups written before `gosfc set` replaces a file", "\n  enabled: true\n  mode: sidecar"},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf strings.Builder
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	prefix := "# "
	if opts.Full {
		prefix = ""
	}

	for _, doc := range optionDocs {
		fmt.Fprintf(&buf, "\n# %s\n", doc.comment)
		body := doc.key + ": " + doc.value
		if strings.HasPrefix(doc.value, "\n") {
			body = doc.key + ":" + doc.value
		}
		for _, line := range strings.Split(body, "\n") {
			buf.WriteString(prefix + line + "\n")
		}
	}

	return []byte(buf.String()), nil
}

// templateToJSON renders the defaults as JSON. JSON has no comments, so the
// full and minimal variants are the same.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"node_modules/**", "dist/**"}

	out := map[string]any{
		"disable_cache":     cfg.CacheDisabled(),
		"ignore_empty":      cfg.IgnoreEmptyBlocks(),
		"check_expressions": cfg.ExpressionChecks(),
		"gitignore":         cfg.UseGitignore(),
		"extensions":        cfg.Extensions,
		"ignore":            cfg.Ignore,
		"jobs":              cfg.Jobs,
		"format":            cfg.Format,
		"backups": map[string]any{
			"enabled": *cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gosfc configuration
# See: https://github.com/yaklabco/gosfc`
}
