package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosfc/internal/configloader"
	"github.com/yaklabco/gosfc/internal/ui/pretty"
	"github.com/yaklabco/gosfc/pkg/config"
)

// configFlags holds the flags for the config command.
type configFlags struct {
	format string
	env    bool
}

// effectiveConfig is the JSON view of a resolved configuration, with every
// default filled in.
type effectiveConfig struct {
	Sources          []string `json:"sources"`
	DisableCache     bool     `json:"disable_cache"`
	IgnoreEmpty      bool     `json:"ignore_empty"`
	CheckExpressions bool     `json:"check_expressions"`
	Gitignore        bool     `json:"gitignore"`
	Extensions       []string `json:"extensions"`
	Ignore           []string `json:"ignore"`
	Jobs             int      `json:"jobs"`
	Format           string   `json:"format"`
	BackupsEnabled   bool     `json:"backups_enabled"`
	BackupsMode      string   `json:"backups_mode"`
}

func newConfigCommand(globals *globalFlags) *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration gosfc would use in the current directory,
after merging the system, user and project config files with GOSFC_
environment variables. Unset options are shown with their defaults.

Examples:
  gosfc config                  Print the effective configuration as YAML
  gosfc config --format json    Print it as JSON
  gosfc config --env            List the supported environment variables`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, globals *globalFlags, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.format != "yaml" && flags.format != formatJSON {
		return errors.Join(ErrUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	if flags.env {
		return printEnvVars(out, flags.format, pretty.NewStyles(pretty.IsColorEnabled(globals.color, out)))
	}

	cfg, sources, err := loadEffectiveConfig(cmd, globals)
	if err != nil {
		return err
	}

	if flags.format == formatJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(toEffective(cfg, sources)); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return nil
	}

	content, err := withDefaults(cfg).ToYAMLWithHeader(sourcesHeader(sources))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = out.Write(content)
	return err
}

// loadEffectiveConfig resolves the configuration and reports which files it
// was read from.
func loadEffectiveConfig(cmd *cobra.Command, globals *globalFlags) (*config.Config, []string, error) {
	ctx := commandContext(cmd)

	workDir, err := workingDir()
	if err != nil {
		return nil, nil, err
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
	})
	if err != nil {
		return nil, nil, errors.Join(ErrConfig, err)
	}
	return result.Config, result.LoadedFrom, nil
}

// withDefaults returns a copy of cfg with every optional field set.
func withDefaults(cfg *config.Config) *config.Config {
	eff := cfg.Clone()
	eff.DisableCache = config.Bool(cfg.CacheDisabled())
	eff.IgnoreEmpty = config.Bool(cfg.IgnoreEmptyBlocks())
	eff.CheckExpressions = config.Bool(cfg.ExpressionChecks())
	eff.Gitignore = config.Bool(cfg.UseGitignore())
	eff.Extensions = cfg.ComponentExtensions()
	eff.Backups.Enabled = config.Bool(cfg.BackupsEnabled())
	if eff.Backups.Mode == "" {
		eff.Backups.Mode = config.DefaultBackupMode
	}
	if eff.Format == "" {
		eff.Format = config.FormatText
	}
	return eff
}

func toEffective(cfg *config.Config, sources []string) effectiveConfig {
	eff := withDefaults(cfg)
	ignore := eff.Ignore
	if ignore == nil {
		ignore = []string{}
	}
	if sources == nil {
		sources = []string{}
	}
	return effectiveConfig{
		Sources:          sources,
		DisableCache:     *eff.DisableCache,
		IgnoreEmpty:      *eff.IgnoreEmpty,
		CheckExpressions: *eff.CheckExpressions,
		Gitignore:        *eff.Gitignore,
		Extensions:       eff.Extensions,
		Ignore:           ignore,
		Jobs:             eff.Jobs,
		Format:           string(eff.Format),
		BackupsEnabled:   *eff.Backups.Enabled,
		BackupsMode:      eff.Backups.Mode,
	}
}

func sourcesHeader(sources []string) string {
	if len(sources) == 0 {
		return "# Effective configuration (defaults only)"
	}
	var b strings.Builder
	b.WriteString("# Effective configuration, loaded from:\n")
	for _, src := range sources {
		b.WriteString("#   " + src + "\n")
	}
	return b.String()
}

func printEnvVars(out io.Writer, format string, styles *pretty.Styles) error {
	vars := configloader.ListEnvVars()

	if format == formatJSON {
		type envVarJSON struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		list := make([]envVarJSON, 0, len(vars))
		for _, v := range vars {
			list = append(list, envVarJSON{Name: v.Name, Description: v.Description})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(list); err != nil {
			return fmt.Errorf("encode env vars: %w", err)
		}
		return nil
	}

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}
	for _, v := range vars {
		pad := strings.Repeat(" ", width-len(v.Name))
		fmt.Fprintf(out, "%s%s  %s\n", styles.Code.Render(v.Name), pad, v.Description)
	}
	return nil
}
