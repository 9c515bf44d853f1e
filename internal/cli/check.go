package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosfc/internal/logging"
	"github.com/yaklabco/gosfc/pkg/config"
	"github.com/yaklabco/gosfc/pkg/reporter"
	"github.com/yaklabco/gosfc/pkg/runner"
)

type checkFlags struct {
	format          string
	ignore          []string
	extensions      []string
	cache           bool
	noGitignore     bool
	noExpressions   bool
	keepEmpty       bool
	noContext       bool
	compact         bool
	detailedSummary bool
}

func newCheckCommand(globals *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report structural problems in components",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Parse components and report structural problems.

By default, checks every .vue file under the current directory, skipping
hidden directories and anything matched by .gitignore. Specify paths to
check specific files or directories.

Examples:
  gosfc check                      # Check current directory
  gosfc check src/components       # Check one directory
  gosfc check App.vue              # Check a single file
  gosfc check --format json        # Output as JSON for CI
  gosfc check --ignore 'legacy/**' # Skip matching paths`

func runCheck(cmd *cobra.Command, args []string, globals *globalFlags, cfg *config.Config, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	applyCheckFlags(cmd, cfg, flags)

	finalCfg, workDir, err := resolveConfig(ctx, globals, cfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	runOpts := runner.OptionsFromConfig(finalCfg, args, workDir)
	logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(runner.LoaderOptions(finalCfg)...).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		Format:          format,
		Color:           globals.color,
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		DetailedSummary: flags.detailedSummary,
		Compact:         flags.compact,
		WorkingDir:      workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitIOError:
		return ErrUnreadableFiles
	case ExitIssues:
		return ErrIssuesFound
	default:
		return nil
	}
}

// applyCheckFlags copies explicitly set flags into cfg so that unset flags
// leave lower configuration layers alone.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if changed("cache") {
		cfg.DisableCache = config.Bool(!flags.cache)
	}
	if changed("no-gitignore") {
		cfg.Gitignore = config.Bool(!flags.noGitignore)
	}
	if changed("no-expressions") {
		cfg.CheckExpressions = config.Bool(!flags.noExpressions)
	}
	if changed("keep-empty") {
		cfg.IgnoreEmpty = config.Bool(!flags.keepEmpty)
	}
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "patterns to ignore, in .gitignore syntax")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "component file extensions (default .vue)")
	cmd.Flags().BoolVar(&flags.cache, "cache", false, "reuse parse results for identical content")
	cmd.Flags().BoolVar(&flags.noGitignore, "no-gitignore", false, "do not skip files matched by .gitignore")
	cmd.Flags().BoolVar(&flags.noExpressions, "no-expressions", false, "skip template expression checks")
	cmd.Flags().BoolVar(&flags.keepEmpty, "keep-empty", false, "keep whitespace-only blocks")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.detailedSummary, "summary", false, "print a per-code summary")
}
