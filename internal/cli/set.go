package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gosfc/internal/logging"
	"github.com/yaklabco/gosfc/internal/ui/pretty"
	"github.com/yaklabco/gosfc/pkg/config"
	"github.com/yaklabco/gosfc/pkg/fsutil"
	"github.com/yaklabco/gosfc/pkg/loader"
	"github.com/yaklabco/gosfc/pkg/rewrite"
	"github.com/yaklabco/gosfc/pkg/runner"
)

// ErrInteractiveStdin is returned when --stdin is used without piped input.
var ErrInteractiveStdin = errors.New("refusing to read block content from a terminal; pipe it in or use --from")

// ErrNoContentSource is returned unless exactly one content flag is given.
var ErrNoContentSource = errors.New("exactly one of --from, --stdin or --content is required")

// ErrFileChanged is returned when the target changed between read and write.
var ErrFileChanged = errors.New("file changed since it was read")

type setFlags struct {
	from    string
	stdin   bool
	content string
	raw     bool
	force   bool
}

func newSetCommand(globals *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &setFlags{}

	cmd := &cobra.Command{
		Use:   "set <file> <selector>",
		Short: "Replace the content of one block",
		Long: `Replace the content of one block and write the component back.

Only the selected block's content changes. Start and end tags, other blocks,
and any text between blocks are kept byte for byte.

Unless --raw is given, the leading and trailing newlines of the old content are
kept so that tags stay on their own lines.`,
		Example: `  gosfc set App.vue template --from new-template.html
  gosfc set App.vue style:1 --content '.a { color: red; }'
  prettier --parser css < in.css | gosfc set App.vue style --stdin
  gosfc set App.vue custom:docs --from README.md --dry-run`,
		Annotations: map[string]string{annotationSelectors: ""},
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1], globals, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "read the new content from a file")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read the new content from standard input")
	cmd.Flags().StringVar(&flags.content, "content", "", "use the given string as the new content")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "use the content exactly as given")
	cmd.Flags().BoolVar(&flags.force, "force", false, "rewrite even when the component has diagnostics")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "print a diff instead of writing")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep a backup of the original")

	return cmd
}

func runSet(cmd *cobra.Command, path, selector string, globals *globalFlags, cliCfg *config.Config, flags *setFlags) error {
	ctx := commandContext(cmd)

	replacement, err := readReplacement(cmd, flags)
	if err != nil {
		return err
	}

	cfg, workDir, err := resolveConfig(ctx, globals, cliCfg)
	if err != nil {
		return err
	}
	ctx = logging.WithComponent(ctx, path)
	logger := logging.FromContext(ctx)

	res, err := loader.Load(ctx, path, runner.LoaderOptions(cfg)...)
	if err != nil {
		return errors.Join(ErrIO, err)
	}

	if res.HasErrors() && !flags.force {
		for _, diag := range res.Errors {
			logger.Warn(diag.Message,
				"line", diag.Loc.Start.Line, "code", diag.Code)
		}
		return fmt.Errorf("%w: %s has %d diagnostics; fix them or pass --force",
			ErrUsage, path, len(res.Errors))
	}

	blk, err := res.Descriptor.Select(selector)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}
	if !flags.raw {
		replacement = fitContent(blk.Content, replacement)
	}
	blk.Content = replacement

	result, err := rewrite.RewriteStrict(res.Text, res.Descriptor)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}

	logger.Debug("rewrote block",
		logging.FieldSelector, selector,
		logging.FieldBlock, blk.Type,
		logging.FieldLang, blk.Lang,
		logging.FieldChanged, result.HasChanged,
	)

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))

	if !result.HasChanged {
		fmt.Fprintln(out, styles.Dim.Render("no changes"))
		return nil
	}

	if cfg.DryRun {
		diff := rewrite.GenerateDiff(path, res.Text, result.Text)
		fmt.Fprint(out, styles.FormatDiff(diff, relativeTo(workDir, path)))
		fmt.Fprint(out, styles.FormatDiffStat(diff))
		return nil
	}

	written, backup, err := writeResult(ctx, res, result.Text, cfg)
	if err != nil {
		return err
	}
	if written {
		msg := "updated " + relativeTo(workDir, path)
		if backup != "" {
			msg += styles.Dim.Render(" (backup: " + relativeTo(workDir, backup) + ")")
		}
		fmt.Fprintln(out, styles.Success.Render(msg))
	}
	return nil
}

// readReplacement returns the new block content from whichever source flag
// was given.
func readReplacement(cmd *cobra.Command, flags *setFlags) (string, error) {
	sources := 0
	for _, name := range []string{"from", "stdin", "content"} {
		if cmd.Flags().Changed(name) {
			sources++
		}
	}
	if sources != 1 {
		return "", errors.Join(ErrUsage, ErrNoContentSource)
	}

	switch {
	case cmd.Flags().Changed("from"):
		if flags.from == "" {
			return "", errors.Join(ErrUsage, ErrNoContentSource)
		}
		data, err := os.ReadFile(flags.from)
		if err != nil {
			return "", errors.Join(ErrIO, fmt.Errorf("read --from: %w", err))
		}
		return string(data), nil
	case cmd.Flags().Changed("stdin"):
		if !flags.stdin {
			return "", errors.Join(ErrUsage, ErrNoContentSource)
		}
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return "", errors.Join(ErrUsage, ErrInteractiveStdin)
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", errors.Join(ErrIO, fmt.Errorf("read stdin: %w", err))
		}
		return string(data), nil
	default:
		return flags.content, nil
	}
}

// fitContent carries the leading and trailing line break of the current
// block content over to the replacement.
func fitContent(current, replacement string) string {
	if lead := leadingBreak(current); lead != "" && leadingBreak(replacement) == "" {
		replacement = lead + replacement
	}
	if trail := trailingBreak(current); trail != "" && trailingBreak(replacement) == "" {
		replacement += trail
	}
	return replacement
}

func leadingBreak(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return "\r\n"
	case strings.HasPrefix(s, "\n"):
		return "\n"
	default:
		return ""
	}
}

func trailingBreak(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(s, "\n"):
		return "\n"
	default:
		return ""
	}
}

// writeResult backs up the original and writes text over it, unless the file
// changed on disk after it was loaded. It returns whether the file was written
// and the backup path, if a backup exists.
func writeResult(ctx context.Context, res *loader.Result, text string, cfg *config.Config) (bool, string, error) {
	logger := logging.FromContext(ctx)
	path := res.File.Path

	modified, err := fsutil.CheckModified(ctx, res.File)
	if err != nil {
		return false, "", errors.Join(ErrIO, err)
	}
	if modified {
		return false, "", errors.Join(ErrIO, fmt.Errorf("%w: %s", ErrFileChanged, path))
	}

	mode := fsutil.BackupMode(cfg.Backups.Mode)
	backedUp, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{
		Enabled: cfg.BackupsEnabled(),
		Mode:    mode,
	})
	if err != nil {
		return false, "", errors.Join(ErrIO, err)
	}

	written, err := fsutil.WriteIfChanged(ctx, path, []byte(text), res.File.Mode.Perm())
	if err != nil {
		return false, "", errors.Join(ErrIO, err)
	}

	var backup string
	if cfg.BackupsEnabled() {
		backup = fsutil.BackupPath(path, mode)
	}

	logger.Debug("wrote component",
		logging.FieldChanged, written,
		logging.FieldBackup, backedUp,
	)
	return written, backup, nil
}

// relativeTo makes path relative to dir for display when it lies inside it.
func relativeTo(dir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
