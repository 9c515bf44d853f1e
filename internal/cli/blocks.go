package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gosfc/internal/logging"
	"github.com/yaklabco/gosfc/internal/ui/pretty"
	"github.com/yaklabco/gosfc/pkg/config"
	"github.com/yaklabco/gosfc/pkg/inspect"
	"github.com/yaklabco/gosfc/pkg/loader"
	"github.com/yaklabco/gosfc/pkg/runner"
)

const formatJSON = "json"

type blocksFlags struct {
	format string
}

func newBlocksCommand(globals *globalFlags) *cobra.Command {
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks <file>",
		Short: "List the blocks of a component",
		Long: `List every block of a component in source order with its selector,
language, line range, byte offsets and start tag attributes.

The language comes from the lang attribute when present; otherwise it is the
block type's default, or inferred from the content for custom blocks (marked
with *). Markdown blocks also list their heading outline.

The selector column is what 'gosfc set' accepts.`,
		Annotations: map[string]string{annotationSelectors: ""},
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, args[0], globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runBlocks(cmd *cobra.Command, path string, globals *globalFlags, flags *blocksFlags) error {
	ctx := commandContext(cmd)

	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: unknown format %q", ErrUsage, flags.format)
	}

	cfg, _, err := resolveConfig(ctx, globals, &config.Config{})
	if err != nil {
		return err
	}
	ctx = logging.WithComponent(ctx, path)
	logger := logging.FromContext(ctx)

	res, err := loader.Load(ctx, path, runner.LoaderOptions(cfg)...)
	if err != nil {
		return errors.Join(ErrIO, err)
	}

	summary := inspect.Inspect(res.Descriptor, res.Errors)
	logger.Debug("inspected component",
		logging.FieldBlocks, len(summary.Blocks),
	)

	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out))

	if len(summary.Blocks) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("no blocks"))
	} else {
		fmt.Fprint(out, table.FormatBlocks(summary))
	}

	for _, diag := range summary.Diagnostics {
		fmt.Fprint(out, styles.FormatDiagnostic(path, diag, false, ""))
	}

	return nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
