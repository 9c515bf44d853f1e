package cli

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gosfc/internal/configloader"
	"github.com/yaklabco/gosfc/internal/ui/pretty"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

// annotationSelectors marks commands whose help lists the block selectors.
const annotationSelectors = "gosfc/selectors"

// selectorHelp describes the selector grammar accepted by sfc.Descriptor.Select.
var selectorHelp = []helpRow{
	{sfc.SelectorTemplate, "the <template> block"},
	{sfc.SelectorScript, "the plain <script> block"},
	{sfc.SelectorScriptSetup, "the <script setup> block"},
	{sfc.SelectorStyle + "[:N]", "the Nth <style> block, counting from 0"},
	{sfc.SelectorCustom + ":<type>[:N]", "the Nth custom block with tag name <type>, any case"},
}

type helpRow struct {
	name, text string
}

type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders the help pages of the gosfc command tree.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a formatter that colors its output when colorMode
// and writer allow it.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprint(c.OutOrStdout(), h.Help(c))
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		_, err := fmt.Fprint(c.OutOrStderr(), h.Usage(c))
		if err != nil {
			return fmt.Errorf("write usage: %w", err)
		}
		return nil
	})
}

// Help returns the full help page of c: its description followed by Usage.
func (h *HelpFormatter) Help(c *cobra.Command) string {
	var b strings.Builder
	if c.Runnable() || c.HasSubCommands() {
		b.WriteString(h.styles.command.Render(c.CommandPath()))
		if c.Version != "" {
			b.WriteString(" " + h.styles.dim.Render(c.Version))
		}
		b.WriteString("\n\n")
	}
	if text := cmp.Or(c.Long, c.Short); text != "" {
		b.WriteString(trimTrailingSpace(text) + "\n\n")
	}
	b.WriteString(h.Usage(c))
	return b.String()
}

// Usage returns the usage sections of c.
func (h *HelpFormatter) Usage(c *cobra.Command) string {
	var lines []string
	if c.Runnable() {
		lines = append(lines, "  "+h.styles.command.Render(c.UseLine()))
	}
	if c.HasAvailableSubCommands() {
		lines = append(lines, "  "+h.styles.command.Render(c.CommandPath())+" [command]")
	}
	sections := []string{h.section("Usage:", strings.Join(lines, "\n"))}

	if c.HasExample() {
		sections = append(sections, h.section("Examples:", h.styles.dim.Render(c.Example)))
	}
	if c.HasAvailableSubCommands() {
		sections = append(sections, h.section("Available Commands:", h.table(commandRows(c), h.styles.name)))
	}
	if c.HasAvailableLocalFlags() {
		sections = append(sections, h.section("Flags:", h.flags(c.LocalFlags())))
	}
	if c.HasAvailableInheritedFlags() {
		sections = append(sections, h.section("Global Flags:", h.flags(c.InheritedFlags())))
	}
	if _, ok := c.Annotations[annotationSelectors]; ok {
		sections = append(sections, h.section("Selectors:", h.table(selectorHelp, h.styles.name)))
	}
	if !c.HasParent() {
		sections = append(sections, h.section("Environment:", h.table(envRows(), h.styles.flag)))
	}
	if c.HasAvailableSubCommands() {
		sections = append(sections, `Use "`+h.styles.command.Render(c.CommandPath()+" [command] --help")+
			`" for more information about a command.`)
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (h *HelpFormatter) section(heading, body string) string {
	return h.styles.heading.Render(heading) + "\n" + body
}

// table renders rows as two aligned columns, the first in nameStyle.
func (h *HelpFormatter) table(rows []helpRow, nameStyle lipgloss.Style) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.name))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+nameStyle.Render(rpad(r.name, width))+"   "+r.text)
	}
	return strings.Join(lines, "\n")
}

// flags renders one row per visible flag: names and value placeholder on the
// left, usage and non-zero default on the right.
func (h *HelpFormatter) flags(fs *pflag.FlagSet) string {
	type flagRow struct {
		names, varname, usage string
	}
	var rows []flagRow
	width := 0

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		if def := f.DefValue; def != "" && def != "false" && def != "0" && def != "[]" {
			usage += fmt.Sprintf(" (default %q)", def)
		}
		rows = append(rows, flagRow{names: names, varname: varname, usage: usage})
		width = max(width, len(names)+len(varname)+1)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		left := h.styles.flag.Render(r.names)
		pad := width - len(r.names)
		if r.varname != "" {
			left += " " + h.styles.dim.Render(r.varname)
			pad -= len(r.varname) + 1
		}
		lines = append(lines, "  "+left+strings.Repeat(" ", pad+3)+r.usage)
	}
	return strings.Join(lines, "\n")
}

func commandRows(c *cobra.Command) []helpRow {
	var rows []helpRow
	for _, sub := range c.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			rows = append(rows, helpRow{sub.Name(), sub.Short})
		}
	}
	return rows
}

func envRows() []helpRow {
	vars := configloader.ListEnvVars()
	rows := make([]helpRow, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, helpRow{v.Name, v.Description})
	}
	return rows
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
