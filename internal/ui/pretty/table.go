package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gosfc/pkg/inspect"
	"github.com/yaklabco/gosfc/pkg/langdetect"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

// Table formatting constants.
const (
	tablePadding      = 2
	tableColumnCount  = 6 // SELECTOR, LANG, LINES, OFFSETS, SIZE, ATTRS
	minSelectorWidth  = 8
	minLangWidth      = 4
	minLinesWidth     = 5
	minOffsetsWidth   = 7
	minSizeWidth      = 4
	minAttrsWidth     = 10
	heavySeparator    = "="
	defaultTermWidth  = 100
	outlineIndentStep = 2
	inferredMarker    = "*"
)

// BlockRow is a single row in the block table.
type BlockRow struct {
	Selector string
	Language string
	Lines    string
	Offsets  string
	Size     string
	Attrs    string
	Outline  []inspect.Heading
}

// TableFormatter formats block summaries as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatBlocks formats a component summary as a table, one row per block,
// with markdown outlines listed under their block.
func (t *TableFormatter) FormatBlocks(summary *inspect.Summary) string {
	if summary == nil || len(summary.Blocks) == 0 {
		return ""
	}

	rows := make([]BlockRow, 0, len(summary.Blocks))
	inferred := false
	for _, b := range summary.Blocks {
		rows = append(rows, BlockToRow(b))
		inferred = inferred || b.LangSource == langdetect.SourceContent
	}
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
		for _, h := range row.Outline {
			indent := strings.Repeat(" ", 3+outlineIndentStep*(h.Level-1))
			line := fmt.Sprintf("%s%s %s", indent, strings.Repeat("#", h.Level), h.Text)
			builder.WriteString(t.styles.Outline.Render(truncateString(line, t.termWidth)))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	if inferred {
		builder.WriteString(" " + t.styles.Dim.Render(inferredMarker+" language inferred from content") + "\n")
	}
	if len(summary.CSSVars) > 0 {
		builder.WriteString(" " + t.styles.Dim.Render("css vars: ") + strings.Join(summary.CSSVars, ", ") + "\n")
	}

	return builder.String()
}

// BlockToRow converts a block summary to a table row.
func BlockToRow(b inspect.BlockSummary) BlockRow {
	lang := b.Language
	if b.LangSource == langdetect.SourceContent {
		lang += inferredMarker
	}
	return BlockRow{
		Selector: b.Selector,
		Language: lang,
		Lines:    fmt.Sprintf("%d-%d", b.Start.Line, b.End.Line),
		Offsets:  fmt.Sprintf("%d:%d", b.Start.Offset, b.End.Offset),
		Size:     formatSize(b.Bytes),
		Attrs:    formatAttrs(b.Attrs),
		Outline:  b.Outline,
	}
}

type columnWidths struct {
	selector int
	lang     int
	lines    int
	offsets  int
	size     int
	attrs    int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []BlockRow) columnWidths {
	widths := columnWidths{
		selector: minSelectorWidth,
		lang:     minLangWidth,
		lines:    minLinesWidth,
		offsets:  minOffsetsWidth,
		size:     minSizeWidth,
		attrs:    minAttrsWidth,
	}

	for _, row := range rows {
		widths.selector = max(widths.selector, len(row.Selector))
		widths.lang = max(widths.lang, len(row.Language))
		widths.lines = max(widths.lines, len(row.Lines))
		widths.offsets = max(widths.offsets, len(row.Offsets))
		widths.size = max(widths.size, len(row.Size))
		widths.attrs = max(widths.attrs, len(row.Attrs))
	}

	// Attributes give way first when the terminal is narrow.
	if total := calculateTotalWidth(widths); total > t.termWidth {
		widths.attrs = max(minAttrsWidth, widths.attrs-(total-t.termWidth))
	}

	return widths
}

func calculateTotalWidth(widths columnWidths) int {
	return widths.selector + widths.lang + widths.lines + widths.offsets +
		widths.size + widths.attrs + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %*s  %-*s",
		widths.selector, "SELECTOR",
		widths.lang, "LANG",
		widths.lines, "LINES",
		widths.offsets, "OFFSETS",
		widths.size, "SIZE",
		widths.attrs, "ATTRS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row BlockRow, widths columnWidths) string {
	return fmt.Sprintf(" %s  %s  %-*s  %-*s  %*s  %s",
		t.styles.Selector.Render(fmt.Sprintf("%-*s", widths.selector, row.Selector)),
		t.styles.Language.Render(fmt.Sprintf("%-*s", widths.lang, row.Language)),
		widths.lines, row.Lines,
		widths.offsets, row.Offsets,
		widths.size, row.Size,
		t.styles.Dim.Render(truncateString(row.Attrs, widths.attrs)),
	)
}

// formatAttrs renders attributes sorted by name; boolean attributes appear
// bare.
func formatAttrs(attrs sfc.Attrs) string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if v := attrs[name]; v != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", name, v))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

func formatSize(n int) string {
	const kib = 1024
	if n < kib {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1fK", float64(n)/kib)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
