package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gosfc/pkg/runner"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 invalid-expression, 1 missing-end-tag) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var msg string
	if stats.DiagnosticsTotal == 0 {
		msg = s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
	} else {
		var codeParts []string
		for _, code := range sortedCodes(stats.DiagnosticsByCode) {
			codeParts = append(codeParts, fmt.Sprintf("%d %s", stats.DiagnosticsByCode[code], code))
		}
		msg = s.Failure.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues")))
		if len(codeParts) > 0 {
			msg += " (" + strings.Join(codeParts, ", ") + ")"
		}
		msg += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Error.Render(fmt.Sprintf("%d %s unreadable", stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}
	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesCached > 0 {
		builder.WriteString("  Served from cache: " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesCached)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")
	for _, code := range sortedCodes(stats.DiagnosticsByCode) {
		fmt.Fprintf(&builder, "    %-24s %s\n", string(code)+":", s.Error.Render(strconv.Itoa(stats.DiagnosticsByCode[code])))
	}

	builder.WriteString("\n")
	if stats.DiagnosticsTotal > 0 || stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Check failed"))
	} else {
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func sortedCodes(counts map[sfc.Code]int) []sfc.Code {
	codes := make([]sfc.Code, 0, len(counts))
	for code, n := range counts {
		if n > 0 {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes
}
