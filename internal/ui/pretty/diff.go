package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gosfc/pkg/rewrite"
)

// FormatDiff renders a unified diff in git style, labelled with displayPath.
// It returns "" when diff has no changes.
func (s *Styles) FormatDiff(diff *rewrite.Diff, displayPath string) string {
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder

	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	builder.WriteString(s.DiffHeader.Render(header) + "\n")
	builder.WriteString(s.DiffRemove.Render("--- a/"+displayPath) + "\n")
	builder.WriteString(s.DiffAdd.Render("+++ b/"+displayPath) + "\n")

	// Skip the --- and +++ lines from String().
	lines := strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n")
	for _, line := range lines[2:] {
		builder.WriteString(s.formatDiffLine(line) + "\n")
	}

	return builder.String()
}

func (s *Styles) formatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiffStat summarizes a diff, e.g. "1 file changed, 2 insertions(+)".
func (s *Styles) FormatDiffStat(diff *rewrite.Diff) string {
	if !diff.HasChanges() {
		return s.Dim.Render("no changes") + "\n"
	}

	parts := []string{"1 file changed"}
	if diff.Additions > 0 {
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)",
			diff.Additions, plural(diff.Additions, "insertion", "insertions"))))
	}
	if diff.Deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)",
			diff.Deletions, plural(diff.Deletions, "deletion", "deletions"))))
	}
	return strings.Join(parts, ", ") + "\n"
}
