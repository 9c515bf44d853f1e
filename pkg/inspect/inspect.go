// Package inspect summarizes the blocks of a parsed component.
package inspect

import (
	"strings"

	"github.com/yaklabco/gosfc/pkg/langdetect"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

// BlockSummary describes one block.
type BlockSummary struct {
	Selector   string            `json:"selector"`
	Type       string            `json:"type"`
	Language   string            `json:"language"`
	LangSource langdetect.Source `json:"languageSource"`
	Attrs      sfc.Attrs         `json:"attrs,omitempty"`
	Start      sfc.Position      `json:"start"`
	End        sfc.Position      `json:"end"`
	Bytes      int               `json:"bytes"`
	Lines      int               `json:"lines"`
	Empty      bool              `json:"empty"`

	// Outline lists the headings of markdown blocks.
	Outline []Heading `json:"outline,omitempty"`
}

// Summary describes a whole component.
type Summary struct {
	Filename    string           `json:"filename"`
	Blocks      []BlockSummary   `json:"blocks"`
	CSSVars     []string         `json:"cssVars,omitempty"`
	Slotted     bool             `json:"slotted,omitempty"`
	Diagnostics []sfc.Diagnostic `json:"diagnostics,omitempty"`
}

// Inspect summarizes desc. Blocks are listed in source order.
func Inspect(desc *sfc.Descriptor, diags []sfc.Diagnostic) *Summary {
	s := &Summary{
		Filename:    desc.Filename,
		Blocks:      make([]BlockSummary, 0, len(desc.Styles)+len(desc.CustomBlocks)+3),
		CSSVars:     desc.CSSVars,
		Slotted:     desc.Slotted,
		Diagnostics: diags,
	}
	for _, b := range desc.Blocks() {
		s.Blocks = append(s.Blocks, summarize(desc, b))
	}
	return s
}

func summarize(desc *sfc.Descriptor, b *sfc.Block) BlockSummary {
	lang := langdetect.ForBlock(b)
	loc := b.Loc()

	bs := BlockSummary{
		Selector:   desc.Selector(b),
		Type:       b.Type,
		Language:   lang.Language,
		LangSource: lang.Source,
		Attrs:      b.Attrs,
		Start:      loc.Start,
		End:        loc.End,
		Bytes:      len(b.Content),
		Lines:      countLines(b.Content),
		Empty:      strings.TrimSpace(b.Content) == "",
	}
	if lang.Language == langdetect.LangMarkdown {
		bs.Outline = Outline([]byte(b.Content))
	}
	return bs
}

// countLines counts the lines holding content, ignoring the newline that
// usually follows the start tag and precedes the end tag.
func countLines(content string) int {
	trimmed := strings.Trim(content, "\r\n")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "\n") + 1
}
