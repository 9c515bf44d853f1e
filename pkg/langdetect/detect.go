// Package langdetect works out the language of a component block.
// An explicit lang attribute wins; otherwise the block type implies a
// default, and custom block content is classified with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gosfc/pkg/sfc"
)

// Language names returned by this package.
const (
	LangHTML       = "html"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangCSS        = "css"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangMarkdown   = "markdown"
	LangText       = "text"
)

// Source says how a language was determined.
type Source string

const (
	SourceAttribute Source = "attribute"
	SourceDefault   Source = "default"
	SourceContent   Source = "content"
)

// Result is the detected language of a block.
type Result struct {
	Language string `json:"language"`
	Source   Source `json:"source"`
}

// customCandidates are the languages custom block content is classified into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var customCandidates = []string{
	"JSON", "YAML", "Markdown", "JavaScript", "TypeScript", "GraphQL", "HTML", "CSS",
}

// ForBlock returns the language of b.
func ForBlock(b *sfc.Block) Result {
	if b.Lang != "" {
		return Result{Language: FromAttr(b.Lang), Source: SourceAttribute}
	}

	switch b.Type {
	case sfc.TypeTemplate:
		return Result{Language: LangHTML, Source: SourceDefault}
	case sfc.TypeScript:
		return Result{Language: LangJavaScript, Source: SourceDefault}
	case sfc.TypeStyle:
		return Result{Language: LangCSS, Source: SourceDefault}
	}

	return Result{Language: Detect([]byte(b.Content)), Source: SourceContent}
}

// FromAttr normalizes a lang attribute such as "ts", "scss" or "yml" to a
// language name. Unknown values are returned lowercased.
func FromAttr(lang string) string {
	lang = strings.TrimSpace(lang)
	if name, ok := enry.GetLanguageByAlias(lang); ok {
		return normalize(name)
	}
	if name, ok := enry.GetLanguageByExtension("block." + lang); ok {
		return normalize(name)
	}
	return strings.ToLower(lang)
}

// Detect returns the detected language for custom block content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return LangText
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, customCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(trimmed []byte) string {
	if lang := detectJSON(trimmed); lang != "" {
		return lang
	}
	if lang := detectHTML(trimmed); lang != "" {
		return lang
	}
	if lang := detectMarkdown(trimmed); lang != "" {
		return lang
	}
	if lang := detectYAML(trimmed); lang != "" {
		return lang
	}
	if lang := detectScript(string(trimmed)); lang != "" {
		return lang
	}
	return ""
}

func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return LangJSON
	}
	return ""
}

func detectHTML(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("<")) && bytes.HasSuffix(trimmed, []byte(">")) {
		return LangHTML
	}
	return ""
}

// detectMarkdown looks for an ATX heading or fenced code on any line.
func detectMarkdown(trimmed []byte) string {
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("```")) {
			return LangMarkdown
		}
		level := 0
		for level < len(line) && line[level] == '#' {
			level++
		}
		if level >= 1 && level <= 6 && level < len(line) && line[level] == ' ' {
			return LangMarkdown
		}
	}
	return ""
}

// detectYAML counts key: value pairs and list items.
func detectYAML(trimmed []byte) string {
	yamlKeyCount := 0
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) || bytes.HasSuffix(line, []byte(":")) {
			if !bytes.ContainsAny(line, "(){};") && !bytes.HasPrefix(line, []byte(`"`)) {
				yamlKeyCount++
			}
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}
	if yamlKeyCount >= 2 {
		return LangYAML
	}
	return ""
}

func detectScript(contentStr string) string {
	if strings.Contains(contentStr, "interface ") ||
		strings.Contains(contentStr, ": string") ||
		strings.Contains(contentStr, ": number") {
		return LangTypeScript
	}
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "export default") ||
		strings.Contains(contentStr, "const ") ||
		strings.Contains(contentStr, "let ") {
		return LangJavaScript
	}
	return ""
}

// normalize converts go-enry language names to lowercase identifiers.
func normalize(lang string) string {
	return strings.ToLower(lang)
}
