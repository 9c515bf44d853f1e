package sfc

import (
	"strings"

	"golang.org/x/net/html"
)

// Options controls parsing behavior.
type Options struct {
	// IgnoreEmpty drops script, style and custom blocks whose content is only
	// whitespace and that have no src attribute. Templates are always kept.
	IgnoreEmpty bool `json:"ignoreEmpty"`

	// CheckExpressions validates template interpolations and directive values.
	CheckExpressions bool `json:"checkExpressions"`
}

// DefaultOptions returns the options used by Parse.
func DefaultOptions() Options {
	return Options{
		IgnoreEmpty:      true,
		CheckExpressions: true,
	}
}

// Parser splits component source into blocks.
// A Parser holds no state between calls and is safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a Parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Options returns the parser's configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse parses source with DefaultOptions.
func Parse(filename, source string) (*Descriptor, []Diagnostic) {
	return NewParser(DefaultOptions()).Parse(filename, source)
}

// Parse splits source into a Descriptor.
//
// Parse never fails: malformed content is reported through the returned
// diagnostics and the descriptor holds whatever could be recovered. A file
// without any block yields a descriptor with a nil Template.
func (p *Parser) Parse(filename, source string) (*Descriptor, []Diagnostic) {
	s := &scanner{
		filename: filename,
		src:      source,
		lines:    newLineIndex(source),
	}

	desc := &Descriptor{Filename: filename, Source: source}
	for _, el := range s.scan() {
		p.assign(s, desc, el)
	}

	if tmpl := desc.Template; tmpl != nil && p.opts.CheckExpressions && isHTMLLang(tmpl.Lang) && tmpl.Src == "" {
		s.checkTemplate(tmpl, usesTypeScript(desc))
	}

	if desc.Script != nil && desc.ScriptSetup != nil && desc.Script.Lang != desc.ScriptSetup.Lang {
		s.report(CodeScriptLangMismatch, MsgScriptLangMismatch,
			desc.ScriptSetup.StartOffset(), desc.ScriptSetup.EndOffset())
	}

	if desc.Template == nil && desc.Script == nil && desc.ScriptSetup == nil {
		s.report(CodeMissingRequiredBlock, MsgMissingRequiredBlock, 0, 0)
	}

	desc.CSSVars = parseCSSVars(desc.Styles)
	desc.Slotted = hasSlotted(desc.Styles)

	return desc, s.diags
}

// assign files a scanned element into its descriptor slot.
func (p *Parser) assign(s *scanner, desc *Descriptor, el element) {
	block := newBlock(el.name, el.attrs, s.lines.location(s.src, el.contentStart, el.contentEnd))

	if el.name != TypeTemplate && p.opts.IgnoreEmpty && isEmpty(block) {
		return
	}

	switch el.name {
	case TypeTemplate:
		if desc.Template != nil {
			s.report(CodeDuplicateBlock, duplicateMessage("<template>"), el.tagStart, el.contentStart)
			return
		}
		desc.Template = block
	case TypeScript:
		switch {
		case block.Setup() && desc.ScriptSetup == nil:
			desc.ScriptSetup = block
		case !block.Setup() && desc.Script == nil:
			desc.Script = block
		case block.Setup():
			s.report(CodeDuplicateBlock, duplicateMessage("<script setup>"), el.tagStart, el.contentStart)
		default:
			s.report(CodeDuplicateBlock, duplicateMessage("<script>"), el.tagStart, el.contentStart)
		}
	case TypeStyle:
		desc.Styles = append(desc.Styles, block)
	default:
		desc.CustomBlocks = append(desc.CustomBlocks, block)
	}
}

// element is a top-level tag found by the scanner.
type element struct {
	name         string
	attrs        Attrs
	tagStart     int
	contentStart int
	contentEnd   int
}

type scanner struct {
	filename string
	src      string
	lines    lineIndex
	diags    []Diagnostic
}

func (s *scanner) report(code Code, msg string, start, end int) {
	s.diags = append(s.diags, Diagnostic{
		Code:     code,
		Message:  msg,
		Filename: s.filename,
		Loc:      s.lines.location(s.src, start, end),
	})
}

// scan walks the top level of the source and returns every element in order.
// Text and comments between elements are skipped.
func (s *scanner) scan() []element {
	var els []element
	pos := 0
	for pos < len(s.src) {
		idx := strings.IndexByte(s.src[pos:], '<')
		if idx < 0 {
			break
		}
		pos += idx
		rest := s.src[pos:]

		switch {
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest[4:], "-->")
			if end < 0 {
				return els
			}
			pos += 4 + end + 3
		case len(rest) > 1 && isASCIIAlpha(rest[1]):
			el, next, ok := s.element(pos)
			if ok {
				els = append(els, el)
			}
			pos = next
		default:
			pos++
		}
	}
	return els
}

// element reads the element whose start tag begins at pos and returns it with
// the offset just past its end tag.
func (s *scanner) element(pos int) (element, int, bool) {
	z := html.NewTokenizer(strings.NewReader(s.src[pos:]))
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
		return element{}, pos + 1, false
	}

	raw := s.src[pos : pos+len(z.Raw())]
	lower, more := z.TagName()
	el := element{
		name:         blockType(raw[1:1+len(lower)]),
		attrs:        Attrs{},
		tagStart:     pos,
		contentStart: pos + len(raw),
	}

	// The tokenizer lowercases names; keys are taken from the source when
	// the two agree.
	written := attrNames(raw[1+len(lower):])
	for i := 0; more; i++ {
		var key, val []byte
		key, val, more = z.TagAttr()
		k := string(key)
		if i < len(written) && strings.EqualFold(written[i], k) {
			k = written[i]
		}
		el.attrs[k] = string(val)
	}

	if tt == html.SelfClosingTagToken {
		el.contentEnd = el.contentStart
		return el, el.contentStart, true
	}

	if el.name == TypeTemplate && isHTMLLang(el.attrs.Get("lang")) {
		return s.nestedEnd(z, el)
	}
	return s.rawEnd(el)
}

// nestedEnd finds the end of an HTML template, which may contain nested
// <template> elements.
func (s *scanner) nestedEnd(z *html.Tokenizer, el element) (element, int, bool) {
	depth := 1
	off := el.contentStart
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return s.unterminated(el)
		}
		n := len(z.Raw())
		switch tt {
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == TypeTemplate {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == TypeTemplate {
				depth--
				if depth == 0 {
					el.contentEnd = off
					return el, off + n, true
				}
			}
		}
		off += n
	}
}

// rawEnd finds the end tag of an element whose content is not markup.
func (s *scanner) rawEnd(el element) (element, int, bool) {
	start, end, ok := findEndTag(s.src, el.contentStart, el.name)
	if !ok {
		return s.unterminated(el)
	}
	el.contentEnd = start
	return el, end, true
}

func (s *scanner) unterminated(el element) (element, int, bool) {
	s.report(CodeMissingEndTag, MsgMissingEndTag, el.tagStart, el.contentStart)
	el.contentEnd = len(s.src)
	return el, len(s.src), true
}

// findEndTag locates `</name ...>` at or after from, matching name without
// regard to case. It returns the offset of "</" and the offset after ">".
func findEndTag(src string, from int, name string) (int, int, bool) {
	for i := from; i < len(src); {
		j := strings.Index(src[i:], "</")
		if j < 0 {
			return 0, 0, false
		}
		k := i + j
		after := k + 2 + len(name)
		if after <= len(src) && strings.EqualFold(src[k+2:after], name) &&
			(after == len(src) || isTagNameEnd(src[after])) {
			gt := strings.IndexByte(src[after:], '>')
			if gt < 0 {
				return k, len(src), true
			}
			return k, after + gt + 1, true
		}
		i = k + 2
	}
	return 0, 0, false
}

func isEmpty(b *Block) bool {
	return strings.TrimSpace(b.Content) == "" && !b.Attrs.Has("src")
}

func isHTMLLang(lang string) bool {
	return lang == "" || strings.EqualFold(lang, "html")
}

func usesTypeScript(desc *Descriptor) bool {
	for _, b := range []*Block{desc.Script, desc.ScriptSetup} {
		if b == nil {
			continue
		}
		switch strings.ToLower(b.Lang) {
		case "ts", "tsx":
			return true
		}
	}
	return false
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameEnd(c byte) bool {
	switch c {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// blockType normalises the case of the known block types. Custom block types
// keep their source case.
func blockType(name string) string {
	for _, known := range []string{TypeTemplate, TypeScript, TypeStyle} {
		if strings.EqualFold(name, known) {
			return known
		}
	}
	return name
}

// attrNames returns the attribute names of a start tag as written, given the
// tag text after its name. It splits names the way the html tokenizer does.
func attrNames(tag string) []string {
	var names []string
	i := 0
	for i < len(tag) {
		c := tag[i]
		if c == '>' {
			break
		}
		if isSpace(c) || c == '/' {
			i++
			continue
		}

		start := i
		i++
		for i < len(tag) && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' && tag[i] != '=' {
			i++
		}
		names = append(names, tag[start:i])

		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] != '=' {
			continue
		}
		i++
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i < len(tag) && (tag[i] == '"' || tag[i] == '\'') {
			quote := tag[i]
			end := strings.IndexByte(tag[i+1:], quote)
			if end < 0 {
				break
			}
			i += end + 2
			continue
		}
		for i < len(tag) && !isSpace(tag[i]) && tag[i] != '>' {
			i++
		}
	}
	return names
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
