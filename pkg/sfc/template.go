package sfc

import (
	"strings"

	"golang.org/x/net/html"
)

// CodeMissingInterpolationEnd marks a "{{" without a closing "}}".
const CodeMissingInterpolationEnd Code = "missing-interpolation-end"

// MsgMissingInterpolationEnd is the message for CodeMissingInterpolationEnd.
const MsgMissingInterpolationEnd = "Interpolation end sign was not found."

type directiveKind int

const (
	dirNone directiveKind = iota
	dirExpression
	dirHandler
	dirFor
	dirParams
)

// checkTemplate reports template expressions that fail to parse.
func (s *scanner) checkTemplate(tmpl *Block, typescript bool) {
	w := &templateWalk{
		s:       s,
		chk:     newExprChecker(typescript),
		content: tmpl.Original(),
		base:    tmpl.StartOffset(),
	}
	for pos := 0; pos < len(w.content); {
		pos = w.scan(pos)
	}
}

// voidElements never have an end tag, so a v-pre on one covers only its own
// attributes.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

type templateWalk struct {
	s       *scanner
	chk     exprChecker
	content string
	base    int

	rawParent string // open script or style element, its text is not markup
	preTag    string // name of the element carrying v-pre
	preDepth  int    // open elements named preTag, counting the v-pre one
}

// scan tokenizes content from pos. Text inside {{ }} is not markup, so when
// an interpolation closes past the current text run the tokenizer has split
// it wrongly; scan then returns the offset after the closing braces and the
// caller restarts there. Otherwise it returns len(content).
func (w *templateWalk) scan(pos int) int {
	z := html.NewTokenizer(strings.NewReader(w.content[pos:]))
	off := pos
	textStart := -1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if textStart >= 0 {
				if resume := w.text(textStart, len(w.content)); resume >= 0 {
					return resume
				}
			}
			return len(w.content)
		}
		n := len(z.Raw())

		if tt == html.TextToken {
			if textStart < 0 {
				textStart = off
			}
			off += n
			continue
		}
		if textStart >= 0 {
			if resume := w.text(textStart, off); resume >= 0 {
				return resume
			}
			textStart = -1
		}

		w.tag(z, tt, off, n)
		off += n
	}
}

// text validates the interpolations that open in content[start:end]. It
// returns the offset after the last closing "}}" when that lies beyond end,
// and -1 when the run needs no resync.
func (w *templateWalk) text(start, end int) int {
	if w.rawParent != "" || w.preDepth > 0 {
		return -1
	}
	for i := start; i < end; {
		open := strings.Index(w.content[i:end], "{{")
		if open < 0 {
			return -1
		}
		exprStart := i + open + 2
		closing := strings.Index(w.content[exprStart:], "}}")
		if closing < 0 {
			w.s.report(CodeMissingInterpolationEnd, MsgMissingInterpolationEnd,
				w.base+exprStart-2, w.base+len(w.content))
			return len(w.content)
		}
		exprEnd := exprStart + closing
		w.interpolation(exprStart, exprEnd)
		i = exprEnd + 2
		if i > end {
			return i
		}
	}
	return -1
}

func (w *templateWalk) interpolation(start, end int) {
	expr := html.UnescapeString(w.content[start:end])
	if strings.TrimSpace(expr) == "" {
		return
	}
	if detail := w.chk.expression(expr); detail != "" {
		w.s.report(CodeInvalidExpression, MsgInvalidExpression+": "+detail, w.base+start, w.base+end)
	}
}

// tag handles one start, self-closing or end tag of n bytes at off.
func (w *templateWalk) tag(z *html.Tokenizer, tt html.TokenType, off, n int) {
	name, more := z.TagName()
	tag := string(name)

	switch tt {
	case html.EndTagToken:
		w.rawParent = ""
		if w.preDepth > 0 && tag == w.preTag {
			w.preDepth--
		}
		return
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return
	}

	var keys, vals []string
	pre := false
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		keys = append(keys, string(key))
		vals = append(vals, string(val))
		pre = pre || string(key) == "v-pre"
	}

	opens := tt == html.StartTagToken && !voidElements[tag]
	switch {
	case w.preDepth > 0:
		if opens && tag == w.preTag {
			w.preDepth++
		}
	case pre:
		if opens {
			w.preTag = tag
			w.preDepth = 1
		}
	default:
		raw := strings.ToLower(w.content[off : off+n])
		for i, key := range keys {
			w.s.checkDirective(w.chk, key, vals[i], raw, w.base+off)
		}
	}

	if tt == html.StartTagToken && (tag == "script" || tag == "style") {
		w.rawParent = tag
	}
}

// checkDirective validates the value of a directive attribute. raw is the
// lowercased text of the whole start tag, which begins at tagOffset.
func (s *scanner) checkDirective(chk exprChecker, key, value, raw string, tagOffset int) {
	kind := classifyDirective(key)
	if kind == dirNone || strings.TrimSpace(value) == "" {
		return
	}

	var detail string
	switch kind {
	case dirExpression:
		detail = chk.expression(value)
	case dirHandler:
		detail = chk.handler(value)
	case dirFor:
		detail = chk.forExpression(value)
	case dirParams:
		detail = chk.params(value)
	}
	if detail == "" {
		return
	}

	start := tagOffset
	if idx := strings.Index(raw, key); idx >= 0 {
		start += idx
	}
	s.report(CodeInvalidExpression, MsgInvalidExpression+": "+detail, start, start+len(key))
}

func classifyDirective(key string) directiveKind {
	switch {
	case key == "":
		return dirNone
	case key[0] == ':' || key[0] == '.':
		return dirExpression
	case key[0] == '@':
		return dirHandler
	case key[0] == '#':
		return dirParams
	case !strings.HasPrefix(key, "v-"):
		return dirNone
	}

	name := key[2:]
	if idx := strings.IndexAny(name, ":."); idx >= 0 {
		name = name[:idx]
	}
	switch name {
	case "on":
		return dirHandler
	case "for":
		return dirFor
	case "slot":
		return dirParams
	case "pre", "cloak", "once", "else":
		return dirNone
	default:
		return dirExpression
	}
}
