package rewrite_test

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/yaklabco/gosfc/pkg/rewrite"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

type genBlock struct {
	tag     string
	content string
}

func render(comments []string, blocks []genBlock) string {
	var sb strings.Builder
	for i, b := range blocks {
		sb.WriteString(comments[i])
		fmt.Fprintf(&sb, "<%s>%s</%s>\n", b.tag, b.content, b.tag)
	}
	sb.WriteString(comments[len(blocks)])
	return sb.String()
}

func drawContent(rt *rapid.T, label string) string {
	return rapid.StringMatching(`[a-z][a-z0-9 .;:=\n{}]{0,24}`).Draw(rt, label)
}

// TestRewrite_MatchesRenderedEdits checks that rewriting a parsed file with
// arbitrary block edits gives the same text as rendering the edited blocks
// from scratch.
func TestRewrite_MatchesRenderedEdits(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "blocks")

		blocks := make([]genBlock, n)
		comments := make([]string, n+1)
		for i := range blocks {
			blocks[i] = genBlock{
				tag:     rapid.SampledFrom([]string{"style", "docs", "i18n", "script"}).Draw(rt, "tag"),
				content: drawContent(rt, "content"),
			}
		}
		for i := range comments {
			comments[i] = rapid.SampledFrom([]string{"", "\n", "<!-- note -->\n", "  \n\n"}).Draw(rt, "between")
		}
		// A second plain script would be a duplicate.
		seenScript := false
		for i := range blocks {
			if blocks[i].tag == "script" {
				if seenScript {
					blocks[i].tag = "docs"
				}
				seenScript = true
			}
		}

		original := render(comments, blocks)
		desc, diags := sfc.NewParser(sfc.Options{IgnoreEmpty: true}).Parse("Gen.vue", original)
		if len(diags) != 0 {
			rt.Fatalf("unexpected diagnostics for %q: %v", original, diags)
		}

		parsed := desc.Blocks()
		if len(parsed) != n {
			rt.Fatalf("parsed %d blocks, want %d", len(parsed), n)
		}

		changed := false
		for i, b := range parsed {
			if rapid.Bool().Draw(rt, "edit") {
				b.Content = drawContent(rt, "replacement")
				changed = changed || b.Content != blocks[i].content
				blocks[i].content = b.Content
			}
		}

		out := rewrite.Rewrite(original, desc)

		if want := render(comments, blocks); out.Text != want {
			rt.Fatalf("rewrite = %q, want %q", out.Text, want)
		}
		if out.HasChanged != changed {
			rt.Fatalf("HasChanged = %v, want %v", out.HasChanged, changed)
		}
		if !changed && !sameString(original, out.Text) {
			rt.Fatalf("unchanged rewrite allocated a new string")
		}
	})
}

// TestRewrite_RoundTrip checks that parsing the rewritten text yields the
// edited contents at consistent offsets.
func TestRewrite_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		template := drawContent(rt, "template")
		style := drawContent(rt, "style")
		original := "<!-- head -->\n<template>" + template + "</template>\n<style>" + style + "</style>\n"

		desc, _ := sfc.NewParser(sfc.Options{IgnoreEmpty: true}).Parse("Gen.vue", original)
		desc.Template.Content = drawContent(rt, "newTemplate")
		desc.Styles[0].Content = drawContent(rt, "newStyle")

		out := rewrite.Rewrite(original, desc)

		again, _ := sfc.NewParser(sfc.Options{IgnoreEmpty: true}).Parse("Gen.vue", out.Text)
		if again.Template.Content != desc.Template.Content {
			rt.Fatalf("template = %q, want %q", again.Template.Content, desc.Template.Content)
		}
		if again.Styles[0].Content != desc.Styles[0].Content {
			rt.Fatalf("style = %q, want %q", again.Styles[0].Content, desc.Styles[0].Content)
		}
		if !strings.HasPrefix(out.Text, "<!-- head -->\n") {
			rt.Fatalf("leading comment lost: %q", out.Text)
		}
	})
}
