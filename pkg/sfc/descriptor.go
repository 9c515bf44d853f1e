// Package sfc splits single file components into located content blocks.
//
// A component is a text file containing a markup block (<template>), script
// blocks (<script> and <script setup>), style blocks (<style>) and arbitrary
// custom blocks. The parser records each block's content and its byte range in
// the original source so that edits can later be spliced back without touching
// anything outside the blocks.
package sfc

import "strings"

// Block type names for the built-in block kinds.
const (
	TypeTemplate = "template"
	TypeScript   = "script"
	TypeStyle    = "style"
)

// Position is a location in the source. Line and Column are 1-based; Column
// counts bytes. Offset is a 0-based byte index.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a half-open source range [Start, End) together with the text it
// covered when it was parsed.
type Location struct {
	Start  Position `json:"start"`
	End    Position `json:"end"`
	Source string   `json:"source"`
}

// Attrs holds the attributes of a block's start tag. Boolean attributes such
// as `scoped` or `setup` are present with an empty value.
type Attrs map[string]string

// Has reports whether the attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the attribute value, or "" when absent.
func (a Attrs) Get(name string) string {
	return a[name]
}

// Block is one located content region of a component.
//
// Content is the only field callers are expected to modify; the location is
// fixed when the parser creates the block.
type Block struct {
	// Type is the tag name: "template", "script", "style" or a custom name.
	Type string

	// Content is the text between the start and end tag.
	Content string

	// Attrs are the start tag attributes.
	Attrs Attrs

	// Lang is the value of the lang attribute, if any.
	Lang string

	// Src is the value of the src attribute, if any.
	Src string

	loc Location
}

func newBlock(typ string, attrs Attrs, loc Location) *Block {
	return &Block{
		Type:    typ,
		Content: loc.Source,
		Attrs:   attrs,
		Lang:    attrs.Get("lang"),
		Src:     attrs.Get("src"),
		loc:     loc,
	}
}

// Loc returns the block's content range in the parsed source.
func (b *Block) Loc() Location {
	return b.loc
}

// StartOffset is the byte offset where the block content begins.
func (b *Block) StartOffset() int {
	return b.loc.Start.Offset
}

// EndOffset is the byte offset just past the block content.
func (b *Block) EndOffset() int {
	return b.loc.End.Offset
}

// Original returns the content as it appeared in the parsed source.
func (b *Block) Original() string {
	return b.loc.Source
}

// Modified reports whether Content differs from the parsed source.
func (b *Block) Modified() bool {
	return b.Content != b.loc.Source
}

// Setup reports whether this is a <script setup> block.
func (b *Block) Setup() bool {
	return b.Type == TypeScript && b.Attrs.Has("setup")
}

// Scoped reports whether this is a scoped <style> block.
func (b *Block) Scoped() bool {
	return b.Type == TypeStyle && b.Attrs.Has("scoped")
}

// Module returns the CSS module name of a <style module> block. A bare
// `module` attribute names the default "$style" module.
func (b *Block) Module() (string, bool) {
	if b.Type != TypeStyle || !b.Attrs.Has("module") {
		return "", false
	}
	if name := b.Attrs.Get("module"); name != "" {
		return name, true
	}
	return "$style", true
}

func (b *Block) clone() *Block {
	if b == nil {
		return nil
	}
	cp := *b
	if b.Attrs != nil {
		cp.Attrs = make(Attrs, len(b.Attrs))
		for k, v := range b.Attrs {
			cp.Attrs[k] = v
		}
	}
	return &cp
}

// Descriptor is the parsed form of one component file.
type Descriptor struct {
	// Filename identifies the file in diagnostics.
	Filename string

	// Source is the text the block locations refer to.
	Source string

	// Template is nil when the file has no <template>.
	Template *Block

	// Script is the plain <script> block, nil when absent.
	Script *Block

	// ScriptSetup is the <script setup> block, nil when absent.
	ScriptSetup *Block

	// Styles are the <style> blocks in source order.
	Styles []*Block

	// CustomBlocks are all other top-level blocks in source order.
	CustomBlocks []*Block

	// CSSVars lists the expressions bound with v-bind() inside styles.
	CSSVars []string

	// Slotted is true when a scoped style uses the :slotted() selector.
	Slotted bool
}

// Blocks returns every present block ordered by start offset.
func (d *Descriptor) Blocks() []*Block {
	blocks := make([]*Block, 0, 3+len(d.Styles)+len(d.CustomBlocks))
	for _, b := range []*Block{d.Template, d.Script, d.ScriptSetup} {
		if b != nil {
			blocks = append(blocks, b)
		}
	}
	blocks = append(blocks, d.Styles...)
	blocks = append(blocks, d.CustomBlocks...)
	sortByStart(blocks)
	return blocks
}

// CustomBlocksOfType returns the custom blocks with the given tag name.
func (d *Descriptor) CustomBlocksOfType(typ string) []*Block {
	var out []*Block
	for _, b := range d.CustomBlocks {
		if strings.EqualFold(b.Type, typ) {
			out = append(out, b)
		}
	}
	return out
}

// Clone returns a deep copy that shares nothing mutable with d.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	cp := &Descriptor{
		Filename:    d.Filename,
		Source:      d.Source,
		Template:    d.Template.clone(),
		Script:      d.Script.clone(),
		ScriptSetup: d.ScriptSetup.clone(),
		Slotted:     d.Slotted,
	}
	if d.Styles != nil {
		cp.Styles = make([]*Block, len(d.Styles))
		for i, b := range d.Styles {
			cp.Styles[i] = b.clone()
		}
	}
	if d.CustomBlocks != nil {
		cp.CustomBlocks = make([]*Block, len(d.CustomBlocks))
		for i, b := range d.CustomBlocks {
			cp.CustomBlocks[i] = b.clone()
		}
	}
	if d.CSSVars != nil {
		cp.CSSVars = append([]string(nil), d.CSSVars...)
	}
	return cp
}
