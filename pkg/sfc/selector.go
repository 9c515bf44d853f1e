package sfc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Selector names accepted by Descriptor.Select.
const (
	SelectorTemplate    = "template"
	SelectorScript      = "script"
	SelectorScriptSetup = "script-setup"
	SelectorStyle       = "style"
	SelectorCustom      = "custom"
)

var (
	// ErrInvalidSelector is returned for a selector that cannot be parsed.
	ErrInvalidSelector = errors.New("invalid block selector")

	// ErrNoSuchBlock is returned when a selector matches no block.
	ErrNoSuchBlock = errors.New("no such block")
)

// Select finds a block by selector. Accepted forms:
//
//	template
//	script
//	script-setup
//	style[:N]
//	custom:<type>[:N]
//
// N is a zero-based index and defaults to 0.
func (d *Descriptor) Select(selector string) (*Block, error) {
	parts := strings.Split(selector, ":")

	switch parts[0] {
	case SelectorTemplate, SelectorScript, SelectorScriptSetup:
		if len(parts) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
		}
		b := map[string]*Block{
			SelectorTemplate:    d.Template,
			SelectorScript:      d.Script,
			SelectorScriptSetup: d.ScriptSetup,
		}[parts[0]]
		if b == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchBlock, selector)
		}
		return b, nil

	case SelectorStyle:
		if len(parts) > 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
		}
		return pick(d.Styles, selector, parts[1:])

	case SelectorCustom:
		if len(parts) < 2 || len(parts) > 3 || parts[1] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
		}
		return pick(d.CustomBlocksOfType(parts[1]), selector, parts[2:])
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
}

func pick(blocks []*Block, selector string, index []string) (*Block, error) {
	n := 0
	if len(index) == 1 {
		var err error
		n, err = strconv.Atoi(index[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
		}
	}
	if n >= len(blocks) {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchBlock, selector)
	}
	return blocks[n], nil
}

// Selector returns the selector that addresses b in d, or "" if b does not
// belong to d.
func (d *Descriptor) Selector(b *Block) string {
	switch {
	case b == nil:
		return ""
	case b == d.Template:
		return SelectorTemplate
	case b == d.Script:
		return SelectorScript
	case b == d.ScriptSetup:
		return SelectorScriptSetup
	}
	for i, s := range d.Styles {
		if s == b {
			return SelectorStyle + ":" + strconv.Itoa(i)
		}
	}
	n := 0
	for _, c := range d.CustomBlocks {
		if !strings.EqualFold(c.Type, b.Type) {
			continue
		}
		if c == b {
			return SelectorCustom + ":" + b.Type + ":" + strconv.Itoa(n)
		}
		n++
	}
	return ""
}
