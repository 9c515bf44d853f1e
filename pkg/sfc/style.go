package sfc

import (
	"regexp"
	"strings"
)

var (
	cssCommentRE = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	cssVarRE     = regexp.MustCompile(`v-bind\s*\(\s*(?:'([^']*)'|"([^"]*)"|([^'")][^)]*))\s*\)`)
	slottedRE    = regexp.MustCompile(`(?:::v-|:)slotted\(`)
)

// parseCSSVars collects the distinct v-bind() expressions used in styles,
// in order of first appearance.
func parseCSSVars(styles []*Block) []string {
	var vars []string
	seen := make(map[string]struct{})
	for _, style := range styles {
		content := cssCommentRE.ReplaceAllString(style.Content, "")
		for _, m := range cssVarRE.FindAllStringSubmatch(content, -1) {
			v := strings.TrimSpace(m[1] + m[2] + m[3])
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			vars = append(vars, v)
		}
	}
	return vars
}

func hasSlotted(styles []*Block) bool {
	for _, style := range styles {
		if style.Scoped() && slottedRE.MatchString(style.Content) {
			return true
		}
	}
	return false
}
