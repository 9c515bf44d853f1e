package sfc

import (
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// forAliasRE splits a v-for value into its alias and source parts.
var forAliasRE = regexp.MustCompile(`^\s*([\s\S]*?)\s+(?:in|of)\s+(\S[\s\S]*)$`)

// exprChecker validates template expressions by running them through a
// JavaScript (or TypeScript) transform and collecting the first syntax error.
// Each check returns "" when the code parses.
type exprChecker struct {
	loader api.Loader
}

func newExprChecker(typescript bool) exprChecker {
	if typescript {
		return exprChecker{loader: api.LoaderTS}
	}
	return exprChecker{loader: api.LoaderJS}
}

func (c exprChecker) transform(code string) string {
	res := api.Transform(code, api.TransformOptions{
		Loader:   c.loader,
		LogLevel: api.LogLevelSilent,
	})
	if len(res.Errors) == 0 {
		return ""
	}
	return res.Errors[0].Text
}

// expression checks a single expression. The newline keeps a trailing line
// comment from swallowing the closing paren.
func (c exprChecker) expression(src string) string {
	return c.transform("(" + src + "\n);")
}

// handler checks an event handler, which may be an expression or a list of
// statements.
func (c exprChecker) handler(src string) string {
	detail := c.expression(src)
	if detail == "" {
		return ""
	}
	if c.transform(src) == "" {
		return ""
	}
	return detail
}

// params checks a parameter list such as a slot's props binding.
func (c exprChecker) params(src string) string {
	return c.transform("(" + src + "\n) => 0;")
}

func (c exprChecker) forExpression(src string) string {
	m := forAliasRE.FindStringSubmatch(src)
	if m == nil {
		return "v-for has invalid expression"
	}
	alias := strings.TrimSpace(m[1])
	alias = strings.TrimSuffix(strings.TrimPrefix(alias, "("), ")")
	if detail := c.params(alias); detail != "" {
		return detail
	}
	return c.expression(m[2])
}
