package sfc

import "fmt"

// Code classifies a Diagnostic.
type Code string

const (
	// CodeMissingEndTag marks a block whose end tag never appears.
	CodeMissingEndTag Code = "missing-end-tag"

	// CodeDuplicateBlock marks a second <template>, <script> or <script setup>.
	CodeDuplicateBlock Code = "duplicate-block"

	// CodeMissingRequiredBlock marks a file with neither template nor script.
	CodeMissingRequiredBlock Code = "missing-required-block"

	// CodeScriptLangMismatch marks <script> and <script setup> with different lang.
	CodeScriptLangMismatch Code = "script-lang-mismatch"

	// CodeInvalidExpression marks a template expression that does not parse.
	CodeInvalidExpression Code = "invalid-expression"
)

// Message texts shared with callers that match on them.
const (
	MsgMissingEndTag        = "Element is missing end tag."
	MsgMissingRequiredBlock = "At least one <template> or <script> is required in a single file component."
	MsgScriptLangMismatch   = "<script> and <script setup> must have the same language type."
	MsgInvalidExpression    = "Error parsing JavaScript expression"
)

// Diagnostic is a non-fatal problem found in component content.
// It implements error so callers can wrap or join diagnostics when they
// choose to treat them as failures.
type Diagnostic struct {
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Filename string   `json:"filename,omitempty"`
	Loc      Location `json:"loc"`
}

func (d Diagnostic) Error() string {
	if d.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", d.Loc.Start.Line, d.Loc.Start.Column, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.Filename, d.Loc.Start.Line, d.Loc.Start.Column, d.Message)
}

func duplicateMessage(tag string) string {
	return fmt.Sprintf("Single file component can contain only one %s element", tag)
}
