package rules

import (
	"bytes"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// EoflineMessage is reported when a file does not end with a line break.
const EoflineMessage = "file should end with a newline"

// EoflineRule ensures the file ends with a newline.
type EoflineRule struct {
	lint.BaseRule
}

// NewEoflineRule creates the eofline rule.
func NewEoflineRule() *EoflineRule {
	return &EoflineRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "eofline",
			Description: "Ensures the file ends with a newline.",
			Rationale:   "It is a standard convention to end files with a newline.",
			Category:    lint.CategoryFormat,
			HasFix:      true,
		}),
	}
}

// Apply checks the last byte of the file. Empty files pass.
func (r *EoflineRule) Apply(ctx *lint.WalkContext) error {
	content := ctx.File.Content
	length := len(content)
	if length == 0 || content[length-1] == '\n' || content[length-1] == '\r' {
		return nil
	}

	lineBreak := "\n"
	if bytes.Contains(content, []byte("\r\n")) {
		lineBreak = "\r\n"
	}
	ctx.AddFailure(length, length, EoflineMessage, fix.AppendText(length, lineBreak))
	return nil
}
