package rules

import (
	"bytes"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// TrailingWhitespaceMessage is reported for whitespace at the end of a line.
const TrailingWhitespaceMessage = "trailing whitespace"

// TrailingWhitespaceOptions configures no-trailing-whitespace.
type TrailingWhitespaceOptions struct {
	IgnoreComments        bool `mapstructure:"ignore-comments"`
	IgnoreJSDoc           bool `mapstructure:"ignore-jsdoc"`
	IgnoreTemplateStrings bool `mapstructure:"ignore-template-strings"`
	IgnoreBlankLines      bool `mapstructure:"ignore-blank-lines"`
}

// NoTrailingWhitespaceRule disallows trailing whitespace at the end of a line.
type NoTrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewNoTrailingWhitespaceRule creates the no-trailing-whitespace rule.
func NewNoTrailingWhitespaceRule() *NoTrailingWhitespaceRule {
	return &NoTrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "no-trailing-whitespace",
			Description: "Disallows trailing whitespace at the end of a line.",
			Rationale:   "Keeps version control diffs free of whitespace noise.",
			Category:    lint.CategoryFormat,
			HasFix:      true,
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 4,
				ListOf: &lint.Schema{Type: "string", Enum: []any{
					"ignore-comments", "ignore-jsdoc", "ignore-template-strings", "ignore-blank-lines",
				}},
			},
			OptionsDescription: "`\"ignore-comments\"` skips comments, `\"ignore-jsdoc\"` skips JSDoc comments, " +
				"`\"ignore-template-strings\"` skips template literals and `\"ignore-blank-lines\"` skips lines " +
				"containing only whitespace.",
			OptionExamples: []string{`true`, `[true, "ignore-comments"]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *NoTrailingWhitespaceRule) NewOptions() any {
	return &TrailingWhitespaceOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *NoTrailingWhitespaceRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// Apply reports trailing whitespace line by line.
func (r *NoTrailingWhitespaceRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*TrailingWhitespaceOptions](ctx)
	if opts == nil {
		opts = &TrailingWhitespaceOptions{}
	}

	file := ctx.File
	comments := lint.CommentRanges(file)
	templates := lint.TemplateRanges(file)

	for line := range file.Lines.LineCount() {
		start, end := lint.TrailingWhitespaceRange(file, line)
		if start < 0 {
			continue
		}
		if opts.IgnoreBlankLines && lint.IsBlankLine(file, line) {
			continue
		}
		if comment, ok := comments.Find(start); ok {
			if opts.IgnoreComments || (opts.IgnoreJSDoc && isJSDoc(file, comment)) {
				continue
			}
		}
		if opts.IgnoreTemplateStrings && templates.Contains(start) {
			continue
		}
		ctx.AddFailure(start, end, TrailingWhitespaceMessage, fix.DeleteFromTo(start, end))
	}
	return nil
}

func isJSDoc(file *tsast.SourceFile, comment tsast.TextRange) bool {
	text := file.Content[comment.Pos:comment.End]
	return bytes.HasPrefix(text, []byte("/**")) && !bytes.HasPrefix(text, []byte("/**/"))
}
