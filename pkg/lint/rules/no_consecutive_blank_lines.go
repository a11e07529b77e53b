package rules

import (
	"fmt"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

const defaultAllowedBlankLines = 1

// ConsecutiveBlankLinesMessage returns the message for a run of blank
// lines longer than allowed.
func ConsecutiveBlankLinesMessage(allowed int) string {
	if allowed == 1 {
		return "Consecutive blank lines are forbidden"
	}
	return fmt.Sprintf("Exceeds the %d allowed consecutive blank lines", allowed)
}

// BlankLinesOptions configures no-consecutive-blank-lines.
type BlankLinesOptions struct {
	Allowed int `mapstructure:"allowed" validate:"gte=1"`
}

// NoConsecutiveBlankLinesRule limits runs of blank lines.
type NoConsecutiveBlankLinesRule struct {
	lint.BaseRule
}

// NewNoConsecutiveBlankLinesRule creates the no-consecutive-blank-lines rule.
func NewNoConsecutiveBlankLinesRule() *NoConsecutiveBlankLinesRule {
	return &NoConsecutiveBlankLinesRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:               "no-consecutive-blank-lines",
			Description:        "Disallows one or more blank lines in a row.",
			Rationale:          "Helps maintain a readable style in your codebase.",
			Category:           lint.CategoryFormat,
			HasFix:             true,
			OptionsDescription: "An optional number of maximum allowed sequential blanks. Defaults to 1.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 1,
				ListOf:    &lint.Schema{Type: "number", Minimum: lint.Min(1)},
			},
			OptionExamples: []string{`true`, `[true, 2]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *NoConsecutiveBlankLinesRule) NewOptions() any {
	return &BlankLinesOptions{Allowed: defaultAllowedBlankLines}
}

// ArgKeys implements lint.Configurable.
func (r *NoConsecutiveBlankLinesRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{NumberKey: "allowed"}
}

// blankRun is the part of a blank-line run beyond the allowed count.
type blankRun struct {
	firstLine int
	lastLine  int
}

// Apply reports every run of blank lines longer than allowed. Runs that
// start inside a template literal are part of its value and are skipped.
func (r *NoConsecutiveBlankLinesRule) Apply(ctx *lint.WalkContext) error {
	allowed := defaultAllowedBlankLines
	if opts := lint.OptionsAs[*BlankLinesOptions](ctx); opts != nil {
		allowed = opts.Allowed
	}

	file := ctx.File
	var runs []blankRun
	consecutive := 0
	for line := range file.Lines.LineCount() {
		if !lint.IsBlankLine(file, line) {
			consecutive = 0
			continue
		}
		consecutive++
		switch {
		case consecutive == allowed+1:
			runs = append(runs, blankRun{firstLine: line, lastLine: line})
		case consecutive > allowed+1:
			runs[len(runs)-1].lastLine = line
		}
	}
	if len(runs) == 0 {
		return nil
	}

	templates := lint.TemplateRanges(file)
	message := ConsecutiveBlankLinesMessage(allowed)
	for _, run := range runs {
		first := file.Lines.Line(run.firstLine)
		last := file.Lines.Line(run.lastLine)
		if templates.Contains(first.StartOffset) {
			continue
		}
		ctx.AddFailure(first.StartOffset, last.BreakOffset, message, blankRunFix(file, first, last))
	}
	return nil
}

// blankRunFix deletes the excess lines. A run at the end of the file has
// no trailing line break, so the break of the preceding line is removed
// instead.
func blankRunFix(file *tsast.SourceFile, first, last tsast.LineInfo) fix.Replacement {
	if last.EndOffset == last.BreakOffset && last.EndOffset == file.Len() {
		prevLine := file.Lines.LineOf(first.StartOffset) - 1
		if prevLine >= 0 {
			return fix.DeleteFromTo(file.Lines.Line(prevLine).BreakOffset, last.EndOffset)
		}
	}
	return fix.DeleteFromTo(first.StartOffset, last.EndOffset)
}
