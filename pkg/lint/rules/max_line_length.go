package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

const defaultMaxLineLength = 120

// MaxLineLengthMessage returns the message for a line over limit.
func MaxLineLengthMessage(limit int) string {
	return fmt.Sprintf("Exceeds maximum line length of %d", limit)
}

// MaxLineLengthOptions configures max-line-length.
type MaxLineLengthOptions struct {
	Limit         int    `mapstructure:"limit" validate:"gte=1"`
	IgnorePattern string `mapstructure:"ignore-pattern"`
	CheckStrings  bool   `mapstructure:"check-strings"`
	CheckRegex    bool   `mapstructure:"check-regex"`

	ignore *regexp.Regexp
}

// Validate compiles the ignore pattern.
func (o *MaxLineLengthOptions) Validate() error {
	if o.IgnorePattern == "" {
		return nil
	}
	re, err := regexp.Compile(o.IgnorePattern)
	if err != nil {
		return fmt.Errorf("invalid ignore-pattern: %w", err)
	}
	o.ignore = re
	return nil
}

// MaxLineLengthRule requires lines to be under a certain max length.
type MaxLineLengthRule struct {
	lint.BaseRule
}

// NewMaxLineLengthRule creates the max-line-length rule.
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "max-line-length",
			Description: "Requires lines to be under a certain max length.",
			Rationale: "Limiting the length of a line of code improves code readability. " +
				"It also makes comparing code side-by-side easier and improves compatibility with various editors, IDEs, and diff viewers.",
			Category: lint.CategoryMaintainability,
			OptionsDescription: "A number for the limit, or an object with `limit`, `ignore-pattern`, " +
				"`check-strings` and `check-regex`. Lines whose character at the limit falls inside a string " +
				"or regular expression are skipped unless the matching check option is set.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 1,
				ListOf: &lint.Schema{AnyOf: []*lint.Schema{
					{Type: "number", Minimum: lint.Min(1)},
					{Type: "object", Properties: map[string]*lint.Schema{
						"limit":          {Type: "number", Minimum: lint.Min(1)},
						"ignore-pattern": {Type: "string"},
						"check-strings":  {Type: "boolean"},
						"check-regex":    {Type: "boolean"},
					}},
				}},
			},
			OptionExamples: []string{
				`[true, 120]`,
				`[true, {"limit": 120, "ignore-pattern": "^import |^export {(.*?)}", "check-strings": true}]`,
			},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *MaxLineLengthRule) NewOptions() any {
	return &MaxLineLengthOptions{Limit: defaultMaxLineLength}
}

// ArgKeys implements lint.Configurable.
func (r *MaxLineLengthRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{NumberKey: "limit"}
}

// Apply reports every line longer than the limit.
func (r *MaxLineLengthRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*MaxLineLengthOptions](ctx)
	if opts == nil {
		opts = &MaxLineLengthOptions{Limit: defaultMaxLineLength}
	}

	file := ctx.File
	var exempt lint.RangeSet
	switch {
	case !opts.CheckStrings && !opts.CheckRegex:
		exempt = lint.StringRanges(file)
	case !opts.CheckStrings:
		exempt = lint.NewRangeSet(file.RangesOfKind(tsast.KindString, tsast.KindTemplateString))
	case !opts.CheckRegex:
		exempt = lint.NewRangeSet(file.RangesOfKind(tsast.KindRegex))
	}

	message := MaxLineLengthMessage(opts.Limit)
	for line := range file.Lines.LineCount() {
		if file.Lines.LineLength(line) <= opts.Limit {
			continue
		}
		if opts.ignore != nil && opts.ignore.MatchString(file.Lines.LineText(line)) {
			continue
		}
		limitOffset := file.Lines.OffsetOf(tsast.LineAndCharacter{Line: line, Character: opts.Limit})
		if exempt.Contains(limitOffset) {
			continue
		}

		info := file.Lines.Line(line)
		start := file.Lines.OffsetOf(tsast.LineAndCharacter{Line: line})
		ctx.AddFailure(start, info.BreakOffset, message)
	}
	return nil
}
