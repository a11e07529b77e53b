package rules

import (
	"strings"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// Indent messages.
const (
	IndentSpacesMessage = "space indentation expected"
	IndentTabsMessage   = "tab indentation expected"
)

const defaultIndentSize = 4

// IndentOptions configures indent.
type IndentOptions struct {
	Spaces bool `mapstructure:"spaces"`
	Tabs   bool `mapstructure:"tabs"`
	Size   int  `mapstructure:"size" validate:"omitempty,oneof=2 4"`
}

func (o *IndentOptions) width() int {
	if o.Size == 0 {
		return defaultIndentSize
	}
	return o.Size
}

// IndentRule enforces indentation with tabs or spaces.
type IndentRule struct {
	lint.BaseRule
}

// NewIndentRule creates the indent rule.
func NewIndentRule() *IndentRule {
	return &IndentRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "indent",
			Description: "Enforces indentation with tabs or spaces.",
			Rationale: "Using only one of tabs or spaces for indentation leads to more consistent editor behavior, " +
				"cleaner diffs in version control, and easier programmatic manipulation.",
			Category: lint.CategoryFormat,
			HasFix:   true,
			OptionsDescription: "`\"spaces\"` or `\"tabs\"`, optionally followed by the indent size (2 or 4) " +
				"used to convert between the two. Lines starting inside comments and template literals are skipped.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MinLength: 1,
				MaxLength: 2,
				Items: []*lint.Schema{
					{Type: "string", Enum: []any{"spaces", "tabs"}},
					{Type: "number", Enum: []any{2.0, 4.0}},
				},
			},
			OptionExamples: []string{`[true, "spaces"]`, `[true, "spaces", 4]`, `[true, "tabs", 2]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *IndentRule) NewOptions() any {
	return &IndentOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *IndentRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{NumberKey: "size"}
}

// Apply checks the leading whitespace of every line.
func (r *IndentRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*IndentOptions](ctx)
	if opts == nil {
		opts = &IndentOptions{Spaces: true}
	}
	useTabs := opts.Tabs && !opts.Spaces
	size := opts.width()

	file := ctx.File
	comments := lint.CommentRanges(file)
	templates := lint.TemplateRanges(file)

	for line := range file.Lines.LineCount() {
		indent := lint.LeadingWhitespace(file, line)
		if len(indent) == 0 {
			continue
		}
		start := file.Lines.Line(line).StartOffset
		if r, ok := comments.Find(start); ok && r.Pos < start {
			continue
		}
		if r, ok := templates.Find(start); ok && r.Pos < start {
			continue
		}

		text := string(indent)
		columns := indentColumns(text, size)
		end := start + len(indent)

		switch {
		case useTabs && wrongTabIndent(text, opts.Size):
			replacement := strings.Repeat("\t", columns/size) + strings.Repeat(" ", columns%size)
			ctx.AddFailure(start, end, IndentTabsMessage, fix.ReplaceFromTo(start, end, replacement))
		case !useTabs && strings.ContainsRune(text, '\t'):
			ctx.AddFailure(start, end, IndentSpacesMessage, fix.ReplaceFromTo(start, end, strings.Repeat(" ", columns)))
		}
	}
	return nil
}

// wrongTabIndent reports indentation that uses spaces where tabs are
// expected. Without a size any leading space is wrong; with one, only a
// run of at least size spaces is, which leaves alignment after tabs alone.
func wrongTabIndent(indent string, size int) bool {
	if size == 0 {
		return indent[0] == ' '
	}
	return strings.Contains(indent, strings.Repeat(" ", size))
}

// indentColumns returns the visual width of indent with tab stops every size columns.
func indentColumns(indent string, size int) int {
	col := 0
	for _, c := range indent {
		if c == '\t' {
			col += size - col%size
		} else {
			col++
		}
	}
	return col
}
