package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
)

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	schema := &lint.Schema{
		Type: "array",
		Items: []*lint.Schema{
			{Type: "string", Enum: []any{"always", "never"}},
		},
		ListOf: &lint.Schema{
			AnyOf: []*lint.Schema{
				{Type: "number", Minimum: lint.Min(1)},
				{Type: "object", Properties: map[string]*lint.Schema{
					"ignore": {Type: "boolean"},
				}},
			},
		},
		MaxLength: 3,
	}

	tests := []struct {
		name string
		args []any
		want []string
	}{
		{
			name: "valid",
			args: []any{"always", float64(2), map[string]any{"ignore": true}},
		},
		{
			name: "not an array",
			args: nil,
			want: []string{"options: expected array, got null"},
		},
		{
			name: "enum",
			args: []any{"sometimes"},
			want: []string{`options[0]: "sometimes" is not one of ["always", "never"]`},
		},
		{
			name: "every violation reported",
			args: []any{float64(1), "x", map[string]any{"other": 1.0}},
			want: []string{
				"options[0]: expected string, got 1",
				`options[1]: "x" does not match any allowed form`,
				"options[2]: object does not match any allowed form",
			},
		},
		{
			name: "too long",
			args: []any{"never", 1.0, 2.0, 3.0},
			want: []string{"options: expected at most 3 item(s), got 4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var input any
			if tt.args != nil {
				input = tt.args
			}
			assert.Equal(t, tt.want, schema.Validate(input))
		})
	}
}

type limitOptions struct {
	Limit  int      `mapstructure:"limit" validate:"gte=1"`
	Strict bool     `mapstructure:"strict"`
	Names  []string `mapstructure:"names"`
}

type limitRule struct {
	lint.BaseRule
}

func newLimitRule(name string) *limitRule {
	return &limitRule{BaseRule: lint.NewBaseRule(lint.Metadata{Name: name, HasFix: true})}
}

func (r *limitRule) NewOptions() any {
	return &limitOptions{Limit: 5}
}

func (r *limitRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{NumberKey: "limit"}
}

func (r *limitRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*limitOptions](ctx)
	if len(ctx.File.Content) > opts.Limit {
		ctx.AddFailure(0, 0, "too long")
	}
	return nil
}

func TestOptionsDecoder_Decode(t *testing.T) {
	t.Parallel()

	rule := newLimitRule("limit")

	tests := []struct {
		name     string
		args     []any
		want     *limitOptions
		problems []string
	}{
		{
			name: "defaults",
			want: &limitOptions{Limit: 5},
		},
		{
			name: "number and flag",
			args: []any{float64(10), "strict"},
			want: &limitOptions{Limit: 10, Strict: true},
		},
		{
			name: "object",
			args: []any{map[string]any{"names": []any{"a", "b"}}},
			want: &limitOptions{Limit: 5, Names: []string{"a", "b"}},
		},
		{
			name:     "validator constraint",
			args:     []any{float64(0)},
			problems: []string{`options.limit: value 0 violates "gte=1"`},
		},
		{
			name:     "boolean argument",
			args:     []any{true},
			problems: []string{"options[0]: unexpected boolean true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, problems := lint.NewOptionsDecoder().Decode(rule, tt.args)
			if tt.problems != nil {
				assert.Equal(t, tt.problems, problems)
				assert.Nil(t, got)
				return
			}
			require.Empty(t, problems)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsDecoder_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, problems := lint.NewOptionsDecoder().Decode(newLimitRule("limit"), []any{"bogus"})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "bogus")
}

func TestOptionsDecoder_NotConfigurable(t *testing.T) {
	t.Parallel()

	decoder := lint.NewOptionsDecoder()
	rule := newFuncRule("plain", false, nil)

	got, problems := decoder.Decode(rule, nil)
	assert.Empty(t, problems)
	assert.Nil(t, got)

	_, problems = decoder.Decode(rule, []any{"x"})
	assert.Equal(t, []string{"options: rule takes no options, got 1"}, problems)
}
