package lint_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

func failureAt(rule string, start, end int, msg string) *lint.RuleFailure {
	return &lint.RuleFailure{RuleName: rule, Path: "a.ts", Range: tsast.TextRange{Pos: start, End: end}, Message: msg}
}

func TestRuleFailure_Equal(t *testing.T) {
	t.Parallel()

	a := failureAt("curly", 1, 4, "msg")
	b := failureAt("curly", 1, 4, "msg")
	b.Severity = "warning"

	assert.True(t, a.Equal(b), "severity is not part of equality")
	assert.False(t, a.Equal(failureAt("curly", 1, 5, "msg")))
	assert.False(t, a.Equal(failureAt("semicolon", 1, 4, "msg")))
	assert.False(t, a.Equal(failureAt("curly", 1, 4, "other")))
	assert.False(t, a.Equal(nil))
}

func TestSortFailures(t *testing.T) {
	t.Parallel()

	failures := []*lint.RuleFailure{
		failureAt("b", 5, 9, "x"),
		failureAt("a", 5, 9, "x"),
		failureAt("z", 5, 6, "x"),
		failureAt("a", 0, 20, "x"),
		failureAt("a", 5, 9, "w"),
	}
	lint.SortFailures(failures)

	var got []string
	for _, f := range failures {
		got = append(got, f.RuleName+":"+f.Message)
	}
	assert.Equal(t, []string{"a:x", "z:x", "a:w", "a:x", "b:x"}, got)

	for i := 1; i < len(failures); i++ {
		prev, cur := failures[i-1], failures[i]
		assert.LessOrEqual(t, prev.Range.Pos, cur.Range.Pos)
		if prev.Range.Pos == cur.Range.Pos {
			assert.LessOrEqual(t, prev.Range.End, cur.Range.End)
		}
	}
}

func TestRuleFailure_ToJSON(t *testing.T) {
	t.Parallel()

	f := failureAt("semicolon", 9, 9, "Missing semicolon")
	f.Severity = "warning"
	f.Start = tsast.LineAndCharacter{Line: 0, Character: 9}
	f.End = f.Start
	f.Fix = fix.Fix{fix.AppendText(9, ";")}

	data, err := json.Marshal(f.ToJSON())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "a.ts",
		"ruleName": "semicolon",
		"ruleSeverity": "WARNING",
		"failure": "Missing semicolon",
		"startPosition": {"line": 0, "character": 9, "position": 9},
		"endPosition": {"line": 0, "character": 9, "position": 9},
		"fix": [{"innerStart": 9, "innerLength": 0, "innerText": ";"}]
	}`, string(data))

	noFix := failureAt("no-debugger", 0, 9, "Use of debugger statements is forbidden")
	data, err = json.Marshal(noFix.ToJSON())
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"fix"`)
	assert.Contains(t, string(data), `"ruleSeverity":"ERROR"`)
}
