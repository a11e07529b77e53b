package lint

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// ParseErrorRule is the rule name of failures produced for syntax errors.
const ParseErrorRule = "parse-error"

// RuleFailure is one reported problem. It is immutable once created.
type RuleFailure struct {
	RuleName string
	Severity config.Severity
	Path     string
	Message  string

	// Range is the half-open byte range the failure covers.
	Range tsast.TextRange

	// Start and End are the resolved 0-based positions of Range.
	Start tsast.LineAndCharacter
	End   tsast.LineAndCharacter

	// Fix is nil when the failure cannot be fixed automatically.
	Fix fix.Fix
}

// newFailure resolves positions against file.
func newFailure(file *tsast.SourceFile, rule string, sev config.Severity, r tsast.TextRange, msg string, f fix.Fix) *RuleFailure {
	return &RuleFailure{
		RuleName: rule,
		Severity: sev,
		Path:     file.Path,
		Message:  msg,
		Range:    r,
		Start:    file.LineAndCharacterOf(r.Pos),
		End:      file.LineAndCharacterOf(r.End),
		Fix:      f,
	}
}

// HasFix reports whether the failure carries a fix.
func (f *RuleFailure) HasFix() bool {
	return len(f.Fix) > 0
}

// Equal compares range, message and rule name.
func (f *RuleFailure) Equal(other *RuleFailure) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Range == other.Range && f.Message == other.Message && f.RuleName == other.RuleName
}

// String formats the failure as "path:line:col rule: message".
func (f *RuleFailure) String() string {
	return fmt.Sprintf("%s:%s %s: %s", f.Path, f.Start, f.RuleName, f.Message)
}

// CompareFailures orders failures by path, start, end, rule name and message.
func CompareFailures(a, b *RuleFailure) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Range.Pos, b.Range.Pos),
		cmp.Compare(a.Range.End, b.Range.End),
		cmp.Compare(a.RuleName, b.RuleName),
		cmp.Compare(a.Message, b.Message),
	)
}

// SortFailures sorts failures in place with CompareFailures. The sort is
// stable so identical keys keep rule execution order.
func SortFailures(failures []*RuleFailure) {
	slices.SortStableFunc(failures, CompareFailures)
}

// FailurePosition is a resolved position in the interchange format.
// Position is the byte offset.
type FailurePosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Position  int `json:"position"`
}

// FailureJSON is the interchange shape of a failure, independent of the
// output format.
type FailureJSON struct {
	Name          string          `json:"name"`
	RuleName      string          `json:"ruleName"`
	RuleSeverity  string          `json:"ruleSeverity"`
	Failure       string          `json:"failure"`
	StartPosition FailurePosition `json:"startPosition"`
	EndPosition   FailurePosition `json:"endPosition"`
	Fix           fix.Fix         `json:"fix,omitempty"`
}

// ToJSON converts the failure to its interchange shape.
func (f *RuleFailure) ToJSON() FailureJSON {
	sev := f.Severity
	if sev == "" {
		sev = config.SeverityError
	}
	return FailureJSON{
		Name:          f.Path,
		RuleName:      f.RuleName,
		RuleSeverity:  strings.ToUpper(string(sev)),
		Failure:       f.Message,
		StartPosition: FailurePosition{Line: f.Start.Line, Character: f.Start.Character, Position: f.Range.Pos},
		EndPosition:   FailurePosition{Line: f.End.Line, Character: f.End.Character, Position: f.Range.End},
		Fix:           f.Fix,
	}
}
