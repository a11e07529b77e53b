package lint

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/semantic"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// ErrParseFailure indicates the parser could not produce a tree at all.
var ErrParseFailure = errors.New("parse failure")

// Result contains the outcome of one lint pass over one file.
type Result struct {
	// File is the parsed file.
	File *tsast.SourceFile

	// Failures are sorted by start, end, rule name and message.
	Failures []*RuleFailure

	// RuleErrors lists rules that failed on this file. Their failures are
	// not in Failures.
	RuleErrors []*RuleError

	// ParseFailed is set when the file has syntax errors. Failures then
	// holds only the parse-error failure.
	ParseFailed bool

	// Cached is set when Failures came from a lint.Cache. File is nil then.
	Cached bool

	autoFix map[string]bool
}

// HasFailures returns true if any failures were found.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Fixable returns the failures whose fix may be applied, in sorted order.
func (r *Result) Fixable() []*RuleFailure {
	var out []*RuleFailure
	for _, f := range r.Failures {
		if f.HasFix() && r.autoFix[f.RuleName] {
			out = append(out, f)
		}
	}
	return out
}

// FixableCount returns the number of failures carrying a fix.
func (r *Result) FixableCount() int {
	count := 0
	for _, f := range r.Failures {
		if f.HasFix() {
			count++
		}
	}
	return count
}

// Linter parses a file once and runs every configured rule over it.
type Linter struct {
	// Parser parses source text into a SourceFile.
	Parser Parser

	// Rules are the configured rules per dialect family.
	Rules *RuleSet
}

// NewLinter creates a linter.
func NewLinter(parser Parser, rules *RuleSet) *Linter {
	return &Linter{Parser: parser, Rules: rules}
}

// NewLinterFor creates a linter running the same rules for every dialect.
func NewLinterFor(parser Parser, rules ...*ConfiguredRule) *Linter {
	return NewLinter(parser, &RuleSet{TypeScript: rules, JavaScript: rules})
}

// Lint parses content and runs every rule. A rule that fails or panics
// is recorded in Result.RuleErrors and the others continue. The error
// return is reserved for cancellation and parser failure.
func (l *Linter) Lint(ctx context.Context, path string, content []byte) (*Result, error) {
	logger := logging.FromContext(ctx)

	file, err := l.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &Result{File: file, autoFix: make(map[string]bool)}

	if file.HasSyntaxErrors() {
		result.ParseFailed = true
		result.Failures = []*RuleFailure{parseFailure(file)}
		logger.Debug("skipping rules for file with syntax errors", logging.FieldPath, path)
		return result, nil
	}

	var rules []*ConfiguredRule
	if l.Rules != nil {
		rules = l.Rules.For(!file.Dialect.IsTypeScript())
	}

	index := NewNodeIndex(file)
	var program *semantic.Program

	for _, cr := range rules {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		wc := NewWalkContext(ctx, file, cr.Name, cr.Options)
		wc.Severity = cr.Severity
		wc.args = cr.Args
		wc.index = index

		if cr.Rule.Metadata().RequiresTypeInfo && program == nil {
			program = semantic.Analyze(file)
		}

		if rerr := runRule(cr, wc, program); rerr != nil {
			// A cancelled walk is not the rule's fault.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, fmt.Errorf("linting cancelled: %w", ctxErr)
			}
			logger.Warn("rule failed", logging.FieldRule, cr.Name, logging.FieldPath, path, logging.FieldError, rerr.Err)
			result.RuleErrors = append(result.RuleErrors, rerr)
			continue
		}

		failures := wc.Failures()
		logger.Debug("rule finished", logging.FieldRule, cr.Name, logging.FieldPath, path, logging.FieldFailures, len(failures))
		result.Failures = append(result.Failures, failures...)
		if cr.AutoFix {
			result.autoFix[cr.Name] = true
		}
	}

	SortFailures(result.Failures)
	return result, nil
}

// runRule executes one rule, converting errors and panics to a RuleError.
func runRule(cr *ConfiguredRule, wc *WalkContext, program *semantic.Program) (rerr *RuleError) {
	defer func() {
		if r := recover(); r != nil {
			rerr = &RuleError{
				Rule:     cr.Name,
				Path:     wc.File.Path,
				Err:      fmt.Errorf("%v\n%s", r, debug.Stack()),
				Panicked: true,
			}
		}
	}()

	var err error
	if typed, ok := cr.Rule.(TypedRule); ok && cr.Rule.Metadata().RequiresTypeInfo {
		err = typed.ApplyWithProgram(wc, program)
	} else {
		err = cr.Rule.Apply(wc)
	}
	if err != nil {
		return &RuleError{Rule: cr.Name, Path: wc.File.Path, Err: err}
	}
	return nil
}

// parseFailure reports the first syntax error of file.
func parseFailure(file *tsast.SourceFile) *RuleFailure {
	se := file.SyntaxErrors[0]
	start := min(max(se.Offset, 0), file.Len())
	end := start
	if end < file.Len() {
		end++
	}
	return newFailure(file, ParseErrorRule, config.SeverityError,
		tsast.TextRange{Pos: start, End: end}, se.Message, nil)
}
