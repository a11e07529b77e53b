package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// Exit codes for gotslint.
const (
	// ExitSuccess indicates successful execution with no error-severity failures.
	ExitSuccess = 0

	// ExitFailures indicates lint completed and found error-severity failures.
	ExitFailures = 1

	// ExitFixesRemain indicates fixable failures remained after the last
	// allowed fix pass.
	ExitFixesRemain = 2

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 64

	// ExitParseErrors indicates at least one file had syntax errors.
	ExitParseErrors = 65

	// ExitInternal indicates a rule or internal error.
	ExitInternal = 70

	// ExitIO indicates file I/O errors.
	ExitIO = 74
)

// ExitError carries the process exit code for an error. Err is nil when
// the code only signals the lint outcome and everything was reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Silent reports whether the error has already been reported to the user.
func (e *ExitError) Silent() bool {
	return e.Err == nil
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode maps an error returned by a command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var configErr *lint.ConfigError
	if errors.As(err, &configErr) {
		return ExitUsage
	}
	return ExitInternal
}

// ExitCodeFromResult determines the exit code of a lint run. When several
// conditions hold, the most severe wins: rule errors, then I/O errors,
// then syntax errors, then remaining fixes, then failures.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	stats := result.Stats

	switch {
	case stats.RuleErrors > 0:
		return ExitInternal
	case len(result.Errors()) > 0:
		return ExitIO
	case stats.FilesParseFailed > 0:
		return ExitParseErrors
	case stats.FilesFixesRemain > 0:
		return ExitFixesRemain
	case result.HasFailures():
		return ExitFailures
	default:
		return ExitSuccess
	}
}
