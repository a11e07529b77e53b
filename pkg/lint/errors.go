package lint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFixesRemain is returned by Pipeline.Fix when the pass limit is
// reached while fixable failures remain.
var ErrFixesRemain = errors.New("fixes remain")

// ConfigError reports every problem found while loading a configuration.
type ConfigError struct {
	// Source is the configuration file, if known.
	Source string

	// UnknownRules are names that resolved to no implementation.
	UnknownRules []string

	// Problems are all other violations, one per entry.
	Problems []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.UnknownRules) > 0 {
		parts = append(parts, "Could not find implementations for the following rules specified in the configuration: "+
			strings.Join(e.UnknownRules, ", "))
	}
	parts = append(parts, e.Problems...)

	msg := strings.Join(parts, "\n")
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

// Empty reports whether no problem was recorded.
func (e *ConfigError) Empty() bool {
	return len(e.UnknownRules) == 0 && len(e.Problems) == 0
}

func (e *ConfigError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// RuleError records a rule that failed while linting one file.
type RuleError struct {
	Rule string
	Path string
	Err  error

	// Panicked is set when the rule panicked rather than returning an error.
	Panicked bool
}

func (e *RuleError) Error() string {
	if e.Panicked {
		return fmt.Sprintf("rule %s panicked on %s: %v", e.Rule, e.Path, e.Err)
	}
	return fmt.Sprintf("rule %s failed on %s: %v", e.Rule, e.Path, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
