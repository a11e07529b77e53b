package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yaklabco/gotslint/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.curly.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every error into one, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// newValidator builds a validator that reports fields by their config
// file key.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"yaml", "koanf"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// Validate checks a resolved configuration and collects every problem.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := newValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			result.addError("", nil, "%v", err)
		}
		for _, fe := range verrs {
			result.addError(fieldPath(fe), fe.Value(), "value %v violates %q", fe.Value(), constraint(fe))
		}
	}

	validateRules("rules", cfg.Rules, result)
	validateRules("jsRules", cfg.JSRules, result)
	validateRulesDirectories(cfg, result)
	validateExcludePatterns(cfg, result)

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "Config.linterOptions.exclude[0]"; drop the type name.
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func validateRules(key string, rules map[string]config.RuleConfig, result *ValidationResult) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		entry := rules[name]
		if strings.TrimSpace(name) == "" {
			result.addError(key, name, "rule name is empty")
			continue
		}
		switch entry.Severity {
		case "", config.SeverityError, config.SeverityWarning, config.SeverityOff:
		default:
			result.addError(key+"."+name+".severity", entry.Severity,
				"invalid severity %q; must be one of: error, warning, off", entry.Severity)
		}
	}
}

func validateRulesDirectories(cfg *config.Config, result *ValidationResult) {
	for i, dir := range cfg.RulesDirectory {
		info, err := os.Stat(dir)
		switch {
		case err != nil:
			result.addError(fmt.Sprintf("rulesDirectory[%d]", i), dir, "cannot read rules directory: %v", err)
		case !info.IsDir():
			result.addError(fmt.Sprintf("rulesDirectory[%d]", i), dir, "%s is not a directory", dir)
		}
	}
}

// validateExcludePatterns checks that every segment of every exclude
// glob is well formed.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.LinterOptions.Exclude {
		for _, segment := range strings.Split(filepath.ToSlash(pattern), "/") {
			if segment == "**" {
				continue
			}
			if _, err := filepath.Match(segment, ""); err != nil {
				result.addError(fmt.Sprintf("linterOptions.exclude[%d]", i), pattern, "invalid glob pattern: %v", err)
				break
			}
		}
	}
}
