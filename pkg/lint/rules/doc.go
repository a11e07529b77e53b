// Package rules provides the built-in lint rules for gotslint.
//
// # Rule Domains
//
//   - Formatting:
//
//   - trailing-comma: trailing commas in multiline and single-line lists
//
//   - no-consecutive-blank-lines: runs of blank lines outside template literals
//
//   - no-trailing-whitespace: whitespace at the end of a line
//
//   - semicolon: statement and member terminators
//
//   - quotemark: quote character of string literals
//
//   - eofline: line break at the end of the file
//
//   - indent: tabs or spaces for indentation
//
//   - Maintainability:
//
//   - max-line-length: line length in UTF-16 code units
//
//   - prefer-const: let bindings that are never reassigned
//
//   - Functionality:
//
//   - curly: braces around if, for, do and while bodies
//
//   - no-var-keyword: var declarations
//
//   - triple-equals: loose equality operators
//
//   - no-debugger: debugger statements
//
//   - no-console: calls to console methods
//
//   - TypeScript:
//
//   - no-unused-variable: declarations that are never read
//
// # Type Information
//
// prefer-const and no-unused-variable implement lint.TypedRule and consume
// the semantic.Program the linter builds once per pass.
//
// # Presets
//
// Presets are configuration fragments named in a configuration's extends
// list:
//
//   - gotslint:recommended: the rules most projects agree on
//   - gotslint:all: every built-in rule with its default options
//
// Use PresetByName or Presets to access preset definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry from init via RegisterAll.
// Each rule embeds lint.BaseRule; configurable rules also implement
// lint.Configurable so the loader can decode their arguments.
package rules
