// Package linttest checks rules against annotated source.
//
// Markup interleaves code lines with annotation lines. An annotation line
// consists of spaces followed by tildes under the failing columns and a
// bracketed message:
//
//	if (x) {
//	       ~ [Block contains only one statement; remove the curly braces.]
//
// A failure spanning lines puts bare tildes under the first and middle
// lines and the message on the last. "~nil" marks a zero-width failure.
// Messages may be placeholders defined at the end of the markup with
// "[name]: message" lines.
package linttest

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Expectation is one annotated failure.
type Expectation struct {
	Start   tsast.LineAndCharacter
	End     tsast.LineAndCharacter
	Message string
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s-%s %s", e.Start, e.End, e.Message)
}

var (
	annotationLine  = regexp.MustCompile(`^(\s*)(~nil|~+)\s*(?:\[(.*)\])?\s*$`)
	placeholderLine = regexp.MustCompile(`^\[([A-Za-z0-9_-]+)\]:\s?(.*)$`)
)

// Parse splits markup into source text and expectations.
func Parse(markup string) (string, []Expectation, error) {
	placeholders := make(map[string]string)
	var lines []string
	for _, line := range strings.Split(markup, "\n") {
		if m := placeholderLine.FindStringSubmatch(line); m != nil {
			placeholders[m[1]] = m[2]
			continue
		}
		lines = append(lines, line)
	}

	var (
		code     []string
		expected []Expectation
		open     *tsast.LineAndCharacter
	)

	for idx, line := range lines {
		m := annotationLine.FindStringSubmatchIndex(line)
		if m == nil {
			code = append(code, line)
			continue
		}
		if len(code) == 0 {
			return "", nil, fmt.Errorf("line %d: annotation before any code", idx+1)
		}

		codeLine := len(code) - 1
		startCol := m[3] - m[2]
		tildes := line[m[4]:m[5]]
		endCol := startCol + len(tildes)
		if tildes == "~nil" {
			endCol = startCol
		}
		hasMessage := m[6] >= 0
		var message string
		if hasMessage {
			message = line[m[6]:m[7]]
			if text, ok := placeholders[message]; ok {
				message = text
			}
		}

		if !hasMessage {
			if open == nil {
				open = &tsast.LineAndCharacter{Line: codeLine, Character: startCol}
			}
			continue
		}

		start := tsast.LineAndCharacter{Line: codeLine, Character: startCol}
		if open != nil {
			start = *open
			open = nil
		}
		expected = append(expected, Expectation{
			Start:   start,
			End:     tsast.LineAndCharacter{Line: codeLine, Character: endCol},
			Message: message,
		})
	}
	if open != nil {
		return "", nil, fmt.Errorf("multi-line annotation starting at %s has no message", open)
	}

	SortExpectations(expected)
	return strings.Join(code, "\n"), expected, nil
}

// SortExpectations orders expectations by start, end and message.
func SortExpectations(exps []Expectation) {
	slices.SortStableFunc(exps, func(a, b Expectation) int {
		return cmp.Or(
			cmp.Compare(a.Start.Line, b.Start.Line),
			cmp.Compare(a.Start.Character, b.Start.Character),
			cmp.Compare(a.End.Line, b.End.Line),
			cmp.Compare(a.End.Character, b.End.Character),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
