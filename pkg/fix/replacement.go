// Package fix provides replacement and fix types, conflict resolution and
// application logic for auto-fixing.
package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// Replacement replaces Length bytes starting at Start with Text.
// Replacements are immutable values.
type Replacement struct {
	Start  int    `json:"innerStart" msgpack:"s"`
	Length int    `json:"innerLength" msgpack:"l"`
	Text   string `json:"innerText" msgpack:"t"`
}

// NewReplacement builds a replacement. It panics when start or length is
// negative: malformed ranges are a rule-authoring bug.
func NewReplacement(start, length int, text string) Replacement {
	if start < 0 || length < 0 {
		panic(fmt.Sprintf("fix: invalid replacement start=%d length=%d", start, length))
	}
	return Replacement{Start: start, Length: length, Text: text}
}

// ReplaceFromTo replaces [start, end) with text.
func ReplaceFromTo(start, end int, text string) Replacement {
	return NewReplacement(start, end-start, text)
}

// DeleteText deletes length bytes starting at start.
func DeleteText(start, length int) Replacement {
	return NewReplacement(start, length, "")
}

// DeleteFromTo deletes [start, end).
func DeleteFromTo(start, end int) Replacement {
	return NewReplacement(start, end-start, "")
}

// AppendText inserts text at pos.
func AppendText(pos int, text string) Replacement {
	return NewReplacement(pos, 0, text)
}

// End returns the exclusive end offset.
func (r Replacement) End() int {
	return r.Start + r.Length
}

// IsInsertion reports whether the replacement removes nothing.
func (r Replacement) IsInsertion() bool {
	return r.Length == 0
}

// Overlaps reports whether r and other overlap as half-open intervals.
// Ranges that only touch do not overlap.
func (r Replacement) Overlaps(other Replacement) bool {
	return r.Start < other.End() && other.Start < r.End()
}

// Conflicts reports whether r and other, taken from different fixes,
// cannot both be applied in one pass. Besides overlapping ranges, two
// insertions at the same offset conflict because nothing orders their text.
func (r Replacement) Conflicts(other Replacement) bool {
	if r.IsInsertion() && other.IsInsertion() {
		return r.Start == other.Start
	}
	return r.Overlaps(other)
}

func (r Replacement) String() string {
	return fmt.Sprintf("[%d,%d)=%q", r.Start, r.End(), r.Text)
}

// Compare orders replacements by start, then by length ascending,
// so an insertion sorts before a deletion starting at the same offset.
func Compare(a, b Replacement) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.Length, b.Length)
}

// Sort sorts replacements in place by Compare. The sort is stable.
func Sort(reps []Replacement) {
	slices.SortStableFunc(reps, Compare)
}

// Fix is an ordered set of replacements applied atomically.
type Fix []Replacement

// Sorted returns a sorted copy of the fix.
func (f Fix) Sorted() Fix {
	out := slices.Clone(f)
	Sort(out)
	return out
}

// First returns the lowest replacement by Compare.
func (f Fix) First() (Replacement, bool) {
	if len(f) == 0 {
		return Replacement{}, false
	}
	return slices.MinFunc(f, Compare), true
}

// Overlaps reports whether any replacement of f overlaps any of other.
func (f Fix) Overlaps(other Fix) bool {
	for _, a := range f {
		for _, b := range other {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// Validate checks that every replacement lies within content of the given
// length and that replacements do not overlap each other.
func (f Fix) Validate(contentLen int) error {
	for _, r := range f {
		if r.Start < 0 || r.Length < 0 {
			return &ValidationError{Replacement: r, Message: "negative start or length"}
		}
		if r.End() > contentLen {
			return &ValidationError{
				Replacement: r,
				Message:     fmt.Sprintf("end offset %d exceeds content length %d", r.End(), contentLen),
			}
		}
	}

	sorted := f.Sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return &ValidationError{
				Replacement: sorted[i],
				Message:     fmt.Sprintf("overlaps %s in the same fix", sorted[i-1]),
			}
		}
	}
	return nil
}

// ValidationError describes an invalid replacement.
type ValidationError struct {
	Replacement Replacement
	Message     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid replacement %s: %s", e.Replacement, e.Message)
}

// Builder accumulates the replacements of one fix.
type Builder struct {
	reps Fix
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ReplaceRange replaces [start, end) with text.
func (b *Builder) ReplaceRange(start, end int, text string) *Builder {
	b.reps = append(b.reps, ReplaceFromTo(start, end, text))
	return b
}

// Insert inserts text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	b.reps = append(b.reps, AppendText(offset, text))
	return b
}

// Delete deletes [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	b.reps = append(b.reps, DeleteFromTo(start, end))
	return b
}

// Len returns the number of accumulated replacements.
func (b *Builder) Len() int {
	return len(b.reps)
}

// Fix returns the accumulated fix, or nil when empty.
func (b *Builder) Fix() Fix {
	if len(b.reps) == 0 {
		return nil
	}
	return slices.Clone(b.reps)
}
