package lint

import (
	"bytes"
	"sort"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Line helpers. Line numbers are 0-based.

// LineContent returns the text of a line without its line break.
// Returns nil if the line number is out of range.
func LineContent(file *tsast.SourceFile, line int) []byte {
	if file == nil || line < 0 || line >= file.Lines.LineCount() {
		return nil
	}
	info := file.Lines.Line(line)
	return file.Content[info.StartOffset:info.BreakOffset]
}

// IsBlankLine returns true if the line contains only whitespace.
func IsBlankLine(file *tsast.SourceFile, line int) bool {
	return len(bytes.TrimSpace(LineContent(file, line))) == 0
}

// TrailingWhitespaceRange returns the byte range of trailing spaces and
// tabs on a line. Returns (-1, -1) if there are none.
func TrailingWhitespaceRange(file *tsast.SourceFile, line int) (int, int) {
	content := LineContent(file, line)
	if len(content) == 0 {
		return -1, -1
	}
	info := file.Lines.Line(line)

	end := info.BreakOffset
	start := end
	for idx := len(content) - 1; idx >= 0; idx-- {
		if content[idx] != ' ' && content[idx] != '\t' {
			break
		}
		start = info.StartOffset + idx
	}
	if start == end {
		return -1, -1
	}
	return start, end
}

// LeadingWhitespace returns the indentation of a line.
func LeadingWhitespace(file *tsast.SourceFile, line int) []byte {
	content := LineContent(file, line)
	idx := 0
	for idx < len(content) && (content[idx] == ' ' || content[idx] == '\t') {
		idx++
	}
	return content[:idx]
}

// RangeSet is a sorted list of non-nested ranges with offset lookup.
type RangeSet []tsast.TextRange

// NewRangeSet sorts ranges by start.
func NewRangeSet(ranges []tsast.TextRange) RangeSet {
	rs := RangeSet(ranges)
	sort.Slice(rs, func(i, j int) bool { return rs[i].Pos < rs[j].Pos })
	return rs
}

// Find returns the range containing offset.
func (rs RangeSet) Find(offset int) (tsast.TextRange, bool) {
	idx := sort.Search(len(rs), func(i int) bool { return rs[i].End > offset })
	if idx < len(rs) && rs[idx].Pos <= offset {
		return rs[idx], true
	}
	return tsast.TextRange{}, false
}

// Contains reports whether offset falls inside any range.
func (rs RangeSet) Contains(offset int) bool {
	_, ok := rs.Find(offset)
	return ok
}

// Overlaps reports whether [start, end) intersects any range.
func (rs RangeSet) Overlaps(start, end int) bool {
	idx := sort.Search(len(rs), func(i int) bool { return rs[i].End > start })
	return idx < len(rs) && rs[idx].Pos < end
}

// StringRanges returns the ranges of string-like tokens: string literals,
// template literals and regular expressions.
func StringRanges(file *tsast.SourceFile) RangeSet {
	return NewRangeSet(file.RangesOfKind(tsast.KindString, tsast.KindTemplateString, tsast.KindRegex))
}

// TemplateRanges returns the ranges of template literals.
func TemplateRanges(file *tsast.SourceFile) RangeSet {
	return NewRangeSet(file.RangesOfKind(tsast.KindTemplateString))
}

// CommentRanges returns the ranges of comments.
func CommentRanges(file *tsast.SourceFile) RangeSet {
	return NewRangeSet(file.RangesOfKind(tsast.KindComment))
}
