package tsast

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// bom is the UTF-8 encoding of U+FEFF.
var bom = []byte{0xEF, 0xBB, 0xBF}

// LineInfo describes one line of a file in byte offsets.
type LineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int

	// BreakOffset is the offset of the line break ("\n", "\r\n" or "\r"),
	// or the end of the content for the last line.
	BreakOffset int

	// EndOffset is the offset just past the line break.
	EndOffset int
}

// LineMap converts between absolute byte offsets and 0-based
// line/character pairs. Characters are counted in UTF-16 code units.
type LineMap struct {
	content []byte
	lines   []LineInfo
	bomLen  int
}

// NewLineMap indexes content. The content slice must not be modified afterwards.
func NewLineMap(content []byte) *LineMap {
	lm := &LineMap{content: content}
	if len(content) >= len(bom) && content[0] == bom[0] && content[1] == bom[1] && content[2] == bom[2] {
		lm.bomLen = len(bom)
	}
	lm.lines = buildLines(content)
	return lm
}

func buildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, len(content)/32+1)
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\n':
			lines = append(lines, LineInfo{StartOffset: lineStart, BreakOffset: idx, EndOffset: idx + 1})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			lines = append(lines, LineInfo{StartOffset: lineStart, BreakOffset: idx, EndOffset: end})
			lineStart = end
			idx = end - 1
		}
	}

	lines = append(lines, LineInfo{StartOffset: lineStart, BreakOffset: len(content), EndOffset: len(content)})
	return lines
}

// HasBOM reports whether the content starts with a byte-order mark.
func (m *LineMap) HasBOM() bool {
	return m.bomLen > 0
}

// LineCount returns the number of lines. Empty content has one empty line.
func (m *LineMap) LineCount() int {
	return len(m.lines)
}

// Line returns the metadata of a 0-based line.
func (m *LineMap) Line(line int) LineInfo {
	if line < 0 || line >= len(m.lines) {
		panic(fmt.Sprintf("tsast: line %d out of range [0,%d)", line, len(m.lines)))
	}
	return m.lines[line]
}

// Lines returns all line metadata. The slice must not be modified.
func (m *LineMap) Lines() []LineInfo {
	return m.lines
}

// LineOf returns the 0-based line containing offset.
func (m *LineMap) LineOf(offset int) int {
	m.checkOffset(offset)
	idx := sort.Search(len(m.lines), func(i int) bool {
		return m.lines[i].EndOffset > offset
	})
	if idx >= len(m.lines) {
		idx = len(m.lines) - 1
	}
	return idx
}

// LineAndCharacterOf converts an absolute offset to a 0-based position.
// A leading byte-order mark is not counted on line 0.
func (m *LineMap) LineAndCharacterOf(offset int) LineAndCharacter {
	line := m.LineOf(offset)
	start := m.contentStart(line)
	if offset < start {
		// Inside the byte-order mark.
		return LineAndCharacter{Line: line, Character: 0}
	}
	return LineAndCharacter{Line: line, Character: utf16Len(m.content[start:offset])}
}

// OffsetOf converts a 0-based position to an absolute offset.
// The character may point at the line break but not past it.
func (m *LineMap) OffsetOf(pos LineAndCharacter) int {
	info := m.Line(pos.Line)
	offset := m.contentStart(pos.Line)
	remaining := pos.Character
	for remaining > 0 {
		if offset >= info.BreakOffset {
			panic(fmt.Sprintf("tsast: character %d past end of line %d", pos.Character, pos.Line))
		}
		r, size := utf8.DecodeRune(m.content[offset:])
		offset += size
		remaining -= runeUnits(r)
	}
	return offset
}

// LineText returns the text of a 0-based line without its line break.
// The byte-order mark is excluded from line 0.
func (m *LineMap) LineText(line int) string {
	info := m.Line(line)
	return string(m.content[m.contentStart(line):info.BreakOffset])
}

// LineLength returns the length of a line in UTF-16 code units,
// excluding the line break and any byte-order mark.
func (m *LineMap) LineLength(line int) int {
	info := m.Line(line)
	return utf16Len(m.content[m.contentStart(line):info.BreakOffset])
}

func (m *LineMap) contentStart(line int) int {
	start := m.lines[line].StartOffset
	if line == 0 {
		start += m.bomLen
	}
	return start
}

func (m *LineMap) checkOffset(offset int) {
	if offset < 0 || offset > len(m.content) {
		panic(fmt.Sprintf("tsast: offset %d out of range [0,%d]", offset, len(m.content)))
	}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
