package tsast

import "fmt"

// LineAndCharacter is a 0-based position in a file.
type LineAndCharacter struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// String formats the position 1-based, the way editors display it.
func (p LineAndCharacter) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// Before reports whether p sorts before other.
func (p LineAndCharacter) Before(other LineAndCharacter) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// TextRange is a half-open byte interval [Pos, End).
type TextRange struct {
	Pos int `json:"pos"`
	End int `json:"end"`
}

// NewTextRange builds a range and panics when pos > end or pos < 0.
func NewTextRange(pos, end int) TextRange {
	if pos < 0 || end < pos {
		panic(fmt.Sprintf("tsast: invalid range [%d,%d)", pos, end))
	}
	return TextRange{Pos: pos, End: end}
}

// Width returns End - Pos.
func (r TextRange) Width() int {
	return r.End - r.Pos
}

// IsEmpty reports whether the range has zero width.
func (r TextRange) IsEmpty() bool {
	return r.Pos == r.End
}

// Contains reports whether offset is within [Pos, End).
func (r TextRange) Contains(offset int) bool {
	return offset >= r.Pos && offset < r.End
}

// Overlaps reports whether two half-open ranges share at least one offset.
// Touching ranges do not overlap.
func (r TextRange) Overlaps(other TextRange) bool {
	return r.Pos < other.End && other.Pos < r.End
}

// Valid reports whether the range lies within content of the given length.
func (r TextRange) Valid(length int) bool {
	return r.Pos >= 0 && r.Pos <= r.End && r.End <= length
}
