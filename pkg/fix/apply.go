package fix

import (
	"bytes"
	"slices"
)

// Apply applies non-overlapping replacements to content in one rewrite and
// returns new content. The input slice is not modified. Replacements are
// spliced in Compare order; equal keys keep their input order.
func Apply(content []byte, reps []Replacement) []byte {
	if len(reps) == 0 {
		return slices.Clone(content)
	}

	sorted := slices.Clone(reps)
	Sort(sorted)

	delta := 0
	for _, r := range sorted {
		delta += len(r.Text) - r.Length
	}

	var out bytes.Buffer
	out.Grow(max(len(content)+delta, 0))

	cursor := 0
	for _, r := range sorted {
		out.Write(content[cursor:r.Start])
		out.WriteString(r.Text)
		cursor = r.End()
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// ApplyFixes flattens fixes in order and applies them with Apply.
func ApplyFixes(content []byte, fixes []Fix) []byte {
	var reps []Replacement
	for _, f := range fixes {
		reps = append(reps, f...)
	}
	return Apply(content, reps)
}
