package fix

import (
	"bytes"
	"fmt"
	"strings"

	"fortio.org/safecast"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Diff is a unified line diff between original and fixed content.
type Diff struct {
	Path      string
	File      *godiff.FileDiff
	Additions int
	Deletions int
}

type opKind byte

const (
	opEqual  opKind = ' '
	opDelete opKind = '-'
	opInsert opKind = '+'
)

// line is one line of content. Only the last line of a file can lack
// its newline, and it differs from the same text with one.
type line struct {
	text  string
	noEOL bool
}

type lineOp struct {
	kind opKind
	line
}

// GenerateDiff returns the unified diff between original and modified,
// or nil when they are equal.
func GenerateDiff(path string, original, modified []byte) (*Diff, error) {
	if bytes.Equal(original, modified) {
		return nil, nil
	}

	ops := diffLines(splitLines(original), splitLines(modified))
	hunks, err := buildHunks(ops)
	if err != nil {
		return nil, err
	}

	clean := strings.TrimPrefix(path, "/")
	d := &Diff{
		Path: path,
		File: &godiff.FileDiff{
			OrigName: "a/" + clean,
			NewName:  "b/" + clean,
			Extended: []string{fmt.Sprintf("diff --git a/%s b/%s", clean, clean)},
			Hunks:    hunks,
		},
	}
	for _, op := range ops {
		switch op.kind {
		case opInsert:
			d.Additions++
		case opDelete:
			d.Deletions++
		case opEqual:
		}
	}
	return d, nil
}

// String renders the diff in unified format, including the git header.
func (d *Diff) String() string {
	if d == nil || d.File == nil {
		return ""
	}
	out, err := godiff.PrintFileDiff(d.File)
	if err != nil {
		return ""
	}
	return string(out)
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && d.File != nil && len(d.File.Hunks) > 0
}

// splitLines splits content on "\n", dropping the empty tail after a
// final newline and marking the last line when that newline is missing.
func splitLines(content []byte) []line {
	if len(content) == 0 {
		return nil
	}
	texts := strings.Split(string(content), "\n")
	missingEOL := texts[len(texts)-1] != ""
	if !missingEOL {
		texts = texts[:len(texts)-1]
	}
	lines := make([]line, len(texts))
	for i, text := range texts {
		lines[i] = line{text: text}
	}
	lines[len(lines)-1].noEOL = missingEOL
	return lines
}

// diffLines computes a minimal edit script using a longest common
// subsequence table over suffixes.
func diffLines(orig, mod []line) []lineOp {
	n, m := len(orig), len(mod)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]lineOp, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && orig[i] == mod[j]:
			ops = append(ops, lineOp{opEqual, orig[i]})
			i++
			j++
		case j >= m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, lineOp{opDelete, orig[i]})
			i++
		default:
			ops = append(ops, lineOp{opInsert, mod[j]})
			j++
		}
	}
	return ops
}

// buildHunks groups changes separated by more than 2*contextLines
// unchanged lines into separate hunks.
func buildHunks(ops []lineOp) ([]*godiff.Hunk, error) {
	var hunks []*godiff.Hunk

	idx := 0
	for idx < len(ops) {
		for idx < len(ops) && ops[idx].kind == opEqual {
			idx++
		}
		if idx == len(ops) {
			break
		}

		start := max(idx-contextLines, 0)
		end := idx
		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == opEqual {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				end = min(end+contextLines, len(ops))
				break
			}
			end = run
		}

		hunk, err := makeHunk(ops, start, end)
		if err != nil {
			return nil, err
		}
		hunks = append(hunks, hunk)
		idx = end
	}
	return hunks, nil
}

func makeHunk(ops []lineOp, start, end int) (*godiff.Hunk, error) {
	origLine, newLine := 1, 1
	for _, op := range ops[:start] {
		if op.kind != opInsert {
			origLine++
		}
		if op.kind != opDelete {
			newLine++
		}
	}

	var body bytes.Buffer
	var origNoNewlineAt int
	origCount, newCount := 0, 0
	for _, op := range ops[start:end] {
		body.WriteByte(byte(op.kind))
		body.WriteString(op.text)
		// An unterminated line is always the last of its side, so an
		// unterminated insert or context line ends the body. go-diff prints
		// the marker after a body without a trailing newline.
		switch {
		case op.noEOL && op.kind == opDelete:
			body.WriteByte('\n')
			origNoNewlineAt = body.Len()
		case !op.noEOL:
			body.WriteByte('\n')
		}
		if op.kind != opInsert {
			origCount++
		}
		if op.kind != opDelete {
			newCount++
		}
	}

	// Empty sides start at the line before, per unified diff convention.
	if origCount == 0 {
		origLine--
	}
	if newCount == 0 {
		newLine--
	}

	fields := [5]int{origLine, origCount, newLine, newCount, origNoNewlineAt}
	var conv [5]int32
	for i, v := range fields {
		c, err := safecast.Conv[int32](v)
		if err != nil {
			return nil, fmt.Errorf("diff hunk too large: %w", err)
		}
		conv[i] = c
	}

	return &godiff.Hunk{
		OrigStartLine:   conv[0],
		OrigLines:       conv[1],
		NewStartLine:    conv[2],
		NewLines:        conv[3],
		OrigNoNewlineAt: conv[4],
		Body:            body.Bytes(),
	}, nil
}
