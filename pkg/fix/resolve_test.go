package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/fix"
)

func ids(cs []fix.Candidate) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestResolve_TouchingFixesAreBothAccepted(t *testing.T) {
	t.Parallel()

	res := fix.Resolve([]fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.DeleteFromTo(0, 3)}},
		{ID: 1, Fix: fix.Fix{fix.DeleteFromTo(3, 6)}},
	}, 10)

	assert.Equal(t, []int{0, 1}, ids(res.Accepted))
	assert.Empty(t, res.Rejected)
}

func TestResolve_OverlapRejectsWholeFix(t *testing.T) {
	t.Parallel()

	// Fix 1 has two replacements; only its second overlaps fix 0.
	res := fix.Resolve([]fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.ReplaceFromTo(10, 14, "x")}},
		{ID: 1, Fix: fix.Fix{fix.DeleteFromTo(2, 3), fix.AppendText(12, "}")}},
	}, 20)

	// Fix 1 starts earlier, so it wins and fix 0 is rejected.
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, 1, res.Accepted[0].ID)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 0, res.Rejected[0].ID)
	assert.Equal(t, fix.SkipConflict, res.Rejected[0].Reason)
	assert.Equal(t, 1, res.Rejected[0].ConflictsWith)

	out := fix.Apply([]byte("0123456789abcdefghij"), res.Replacements())
	assert.Equal(t, "013456789ab}cdefghij", string(out))
}

func TestResolve_Atomicity(t *testing.T) {
	t.Parallel()

	content := []byte("if (x) { y(); }")
	res := fix.Resolve([]fix.Candidate{
		// Remove both braces as one fix.
		{ID: 0, Fix: fix.Fix{fix.DeleteFromTo(7, 9), fix.DeleteFromTo(13, 15)}},
		// Conflicts with the closing brace deletion only.
		{ID: 1, Fix: fix.Fix{fix.ReplaceFromTo(14, 15, "};")}},
	}, len(content))

	assert.Equal(t, []int{0}, ids(res.Accepted))
	out := fix.Apply(content, res.Replacements())
	assert.Equal(t, "if (x) y();", string(out))
}

func TestResolve_NoAcceptedPairOverlaps(t *testing.T) {
	t.Parallel()

	candidates := []fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.DeleteFromTo(0, 5)}},
		{ID: 1, Fix: fix.Fix{fix.DeleteFromTo(4, 8)}},
		{ID: 2, Fix: fix.Fix{fix.AppendText(5, "a"), fix.DeleteFromTo(9, 10)}},
		{ID: 3, Fix: fix.Fix{fix.DeleteFromTo(9, 12)}},
		{ID: 4, Fix: fix.Fix{fix.AppendText(12, "b")}},
		{ID: 5, Fix: fix.Fix{fix.AppendText(12, "c")}},
	}
	res := fix.Resolve(candidates, 20)

	for i, a := range res.Accepted {
		for _, b := range res.Accepted[i+1:] {
			assert.False(t, a.Fix.Overlaps(b.Fix), "accepted fixes %d and %d overlap", a.ID, b.ID)
		}
	}
	// 5 inserts at the same offset as 4 and waits for the next pass.
	assert.Equal(t, []int{0, 2, 4}, ids(res.Accepted))
	assert.Equal(t, len(candidates), len(res.Accepted)+len(res.Rejected))
}

func TestResolve_SameOffsetInsertionsConflict(t *testing.T) {
	t.Parallel()

	// "const a = 1": a missing semicolon and a missing final newline both
	// insert at the end of the file.
	content := []byte("const a = 1")
	res := fix.Resolve([]fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.AppendText(11, ";")}},
		{ID: 1, Fix: fix.Fix{fix.AppendText(11, "\n")}},
	}, len(content))

	assert.Equal(t, []int{0}, ids(res.Accepted))
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, fix.SkipConflict, res.Rejected[0].Reason)
	assert.Equal(t, 0, res.Rejected[0].ConflictsWith)
	assert.Equal(t, "const a = 1;", string(fix.Apply(content, res.Replacements())))

	// Insertions at one offset inside a single fix stay together.
	res = fix.Resolve([]fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.AppendText(3, "("), fix.AppendText(3, ")")}},
	}, len(content))
	assert.Equal(t, []int{0}, ids(res.Accepted))
}

func TestResolve_InvalidFixIsRejected(t *testing.T) {
	t.Parallel()

	res := fix.Resolve([]fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.DeleteFromTo(0, 50)}},
		{ID: 1, Fix: fix.Fix{fix.DeleteFromTo(0, 1)}},
	}, 10)

	assert.Equal(t, []int{1}, ids(res.Accepted))
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, fix.SkipInvalid, res.Rejected[0].Reason)
	assert.Error(t, res.Rejected[0].Err)
	assert.Equal(t, "invalid", res.Rejected[0].Reason.String())
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	candidates := []fix.Candidate{
		{ID: 0, Fix: fix.Fix{fix.ReplaceFromTo(3, 6, "x")}},
		{ID: 1, Fix: fix.Fix{fix.DeleteFromTo(3, 4)}},
		{ID: 2, Fix: fix.Fix{fix.AppendText(3, "y")}},
	}

	first := fix.Resolve(candidates, 10)
	for range 20 {
		assert.Equal(t, first, fix.Resolve(candidates, 10))
	}
	// Insertion sorts first, then the shorter deletion.
	assert.Equal(t, []int{2, 1}, ids(first.Accepted))
}
