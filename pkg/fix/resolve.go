package fix

import (
	"slices"
)

// SkipReason explains why a fix was not applied.
type SkipReason int

const (
	// SkipConflict means a replacement overlapped an already accepted fix.
	SkipConflict SkipReason = iota + 1

	// SkipInvalid means the fix failed validation.
	SkipInvalid
)

func (r SkipReason) String() string {
	switch r {
	case SkipConflict:
		return "conflict"
	case SkipInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Candidate is a fix proposed by one failure. ID is the caller's handle,
// typically the index of the failure in its sorted list.
type Candidate struct {
	ID  int
	Fix Fix
}

// Rejection records a candidate that was not accepted.
type Rejection struct {
	Candidate

	Reason SkipReason

	// ConflictsWith is the ID of the accepted candidate it collided with,
	// or -1 for SkipInvalid.
	ConflictsWith int

	// Err is set for SkipInvalid.
	Err error
}

// Resolution is the outcome of one conflict-resolution pass.
type Resolution struct {
	Accepted []Candidate
	Rejected []Rejection
}

// Replacements returns all accepted replacements in application order.
func (r Resolution) Replacements() []Replacement {
	var out []Replacement
	for _, c := range r.Accepted {
		out = append(out, c.Fix...)
	}
	Sort(out)
	return out
}

// Resolve selects a non-conflicting subset of candidate fixes.
//
// Candidates are ordered by the first replacement of their fix (Compare),
// ties keeping input order. Walking that order, a fix is accepted when none
// of its replacements conflicts with an accepted replacement (see
// Replacement.Conflicts); otherwise the whole fix is rejected. Fixes are
// never partially applied.
func Resolve(candidates []Candidate, contentLen int) Resolution {
	type entry struct {
		Candidate
		first Replacement
	}

	var res Resolution
	entries := make([]entry, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Fix) == 0 {
			continue
		}
		if err := c.Fix.Validate(contentLen); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Candidate: c, Reason: SkipInvalid, ConflictsWith: -1, Err: err})
			continue
		}
		first, _ := c.Fix.First()
		entries = append(entries, entry{Candidate: c, first: first})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return Compare(a.first, b.first)
	})

	// owners maps each accepted replacement to its candidate ID.
	var accepted []Replacement
	var owners []int

	for _, e := range entries {
		conflict := -1
	search:
		for _, r := range e.Fix {
			for i, a := range accepted {
				if r.Conflicts(a) {
					conflict = owners[i]
					break search
				}
			}
		}

		if conflict >= 0 {
			res.Rejected = append(res.Rejected, Rejection{Candidate: e.Candidate, Reason: SkipConflict, ConflictsWith: conflict})
			continue
		}

		res.Accepted = append(res.Accepted, e.Candidate)
		for _, r := range e.Fix {
			accepted = append(accepted, r)
			owners = append(owners, e.ID)
		}
	}

	return res
}
