package version

import "strings"

// A RangeSet is an immutable union of Ranges.
// It holds each distinct Range once, in the order first added.
type RangeSet struct {
	ranges []Range
}

// NewRangeSet constructs a RangeSet from ranges, discarding duplicates.
func NewRangeSet(ranges ...Range) RangeSet {
	return RangeSet{}.add(ranges...)
}

// Contains reports whether any Range in rs contains v.
// The empty RangeSet contains nothing.
func (rs RangeSet) Contains(v Version) bool {
	for _, r := range rs.ranges {
		if r.Contains(v) {
			return true
		}
	}

	return false
}

// Len is the number of distinct Ranges in rs.
func (rs RangeSet) Len() int { return len(rs.ranges) }

// Ranges returns a copy of the Ranges in rs.
func (rs RangeSet) Ranges() []Range {
	out := make([]Range, len(rs.ranges))
	copy(out, rs.ranges)
	return out
}

// Union constructs a RangeSet holding the Ranges of both rs and other.
func (rs RangeSet) Union(other RangeSet) RangeSet {
	return rs.add(other.ranges...)
}

// String formats rs as a bracketed, comma-separated list of its Ranges.
func (rs RangeSet) String() string {
	strs := make([]string, len(rs.ranges))
	for i, r := range rs.ranges {
		strs[i] = r.String()
	}

	return "{" + strings.Join(strs, ", ") + "}"
}

// add never mutates rs.ranges; it always copies into a fresh slice.
func (rs RangeSet) add(ranges ...Range) RangeSet {
	out := make([]Range, 0, len(rs.ranges)+len(ranges))
	seen := make(map[Range]struct{}, cap(out))
	for _, list := range [][]Range{rs.ranges, ranges} {
		for _, r := range list {
			if _, ok := seen[r]; ok {
				continue
			}

			seen[r] = struct{}{}
			out = append(out, r)
		}
	}

	return RangeSet{ranges: out}
}
