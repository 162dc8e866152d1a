package version

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// A BoundType describes one side of a [Range].
type BoundType int

const (
	Unbounded BoundType = iota
	Inclusive
	Exclusive
)

var _ switchback.Enumerable = Unbounded

func (bt BoundType) String() string {
	switch bt {
	case Unbounded:
		return "unbounded"
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("BoundType(%d)", int(bt))
	}
}

func (bt BoundType) Valid() error {
	switch bt {
	case Unbounded, Inclusive, Exclusive:
		return nil
	default:
		return fmt.Errorf("%w: %s", switchback.ErrNotValid, bt)
	}
}

// A Range is a contiguous set of versions.
// Each side is independently inclusive, exclusive, or unbounded.
//
// Ranges are comparable and so can be used as map keys.
// The zero Range is unbounded on both sides and contains every version.
type Range struct {
	lower     Version
	lowerType BoundType
	upper     Version
	upperType BoundType
}

// Singleton constructs the Range containing only v.
func Singleton(v Version) Range {
	return Range{lower: v, lowerType: Inclusive, upper: v, upperType: Inclusive}
}

// AtLeast constructs the Range of every version greater than or equal to v.
func AtLeast(v Version) Range { return Range{lower: v, lowerType: Inclusive} }

// GreaterThan constructs the Range of every version strictly greater than v.
func GreaterThan(v Version) Range { return Range{lower: v, lowerType: Exclusive} }

// AtMost constructs the Range of every version less than or equal to v.
func AtMost(v Version) Range { return Range{upper: v, upperType: Inclusive} }

// LessThan constructs the Range of every version strictly less than v.
func LessThan(v Version) Range { return Range{upper: v, upperType: Exclusive} }

// Between constructs the Range from lower to upper with the given bound types.
//
// Between returns ErrBadRange if either bound type is not Inclusive or Exclusive,
// if lower sorts after upper,
// or if lower equals upper and both sides are Exclusive.
// Equal bounds with one Exclusive side describe an empty Range, which is allowed.
func Between(lower Version, lt BoundType, upper Version, ut BoundType) (Range, error) {
	if (lt != Inclusive && lt != Exclusive) || (ut != Inclusive && ut != Exclusive) {
		return Range{}, fmt.Errorf("%w: bounds must be inclusive or exclusive, have %s and %s", ErrBadRange, lt, ut)
	}

	switch c := lower.Compare(upper); {
	case c > 0:
		return Range{}, fmt.Errorf("%w: %s is after %s", ErrBadRange, lower, upper)
	case c == 0 && lt == Exclusive && ut == Exclusive:
		return Range{}, fmt.Errorf("%w: (%s..%s) can never be satisfied", ErrBadRange, lower, upper)
	}

	return Range{lower: lower, lowerType: lt, upper: upper, upperType: ut}, nil
}

// Lower returns the lower bound of r and its type.
// The Version is meaningless when the type is Unbounded.
func (r Range) Lower() (Version, BoundType) { return r.lower, r.lowerType }

// Upper returns the upper bound of r and its type.
// The Version is meaningless when the type is Unbounded.
func (r Range) Upper() (Version, BoundType) { return r.upper, r.upperType }

// Contains reports whether v falls within r.
func (r Range) Contains(v Version) bool {
	switch r.lowerType {
	case Inclusive:
		if v.Less(r.lower) {
			return false
		}
	case Exclusive:
		if !r.lower.Less(v) {
			return false
		}
	}

	switch r.upperType {
	case Inclusive:
		if r.upper.Less(v) {
			return false
		}
	case Exclusive:
		if !v.Less(r.upper) {
			return false
		}
	}

	return true
}

// String formats r in interval notation, e.g., [1.0.0..2.0.0) or (1.0.0..+∞).
func (r Range) String() string {
	var b strings.Builder
	switch r.lowerType {
	case Inclusive:
		b.WriteString("[" + r.lower.String())
	case Exclusive:
		b.WriteString("(" + r.lower.String())
	default:
		b.WriteString("(-∞")
	}

	b.WriteString("..")

	switch r.upperType {
	case Inclusive:
		b.WriteString(r.upper.String() + "]")
	case Exclusive:
		b.WriteString(r.upper.String() + ")")
	default:
		b.WriteString("+∞)")
	}

	return b.String()
}
