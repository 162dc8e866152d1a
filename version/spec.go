package version

import (
	"fmt"
	"strings"
)

// A Spec declares the versions a handler accepts.
//
// [Only] and [Bounds] are the two forms a Spec takes.
type Spec interface {
	RangeSet() (RangeSet, error)
}

var (
	_ Spec = Only(nil)
	_ Spec = Bounds{}
	_ Spec = Declaration{}
)

// Only enumerates exact versions; each becomes a Singleton Range.
type Only []string

// RangeSet parses every version in o.
// An empty Only yields an empty RangeSet.
func (o Only) RangeSet() (RangeSet, error) {
	ranges := make([]Range, 0, len(o))
	for _, text := range o {
		v, err := Parse(text)
		if err != nil {
			return RangeSet{}, err
		}

		ranges = append(ranges, Singleton(v))
	}

	return NewRangeSet(ranges...), nil
}

// Bounds constrains versions from below, above, or both.
// Blank fields are absent.
//
// At most one of AtLeast and GreaterThan may be set,
// and at most one of AtMost and LessThan.
type Bounds struct {
	AtLeast     string
	GreaterThan string
	AtMost      string
	LessThan    string
}

// RangeSet builds the single Range b describes.
//
// When b sets no field, the RangeSet is empty and accepts no version.
// RangeSet returns ErrAmbiguousBound when two lower or two upper bounds are set,
// ErrParse when a bound cannot be parsed,
// and ErrBadRange when the lower bound is above the upper one.
func (b Bounds) RangeSet() (RangeSet, error) {
	lower, lt, err := pickBound("atLeast", b.AtLeast, "greaterThan", b.GreaterThan)
	if err != nil {
		return RangeSet{}, err
	}

	upper, ut, err := pickBound("atMost", b.AtMost, "lessThan", b.LessThan)
	if err != nil {
		return RangeSet{}, err
	}

	var r Range
	switch {
	case lt != Unbounded && ut != Unbounded:
		r, err = Between(lower, lt, upper, ut)
		if err != nil {
			return RangeSet{}, err
		}

	case lt == Inclusive:
		r = AtLeast(lower)

	case lt == Exclusive:
		r = GreaterThan(lower)

	case ut == Inclusive:
		r = AtMost(upper)

	case ut == Exclusive:
		r = LessThan(upper)

	default:
		return NewRangeSet(), nil
	}

	return NewRangeSet(r), nil
}

// pickBound parses whichever of the inclusive or exclusive slot is set.
// Unbounded is returned when neither is.
func pickBound(inclName, incl, exclName, excl string) (Version, BoundType, error) {
	hasIncl := strings.TrimSpace(incl) != ""
	hasExcl := strings.TrimSpace(excl) != ""

	switch {
	case hasIncl && hasExcl:
		return Version{}, Unbounded, fmt.Errorf("%w: both %s %q and %s %q set", ErrAmbiguousBound, inclName, incl, exclName, excl)

	case hasIncl:
		v, err := Parse(incl)
		if err != nil {
			return Version{}, Unbounded, fmt.Errorf("%s: %w", inclName, err)
		}

		return v, Inclusive, nil

	case hasExcl:
		v, err := Parse(excl)
		if err != nil {
			return Version{}, Unbounded, fmt.Errorf("%s: %w", exclName, err)
		}

		return v, Exclusive, nil

	default:
		return Version{}, Unbounded, nil
	}
}

// A Declaration is the flat form of a Spec, suited to configuration files.
//
// When Supported is not empty, it takes precedence and the bound fields are ignored.
type Declaration struct {
	Supported   []string `json:"supported,omitempty" yaml:"supported,omitempty"`
	AtLeast     string   `json:"atLeast,omitempty" yaml:"atLeast,omitempty"`
	GreaterThan string   `json:"greaterThan,omitempty" yaml:"greaterThan,omitempty"`
	AtMost      string   `json:"atMost,omitempty" yaml:"atMost,omitempty"`
	LessThan    string   `json:"lessThan,omitempty" yaml:"lessThan,omitempty"`
}

// Spec returns the form of Spec d describes.
func (d Declaration) Spec() Spec {
	if len(d.Supported) > 0 {
		return Only(d.Supported)
	}

	return Bounds{
		AtLeast:     d.AtLeast,
		GreaterThan: d.GreaterThan,
		AtMost:      d.AtMost,
		LessThan:    d.LessThan,
	}
}

// RangeSet implements Spec through d.Spec.
func (d Declaration) RangeSet() (RangeSet, error) { return d.Spec().RangeSet() }

// Combine builds the union of the RangeSets of specs.
// Nil specs are skipped.
func Combine(specs ...Spec) (RangeSet, error) {
	var out RangeSet
	for _, s := range specs {
		if s == nil {
			continue
		}

		rs, err := s.RangeSet()
		if err != nil {
			return RangeSet{}, err
		}

		out = out.Union(rs)
	}

	return out, nil
}
