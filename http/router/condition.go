package router

import (
	"cmp"
	"net/http"
	"regexp"

	"github.com/xy-planning-network/switchback/version"
)

// requestVersionRe captures the major.minor segment leading a request path.
// Revisions never appear in URLs.
var requestVersionRe = regexp.MustCompile(`^/([0-9]+\.[0-9]+)(/|$)`)

// A Condition is the set of versions a route serves.
//
// A Condition is immutable, so one value is safely shared by concurrent requests.
type Condition struct {
	ranges version.RangeSet
}

// NewCondition constructs a Condition serving every version in rs.
func NewCondition(rs version.RangeSet) Condition { return Condition{ranges: rs} }

// ConditionFor builds the Condition serving the union of every spec.
// nil specs are skipped.
func ConditionFor(specs ...version.Spec) (Condition, error) {
	rs, err := version.Combine(specs...)
	if err != nil {
		return Condition{}, err
	}

	return NewCondition(rs), nil
}

// RequestVersion extracts the version leading path, as in "/1.2/items/5".
// Paths not shaped that way report false.
func RequestVersion(path string) (version.Version, bool) {
	m := requestVersionRe.FindStringSubmatch(path)
	if m == nil {
		return version.Version{}, false
	}

	v, err := version.Parse(m[1])
	if err != nil {
		return version.Version{}, false
	}

	return v, true
}

// Match returns c if the version leading r's path is one c serves.
// Otherwise, Match returns nil.
func (c *Condition) Match(r *http.Request) *Condition {
	if c == nil || r == nil || r.URL == nil {
		return nil
	}

	v, ok := RequestVersion(r.URL.Path)
	if !ok || !c.Matches(v) {
		return nil
	}

	return c
}

// Matches asserts whether c serves v.
func (c Condition) Matches(v version.Version) bool { return c.ranges.Contains(v) }

// Combine returns a Condition serving the versions of both c and other.
func (c Condition) Combine(other Condition) Condition {
	return Condition{ranges: c.ranges.Union(other.ranges)}
}

// Compare orders two Conditions matching the same request by specificity.
// A negative result means c declares fewer ranges and so is preferred;
// zero means neither is more specific.
//
// r is not consulted, since range count alone ranks Conditions.
func (c Condition) Compare(other Condition, r *http.Request) int {
	return cmp.Compare(c.Len(), other.Len())
}

// Len is the number of distinct ranges c declares.
func (c Condition) Len() int { return c.ranges.Len() }

// RangeSet returns the ranges c serves.
func (c Condition) RangeSet() version.RangeSet { return c.ranges }

func (c Condition) String() string { return c.ranges.String() }
