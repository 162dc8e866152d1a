package version

import (
	"cmp"
	"encoding"
	"fmt"
	"strconv"
	"strings"
)

const delimiter = "."

var (
	_ encoding.TextMarshaler   = Version{}
	_ encoding.TextUnmarshaler = (*Version)(nil)
	_ fmt.Stringer             = Version{}
)

// A Version is an immutable major.minor.revision triple.
//
// The zero value is 0.0.0.
type Version struct {
	major    int
	minor    int
	revision int
}

// New constructs a Version from its components.
func New(major, minor, revision int) Version {
	return Version{major: major, minor: minor, revision: revision}
}

// Parse reads text as a dot-delimited version.
//
// Whitespace around each segment is trimmed and empty segments are dropped,
// so "1..2" reads as 1.2.0.
// The first segment is the major version and is required;
// minor and revision default to 0.
// Segments after the third are ignored.
//
// Parse returns ErrParse if text is blank or any segment is not a non-negative integer.
func Parse(text string) (Version, error) {
	if strings.TrimSpace(text) == "" {
		return Version{}, fmt.Errorf("%w: blank", ErrParse)
	}

	segments := make([]int, 0, 3)
	for _, seg := range strings.Split(text, delimiter) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		if !isNumeric(seg) {
			return Version{}, fmt.Errorf("%w: %q has non-numeric segment %q", ErrParse, text, seg)
		}

		n, err := strconv.Atoi(seg)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %s", ErrParse, text, err)
		}

		segments = append(segments, n)
	}

	if len(segments) == 0 {
		return Version{}, fmt.Errorf("%w: %q has no major version", ErrParse, text)
	}

	v := Version{major: segments[0]}
	if len(segments) > 1 {
		v.minor = segments[1]
	}

	if len(segments) > 2 {
		v.revision = segments[2]
	}

	return v, nil
}

// MustParse is like Parse but panics if text cannot be parsed.
// It simplifies declaring versions in static tables.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return v
}

func (v Version) Major() int    { return v.major }
func (v Version) Minor() int    { return v.minor }
func (v Version) Revision() int { return v.revision }

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than other,
// comparing major, then minor, then revision.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.major, other.major); c != 0 {
		return c
	}

	if c := cmp.Compare(v.minor, other.minor); c != 0 {
		return c
	}

	return cmp.Compare(v.revision, other.revision)
}

// CompareString parses text and compares v against it.
func (v Version) CompareString(text string) (int, error) {
	other, err := Parse(text)
	if err != nil {
		return 0, err
	}

	return v.Compare(other), nil
}

// Equal reports whether v and other name the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// MarshalText implements [encoding.TextMarshaler].
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler] using Parse.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// String formats v in its canonical "major.minor.revision" form.
func (v Version) String() string {
	return strconv.Itoa(v.major) + delimiter + strconv.Itoa(v.minor) + delimiter + strconv.Itoa(v.revision)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}
