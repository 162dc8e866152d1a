package version_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/version"
)

func TestParse(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected version.Version
		err      error
	}{
		{"Empty", "", version.Version{}, version.ErrParse},
		{"Blank", "  ", version.Version{}, version.ErrParse},
		{"Only-Dots", "..", version.Version{}, version.ErrParse},
		{"Non-Numeric", "1.x", version.Version{}, version.ErrParse},
		{"Negative", "-1.0", version.Version{}, version.ErrParse},
		{"Major", "2", version.New(2, 0, 0), nil},
		{"Major-Minor", "2.3", version.New(2, 3, 0), nil},
		{"Major-Minor-Revision", "2.3.4", version.New(2, 3, 4), nil},
		{"Extra-Segments", "2.3.4.5", version.New(2, 3, 4), nil},
		{"Omit-Empty", "1..2", version.New(1, 2, 0), nil},
		{"Leading-Trailing-Dots", ".1.2.", version.New(1, 2, 0), nil},
		{"Trimmed", " 1 . 2 ", version.New(1, 2, 0), nil},
		{"Multi-Digit", "10.20.30", version.New(10, 20, 30), nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := version.Parse(tc.input)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, v := range []version.Version{
		version.New(0, 0, 0),
		version.New(1, 0, 0),
		version.New(0, 5, 0),
		version.New(3, 1, 9),
		version.New(123, 45, 6789),
	} {
		t.Run(v.String(), func(t *testing.T) {
			actual, err := version.Parse(v.String())
			require.Nil(t, err)
			require.Equal(t, v, actual)
		})
	}
}

func TestMustParse(t *testing.T) {
	require.Equal(t, version.New(1, 2, 0), version.MustParse("1.2"))
	require.Panics(t, func() { version.MustParse("one") })
}

func TestVersionAccessors(t *testing.T) {
	v := version.New(4, 5, 6)
	require.Equal(t, 4, v.Major())
	require.Equal(t, 5, v.Minor())
	require.Equal(t, 6, v.Revision())
	require.Equal(t, "4.5.6", v.String())
}

func TestVersionCompare(t *testing.T) {
	tcs := []struct {
		name     string
		a, b     version.Version
		expected int
	}{
		{"Equal", version.New(1, 2, 3), version.New(1, 2, 3), 0},
		{"Major-Less", version.New(1, 9, 9), version.New(2, 0, 0), -1},
		{"Major-Greater", version.New(10, 0, 0), version.New(9, 0, 0), 1},
		{"Minor-Less", version.New(1, 2, 9), version.New(1, 10, 0), -1},
		{"Revision-Greater", version.New(1, 2, 4), version.New(1, 2, 3), 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.a.Compare(tc.b))
			require.Equal(t, -tc.expected, tc.b.Compare(tc.a))
			require.Equal(t, tc.expected == 0, tc.a.Equal(tc.b))
			require.Equal(t, tc.expected < 0, tc.a.Less(tc.b))
		})
	}
}

func TestVersionCompareIsNumeric(t *testing.T) {
	// "10" sorts before "9" lexically; numerically it does not.
	require.Equal(t, 1, version.MustParse("1.10").Compare(version.MustParse("1.9")))
}

func TestVersionCompareString(t *testing.T) {
	// Arrange
	v := version.New(1, 2, 0)

	// Act
	c, err := v.CompareString("1.2")

	// Assert
	require.Nil(t, err)
	require.Zero(t, c)

	// Act
	c, err = v.CompareString("1.10")

	// Assert
	require.Nil(t, err)
	require.Equal(t, -1, c)

	// Act
	_, err = v.CompareString("nope")

	// Assert
	require.ErrorIs(t, err, version.ErrParse)
}

func TestVersionText(t *testing.T) {
	// Arrange
	type payload struct {
		V version.Version `json:"v"`
	}

	// Act
	b, err := json.Marshal(payload{V: version.New(1, 2, 3)})

	// Assert
	require.Nil(t, err)
	require.JSONEq(t, `{"v":"1.2.3"}`, string(b))

	// Arrange
	var actual payload

	// Act
	err = json.Unmarshal([]byte(`{"v":"2.1"}`), &actual)

	// Assert
	require.Nil(t, err)
	require.Equal(t, version.New(2, 1, 0), actual.V)

	// Act
	err = json.Unmarshal([]byte(`{"v":"two"}`), &actual)

	// Assert
	require.ErrorIs(t, err, version.ErrParse)
}
