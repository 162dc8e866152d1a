package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/version"
)

func TestOnly(t *testing.T) {
	t.Run("Singletons", func(t *testing.T) {
		// Act
		rs, err := version.Only{"1.0", "3.1"}.RangeSet()

		// Assert
		require.Nil(t, err)
		require.Equal(t, 2, rs.Len())
		require.True(t, rs.Contains(v1))
		require.True(t, rs.Contains(version.New(3, 1, 0)))
		require.False(t, rs.Contains(v1_0_1))
		require.False(t, rs.Contains(v2))
	})

	t.Run("Exactly-One-Version", func(t *testing.T) {
		rs, err := version.Only{"1.0"}.RangeSet()
		require.Nil(t, err)
		require.True(t, rs.Contains(version.New(1, 0, 0)))
		require.False(t, rs.Contains(version.New(1, 0, 1)))
		require.False(t, rs.Contains(version.New(0, 9, 9)))
	})

	t.Run("Empty", func(t *testing.T) {
		rs, err := version.Only{}.RangeSet()
		require.Nil(t, err)
		require.Zero(t, rs.Len())
	})

	t.Run("Bad-Version", func(t *testing.T) {
		_, err := version.Only{"1.0", "one"}.RangeSet()
		require.ErrorIs(t, err, version.ErrParse)
	})
}

func TestBounds(t *testing.T) {
	tcs := []struct {
		name     string
		bounds   version.Bounds
		err      error
		len      int
		in       []version.Version
		notIn    []version.Version
		expected string
	}{
		{"None", version.Bounds{}, nil, 0, nil, []version.Version{v1}, "{}"},
		{"Blank-Is-None", version.Bounds{AtLeast: "  "}, nil, 0, nil, []version.Version{v1}, "{}"},
		{
			"At-Least-Less-Than",
			version.Bounds{AtLeast: "1.0", LessThan: "2.0"},
			nil, 1,
			[]version.Version{v1, v1_9_9},
			[]version.Version{v0_9_9, v2},
			"{[1.0.0..2.0.0)}",
		},
		{
			"Greater-Than-At-Most",
			version.Bounds{GreaterThan: "1.0", AtMost: "2.0"},
			nil, 1,
			[]version.Version{v1_0_1, v2},
			[]version.Version{v1, version.New(2, 0, 1)},
			"{(1.0.0..2.0.0]}",
		},
		{
			"Greater-Than-Only",
			version.Bounds{GreaterThan: "1.0"},
			nil, 1,
			[]version.Version{v1_0_1, v2},
			[]version.Version{v1},
			"{(1.0.0..+∞)}",
		},
		{
			"At-Least-Only",
			version.Bounds{AtLeast: "1.0"},
			nil, 1,
			[]version.Version{v1, v2},
			[]version.Version{v0_9_9},
			"{[1.0.0..+∞)}",
		},
		{
			"At-Most-Only",
			version.Bounds{AtMost: "1.0"},
			nil, 1,
			[]version.Version{v0_9_9, v1},
			[]version.Version{v1_0_1},
			"{(-∞..1.0.0]}",
		},
		{
			"Less-Than-Only",
			version.Bounds{LessThan: "1.0"},
			nil, 1,
			[]version.Version{v0_9_9},
			[]version.Version{v1},
			"{(-∞..1.0.0)}",
		},
		{"Two-Lower", version.Bounds{AtLeast: "1.0", GreaterThan: "1.0"}, version.ErrAmbiguousBound, 0, nil, nil, "{}"},
		{"Two-Upper", version.Bounds{AtMost: "2.0", LessThan: "2.0"}, version.ErrAmbiguousBound, 0, nil, nil, "{}"},
		{"Inverted", version.Bounds{AtLeast: "2.0", AtMost: "1.0"}, version.ErrBadRange, 0, nil, nil, "{}"},
		{"Bad-Version", version.Bounds{LessThan: "2.x"}, version.ErrParse, 0, nil, nil, "{}"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			rs, err := tc.bounds.RangeSet()

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.len, rs.Len())
			require.Equal(t, tc.expected, rs.String())
			for _, v := range tc.in {
				require.True(t, rs.Contains(v), v.String())
			}

			for _, v := range tc.notIn {
				require.False(t, rs.Contains(v), v.String())
			}
		})
	}
}

func TestDeclarationSpec(t *testing.T) {
	t.Run("Supported-Takes-Precedence", func(t *testing.T) {
		// Arrange
		d := version.Declaration{Supported: []string{"1.0"}, GreaterThan: "1.0"}

		// Act
		rs, err := d.RangeSet()

		// Assert
		require.Equal(t, version.Only{"1.0"}, d.Spec())
		require.Nil(t, err)
		require.Equal(t, "{[1.0.0..1.0.0]}", rs.String())
	})

	t.Run("Bounds", func(t *testing.T) {
		d := version.Declaration{AtLeast: "1.0", LessThan: "2.0"}
		require.Equal(t, version.Bounds{AtLeast: "1.0", LessThan: "2.0"}, d.Spec())
	})
}

func TestCombine(t *testing.T) {
	// Act
	rs, err := version.Combine(version.Only{"0.5"}, nil, version.Bounds{GreaterThan: "1.0"}, version.Only{"0.5"})

	// Assert
	require.Nil(t, err)
	require.Equal(t, 2, rs.Len())
	require.True(t, rs.Contains(version.New(0, 5, 0)))
	require.True(t, rs.Contains(v2))
	require.False(t, rs.Contains(v1))

	// Act
	_, err = version.Combine(version.Only{"0.5"}, version.Bounds{AtMost: "1", LessThan: "2"})

	// Assert
	require.ErrorIs(t, err, version.ErrAmbiguousBound)
}
