package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/version"
)

var (
	v0_9_9 = version.New(0, 9, 9)
	v1     = version.New(1, 0, 0)
	v1_0_1 = version.New(1, 0, 1)
	v1_9_9 = version.New(1, 9, 9)
	v2     = version.New(2, 0, 0)
)

func TestRangeContains(t *testing.T) {
	between := func(lt, ut version.BoundType) version.Range {
		r, err := version.Between(v1, lt, v2, ut)
		require.Nil(t, err)
		return r
	}

	tcs := []struct {
		name     string
		r        version.Range
		in       []version.Version
		notIn    []version.Version
		expected string
	}{
		{
			"Singleton",
			version.Singleton(v1),
			[]version.Version{v1},
			[]version.Version{v0_9_9, v1_0_1, v2},
			"[1.0.0..1.0.0]",
		},
		{
			"At-Least",
			version.AtLeast(v1),
			[]version.Version{v1, v1_0_1, v2},
			[]version.Version{v0_9_9},
			"[1.0.0..+∞)",
		},
		{
			"Greater-Than",
			version.GreaterThan(v1),
			[]version.Version{v1_0_1, v2},
			[]version.Version{v0_9_9, v1},
			"(1.0.0..+∞)",
		},
		{
			"At-Most",
			version.AtMost(v1),
			[]version.Version{v0_9_9, v1},
			[]version.Version{v1_0_1},
			"(-∞..1.0.0]",
		},
		{
			"Less-Than",
			version.LessThan(v1),
			[]version.Version{v0_9_9},
			[]version.Version{v1, v1_0_1},
			"(-∞..1.0.0)",
		},
		{
			"Closed-Open",
			between(version.Inclusive, version.Exclusive),
			[]version.Version{v1, v1_9_9},
			[]version.Version{v0_9_9, v2},
			"[1.0.0..2.0.0)",
		},
		{
			"Open-Closed",
			between(version.Exclusive, version.Inclusive),
			[]version.Version{v1_0_1, v2},
			[]version.Version{v1},
			"(1.0.0..2.0.0]",
		},
		{
			"Zero-Value",
			version.Range{},
			[]version.Version{version.New(0, 0, 0), v2},
			nil,
			"(-∞..+∞)",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range tc.in {
				require.True(t, tc.r.Contains(v), "%s should contain %s", tc.r, v)
			}

			for _, v := range tc.notIn {
				require.False(t, tc.r.Contains(v), "%s should not contain %s", tc.r, v)
			}

			require.Equal(t, tc.expected, tc.r.String())
		})
	}
}

func TestBetween(t *testing.T) {
	tcs := []struct {
		name   string
		lower  version.Version
		lt     version.BoundType
		upper  version.Version
		ut     version.BoundType
		err    error
		single bool
	}{
		{"Ok", v1, version.Inclusive, v2, version.Exclusive, nil, false},
		{"Inverted", v2, version.Inclusive, v1, version.Inclusive, version.ErrBadRange, false},
		{"Equal-Closed", v1, version.Inclusive, v1, version.Inclusive, nil, true},
		{"Equal-Half-Open", v1, version.Inclusive, v1, version.Exclusive, nil, false},
		{"Equal-Open", v1, version.Exclusive, v1, version.Exclusive, version.ErrBadRange, false},
		{"Unbounded-Side", v1, version.Unbounded, v2, version.Inclusive, version.ErrBadRange, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			r, err := version.Between(tc.lower, tc.lt, tc.upper, tc.ut)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.single {
				require.Equal(t, version.Singleton(v1), r)
			}
		})
	}

	t.Run("Empty-Half-Open", func(t *testing.T) {
		r, err := version.Between(v1, version.Inclusive, v1, version.Exclusive)
		require.Nil(t, err)
		require.False(t, r.Contains(v1))
	})
}

func TestRangeBounds(t *testing.T) {
	lower, lt := version.GreaterThan(v1).Lower()
	require.Equal(t, v1, lower)
	require.Equal(t, version.Exclusive, lt)

	_, ut := version.GreaterThan(v1).Upper()
	require.Equal(t, version.Unbounded, ut)
}

func TestBoundTypeValid(t *testing.T) {
	require.Nil(t, version.Inclusive.Valid())
	require.NotNil(t, version.BoundType(9).Valid())
	require.Equal(t, "BoundType(9)", version.BoundType(9).String())
}
