package req_test

import (
	"bytes"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
)

type deployment struct {
	Name   string                   `json:"name" validate:"required"`
	Env    switchback.Environment   `json:"env" validate:"enum"`
	Envs   []switchback.Environment `json:"envs" validate:"enum"`
	Weight int64                    `json:"weight" validate:"gte=0,lte=100"`
	Note   string                   `json:"-"`
}

func TestParserParseBody(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	var actual req.ValidationErrors
	var input, output deployment

	b := new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err := parser.ParseBody(b, deployment{})

	// Assert
	require.ErrorIs(t, err, switchback.ErrBadAny)

	// Arrange
	b.Reset()
	b.WriteByte('\x00')

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, switchback.ErrBadFormat)

	// Arrange
	input.Weight = 101
	expected := req.ValidationErrors{
		{Field: "name", Got: "", Rule: "required; string"},
		{Field: "env", Got: switchback.Environment(""), Rule: "enum; switchback.Environment"},
		{Field: "envs", Got: []switchback.Environment(nil), Rule: "enum; []switchback.Environment"},
		{Field: "weight", Got: int64(101), Rule: "lte=100; int64"},
	}

	b.Reset()
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, switchback.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, expected, actual)

	// Arrange
	input = deployment{
		Name:   "items",
		Env:    switchback.Staging,
		Envs:   []switchback.Environment{switchback.Production, switchback.Review},
		Weight: 50,
		Note:   "ignore",
	}
	output = deployment{}

	b.Reset()
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, input.Name, output.Name)
	require.Equal(t, input.Env, output.Env)
	require.Equal(t, input.Envs, output.Envs)
	require.Equal(t, input.Weight, output.Weight)
	require.Zero(t, output.Note)
}

func TestParserParseQueryParams(t *testing.T) {
	type page struct {
		Limit  int64    `schema:"limit" validate:"omitempty,gte=1,lte=100"`
		Fields []string `schema:"fields" validate:"max=3"`
		Cursor string   `schema:"-"`
	}

	t.Run("Non-Pointer", func(t *testing.T) {
		// Act
		err := req.NewParser().ParseQueryParams(make(url.Values), page{})

		// Assert
		require.ErrorIs(t, err, switchback.ErrBadAny)
	})

	t.Run("Schema-Required", func(t *testing.T) {
		// Act
		err := req.NewParser().ParseQueryParams(make(url.Values), new(struct {
			Limit int64 `schema:"limit,required"`
		}))

		// Assert
		require.ErrorIs(t, err, switchback.ErrNotImplemented)
	})

	tcs := []struct {
		name     string
		params   url.Values
		expected req.ValidationErrors
	}{
		{
			"Conversion",
			url.Values{"limit": {"ten"}},
			req.ValidationErrors{{Field: "limit", Got: "bad value at index 0", Rule: "must be int64"}},
		},
		{
			"Over-Limit",
			url.Values{"limit": {"500"}},
			req.ValidationErrors{{Field: "limit", Got: int64(500), Rule: "lte=100; int64"}},
		},
		{
			"Too-Many-Fields",
			url.Values{"fields": {"id", "name", "price", "sku"}},
			req.ValidationErrors{{
				Field: "fields",
				Got:   []string{"id", "name", "price", "sku"},
				Rule:  "max=3; []string",
			}},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual req.ValidationErrors

			// Act
			err := req.NewParser().ParseQueryParams(tc.params, new(page))

			// Assert
			require.ErrorIs(t, err, switchback.ErrNotValid)
			require.ErrorAs(t, err, &actual)
			require.Equal(t, tc.expected, actual)
		})
	}

	t.Run("Valid", func(t *testing.T) {
		// Arrange
		params := url.Values{"limit": {"10"}, "fields": {"id", "name"}, "cursor": {"ignore"}, "extra": {"ignore"}}
		actual := new(page)

		// Act
		err := req.NewParser().ParseQueryParams(params, actual)

		// Assert
		require.Nil(t, err)
		require.Equal(t, int64(10), actual.Limit)
		require.Equal(t, []string{"id", "name"}, actual.Fields)
		require.Zero(t, actual.Cursor)
	})
}
