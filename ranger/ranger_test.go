package ranger_test

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/ranger"
)

const routesTable = `
routes:
  - name: item-v1
    method: GET
    path: /items/{id}
    handler: items.get
    version:
      supported: ["1.0"]
`

func quiet() []ranger.RangerOption {
	return []ranger.RangerOption{
		ranger.WithEnv(switchback.Development),
		ranger.WithLogger(logger.New(slog.New(slog.NewTextHandler(io.Discard, nil)))),
		ranger.WithHTTPLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func TestNew(t *testing.T) {
	// Arrange
	t.Setenv("APP_TITLE", "")
	t.Setenv("PORT", "4000")
	reg := prometheus.NewRegistry()

	// Act
	rng, err := ranger.New(append(quiet(), ranger.WithMetrics(reg))...)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "switchback", rng.AppName())
	require.Equal(t, switchback.Development, rng.EmitEnv())
	require.Equal(t, ":4000", rng.EmitServer().Addr)
	require.Same(t, reg, rng.EmitMetrics())
	require.NotNil(t, rng.EmitHTTPLogger())
	require.NotNil(t, rng.EmitLogger())
	require.NotNil(t, rng.Responder)
	require.NotNil(t, rng.Router)
}

func TestWithEnv(t *testing.T) {
	tcs := []struct {
		name     string
		env      switchback.Environment
		envVar   string
		expected switchback.Environment
	}{
		{"Explicit", switchback.Staging, "PRODUCTION", switchback.Staging},
		{"Env-Var", "", "production", switchback.Production},
		{"Invalid", "bogus", "", switchback.Development},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("ENVIRONMENT", tc.envVar)
			opts := append(quiet(), ranger.WithEnv(tc.env))

			// Act
			rng, err := ranger.New(opts...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, rng.EmitEnv())
		})
	}
}

func TestWithAppName(t *testing.T) {
	// Act
	rng, err := ranger.New(append(quiet(), ranger.WithAppName("  Item Catalog!  "))...)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "item-catalog", rng.AppName())

	// Act
	rng, err = ranger.New(append(quiet(), ranger.WithAppName("?!"))...)

	// Assert
	require.ErrorIs(t, err, switchback.ErrBadConfig)
	require.ErrorIs(t, err, switchback.ErrNotValid)
	require.Nil(t, rng)
}

func TestWithServer(t *testing.T) {
	// Act
	_, err := ranger.New(append(quiet(), ranger.WithServer(nil))...)

	// Assert
	require.ErrorIs(t, err, switchback.ErrMissingData)

	// Arrange
	srv := &http.Server{Addr: "127.0.0.1:0"}

	// Act
	rng, err := ranger.New(append(quiet(), ranger.WithServer(srv))...)

	// Assert
	require.Nil(t, err)
	require.Same(t, srv, rng.EmitServer())
	require.Equal(t, rng.Router, srv.Handler)
}

func TestMetricsEndpoint(t *testing.T) {
	// Arrange
	t.Setenv("APP_TITLE", "catalog")
	t.Setenv("METRICS_PATH", "")
	fsys := fstest.MapFS{"routes.yaml": &fstest.MapFile{Data: []byte(routesTable)}}
	handlers := map[string]http.HandlerFunc{
		"items.get": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) },
	}

	rng, err := ranger.New(append(quiet(), ranger.WithRouteTable("routes.yaml", fsys, handlers))...)
	require.Nil(t, err)

	rec := httptest.NewRecorder()
	rng.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/1.0/items/5", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Act
	rec = httptest.NewRecorder()
	rng.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
	require.Contains(t, rec.Body.String(), `switchback_version_dispatch_total{app="catalog"`)
}

func TestMetricsEndpointDisabled(t *testing.T) {
	// Arrange
	t.Setenv("METRICS_PATH", "-")
	rng, err := ranger.New(quiet()...)
	require.Nil(t, err)
	rec := httptest.NewRecorder()

	// Act
	rng.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)
}

func TestWithRouteTable(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{"routes.yaml": &fstest.MapFile{Data: []byte(routesTable)}}

	// Act
	_, err := ranger.New(append(quiet(), ranger.WithRouteTable("routes.yaml", fsys, nil))...)

	// Assert
	require.ErrorIs(t, err, switchback.ErrBadConfig)
	require.ErrorIs(t, err, switchback.ErrNotExist)

	// Act
	_, err = ranger.New(append(quiet(), ranger.WithRouteTable("missing.yaml", fsys, nil))...)

	// Assert
	require.ErrorIs(t, err, switchback.ErrNotExist)
}

func TestOpenRouteTable(t *testing.T) {
	tcs := []struct {
		name     string
		path     string
		fsys     fs.FS
		expected error
	}{
		{"Invalid-Path", "../routes.yaml", nil, switchback.ErrNotValid},
		{"No-Fallback", "routes.yaml", nil, switchback.ErrNotExist},
		{"Missing", "routes.yaml", fstest.MapFS{}, switchback.ErrNotExist},
		{"Empty", "routes.yaml", fstest.MapFS{"routes.yaml": &fstest.MapFile{}}, switchback.ErrMissingData},
		{"Bad-Format", "routes.yaml", fstest.MapFS{"routes.yaml": &fstest.MapFile{Data: []byte("routes: {")}}, switchback.ErrBadFormat},
		{"Valid", "routes.yaml", fstest.MapFS{"routes.yaml": &fstest.MapFile{Data: []byte(routesTable)}}, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			table, err := ranger.OpenRouteTable(tc.path, tc.fsys)

			// Assert
			require.ErrorIs(t, err, tc.expected)
			if tc.expected == nil {
				require.Len(t, table.Routes, 1)
			}
		})
	}
}

func TestGuide(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0"}
	rng, err := ranger.New(append(quiet(), ranger.WithContext(ctx), ranger.WithServer(srv))...)
	require.Nil(t, err)

	// Act
	cancel()
	err = rng.Guide()

	// Assert
	require.Nil(t, err)
}
