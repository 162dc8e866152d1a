package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// The *Ranger is updated only when the closure it returns is called,
// after the loggers and metrics registry are settled.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// defaultOpts are applied before those passed to New.
func defaultOpts() []RangerOption {
	return []RangerOption{
		WithEnv(""),
		WithAppName(switchback.EnvVarOrString(appTitleEnvVar, defaultAppTitle)),
	}
}

// WithAppName normalizes and exposes name as the app's name.
// It labels every metric the app exports.
func WithAppName(name string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		slug := appSlug(name)
		if slug == "" {
			return nil, fmt.Errorf("%w: app name %q", switchback.ErrNotValid, name)
		}

		rng.appName = slug
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the switchback app.
// Cancelling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv exposes env as the app's Environment.
// If env is not valid, the ENVIRONMENT environment variable is read instead.
//
// If both fail, the default Environment is set to Development.
func WithEnv(env switchback.Environment) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if env.Valid() == nil {
			rng.env = env
			return nil, nil
		}

		rng.env = switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development)
		return nil, nil
	}
}

// WithHTTPLogger sets the access logger middleware.LogRequest writes through.
func WithHTTPLogger(l *slog.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.httpLog = l
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the switchback app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithMetrics exposes reg to the switchback app,
// which counts dispatches on it and serves it over METRICS_PATH.
func WithMetrics(reg *prometheus.Registry) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.metrics = reg
		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the switchback app.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Responder = r
			rng.l.Debug("using responder", nil)
			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the switchback app.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Router = r
			rng.l.Debug(fmt.Sprintf("using router %T", r), nil)
			return nil
		}, nil
	}
}

// WithRouteTable constructs a followup option that, when called,
// loads the route table name and registers it on the app's *router.Router.
// The table is read from the working directory if present there, otherwise from fallback.
//
// Every route in the table is wrapped by middlewares.
// Pass WithRouter, if at all, before WithRouteTable.
func WithRouteTable(
	name string,
	fallback fs.FS,
	handlers map[string]http.HandlerFunc,
	middlewares ...middleware.Adapter,
) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			t, err := OpenRouteTable(name, fallback)
			if err != nil {
				return err
			}

			if rng.Responder == nil {
				rng.Responder = defaultResponder(rng.env, rng.l)
			}

			if rng.Router == nil {
				rng.Router = defaultRouter(rng.env, rng.l, rng.httpLog, rng.metrics, rng.appName, rng.Responder)
			}

			rng.l.Debug("registering route table", &logger.LogContext{Data: map[string]any{"table": name}})
			return rng.HandleTable(t, handlers, middlewares...)
		}, nil
	}
}

// WithServer exposes the *http.Server to the switchback app.
// Its Handler is replaced by the app's *router.Router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: nil server", switchback.ErrMissingData)
		}

		rng.srv = s
		return nil, nil
	}
}
