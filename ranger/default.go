package ranger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	// App metadata
	appTitleEnvVar  = "APP_TITLE"
	defaultAppTitle = "switchback"

	// CORS defaults
	corsOriginEnvVar = "CORS_ORIGIN"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	logJSONEnvVar   = "LOG_JSON"
	defaultLogJSON  = false
	sentryDsnEnvVar = "SENTRY_DSN"

	// Metrics defaults
	metricsPathEnvVar  = "METRICS_PATH"
	DefaultMetricsPath = "/metrics"

	// Rate limit defaults
	rateLimitRPSEnvVar   = "RATE_LIMIT_RPS"
	rateLimitBurstEnvVar = "RATE_LIMIT_BURST"

	// Web server defaults
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

var (
	slugStripRe = regexp.MustCompile(`[,':."!?]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
)

// appSlug lowercases name and hyphenates its words, dropping punctuation.
func appSlug(name string) string {
	name = cases.Lower(language.English).String(name)
	name = slugStripRe.ReplaceAllString(name, "")
	return slugSpaceRe.ReplaceAllString(strings.TrimSpace(name), "-")
}

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
func defaultAppLogger(env switchback.Environment, output io.Writer) logger.Logger {
	slogger := newSlogger(switchback.AppLogKind, env, output)
	var l logger.Logger = logger.New(slogger)
	l.Debug("setting up app logger", nil)
	if dsn := os.Getenv(sentryDsnEnvVar); dsn != "" {
		l = logger.NewSentryLogger(env, l, dsn)
		l.Debug("using SentryLogger for app logger", nil)
	}

	slog.SetDefault(slogger)

	return l
}

// defaultHTTPLogger constructs a [*log/slog.Logger] for use in HTTP router logging.
func defaultHTTPLogger(env switchback.Environment, output io.Writer) *slog.Logger {
	sl := newSlogger(switchback.HTTPLogKind, env, output)
	sl.Debug("setting up HTTP router logger")

	return sl
}

// newSlogger toggles constructing the specific [*log/slog.Logger]
// from the given parameters.
func newSlogger(kind slog.Value, env switchback.Environment, out io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(switchback.EnvVarOrLogLevel(logLevelEnvVar, slog.LevelInfo))

	useJSON := !env.IsDevelopment() || switchback.EnvVarOrBool(logJSONEnvVar, defaultLogJSON)
	isHTTP := kind.String() == switchback.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case !isHTTP && useJSON:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		})

	case !isHTTP && !useJSON:
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.ColorizeLevel(groups, a)
				return logger.TruncSourceAttr(groups, a)
			},
		})

	case isHTTP && useJSON:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		})

	default:
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		})
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: switchback.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// defaultMetrics constructs a *prometheus.Registry exporting Go runtime and process metrics.
func defaultMetrics() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// defaultMiddlewares builds the stack applied to every routed request.
//
// RATE_LIMIT_RPS at or below zero turns rate limiting off.
func defaultMiddlewares(env switchback.Environment, l logger.Logger, httpLog *slog.Logger) []middleware.Adapter {
	var visitors *middleware.Visitors
	if rps := switchback.EnvVarOrFloat(rateLimitRPSEnvVar, float64(middleware.DefaultRateLimit)); rps > 0 {
		burst := switchback.EnvVarOrInt(rateLimitBurstEnvVar, middleware.DefaultBurst)
		visitors = middleware.NewVisitorsWithLimit(rate.Limit(rps), burst)
	}

	return []middleware.Adapter{
		middleware.RateLimit(visitors),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.CORS(switchback.EnvVarOrString(corsOriginEnvVar, "")),
		middleware.LogRequest(httpLog),
		middleware.Recover(l),
	}
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
// Error details reach clients only in development.
func defaultResponder(env switchback.Environment, l logger.Logger) *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(l),
		resp.WithErrorDetail(env.IsDevelopment()),
	)
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
// Metrics it counts are labelled with appName.
func defaultRouter(
	env switchback.Environment,
	l logger.Logger,
	httpLog *slog.Logger,
	reg *prometheus.Registry,
	appName string,
	responder *resp.Responder,
) *router.Router {
	route := router.New(
		env,
		router.WithLogger(l),
		router.WithLogRequest(middleware.LogRequest(httpLog)),
		router.WithMetrics(prometheus.WrapRegistererWith(prometheus.Labels{"app": appName}, reg)),
	)
	route.OnEveryRequest(defaultMiddlewares(env, l, httpLog)...)
	route.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		responder.Err(w, r, fmt.Errorf("%w: %s %s", switchback.ErrNoMatch, r.Method, r.URL.Path))
	})

	return route
}

// mountMetrics serves reg over METRICS_PATH, unless it is set to "-".
func mountMetrics(r *router.Router, reg *prometheus.Registry) error {
	path := switchback.EnvVarOrString(metricsPathEnvVar, DefaultMetricsPath)
	if path == "-" {
		return nil
	}

	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return r.Handle(router.Route{
		Name:    "metrics",
		Method:  http.MethodGet,
		Path:    path,
		Handler: h.ServeHTTP,
	})
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         switchback.EnvVarOrString(hostEnvVar, "") + port,
		IdleTimeout:  switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
