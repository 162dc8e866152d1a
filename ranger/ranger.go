package ranger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a switchback app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	appName string
	ctx     context.Context
	env     switchback.Environment
	httpLog *slog.Logger
	l       logger.Logger
	metrics *prometheus.Registry
	srv     *http.Server
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
//
// Components no option configures are built from environment variables;
// see the package documentation.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE: some options require data from other options.
	// These delay configuring the *Ranger by returning an OptFollowup,
	// called once every option has run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", switchback.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.l == nil {
		r.l = defaultAppLogger(r.env, os.Stdout)
	}

	if r.httpLog == nil {
		r.httpLog = defaultHTTPLogger(r.env, os.Stdout)
	}

	if r.metrics == nil {
		r.metrics = defaultMetrics()
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %w", switchback.ErrBadConfig, err)
		}
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.env, r.l)
	}

	if r.Router == nil {
		r.Router = defaultRouter(r.env, r.l, r.httpLog, r.metrics, r.appName, r.Responder)
	}

	if err := mountMetrics(r.Router, r.metrics); err != nil {
		return nil, err
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}

	r.srv.Handler = r.Router

	return r, nil
}

// AppName is the normalized APP_TITLE, e.g., "Item Catalog" becomes "item-catalog".
func (r *Ranger) AppName() string { return r.appName }

func (r *Ranger) EmitEnv() switchback.Environment   { return r.env }
func (r *Ranger) EmitHTTPLogger() *slog.Logger      { return r.httpLog }
func (r *Ranger) EmitLogger() logger.Logger         { return r.l }
func (r *Ranger) EmitMetrics() *prometheus.Registry { return r.metrics }
func (r *Ranger) EmitServer() *http.Server          { return r.srv }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - cancelling the context.Context passed to WithContext
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	parent := r.ctx
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(
		parent,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		r.l.Info("received shutdown signal", &logger.LogContext{Error: context.Cause(ctx)})
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
