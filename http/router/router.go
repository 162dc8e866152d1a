package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/version"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// A Route with a Version only serves requests whose path leads with a major.minor segment
// the Version accepts, as in "/1.2/items/5" for Path "/items/{id}".
type Route struct {
	// Name identifies the Route for introspection; it must be unique when set.
	Name string

	// Path is a gorilla/mux path template.
	Path string

	// Aliases are additional path templates served with the same predicates and handler.
	Aliases []string

	// Method restricts the Route to one HTTP method; blank serves any method.
	Method string

	// Headers and Queries are key/value pairs matched as mux does.
	Headers []string
	Queries []string

	// Consumes lists the media types accepted in a request's "Content-Type".
	Consumes []string

	// Produces lists the media types the handler can respond with,
	// negotiated against a request's "Accept".
	Produces []string

	// Version declares the versions served; nil registers the Route unversioned.
	Version version.Spec

	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// paths lists Path followed by Aliases.
func (route Route) paths() []string { return append([]string{route.Path}, route.Aliases...) }

// A RouteInfo describes a registered route template.
type RouteInfo struct {
	Name      string
	Template  string
	Methods   []string
	Versioned bool
	Condition string
}

// A RouterOption configures a *Router when calling New.
type RouterOption func(*Router)

// WithLogRequest sets the access log middleware applied to requests no route serves.
func WithLogRequest(mw middleware.Adapter) RouterOption {
	return func(r *Router) {
		r.logReq = mw
	}
}

// WithLogger sets the Logger registration is reported through.
func WithLogger(l logger.Logger) RouterOption {
	return func(r *Router) {
		r.logger = l
	}
}

// WithMetrics counts versioned dispatches and misses on reg.
func WithMetrics(reg prometheus.Registerer) RouterOption {
	return func(r *Router) {
		if reg != nil {
			r.reg.metrics = newMetrics(reg)
		}
	}
}

// Router routes requests to versioned and unversioned handlers sharing one routing table.
type Router struct {
	Env           switchback.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	logger        logger.Logger
	prefix        string
	r             *mux.Router
	reg           *registry
}

// registry holds what a Router and its subrouters learn while registering routes.
// It is only written during startup.
type registry struct {
	conditions map[*mux.Route]Condition
	groups     map[string]*group
	metrics    *metrics
	names      map[string]struct{}
}

// New constructs a [*Router] for the given environment.
func New(env switchback.Environment, opts ...RouterOption) *Router {
	r := &Router{
		Env:    env,
		logReq: middleware.NoopAdapter,
		r:      mux.NewRouter(),
		reg: &registry{
			conditions: make(map[*mux.Route]Condition),
			groups:     make(map[string]*group),
			names:      make(map[string]struct{}),
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logReq == nil {
		r.logReq = middleware.NoopAdapter
	}

	if r.logger == nil {
		r.logger = logger.New(nil)
	}

	r.HandleNotFound(http.NotFound)
	return r
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) error {
	return r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(r.countMiss(handler)),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// Routes without a Version register as declared.
// Routes with one register every path rewritten by VersionedPath.
//
// HandleRoutes registers every valid Route, joining errors for the rest;
// each wraps switchback.ErrBadConfig.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) error {
	var errs []error
	for _, route := range routes {
		var specs []version.Spec
		if route.Version != nil {
			specs = append(specs, route.Version)
		}

		errs = append(errs, r.handle(route, specs, middlewares))
	}

	return errors.Join(errs...)
}

// HandleVersioned registers the set of Routes as HandleRoutes does,
// except each Route serves the versions of group as well as its own.
// A Route without a Version serves just those of group.
func (r *Router) HandleVersioned(group version.Spec, routes []Route, middlewares ...middleware.Adapter) error {
	if group == nil {
		return fmt.Errorf("%w: no version group", switchback.ErrBadConfig)
	}

	var errs []error
	for _, route := range routes {
		errs = append(errs, r.handle(route, []version.Spec{group, route.Version}, middlewares))
	}

	return errors.Join(errs...)
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Routes describes every route registered on r and its subrouters, in registration order.
func (r *Router) Routes() []RouteInfo {
	var infos []RouteInfo
	_ = r.r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if route.GetHandler() == nil {
			return nil
		}

		tmpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		info := RouteInfo{Name: route.GetName(), Template: tmpl}
		info.Methods, _ = route.GetMethods()
		if c, ok := r.reg.conditions[route]; ok {
			info.Versioned = true
			info.Condition = c.String()
		}

		infos = append(infos, info)
		return nil
	})

	return infos
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the literal prefix.
// Versioned routes on it expect the version right after prefix.
//
// e.g., r.Subrouter("/api") serves a versioned "/items" at /api/1.0/items
func (r *Router) Subrouter(prefix string) *Router {
	prefix = strings.TrimRight(prefix, "/")
	return &Router{
		Env:           r.Env,
		everyReqStack: slices.Clone(r.everyReqStack),
		logReq:        r.logReq,
		logger:        r.logger,
		prefix:        r.prefix + prefix,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		reg:           r.reg,
	}
}

// handle registers route serving the union of specs,
// or unversioned if specs is empty.
func (r *Router) handle(route Route, specs []version.Spec, middlewares []middleware.Adapter) error {
	if route.Handler == nil {
		return fmt.Errorf("%w: %s %s: no handler", switchback.ErrBadConfig, route.Method, route.Path)
	}

	if _, ok := r.reg.names[route.Name]; ok && route.Name != "" {
		return fmt.Errorf("%w: %s %s: duplicate name %q", switchback.ErrBadConfig, route.Method, route.Path, route.Name)
	}

	mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares))
	mws = append(mws, r.everyReqStack...)
	mws = append(mws, middlewares...)
	mws = append(mws, route.Middlewares...)
	handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)

	var err error
	if len(specs) == 0 {
		err = r.handleUnversioned(route, handler)
	} else {
		err = r.handleVersioned(route, specs, handler)
	}

	if err != nil {
		return err
	}

	if route.Name != "" {
		r.reg.names[route.Name] = struct{}{}
	}

	return nil
}

func (r *Router) handleUnversioned(route Route, handler http.Handler) error {
	for i, path := range route.paths() {
		mr := applyPredicates(r.r.Handle(path, handler), route)
		if i == 0 && route.Name != "" {
			mr.Name(route.Name)
		}

		if err := mr.GetError(); err != nil {
			return fmt.Errorf("%w: %s %s: %w", switchback.ErrBadConfig, route.Method, path, err)
		}

		r.logger.Debug("registered route", &logger.LogContext{Data: map[string]any{
			"method":   route.Method,
			"template": r.prefix + path,
		}})
	}

	return nil
}

func (r *Router) handleVersioned(route Route, specs []version.Spec, handler http.Handler) error {
	cond, err := ConditionFor(specs...)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", switchback.ErrBadConfig, route.Method, route.Path, err)
	}

	for i, path := range route.paths() {
		tmpl := VersionedPath(path)
		full := r.prefix + tmpl

		g := r.reg.group(full, r.prefix)
		c := &candidate{
			cond:     cond,
			method:   route.Method,
			detached: applyPredicates(mux.NewRouter().NewRoute().Path(full), route).MatcherFunc(g.serves(cond)),
		}

		if err := c.detached.GetError(); err != nil {
			return fmt.Errorf("%w: %s %s: %w", switchback.ErrBadConfig, route.Method, path, err)
		}

		mr := applyPredicates(r.r.Handle(tmpl, r.dispatch(full, handler)), route).MatcherFunc(g.selects(c))
		if i == 0 && route.Name != "" {
			mr.Name(route.Name)
		}

		if err := mr.GetError(); err != nil {
			return fmt.Errorf("%w: %s %s: %w", switchback.ErrBadConfig, route.Method, path, err)
		}

		g.members = append(g.members, c)
		r.reg.conditions[mr] = cond

		r.logger.Debug("registered versioned route", &logger.LogContext{Data: map[string]any{
			"condition": cond.String(),
			"method":    route.Method,
			"template":  full,
		}})
	}

	return nil
}

// dispatch puts the requested version in the request context ahead of every other middleware
// and counts the dispatch.
func (r *Router) dispatch(template string, h http.Handler) http.Handler {
	m := r.reg.metrics
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if v, err := version.Parse(mux.Vars(req)[VersionVar]); err == nil {
			req = req.WithContext(context.WithValue(req.Context(), switchback.APIVersionKey, v))
			m.dispatch(req.Method, template, shortVersion(v))
		}

		h.ServeHTTP(w, req)
	})
}

// countMiss counts requests carrying a version that reach h, the not found handler.
func (r *Router) countMiss(h http.HandlerFunc) http.HandlerFunc {
	m := r.reg.metrics
	prefix := r.prefix
	return func(w http.ResponseWriter, req *http.Request) {
		if _, ok := versionOf(prefix, req); ok {
			m.miss(req.Method)
		}

		h(w, req)
	}
}

// applyPredicates adds to mr every predicate of route besides its path.
func applyPredicates(mr *mux.Route, route Route) *mux.Route {
	if route.Method != "" {
		mr = mr.Methods(route.Method)
	}

	if len(route.Headers) > 0 {
		mr = mr.Headers(route.Headers...)
	}

	if len(route.Queries) > 0 {
		mr = mr.Queries(route.Queries...)
	}

	if len(route.Consumes) > 0 {
		mr = mr.MatcherFunc(consumes(route.Consumes))
	}

	if len(route.Produces) > 0 {
		mr = mr.MatcherFunc(produces(route.Produces))
	}

	return mr
}
