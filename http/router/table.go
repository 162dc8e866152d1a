package router

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/version"
	"gopkg.in/yaml.v3"
)

// A Table is a declarative set of routes, as read by LoadTable from a document like:
//
//	version:
//	  supported: ["0.5"]
//	routes:
//	  - name: item-v1
//	    method: GET
//	    path: /items/{id}
//	    handler: items.get.v1
//	    version:
//	      supported: ["1.0"]
//
// The top-level version applies to every route, as in HandleVersioned.
type Table struct {
	Version *version.Declaration `json:"version,omitempty" yaml:"version,omitempty"`
	Routes  []TableEntry         `json:"routes" yaml:"routes" validate:"required,min=1,dive"`
}

// A TableEntry declares one Route, naming its handler rather than holding it.
type TableEntry struct {
	Name     string               `json:"name" yaml:"name" validate:"required"`
	Method   Method               `json:"method" yaml:"method" validate:"enum"`
	Path     string               `json:"path" yaml:"path" validate:"required,startswith=/"`
	Aliases  []string             `json:"aliases,omitempty" yaml:"aliases,omitempty" validate:"dive,startswith=/"`
	Handler  string               `json:"handler" yaml:"handler" validate:"required"`
	Headers  map[string]string    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Queries  map[string]string    `json:"queries,omitempty" yaml:"queries,omitempty"`
	Consumes []string             `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces []string             `json:"produces,omitempty" yaml:"produces,omitempty"`
	Version  *version.Declaration `json:"version,omitempty" yaml:"version,omitempty"`
}

// LoadTable decodes and validates the YAML document in rd.
// Unknown keys are rejected.
//
// Version declarations are checked later, when the Table is registered.
func LoadTable(rd io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)

	t := new(Table)
	if err := dec.Decode(t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty route table", switchback.ErrMissingData)
		}

		return nil, fmt.Errorf("%w: %w", switchback.ErrBadFormat, err)
	}

	if err := req.NewParser().Validate(t); err != nil {
		return nil, err
	}

	return t, nil
}

// Bind resolves the handler each entry names in handlers.
// Entries naming a missing handler wrap switchback.ErrNotExist.
func (t *Table) Bind(handlers map[string]http.HandlerFunc) ([]Route, error) {
	routes := make([]Route, 0, len(t.Routes))
	var errs []error
	for _, e := range t.Routes {
		h, ok := handlers[e.Handler]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: route %q: handler %q", switchback.ErrNotExist, e.Name, e.Handler))
			continue
		}

		route := Route{
			Name:     e.Name,
			Path:     e.Path,
			Aliases:  e.Aliases,
			Method:   strings.ToUpper(e.Method.String()),
			Headers:  pairs(e.Headers),
			Queries:  pairs(e.Queries),
			Consumes: e.Consumes,
			Produces: e.Produces,
			Handler:  h,
		}

		if e.Version != nil {
			route.Version = *e.Version
		}

		routes = append(routes, route)
	}

	return routes, errors.Join(errs...)
}

// HandleTable binds t to handlers and registers the resulting routes,
// through HandleVersioned when t declares a version and HandleRoutes otherwise.
func (r *Router) HandleTable(t *Table, handlers map[string]http.HandlerFunc, middlewares ...middleware.Adapter) error {
	routes, err := t.Bind(handlers)
	if err != nil {
		return fmt.Errorf("%w: %w", switchback.ErrBadConfig, err)
	}

	if t.Version != nil {
		return r.HandleVersioned(*t.Version, routes, middlewares...)
	}

	return r.HandleRoutes(routes, middlewares...)
}

// pairs flattens m into key/value pairs sorted by key.
func pairs(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, 2*len(m))
	for _, k := range keys {
		out = append(out, k, m[k])
	}

	return out
}
