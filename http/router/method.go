package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// A Method is an HTTP method a route table may declare.
type Method string

var _ switchback.Enumerable = Method("")

func (m Method) String() string { return string(m) }

// Valid asserts m is one of the methods routes are registered under.
func (m Method) Valid() error {
	switch strings.ToUpper(string(m)) {
	case http.MethodDelete,
		http.MethodGet,
		http.MethodHead,
		http.MethodOptions,
		http.MethodPatch,
		http.MethodPost,
		http.MethodPut:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a routable method", switchback.ErrNotValid, string(m))
	}
}
