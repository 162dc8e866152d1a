package router

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/munnerz/goautoneg"
)

// defaultContentType stands in for requests lacking a "Content-Type" header.
const defaultContentType = "application/octet-stream"

// consumes matches requests whose "Content-Type" media type is one of types.
// types may use wildcards, as in "text/*" or "*/*".
func consumes(types []string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			ct = defaultContentType
		}

		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return false
		}

		for _, t := range types {
			if mediaTypeMatches(strings.ToLower(t), mt) {
				return true
			}
		}

		return false
	}
}

// produces matches requests whose "Accept" header admits one of types.
// Requests without an "Accept" header accept anything.
func produces(types []string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		accept := r.Header.Get("Accept")
		if accept == "" {
			return true
		}

		return goautoneg.Negotiate(accept, types) != ""
	}
}

func mediaTypeMatches(pattern, mt string) bool {
	if pattern == "*/*" || pattern == mt {
		return true
	}

	typ, sub, ok := strings.Cut(pattern, "/")
	if !ok || sub != "*" {
		return false
	}

	mtyp, _, _ := strings.Cut(mt, "/")
	return typ == mtyp
}
