package router

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// A group collects the versioned routes sharing a rewritten template, whatever their methods.
// Only one member serves a given request: the one with the fewest ranges among
// the members fully matching it, with ties going to the first registered.
type group struct {
	prefix  string
	members []*candidate
}

// A candidate is one member of a group.
// detached mirrors the member's predicates, method included, outside any router,
// so other members can ask whether it matches a request.
type candidate struct {
	cond     Condition
	method   string
	detached *mux.Route
}

func (reg *registry) group(template, prefix string) *group {
	g, ok := reg.groups[template]
	if !ok {
		g = &group{prefix: prefix}
		reg.groups[template] = g
	}

	return g
}

// serves matches requests whose version cond serves.
func (g *group) serves(cond Condition) mux.MatcherFunc {
	return func(req *http.Request, _ *mux.RouteMatch) bool {
		v, ok := versionOf(g.prefix, req)
		return ok && cond.Matches(v)
	}
}

// selects matches requests c serves unless a more specific member of g matches them too.
//
// Requests using another method are left for mux's method matcher to reject,
// so they get a 405 rather than a 404.
func (g *group) selects(c *candidate) mux.MatcherFunc {
	serves := g.serves(c.cond)
	return func(req *http.Request, match *mux.RouteMatch) bool {
		if !serves(req, match) {
			return false
		}

		if c.method != "" && !strings.EqualFold(req.Method, c.method) {
			return true
		}

		for _, other := range g.members {
			if other == c || other.cond.Compare(c.cond, req) >= 0 {
				continue
			}

			if other.detached.Match(req, new(mux.RouteMatch)) {
				return false
			}
		}

		return true
	}
}
