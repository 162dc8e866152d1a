package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/version"
)

// VersionVar names the path variable holding the requested version in a versioned template.
const VersionVar = "version"

// VersionedPath rewrites path so it requires a leading major.minor segment:
// "/items/{id}" becomes "/{version:[0-9]+\.[0-9]+}/items/{id}".
func VersionedPath(path string) string {
	return "/{" + VersionVar + `:[0-9]+\.[0-9]+}/` + strings.TrimPrefix(path, "/")
}

// VersionFromContext retrieves the version a versioned route matched the request on.
func VersionFromContext(ctx context.Context) (version.Version, bool) {
	v, ok := ctx.Value(switchback.APIVersionKey).(version.Version)
	return v, ok
}

// shortVersion formats v the way it appears in request paths.
func shortVersion(v version.Version) string { return fmt.Sprintf("%d.%d", v.Major(), v.Minor()) }

// versionOf extracts the requested version from req's path,
// looking past the literal prefix a subrouter was mounted on.
func versionOf(prefix string, req *http.Request) (version.Version, bool) {
	path := req.URL.Path
	if prefix != "" {
		if !strings.HasPrefix(path, prefix) {
			return version.Version{}, false
		}

		path = strings.TrimPrefix(path, prefix)
	}

	return RequestVersion(path)
}
