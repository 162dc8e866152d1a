package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/switchback"
)

// ReportPanic reports panics to Sentry in environments that report panics.
// The panic is re-raised after reporting; whichever middleware encloses this one must recover it.
//
// In environments that do not report panics, NoopAdapter returns and this middleware does nothing.
func ReportPanic(env switchback.Environment) Adapter {
	if !env.ReportsPanics() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return sh.Handle(h)
	}
}
