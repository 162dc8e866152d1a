/*
The middleware package defines what a middleware is in switchback and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectIPAddress
- LogRequest
- RateLimit
- Recover
- ReportPanic
- RequestID

The ranger package assembles the default chain; a hand-rolled one looks like:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(slogger),
		middleware.Recover(log),
		middleware.ReportPanic(env),
	}
*/
package middleware
