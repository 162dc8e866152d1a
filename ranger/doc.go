/*
Package ranger initializes and manages a switchback app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] and any number of [RangerOption].
A route table, declaring versioned routes by handler name, is registered with [WithRouteTable].

[*Ranger.Guide] begins a switchback app's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000).

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a switchback app through environment variables
and by passing [RangerOption] to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application; labels exported metrics once slugged; default: switchback
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; CORS is off when unset
  - ENVIRONMENT: the environment the application is running in; cf. [switchback.Environment]
  - HOST: the host the application listens on; default: all interfaces
  - LOG_JSON: whether to log JSON in the Development environment, which otherwise logs text; default: false
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [switchback.NewLogLevel]
  - METRICS_PATH: the path Prometheus metrics are served over, or "-" to not serve them; default: /metrics
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT_BURST: the number of requests a client may burst; default: 20
  - RATE_LIMIT_RPS: the requests per second allowed a client, or 0 to not limit; default: 5
  - SENTRY_DSN: the DSN errors and panics are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
