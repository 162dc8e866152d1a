/*
Package router routes HTTP requests to handlers that declare the API versions they serve.

A [Route] pairs a gorilla/mux path template and HTTP method with an [http.HandlerFunc].
A Route with a Version is registered under a rewritten template
requiring a leading major.minor segment, so "/items/{id}" serves "/1.0/items/5".
Routes without one are registered as declared; both kinds share one routing table.

Versioned routes sharing a method and template compete for requests.
Each serves only the requests whose version its [Condition] contains,
and when several could, the one declaring the fewest ranges wins.
Routes declaring equally many ranges are left to mux, which picks the first registered.
Requests no route serves fall through to the not found or method not allowed handlers.

The version a request matched on is available to handlers and middlewares
through [VersionFromContext].

Routes can also be declared in YAML and loaded with [LoadTable].
*/
package router
