// Package middleware holds the echo middleware shared by every route:
// request ids, request-scoped logging, tracing, CORS, rate limiting, panic
// recovery and the global error handler.
package middleware
