// Package middleware holds the echo middleware shared by every route:
// request ids, request-scoped logging, New Relic tracing, per-client
// rate limiting, and the global error handler.
package middleware
