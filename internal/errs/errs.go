// Package errs defines the errors returned to API clients.
//
// Services return *HTTPError for failures the caller can act on
// (unknown computer, seat already taken, no open billing). Anything
// else reaching the HTTP edge is treated as internal.
package errs
