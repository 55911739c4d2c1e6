// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and writes JSON responses.
package handler
