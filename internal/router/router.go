// Package router builds the echo instance: global middleware, system
// routes and the v1 API.
package router

import (
	"github.com/deppfellow/netcafe/internal/handler"
	"github.com/deppfellow/netcafe/internal/middleware"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires handlers and middleware. Middleware order matters:
// the request id must exist before the context logger is built, and the
// New Relic transaction before either is decorated.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerV1Routes(v1, h)

	return router
}
