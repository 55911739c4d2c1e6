package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/netcafe/internal/middleware"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks map[string]func(ctx context.Context) error
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s), checks: map[string]func(ctx context.Context) error{}}

	if s.DB != nil {
		h.checks["database"] = s.DB.Ping
	}
	if s.Store != nil {
		h.checks["store"] = func(ctx context.Context) error {
			_, err := s.Store.ExecuteScalar(ctx, "SELECT 1")
			return err
		}
	}
	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth runs the configured checks. Any failure answers 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	if cfg.Enabled {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		defer cancel()

		for _, name := range cfg.Checks {
			check, ok := h.checks[name]
			if !ok {
				continue
			}

			checkStart := time.Now()
			err := check(ctx)
			result := checkResult{Status: "healthy", ResponseTime: time.Since(checkStart).String()}

			if err != nil {
				result.Status = "unhealthy"
				result.Error = err.Error()

				logger.Error().Err(err).Str("check", name).Dur("response_time", time.Since(checkStart)).
					Msg("health check failed")
				h.recordFailure(name, err, time.Since(checkStart))
			}
			response.Checks[name] = result
		}
	}

	healthy := lo.EveryBy(lo.Values(response.Checks), func(r checkResult) bool {
		return r.Status == "healthy"
	})

	if !healthy {
		response.Status = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
