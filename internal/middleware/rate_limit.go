package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/deppfellow/netcafe/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// limiterIdleExpiry drops the limiter of a client that has been quiet this long.
const limiterIdleExpiry = 3 * time.Minute

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit throttles each client IP to Server.RateLimit requests per
// second. A zero rate disables it.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	rps := r.server.Config.Server.RateLimit
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: newIPLimiterStore(rate.Limit(rps), burstFor(rps), time.Now),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

func burstFor(rps float64) int {
	if rps < 1 {
		return 1
	}
	return int(rps)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiterStore keeps one token bucket per client.
type ipLimiterStore struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	now         func() time.Time
	visitors    map[string]*visitor
	lastCleanup time.Time
}

func newIPLimiterStore(limit rate.Limit, burst int, now func() time.Time) *ipLimiterStore {
	return &ipLimiterStore{
		limit:       limit,
		burst:       burst,
		now:         now,
		visitors:    make(map[string]*visitor),
		lastCleanup: now(),
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *ipLimiterStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	v, ok := s.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[identifier] = v
	}
	v.lastSeen = now

	if now.Sub(s.lastCleanup) > limiterIdleExpiry {
		for id, other := range s.visitors {
			if now.Sub(other.lastSeen) > limiterIdleExpiry {
				delete(s.visitors, id)
			}
		}
		s.lastCleanup = now
	}

	return v.limiter.AllowN(now, 1), nil
}
