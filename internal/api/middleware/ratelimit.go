package middleware

import (
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"talentflow/internal/tenant"
	"talentflow/pkg/utils"
)

// OrganizationLimiter keeps one token bucket per organization
type OrganizationLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

func NewOrganizationLimiter(requestsPerSecond float64, burst int) *OrganizationLimiter {
	if burst < 1 {
		burst = 1
	}
	return &OrganizationLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter returns the bucket of org, creating it on first use
func (l *OrganizationLimiter) getLimiter(org string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[org]
	if !exists {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[org] = limiter
	}
	return limiter
}

// Allow reports whether org may issue one more request now
func (l *OrganizationLimiter) Allow(org string) bool {
	return l.getLimiter(org).Allow()
}

// Middleware must run after authentication; unscoped requests pass untouched
func (l *OrganizationLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			org, err := tenant.OrganizationID(c.Request().Context())
			if err == nil && !l.Allow(org) {
				return utils.NewTooManyRequestsError("Rate limit exceeded for organization")
			}
			return next(c)
		}
	}
}
