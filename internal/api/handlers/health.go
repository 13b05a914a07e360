package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/logging"
	"talentflow/pkg/models"
)

const version = "1.0.0"

var startTime = time.Now()

// Pinger is a dependency whose reachability is reported by the health endpoints
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthDeps are the dependencies probed by ReadinessHandler and StatusHandler.
// Cache may be nil when Redis is disabled.
type HealthDeps struct {
	Store   Pinger
	Cache   Pinger
	Insight interface{ IsHealthy() bool }
	Logger  logging.Logger
}

func (d HealthDeps) checks(ctx context.Context) (map[string]string, bool) {
	checks := map[string]string{"api": "ok"}
	ready := true

	if d.Store != nil {
		if err := d.Store.Ping(ctx); err != nil {
			checks["store"] = "unavailable"
			ready = false
			d.Logger.WithError(err).Warn("Store health check failed")
		} else {
			checks["store"] = "ok"
		}
	}

	if d.Cache == nil {
		checks["cache"] = "disabled"
	} else if err := d.Cache.Ping(ctx); err != nil {
		// analytics fall back to the store, so a lost cache does not make the service unready
		checks["cache"] = "degraded"
		d.Logger.WithError(err).Warn("Cache health check failed")
	} else {
		checks["cache"] = "ok"
	}

	if err := logging.GlobalHealth(); err != nil {
		checks["logging"] = "degraded"
	} else {
		checks["logging"] = "ok"
	}

	switch {
	case d.Insight == nil:
		checks["llm"] = "disabled"
	case d.Insight.IsHealthy():
		checks["llm"] = "ok"
	default:
		checks["llm"] = "unavailable"
	}

	return checks, ready
}

// HealthHandler handles health check requests
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    map[string]string{"api": "ok"},
		})
	}
}

// ReadinessHandler handles readiness probe requests. It answers 503 while the store is unreachable.
func ReadinessHandler(deps HealthDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		checks, ready := deps.checks(ctx)
		response := models.HealthResponse{
			Status:    "ready",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}
		if !ready {
			response.Status = "not_ready"
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		return c.JSON(http.StatusOK, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "alive",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
		})
	}
}

// StatusHandler provides detailed service status. It always answers 200.
func StatusHandler(deps HealthDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		checks, ready := deps.checks(ctx)
		status := "operational"
		if !ready {
			status = "degraded"
		}
		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}
