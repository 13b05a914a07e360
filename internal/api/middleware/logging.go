package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/logging"
	"talentflow/internal/tenant"
	"talentflow/pkg/utils"
)

// RequestLogger logs one line per request once the handler returned
func RequestLogger(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}

			fields := map[string]interface{}{
				"request_id": RequestID(c),
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"latency":    utils.FormatDuration(time.Since(start)),
			}
			if scope, ok := tenant.FromContext(c.Request().Context()); ok {
				fields["organization_id"] = scope.OrganizationID
				fields["user_id"] = scope.UserID
			}

			switch status := c.Response().Status; {
			case status >= 500:
				logger.Error("Request failed", fields)
			case status >= 400:
				logger.Warn("Request rejected", fields)
			default:
				logger.Info("Request served", fields)
			}
			return nil
		}
	}
}
