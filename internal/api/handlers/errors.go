package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/middleware"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

// HTTPErrorHandler renders every error returned by a handler as models.ErrorResponse.
// Causes of internal errors are logged and never sent to the client.
func HTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ce := toCustomError(err)
		requestID := middleware.RequestID(c)

		if ce.Code >= http.StatusInternalServerError {
			logger.WithContext(c.Request().Context()).WithError(err).Error("Request error", map[string]interface{}{
				"request_id": requestID,
				"path":       c.Request().URL.Path,
				"kind":       ce.Kind,
			})
		}

		response := models.ErrorResponse{
			Error:     ce.Kind,
			Message:   ce.Message,
			Detail:    ce.Detail,
			RequestID: requestID,
			Timestamp: time.Now(),
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(ce.Code)
		} else {
			writeErr = c.JSON(ce.Code, response)
		}
		if writeErr != nil {
			logger.WithError(writeErr).Error("Failed to write error response")
		}
	}
}

func toCustomError(err error) *utils.CustomError {
	if ce, ok := utils.AsCustomError(err); ok {
		return ce
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
		switch he.Code {
		case http.StatusNotFound:
			return utils.NewNotFoundError(message)
		case http.StatusUnauthorized:
			return utils.NewUnauthorizedError(message)
		case http.StatusForbidden:
			return utils.NewForbiddenError(message)
		case http.StatusTooManyRequests:
			return utils.NewTooManyRequestsError(message)
		case http.StatusServiceUnavailable:
			return utils.NewServiceUnavailableError(message)
		}
		if he.Code < http.StatusInternalServerError {
			return &utils.CustomError{Code: he.Code, Kind: "invalid_request", Message: message}
		}
	}

	return utils.NewInternalServerError("An unexpected error occurred").WithCause(err)
}
