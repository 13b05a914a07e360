package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/analytics"
	"talentflow/internal/api/middleware"
	"talentflow/internal/llm"
	"talentflow/internal/logging"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

// Summarizer turns an analytics result into free text
type Summarizer interface {
	SummarizeAnalytics(ctx context.Context, result *models.AnalyticsResult) (string, error)
	GetProviderName() string
}

// AnalyticsHandler handles GET /analytics
func AnalyticsHandler(agg *analytics.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := agg.Overview(c.Request().Context())
		if err != nil {
			return analyticsError(err)
		}
		return c.JSON(http.StatusOK, result)
	}
}

// InsightsHandler handles GET /analytics/insights
func InsightsHandler(agg *analytics.Aggregator, summarizer Summarizer, logger logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if summarizer == nil {
			return utils.NewServiceUnavailableError("Insights are not configured")
		}

		ctx := c.Request().Context()
		result, err := agg.Overview(ctx)
		if err != nil {
			return analyticsError(err)
		}

		text, err := summarizer.SummarizeAnalytics(ctx, result)
		if errors.Is(err, llm.ErrUnavailable) {
			return utils.NewServiceUnavailableError("Insights are not available").WithCause(err)
		}
		if err != nil {
			logger.WithContext(ctx).WithError(err).Error("Insights generation failed", map[string]interface{}{
				"request_id": middleware.RequestID(c),
				"provider":   summarizer.GetProviderName(),
			})
			return utils.NewLLMError("the provider did not return insights").WithCause(err)
		}

		return c.JSON(http.StatusOK, models.InsightsResponse{
			Analytics: *result,
			Insights:  text,
			Provider:  summarizer.GetProviderName(),
		})
	}
}

func analyticsError(err error) error {
	switch {
	case errors.Is(err, tenant.ErrNoScope):
		return utils.NewUnauthorizedError("Missing organization scope").WithCause(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return utils.NewServiceUnavailableError("Request cancelled").WithCause(err)
	}
	return utils.NewInternalServerError("Failed to compute analytics").WithCause(err)
}
