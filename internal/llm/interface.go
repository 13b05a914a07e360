package llm

import (
	"context"

	"talentflow/pkg/models"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// SummarizeAnalytics turns an analytics overview into short recruiting insights
	SummarizeAnalytics(ctx context.Context, result *models.AnalyticsResult) (string, error)

	// IsHealthy checks if the LLM provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
