package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"talentflow/internal/config"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
)

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
		option.WithRequestTimeout(cfg.LLM.Timeout),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

func (cp *ClaudeProvider) model() anthropic.Model {
	if cp.config.LLM.Model == "" {
		return anthropic.ModelClaude3_7SonnetLatest
	}
	return anthropic.Model(cp.config.LLM.Model)
}

// SummarizeAnalytics asks Claude for a short reading of the organization's hiring funnel
func (cp *ClaudeProvider) SummarizeAnalytics(ctx context.Context, result *models.AnalyticsResult) (string, error) {
	startTime := time.Now()

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       cp.model(),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: BuildInsightsPrompt(result)},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	text := responseText(response)
	if text == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	cp.logger.WithContext(ctx).Info("Insights generated", map[string]interface{}{
		"provider":        "claude",
		"processing_time": time.Since(startTime).String(),
		"output_tokens":   response.Usage.OutputTokens,
	})
	return text, nil
}

func responseText(response *anthropic.Message) string {
	var parts []string
	for _, content := range response.Content {
		if content.Type == "text" {
			parts = append(parts, content.AsText().Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// BuildInsightsPrompt renders the analytics result as the instruction sent to the model
func BuildInsightsPrompt(result *models.AnalyticsResult) string {
	var b strings.Builder
	b.WriteString(`You are a recruiting analyst. Read the hiring metrics below and write at most five short bullet points
pointing out bottlenecks in the funnel, notable acquisition channels and anything unusual about time to hire.
Do not invent numbers that are not listed.

`)
	o := result.Overview
	fmt.Fprintf(&b, "Jobs: %d total, %d open\n", o.TotalJobs, o.OpenJobs)
	fmt.Fprintf(&b, "Candidates: %d\n", o.TotalCandidates)
	fmt.Fprintf(&b, "Applications: %d\n", o.TotalApplications)
	fmt.Fprintf(&b, "Hires in the recent window: %d\n", o.RecentHires)
	fmt.Fprintf(&b, "Average time to hire: %d days\n", o.AvgTimeToHire)

	b.WriteString("\nApplications by stage:\n")
	for _, stage := range models.Stages {
		if n, ok := result.Pipeline[stage]; ok {
			fmt.Fprintf(&b, "- %s: %d\n", stage, n)
		}
	}

	b.WriteString("\nCandidates by source:\n")
	sources := make([]string, 0, len(result.Sources))
	for source := range result.Sources {
		sources = append(sources, string(source))
	}
	sort.Strings(sources)
	for _, source := range sources {
		fmt.Fprintf(&b, "- %s: %d\n", source, result.Sources[models.Source(source)])
	}
	return b.String()
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	// Check if API key is configured
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	// Create a simple test request to check if the API is accessible
	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     cp.model(),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}
	return nil
}

// GetProviderName returns the name of the provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
