package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/bytes"

	"talentflow/internal/analytics"
	"talentflow/internal/api/handlers"
	"talentflow/internal/api/middleware"
	"talentflow/internal/config"
	"talentflow/internal/hiring"
	"talentflow/internal/llm"
	"talentflow/internal/logging"
	"talentflow/internal/tenant"
)

// Dependencies are the services served by the HTTP API.
// LLM and Cache are optional.
type Dependencies struct {
	Hiring    *hiring.Service
	Analytics *analytics.Aggregator
	LLM       *llm.Manager
	Store     handlers.Pinger
	Cache     handlers.Pinger
	Logger    logging.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(deps.Logger)

	limit := cfg.Server.BodyLimit
	bodyLimit, err := bytes.Parse(limit)
	if err != nil || bodyLimit <= 0 {
		deps.Logger.Warn("Invalid body limit, falling back to 1M", map[string]interface{}{"body_limit": limit})
		limit, bodyLimit = "1M", 1<<20
	}

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestValidation(bodyLimit))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.CORSConfig(cfg.Server.AllowOrigins))
	e.Use(echomiddleware.BodyLimit(limit))
	if cfg.Server.WriteTimeout > 0 {
		e.Use(middleware.TimeoutConfig(cfg.Server.WriteTimeout))
	}

	healthDeps := handlers.HealthDeps{
		Store:  deps.Store,
		Cache:  deps.Cache,
		Logger: deps.Logger,
	}
	var summarizer handlers.Summarizer
	if deps.LLM != nil {
		healthDeps.Insight = deps.LLM
		summarizer = deps.LLM
	}

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler())
		health.GET("/ready", handlers.ReadinessHandler(healthDeps))
		health.GET("/live", handlers.LivenessHandler())
	}
	e.GET("/status", handlers.StatusHandler(healthDeps))

	authn := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	v1Middleware := []echo.MiddlewareFunc{authn.Authenticate()}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewOrganizationLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		v1Middleware = append(v1Middleware, limiter.Middleware())
	}
	writer := middleware.RequireRole(tenant.RoleAdmin, tenant.RoleHR, tenant.RoleManager)

	// API v1 routes
	v1 := e.Group("/api/v1", v1Middleware...)
	{
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobsHandler(deps.Hiring))
			jobs.GET("/:id", handlers.GetJobHandler(deps.Hiring))
			jobs.POST("", handlers.CreateJobHandler(deps.Hiring), writer)
			jobs.PUT("/:id", handlers.UpdateJobHandler(deps.Hiring), writer)
			jobs.DELETE("/:id", handlers.DeleteJobHandler(deps.Hiring), writer)
		}

		candidates := v1.Group("/candidates")
		{
			candidates.GET("", handlers.ListCandidatesHandler(deps.Hiring))
			candidates.GET("/:id", handlers.GetCandidateHandler(deps.Hiring))
			candidates.POST("", handlers.CreateCandidateHandler(deps.Hiring), writer)
			candidates.PUT("/:id", handlers.UpdateCandidateHandler(deps.Hiring), writer)
			candidates.DELETE("/:id", handlers.DeleteCandidateHandler(deps.Hiring), writer)
			candidates.POST("/:id/notes", handlers.AddNoteHandler(deps.Hiring))
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", handlers.ListApplicationsHandler(deps.Hiring))
			applications.GET("/:id", handlers.GetApplicationHandler(deps.Hiring))
			applications.POST("", handlers.CreateApplicationHandler(deps.Hiring), writer)
			applications.PATCH("/:id/stage", handlers.AdvanceStageHandler(deps.Hiring), writer)
		}

		interviews := v1.Group("/interviews")
		{
			interviews.GET("", handlers.ListInterviewsHandler(deps.Hiring))
			interviews.POST("", handlers.CreateInterviewHandler(deps.Hiring), writer)
			interviews.PUT("/:id", handlers.UpdateInterviewHandler(deps.Hiring), writer)
			interviews.PATCH("/:id/feedback", handlers.FeedbackHandler(deps.Hiring))
		}

		analyticsGroup := v1.Group("/analytics")
		{
			analyticsGroup.GET("", handlers.AnalyticsHandler(deps.Analytics))
			analyticsGroup.GET("/insights", handlers.InsightsHandler(deps.Analytics, summarizer, deps.Logger))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "TalentFlow Hiring Pipeline",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
