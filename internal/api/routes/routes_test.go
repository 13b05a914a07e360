package routes_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/analytics"
	"talentflow/internal/api/middleware"
	"talentflow/internal/api/routes"
	"talentflow/internal/config"
	"talentflow/internal/hiring"
	"talentflow/internal/llm"
	"talentflow/internal/logging"
	"talentflow/internal/store/memory"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

const secret = "test-secret"

type server struct {
	e     *echo.Echo
	authn *middleware.Authenticator
}

func newServer(t *testing.T, llmManager *llm.Manager) *server {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.JWTSecret = secret
	cfg.Server.WriteTimeout = 0
	cfg.RateLimit.Enabled = false

	st := memory.New()
	st.SeedStaff(
		models.Staff{ID: "staff-hr", OrganizationID: "org-a", UserID: utils.Ptr("user-hr"), FirstName: "Hana", LastName: "Ross", Email: "hana@a.example"},
		models.Staff{ID: "staff-emp", OrganizationID: "org-a", UserID: utils.Ptr("user-emp"), FirstName: "Emil", LastName: "Park", Email: "emil@a.example"},
	)

	logger := logging.NewMultiLogger()
	e := echo.New()
	routes.SetupRoutes(e, cfg, routes.Dependencies{
		Hiring:    hiring.NewService(st, logger),
		Analytics: analytics.NewAggregator(st.Analytics(), logger),
		LLM:       llmManager,
		Store:     st,
		Logger:    logger,
	})
	return &server{e: e, authn: middleware.NewAuthenticator(secret, "")}
}

func (s *server) token(t *testing.T, org, user string, role tenant.Role) string {
	t.Helper()
	token, err := s.authn.Issue(tenant.Scope{OrganizationID: org, UserID: user, Role: role}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		payload = string(raw)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("cannot decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d: %s", rec.Code, want, rec.Body.String())
	}
}

func TestAuthentication(t *testing.T) {
	s := newServer(t, nil)
	expired, err := s.authn.Issue(tenant.Scope{OrganizationID: "org-a", UserID: "user-hr", Role: tenant.RoleHR}, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	forged, err := middleware.NewAuthenticator("another-secret", "").Issue(tenant.Scope{OrganizationID: "org-a", UserID: "user-hr", Role: tenant.RoleHR}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	for name, testcase := range map[string]struct {
		when string
		then int
	}{
		"missing token":     {when: "", then: http.StatusUnauthorized},
		"expired token":     {when: expired, then: http.StatusUnauthorized},
		"foreign signature": {when: forged, then: http.StatusUnauthorized},
		"garbage":           {when: "not-a-jwt", then: http.StatusUnauthorized},
		"valid token":       {when: s.token(t, "org-a", "user-hr", tenant.RoleHR), then: http.StatusOK},
	} {
		t.Run(name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/v1/jobs", testcase.when, nil)
			expectStatus(t, rec, testcase.then)

			if testcase.then == http.StatusUnauthorized {
				body := decode[models.ErrorResponse](t, rec)
				if body.Error != "unauthorized" || body.RequestID == "" {
					t.Errorf("unexpected error body: %+v", body)
				}
				if rec.Header().Get(echo.HeaderXRequestID) != body.RequestID {
					t.Errorf("request id header %q differs from body %q", rec.Header().Get(echo.HeaderXRequestID), body.RequestID)
				}
			}
		})
	}
}

func TestRoles(t *testing.T) {
	s := newServer(t, nil)
	employee := s.token(t, "org-a", "user-emp", tenant.RoleEmployee)

	for name, testcase := range map[string]struct {
		method, path string
		body         interface{}
	}{
		"create job":       {http.MethodPost, "/api/v1/jobs", models.CreateJobRequest{Title: "Engineer"}},
		"delete job":       {http.MethodDelete, "/api/v1/jobs/any", nil},
		"create candidate": {http.MethodPost, "/api/v1/candidates", models.CreateCandidateRequest{FirstName: "A", LastName: "B", Email: "a@b.example"}},
		"advance stage":    {http.MethodPatch, "/api/v1/applications/any/stage", models.AdvanceStageRequest{Stage: "SCREENING"}},
		"create interview": {http.MethodPost, "/api/v1/interviews", nil},
	} {
		t.Run("an employee cannot "+name, func(t *testing.T) {
			rec := s.do(t, testcase.method, testcase.path, employee, testcase.body)
			expectStatus(t, rec, http.StatusForbidden)
			if body := decode[models.ErrorResponse](t, rec); body.Error != "forbidden" {
				t.Errorf("error = %q", body.Error)
			}
		})
	}

	t.Run("an employee can read", func(t *testing.T) {
		expectStatus(t, s.do(t, http.MethodGet, "/api/v1/candidates", employee, nil), http.StatusOK)
	})
}

func TestPipelineOverHTTP(t *testing.T) {
	s := newServer(t, nil)
	hr := s.token(t, "org-a", "user-hr", tenant.RoleHR)
	employee := s.token(t, "org-a", "user-emp", tenant.RoleEmployee)
	outsider := s.token(t, "org-b", "user-b", tenant.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/v1/jobs", hr, models.CreateJobRequest{Title: "Backend Engineer", Status: models.JobStatusOpen})
	expectStatus(t, rec, http.StatusCreated)
	job := decode[models.Job](t, rec)
	if job.Type != models.JobTypeFullTime || job.ExperienceLevel != models.ExperienceMid {
		t.Errorf("defaults not applied: %+v", job)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/candidates", hr, models.CreateCandidateRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", JobID: &job.ID,
	})
	expectStatus(t, rec, http.StatusCreated)
	candidate := decode[models.CandidateDetail](t, rec)
	if len(candidate.Applications) != 1 || candidate.Applications[0].Stage != models.StageApplied {
		t.Fatalf("candidate applications = %+v", candidate.Applications)
	}
	appID := candidate.Applications[0].ID

	t.Run("another organization cannot see the application", func(t *testing.T) {
		expectStatus(t, s.do(t, http.MethodGet, "/api/v1/applications/"+appID, outsider, nil), http.StatusNotFound)
		expectStatus(t, s.do(t, http.MethodPatch, "/api/v1/applications/"+appID+"/stage", outsider,
			models.AdvanceStageRequest{Stage: "HIRED"}), http.StatusNotFound)
	})

	t.Run("an unknown stage is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/applications/"+appID+"/stage", hr, models.AdvanceStageRequest{Stage: "PROMOTED"})
		expectStatus(t, rec, http.StatusBadRequest)
		if body := decode[models.ErrorResponse](t, rec); body.Error != "validation_failed" {
			t.Errorf("error = %q", body.Error)
		}
	})

	t.Run("a second active application is a conflict", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/applications", hr, models.CreateApplicationRequest{CandidateID: candidate.ID, JobID: job.ID})
		expectStatus(t, rec, http.StatusConflict)
	})

	t.Run("stage names are case-insensitive", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/applications/"+appID+"/stage", hr, models.AdvanceStageRequest{Stage: "hired"})
		expectStatus(t, rec, http.StatusOK)
		app := decode[models.ApplicationDetail](t, rec)
		if app.Stage != models.StageHired || app.HiredAt == nil {
			t.Errorf("application = %+v", app.Application)
		}
		if app.Candidate == nil || app.Job == nil {
			t.Error("detail lacks candidate or job")
		}
	})

	t.Run("the job cannot be deleted while it has applications", func(t *testing.T) {
		expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, hr, nil), http.StatusConflict)
	})

	t.Run("the job detail shows its pipeline", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID, employee, nil)
		expectStatus(t, rec, http.StatusOK)
		detail := decode[models.JobDetail](t, rec)
		if detail.ApplicationCount != 1 || detail.Pipeline[models.StageHired] != 1 {
			t.Errorf("detail = %+v", detail)
		}
	})

	t.Run("an employee may add notes", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/candidates/"+candidate.ID+"/notes", employee, models.CreateNoteRequest{Content: "Strong systems background"})
		expectStatus(t, rec, http.StatusCreated)
		note := decode[models.NoteDetail](t, rec)
		if note.AuthorID != "staff-emp" {
			t.Errorf("author = %s", note.AuthorID)
		}
	})

	t.Run("analytics count the hire", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/analytics", employee, nil)
		expectStatus(t, rec, http.StatusOK)
		result := decode[models.AnalyticsResult](t, rec)
		if result.Overview.TotalJobs != 1 || result.Overview.RecentHires != 1 || result.Pipeline[models.StageHired] != 1 {
			t.Errorf("analytics = %+v", result)
		}

		rec = s.do(t, http.MethodGet, "/api/v1/analytics", outsider, nil)
		expectStatus(t, rec, http.StatusOK)
		if other := decode[models.AnalyticsResult](t, rec); other.Overview.TotalJobs != 0 {
			t.Errorf("analytics leak across organizations: %+v", other.Overview)
		}
	})

	t.Run("deleting the candidate removes its applications", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/v1/candidates/"+candidate.ID, hr, nil)
		expectStatus(t, rec, http.StatusOK)
		if msg := decode[models.MessageResponse](t, rec); msg.Message == "" {
			t.Error("empty message")
		}
		expectStatus(t, s.do(t, http.MethodGet, "/api/v1/applications/"+appID, hr, nil), http.StatusNotFound)
		expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, hr, nil), http.StatusOK)
	})
}

func TestInterviewsOverHTTP(t *testing.T) {
	s := newServer(t, nil)
	hr := s.token(t, "org-a", "user-hr", tenant.RoleHR)
	employee := s.token(t, "org-a", "user-emp", tenant.RoleEmployee)

	job := decode[models.Job](t, s.do(t, http.MethodPost, "/api/v1/jobs", hr, models.CreateJobRequest{Title: "Designer"}))
	candidate := decode[models.CandidateDetail](t, s.do(t, http.MethodPost, "/api/v1/candidates", hr, models.CreateCandidateRequest{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", JobID: &job.ID,
	}))

	rec := s.do(t, http.MethodPost, "/api/v1/interviews", hr, models.CreateInterviewRequest{
		CandidateID:   candidate.ID,
		JobID:         job.ID,
		InterviewerID: "staff-emp",
		ScheduledAt:   time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC),
		Duration:      45,
		Type:          models.InterviewVideo,
	})
	expectStatus(t, rec, http.StatusCreated)
	interview := decode[models.Interview](t, rec)
	if interview.Status != models.InterviewScheduled {
		t.Errorf("status = %s", interview.Status)
	}

	t.Run("a rating outside 1..5 is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/interviews/"+interview.ID+"/feedback", employee, models.FeedbackRequest{Feedback: "ok", Rating: 9})
		expectStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("feedback completes the interview", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/interviews/"+interview.ID+"/feedback", employee, models.FeedbackRequest{Feedback: "Great portfolio", Rating: 5})
		expectStatus(t, rec, http.StatusOK)
		got := decode[models.Interview](t, rec)
		if got.Status != models.InterviewCompleted || got.Rating == nil || *got.Rating != 5 {
			t.Errorf("interview = %+v", got)
		}
	})

	t.Run("list filters by status", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/interviews?status=completed", employee, nil)
		expectStatus(t, rec, http.StatusOK)
		if list := decode[[]models.Interview](t, rec); len(list) != 1 {
			t.Errorf("got %d interviews", len(list))
		}

		expectStatus(t, s.do(t, http.MethodGet, "/api/v1/interviews?status=bogus", employee, nil), http.StatusBadRequest)
	})
}

type failingSummarizer struct{}

func (failingSummarizer) SummarizeAnalytics(ctx context.Context, result *models.AnalyticsResult) (string, error) {
	return "", errors.New("upstream overloaded")
}

func (failingSummarizer) IsHealthy(ctx context.Context) error { return nil }

func (failingSummarizer) GetProviderName() string { return "failing" }

func TestInsights(t *testing.T) {
	t.Run("it is unavailable without a provider", func(t *testing.T) {
		s := newServer(t, nil)
		rec := s.do(t, http.MethodGet, "/api/v1/analytics/insights", s.token(t, "org-a", "user-hr", tenant.RoleHR), nil)
		expectStatus(t, rec, http.StatusServiceUnavailable)
	})

	t.Run("provider failures surface as a bad gateway", func(t *testing.T) {
		manager := llm.NewManagerWithProvider(config.Default(), failingSummarizer{}, logging.NewMultiLogger())
		s := newServer(t, manager)
		rec := s.do(t, http.MethodGet, "/api/v1/analytics/insights", s.token(t, "org-a", "user-hr", tenant.RoleHR), nil)
		expectStatus(t, rec, http.StatusBadGateway)
		if body := decode[models.ErrorResponse](t, rec); strings.Contains(body.Message+body.Detail, "overloaded") {
			t.Errorf("provider error leaked: %+v", body)
		}
	})
}

func TestPublicRoutes(t *testing.T) {
	s := newServer(t, nil)

	for path, want := range map[string]int{
		"/":             http.StatusOK,
		"/health":       http.StatusOK,
		"/health/live":  http.StatusOK,
		"/health/ready": http.StatusOK,
		"/nowhere":      http.StatusNotFound,
	} {
		t.Run(path, func(t *testing.T) {
			expectStatus(t, s.do(t, http.MethodGet, path, "", nil), want)
		})
	}
}
