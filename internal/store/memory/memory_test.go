package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentflow/internal/store"
	"talentflow/internal/store/memory"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

func orgContext(org string) context.Context {
	return tenant.WithScope(context.Background(), tenant.Scope{OrganizationID: org, UserID: "user-" + org, Role: tenant.RoleHR})
}

func seeded(t *testing.T) (*memory.Store, context.Context) {
	t.Helper()
	s := memory.New()
	s.SeedStaff(models.Staff{ID: "staff-1", OrganizationID: "org-a", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	s.SeedDepartments(models.Department{ID: "dep-1", OrganizationID: "org-a", Name: "Engineering"})

	ctx := orgContext("org-a")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Jobs().Create(ctx, &models.Job{ID: "job-1", Title: "Engineer", Status: models.JobStatusOpen, CreatedAt: base}); err != nil {
		t.Fatal(err)
	}
	if err := s.Candidates().Create(ctx, &models.Candidate{ID: "cand-1", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Source: models.SourceReferral, CreatedAt: base}); err != nil {
		t.Fatal(err)
	}
	if err := s.Applications().Create(ctx, &models.Application{ID: "app-1", CandidateID: "cand-1", JobID: "job-1", Stage: models.StageApplied, AppliedAt: base}); err != nil {
		t.Fatal(err)
	}
	return s, ctx
}

func TestTenantIsolation(t *testing.T) {
	s, _ := seeded(t)
	other := orgContext("org-b")

	if _, err := s.Applications().Get(other, "app-1"); !errors.Is(err, store.ErrMissing) {
		t.Errorf("cross tenant get: got %v, want ErrMissing", err)
	}
	if err := s.Applications().Update(other, &models.Application{ID: "app-1", Stage: models.StageHired}); !errors.Is(err, store.ErrMissing) {
		t.Errorf("cross tenant update: got %v, want ErrMissing", err)
	}
	jobs, err := s.Jobs().List(other, store.JobFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Errorf("org-b sees %d jobs of org-a", len(jobs))
	}
	if _, err := s.Jobs().List(context.Background(), store.JobFilter{}); !errors.Is(err, tenant.ErrNoScope) {
		t.Errorf("unscoped list: got %v, want ErrNoScope", err)
	}
}

func TestDeletePolicies(t *testing.T) {
	t.Run("a job referenced by an application cannot be deleted", func(t *testing.T) {
		s, ctx := seeded(t)

		err := s.Jobs().Delete(ctx, "job-1")
		if !errors.Is(err, store.ErrConflict) {
			t.Fatalf("got %v, want ErrConflict", err)
		}
		if _, err := s.Jobs().Get(ctx, "job-1"); err != nil {
			t.Errorf("job disappeared: %v", err)
		}
	})

	t.Run("deleting a candidate removes its applications, interviews and notes", func(t *testing.T) {
		s, ctx := seeded(t)
		if err := s.Interviews().Create(ctx, &models.Interview{
			ID: "iv-1", CandidateID: "cand-1", JobID: "job-1", InterviewerID: "staff-1",
			Duration: 30, Type: models.InterviewPhone, Status: models.InterviewScheduled,
		}); err != nil {
			t.Fatal(err)
		}
		if err := s.Notes().Create(ctx, &models.Note{ID: "note-1", CandidateID: "cand-1", AuthorID: "staff-1", Content: "strong"}); err != nil {
			t.Fatal(err)
		}

		if err := s.Candidates().Delete(ctx, "cand-1"); err != nil {
			t.Fatal(err)
		}

		apps, _ := s.Applications().List(ctx, store.ApplicationFilter{})
		ivs, _ := s.Interviews().List(ctx, store.InterviewFilter{})
		ns, _ := s.Notes().ListByCandidate(ctx, "cand-1")
		if len(apps)+len(ivs)+len(ns) != 0 {
			t.Errorf("dangling rows: %d applications, %d interviews, %d notes", len(apps), len(ivs), len(ns))
		}
		// the job is free to go once nothing references it
		if err := s.Jobs().Delete(ctx, "job-1"); err != nil {
			t.Errorf("job delete after cascade: %v", err)
		}
	})
}

func TestInTx(t *testing.T) {
	t.Run("a failing transaction leaves no trace", func(t *testing.T) {
		s, ctx := seeded(t)
		boom := errors.New("boom")

		err := s.InTx(ctx, func(tx store.Store) error {
			if err := tx.Candidates().Create(ctx, &models.Candidate{ID: "cand-2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"}); err != nil {
				return err
			}
			if err := tx.Applications().Create(ctx, &models.Application{ID: "app-2", CandidateID: "cand-2", JobID: "job-1", Stage: models.StageApplied}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("got %v, want boom", err)
		}
		if _, err := s.Candidates().Get(ctx, "cand-2"); !errors.Is(err, store.ErrMissing) {
			t.Errorf("candidate leaked out of rolled back transaction: %v", err)
		}
		if _, err := s.Applications().Get(ctx, "app-2"); !errors.Is(err, store.ErrMissing) {
			t.Errorf("application leaked out of rolled back transaction: %v", err)
		}
	})

	t.Run("a successful transaction is visible afterwards", func(t *testing.T) {
		s, ctx := seeded(t)

		err := s.InTx(ctx, func(tx store.Store) error {
			return tx.Candidates().Create(ctx, &models.Candidate{ID: "cand-2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Candidates().Get(ctx, "cand-2"); err != nil {
			t.Errorf("committed candidate not found: %v", err)
		}
	})
}

func TestFilters(t *testing.T) {
	s, ctx := seeded(t)
	if err := s.Candidates().Create(ctx, &models.Candidate{ID: "cand-2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Source: models.SourceLinkedIn}); err != nil {
		t.Fatal(err)
	}

	open := models.JobStatusOpen
	closed := models.JobStatusClosed
	jobID := "job-1"
	linkedin := models.SourceLinkedIn

	for name, testcase := range map[string]struct {
		when func() (int, error)
		then int
	}{
		"jobs by open status": {
			when: func() (int, error) { r, err := s.Jobs().List(ctx, store.JobFilter{Status: &open}); return len(r), err },
			then: 1,
		},
		"jobs by closed status": {
			when: func() (int, error) { r, err := s.Jobs().List(ctx, store.JobFilter{Status: &closed}); return len(r), err },
			then: 0,
		},
		"candidates applied to a job": {
			when: func() (int, error) {
				r, err := s.Candidates().List(ctx, store.CandidateFilter{JobID: &jobID})
				return len(r), err
			},
			then: 1,
		},
		"candidates by source": {
			when: func() (int, error) {
				r, err := s.Candidates().List(ctx, store.CandidateFilter{Source: &linkedin})
				return len(r), err
			},
			then: 1,
		},
		"all candidates": {
			when: func() (int, error) { r, err := s.Candidates().List(ctx, store.CandidateFilter{}); return len(r), err },
			then: 2,
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := testcase.when()
			if err != nil {
				t.Fatal(err)
			}
			if got != testcase.then {
				t.Errorf("got %d, want %d", got, testcase.then)
			}
		})
	}
}

func TestReferenceChecks(t *testing.T) {
	s, ctx := seeded(t)

	err := s.Interviews().Create(ctx, &models.Interview{ID: "iv-1", CandidateID: "cand-1", JobID: "job-1", InterviewerID: "nobody"})
	var missing store.Missing
	if !errors.As(err, &missing) || missing.Table != "staff" {
		t.Errorf("got %v, want missing staff", err)
	}

	dep := "dep-x"
	err = s.Jobs().Create(ctx, &models.Job{ID: "job-2", Title: "x", DepartmentID: &dep})
	if !errors.As(err, &missing) || missing.Table != "departments" {
		t.Errorf("got %v, want missing department", err)
	}
}
