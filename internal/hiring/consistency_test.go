package hiring_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"talentflow/internal/hiring"
	"talentflow/internal/logging"
	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

// staleStore serves one fixed snapshot of an application, as seen by a
// request that read the row before a concurrent write landed.
type staleStore struct {
	store.Store
	snapshot models.Application
}

func (s staleStore) Applications() store.ApplicationRepository {
	return staleApplications{ApplicationRepository: s.Store.Applications(), snapshot: s.snapshot}
}

type staleApplications struct {
	store.ApplicationRepository
	snapshot models.Application
}

func (r staleApplications) Get(ctx context.Context, id string) (*models.Application, error) {
	app := r.snapshot
	return &app, nil
}

func TestAdvanceStageFromStaleRead(t *testing.T) {
	prepare := func(t *testing.T) (*fixture, *hiring.Service, string, time.Time) {
		t.Helper()
		f := setup(t)
		job := f.job(t)
		appID := f.candidate(t, &job.ID).Applications[0].ID

		snapshot, err := f.store.Applications().Get(f.ctx, appID)
		if err != nil {
			t.Fatal(err)
		}
		hiredAt := f.clock.now
		if _, err := f.service.AdvanceStage(f.ctx, appID, models.AdvanceStageRequest{Stage: "HIRED"}); err != nil {
			t.Fatal(err)
		}
		f.clock.advance(time.Hour)

		stale := hiring.NewService(staleStore{Store: f.store, snapshot: *snapshot}, logging.NewMultiLogger(), hiring.WithClock(f.clock.Now))
		return f, stale, appID, hiredAt
	}

	stored := func(t *testing.T, f *fixture, id string) *models.Application {
		t.Helper()
		app, err := f.store.Applications().Get(f.ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		return app
	}

	t.Run("a walk-back keeps the hire instant", func(t *testing.T) {
		f, stale, appID, hiredAt := prepare(t)

		if _, err := stale.AdvanceStage(f.ctx, appID, models.AdvanceStageRequest{Stage: "OFFER"}); err != nil {
			t.Fatal(err)
		}
		app := stored(t, f, appID)
		if app.Stage != models.StageOffer {
			t.Errorf("stage = %s, want OFFER", app.Stage)
		}
		if app.HiredAt == nil || !app.HiredAt.Equal(hiredAt) {
			t.Errorf("hiredAt = %v, want %v", app.HiredAt, hiredAt)
		}
	})

	t.Run("a second hire does not move the hire instant", func(t *testing.T) {
		f, stale, appID, hiredAt := prepare(t)

		if _, err := stale.AdvanceStage(f.ctx, appID, models.AdvanceStageRequest{Stage: "HIRED"}); err != nil {
			t.Fatal(err)
		}
		if app := stored(t, f, appID); app.HiredAt == nil || !app.HiredAt.Equal(hiredAt) {
			t.Errorf("hiredAt = %v, want %v", app.HiredAt, hiredAt)
		}
	})

	t.Run("a rejection of a hired application is a conflict", func(t *testing.T) {
		f, stale, appID, _ := prepare(t)

		_, err := stale.AdvanceStage(f.ctx, appID, models.AdvanceStageRequest{Stage: "REJECTED"})
		wantCode(t, err, http.StatusConflict)

		app := stored(t, f, appID)
		if app.Stage != models.StageHired || app.RejectedAt != nil {
			t.Errorf("application changed: stage=%s rejectedAt=%v", app.Stage, app.RejectedAt)
		}
	})
}

// failingStore refuses every application insert, inside transactions too
type failingStore struct {
	store.Store
}

func (s failingStore) Applications() store.ApplicationRepository {
	return failingApplications{s.Store.Applications()}
}

func (s failingStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.InTx(ctx, func(tx store.Store) error {
		return fn(failingStore{Store: tx})
	})
}

type failingApplications struct {
	store.ApplicationRepository
}

func (failingApplications) Create(ctx context.Context, app *models.Application) error {
	return errors.New("write failed")
}

func TestCreateCandidateRollsBackOnApplicationFailure(t *testing.T) {
	f := setup(t)
	job := f.job(t)
	svc := hiring.NewService(failingStore{Store: f.store}, logging.NewMultiLogger(), hiring.WithClock(f.clock.Now))

	_, err := svc.CreateCandidate(f.ctx, models.CreateCandidateRequest{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", JobID: &job.ID,
	})
	wantCode(t, err, http.StatusInternalServerError)

	candidates, err := f.store.Candidates().List(f.ctx, store.CandidateFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidate survived the failed transaction: %+v", candidates)
	}
}

type recordingNotifier struct{ organizations []string }

func (n *recordingNotifier) Changed(ctx context.Context) {
	org, _ := tenant.OrganizationID(ctx)
	n.organizations = append(n.organizations, org)
}

func TestChangeNotifier(t *testing.T) {
	f := setup(t)
	notifier := &recordingNotifier{}
	svc := hiring.NewService(f.store, logging.NewMultiLogger(), hiring.WithClock(f.clock.Now), hiring.WithChangeNotifier(notifier))

	job, err := svc.CreateJob(f.ctx, models.CreateJobRequest{Title: "Engineer"})
	if err != nil {
		t.Fatal(err)
	}
	candidate, err := svc.CreateCandidate(f.ctx, models.CreateCandidateRequest{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", JobID: &job.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AdvanceStage(f.ctx, candidate.Applications[0].ID, models.AdvanceStageRequest{Stage: "SCREENING"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddNote(f.ctx, candidate.ID, models.CreateNoteRequest{Content: "call back"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AdvanceStage(f.ctx, "missing", models.AdvanceStageRequest{Stage: "OFFER"}); err == nil {
		t.Fatal("expected an error")
	}

	if len(notifier.organizations) != 3 {
		t.Fatalf("notified %d times, want 3: %v", len(notifier.organizations), notifier.organizations)
	}
	for _, org := range notifier.organizations {
		if org != "org-a" {
			t.Errorf("notified for %q", org)
		}
	}
}
