package hiring

import (
	"context"
	"errors"
	"time"

	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

var (
	// ErrAlreadyHired rejects moving a hired application to REJECTED
	ErrAlreadyHired = errors.New("application was already hired")

	// ErrAlreadyRejected rejects moving a rejected application to HIRED
	ErrAlreadyRejected = errors.New("application was already rejected")
)

// ApplyStage moves app to next at the instant now.
//
// Any stage may follow any other. Entering HIRED stamps HiredAt once and
// entering REJECTED stamps RejectedAt once while always replacing the
// rejection reason. Timestamps are never cleared, so an application that
// carries one of HiredAt and RejectedAt cannot gain the other.
func ApplyStage(app models.Application, next models.Stage, reason *string, now time.Time) (models.Application, error) {
	switch next {
	case models.StageHired:
		if app.RejectedAt != nil {
			return app, ErrAlreadyRejected
		}
		if app.HiredAt == nil {
			app.HiredAt = &now
		}
	case models.StageRejected:
		if app.HiredAt != nil {
			return app, ErrAlreadyHired
		}
		if app.RejectedAt == nil {
			app.RejectedAt = &now
		}
		app.RejectionReason = reason
	}
	app.Stage = next
	app.UpdatedAt = now
	return app, nil
}

func (s *Service) ListApplications(ctx context.Context, filter store.ApplicationFilter) ([]models.Application, error) {
	apps, err := s.store.Applications().List(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}
	return apps, nil
}

// GetApplication returns the application with its candidate and job
func (s *Service) GetApplication(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	app, err := s.store.Applications().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return s.applicationDetail(ctx, *app)
}

// CreateApplication applies an existing candidate to an existing job.
// A candidate holds at most one application per job outside the terminal stages.
func (s *Service) CreateApplication(ctx context.Context, req models.CreateApplicationRequest) (*models.Application, error) {
	if _, err := s.store.Candidates().Get(ctx, req.CandidateID); err != nil {
		return nil, translate(err)
	}
	if _, err := s.store.Jobs().Get(ctx, req.JobID); err != nil {
		return nil, translate(err)
	}

	existing, err := s.store.Applications().List(ctx, store.ApplicationFilter{CandidateID: &req.CandidateID, JobID: &req.JobID})
	if err != nil {
		return nil, translate(err)
	}
	for _, a := range existing {
		if !a.Stage.IsTerminal() {
			return nil, utils.NewConflictError("Candidate already has an active application for this job")
		}
	}

	now := s.now()
	app := &models.Application{
		ID:          utils.NewID(),
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Stage:       models.StageApplied,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Applications().Create(ctx, app); err != nil {
		return nil, translate(err)
	}

	s.changed(ctx)
	s.log(ctx).Info("application created", map[string]interface{}{
		"application_id": app.ID,
		"candidate_id":   app.CandidateID,
		"job_id":         app.JobID,
	})
	return app, nil
}

// AdvanceStage moves an application to the requested stage
func (s *Service) AdvanceStage(ctx context.Context, id string, req models.AdvanceStageRequest) (*models.ApplicationDetail, error) {
	next, err := models.ParseStage(req.Stage)
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	app, err := s.store.Applications().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	previous := app.Stage

	updated, err := ApplyStage(*app, next, req.RejectionReason, s.now())
	switch {
	case errors.Is(err, ErrAlreadyHired), errors.Is(err, ErrAlreadyRejected):
		return nil, utils.NewConflictError("Cannot move application to " + string(next)).WithCause(err)
	case err != nil:
		return nil, translate(err)
	}

	if err := s.store.Applications().Update(ctx, &updated); err != nil {
		return nil, translate(err)
	}

	s.changed(ctx)
	s.log(ctx).Info("application stage changed", map[string]interface{}{
		"application_id": updated.ID,
		"from":           string(previous),
		"to":             string(updated.Stage),
	})
	return s.applicationDetail(ctx, updated)
}

func (s *Service) applicationDetail(ctx context.Context, app models.Application) (*models.ApplicationDetail, error) {
	candidate, err := s.store.Candidates().Get(ctx, app.CandidateID)
	if err != nil {
		return nil, translate(err)
	}
	job, err := s.store.Jobs().Get(ctx, app.JobID)
	if err != nil {
		return nil, translate(err)
	}
	return &models.ApplicationDetail{Application: app, Candidate: candidate, Job: job}, nil
}
