package hiring

import (
	"context"
	"strings"

	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

func (s *Service) ListCandidates(ctx context.Context, filter store.CandidateFilter) ([]models.Candidate, error) {
	candidates, err := s.store.Candidates().List(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}
	return candidates, nil
}

func (s *Service) GetCandidate(ctx context.Context, id string) (*models.CandidateDetail, error) {
	return s.candidateDetail(ctx, id)
}

// CreateCandidate stores a new candidate. With a JobID the candidate and an
// APPLIED application are written together or not at all.
func (s *Service) CreateCandidate(ctx context.Context, req models.CreateCandidateRequest) (*models.CandidateDetail, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, utils.NewValidationError("firstName, lastName and email are required")
	}

	now := s.now()
	candidate := &models.Candidate{
		ID:              utils.NewID(),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           req.Phone,
		LinkedInURL:     req.LinkedInURL,
		PortfolioURL:    req.PortfolioURL,
		CurrentCompany:  req.CurrentCompany,
		CurrentTitle:    req.CurrentTitle,
		ExperienceYears: req.ExperienceYears,
		Skills:          req.Skills,
		Source:          req.Source,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if candidate.Skills == nil {
		candidate.Skills = []string{}
	}
	if candidate.Source == "" {
		candidate.Source = models.SourceDirect
	}

	var app *models.Application
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if req.JobID != nil {
			if _, err := tx.Jobs().Get(ctx, *req.JobID); err != nil {
				return err
			}
		}
		if err := tx.Candidates().Create(ctx, candidate); err != nil {
			return err
		}
		if req.JobID == nil {
			return nil
		}
		app = &models.Application{
			ID:          utils.NewID(),
			CandidateID: candidate.ID,
			JobID:       *req.JobID,
			Stage:       models.StageApplied,
			AppliedAt:   now,
			UpdatedAt:   now,
		}
		return tx.Applications().Create(ctx, app)
	})
	if err != nil {
		return nil, translate(err)
	}

	fields := map[string]interface{}{"candidate_id": candidate.ID, "source": string(candidate.Source)}
	if app != nil {
		fields["application_id"] = app.ID
		fields["job_id"] = app.JobID
	}
	s.changed(ctx)
	s.log(ctx).Info("candidate created", fields)

	return s.candidateDetail(ctx, candidate.ID)
}

func (s *Service) UpdateCandidate(ctx context.Context, id string, req models.UpdateCandidateRequest) (*models.Candidate, error) {
	candidate, err := s.store.Candidates().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if req.FirstName != nil {
		candidate.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		candidate.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		candidate.Email = strings.TrimSpace(*req.Email)
	}
	if candidate.FirstName == "" || candidate.LastName == "" || candidate.Email == "" {
		return nil, utils.NewValidationError("firstName, lastName and email must not be empty")
	}
	if req.Phone != nil {
		candidate.Phone = req.Phone
	}
	if req.LinkedInURL != nil {
		candidate.LinkedInURL = req.LinkedInURL
	}
	if req.PortfolioURL != nil {
		candidate.PortfolioURL = req.PortfolioURL
	}
	if req.CurrentCompany != nil {
		candidate.CurrentCompany = req.CurrentCompany
	}
	if req.CurrentTitle != nil {
		candidate.CurrentTitle = req.CurrentTitle
	}
	if req.ExperienceYears != nil {
		candidate.ExperienceYears = req.ExperienceYears
	}
	if req.Skills != nil {
		candidate.Skills = append([]string{}, (*req.Skills)...)
	}
	if req.Source != nil {
		candidate.Source = *req.Source
	}
	candidate.UpdatedAt = s.now()

	if err := s.store.Candidates().Update(ctx, candidate); err != nil {
		return nil, translate(err)
	}
	s.changed(ctx)
	return candidate, nil
}

// DeleteCandidate removes the candidate together with its applications, interviews and notes
func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	err := s.store.InTx(ctx, func(tx store.Store) error {
		return tx.Candidates().Delete(ctx, id)
	})
	if err != nil {
		return translate(err)
	}
	s.changed(ctx)
	s.log(ctx).Info("candidate deleted", map[string]interface{}{"candidate_id": id})
	return nil
}

func (s *Service) candidateDetail(ctx context.Context, id string) (*models.CandidateDetail, error) {
	candidate, err := s.store.Candidates().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	detail := &models.CandidateDetail{
		Candidate:    *candidate,
		Applications: []models.ApplicationDetail{},
		Interviews:   []models.InterviewDetail{},
		Notes:        []models.NoteDetail{},
	}

	r := newResolver(s.store)

	apps, err := s.store.Applications().List(ctx, store.ApplicationFilter{CandidateID: &id})
	if err != nil {
		return nil, translate(err)
	}
	for _, a := range apps {
		job, err := r.job(ctx, a.JobID)
		if err != nil {
			return nil, translate(err)
		}
		detail.Applications = append(detail.Applications, models.ApplicationDetail{Application: a, Job: job})
	}

	interviews, err := s.store.Interviews().List(ctx, store.InterviewFilter{CandidateID: &id})
	if err != nil {
		return nil, translate(err)
	}
	for _, iv := range interviews {
		d, err := r.interview(ctx, iv)
		if err != nil {
			return nil, translate(err)
		}
		d.Candidate = nil
		detail.Interviews = append(detail.Interviews, *d)
	}

	notes, err := s.store.Notes().ListByCandidate(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	for _, n := range notes {
		author, err := r.staff(ctx, n.AuthorID)
		if err != nil {
			return nil, translate(err)
		}
		detail.Notes = append(detail.Notes, models.NoteDetail{Note: n, Author: author})
	}

	return detail, nil
}
