package hiring

import (
	"context"

	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// resolver expands references for detail views, reading each row at most once
type resolver struct {
	store      store.Store
	jobs       map[string]*models.Job
	candidates map[string]*models.Candidate
	members    map[string]*models.Staff
}

func newResolver(st store.Store) *resolver {
	return &resolver{
		store:      st,
		jobs:       map[string]*models.Job{},
		candidates: map[string]*models.Candidate{},
		members:    map[string]*models.Staff{},
	}
}

func (r *resolver) job(ctx context.Context, id string) (*models.Job, error) {
	if j, ok := r.jobs[id]; ok {
		return j, nil
	}
	j, err := r.store.Jobs().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.jobs[id] = j
	return j, nil
}

func (r *resolver) candidate(ctx context.Context, id string) (*models.Candidate, error) {
	if c, ok := r.candidates[id]; ok {
		return c, nil
	}
	c, err := r.store.Candidates().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.candidates[id] = c
	return c, nil
}

func (r *resolver) staff(ctx context.Context, id string) (*models.Staff, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	m, err := r.store.Staff().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.members[id] = m
	return m, nil
}

func (r *resolver) interview(ctx context.Context, iv models.Interview) (*models.InterviewDetail, error) {
	candidate, err := r.candidate(ctx, iv.CandidateID)
	if err != nil {
		return nil, err
	}
	job, err := r.job(ctx, iv.JobID)
	if err != nil {
		return nil, err
	}
	interviewer, err := r.staff(ctx, iv.InterviewerID)
	if err != nil {
		return nil, err
	}
	return &models.InterviewDetail{Interview: iv, Candidate: candidate, Job: job, Interviewer: interviewer}, nil
}
