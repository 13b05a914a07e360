package memory

import (
	"context"
	"time"

	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

type analytics struct{ s *Store }

func (r *analytics) CountJobs(ctx context.Context, status *models.JobStatus) (int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, j := range r.s.st.jobs {
		if j.OrganizationID == org && (status == nil || j.Status == *status) {
			n++
		}
	}
	return n, nil
}

func (r *analytics) CountCandidates(ctx context.Context) (int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, c := range r.s.st.candidates {
		if c.OrganizationID == org {
			n++
		}
	}
	return n, nil
}

func (r *analytics) CountApplications(ctx context.Context) (int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, a := range r.s.st.applications {
		if a.OrganizationID == org {
			n++
		}
	}
	return n, nil
}

func (r *analytics) CountApplicationsByStage(ctx context.Context) (map[models.Stage]int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[models.Stage]int{}
	for _, a := range r.s.st.applications {
		if a.OrganizationID == org {
			counts[a.Stage]++
		}
	}
	return counts, nil
}

func (r *analytics) CountHiredSince(ctx context.Context, since time.Time) (int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, a := range r.s.st.applications {
		if a.OrganizationID == org && a.HiredAt != nil && !a.HiredAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *analytics) CountCandidatesBySource(ctx context.Context) (map[models.Source]int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[models.Source]int{}
	for _, c := range r.s.st.candidates {
		if c.OrganizationID == org {
			counts[c.Source]++
		}
	}
	return counts, nil
}

func (r *analytics) HirePairs(ctx context.Context) ([]models.HirePair, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pairs := []models.HirePair{}
	for _, a := range r.s.st.applications {
		if a.OrganizationID == org && a.Stage == models.StageHired && a.HiredAt != nil {
			pairs = append(pairs, models.HirePair{AppliedAt: a.AppliedAt, HiredAt: *a.HiredAt})
		}
	}
	return pairs, nil
}
