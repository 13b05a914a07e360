package memory

import (
	"context"
	"sort"

	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

type jobs struct{ s *Store }

func (r *jobs) List(ctx context.Context, filter store.JobFilter) ([]models.Job, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Job{}
	for _, j := range r.s.st.jobs {
		if j.OrganizationID != org {
			continue
		}
		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}
		if filter.DepartmentID != nil && (j.DepartmentID == nil || *j.DepartmentID != *filter.DepartmentID) {
			continue
		}
		result = append(result, j)
	}
	sort.Slice(result, func(i, k int) bool {
		return newerFirst(result[i].CreatedAt.UnixNano(), result[k].CreatedAt.UnixNano(), result[i].ID, result[k].ID)
	})
	return result, nil
}

func (r *jobs) Get(ctx context.Context, id string) (*models.Job, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.st.jobs[id]
	if !ok || j.OrganizationID != org {
		return nil, store.Missing{Table: "jobs", Identity: id}
	}
	return &j, nil
}

func (r *jobs) Create(ctx context.Context, job *models.Job) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.jobs[job.ID]; ok {
		return store.Conflict{Table: "jobs", Identity: job.ID, Reason: "duplicate id"}
	}
	if err := r.s.st.checkDepartment(org, job.DepartmentID); err != nil {
		return err
	}
	job.OrganizationID = org
	r.s.st.jobs[job.ID] = *job
	return nil
}

func (r *jobs) Update(ctx context.Context, job *models.Job) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.st.jobs[job.ID]
	if !ok || current.OrganizationID != org {
		return store.Missing{Table: "jobs", Identity: job.ID}
	}
	if err := r.s.st.checkDepartment(org, job.DepartmentID); err != nil {
		return err
	}
	job.OrganizationID = org
	r.s.st.jobs[job.ID] = *job
	return nil
}

func (r *jobs) Delete(ctx context.Context, id string) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.st.jobs[id]
	if !ok || j.OrganizationID != org {
		return store.Missing{Table: "jobs", Identity: id}
	}
	for _, a := range r.s.st.applications {
		if a.JobID == id {
			return store.Conflict{Table: "jobs", Identity: id, Reason: "referenced by applications"}
		}
	}
	for _, iv := range r.s.st.interviews {
		if iv.JobID == id {
			return store.Conflict{Table: "jobs", Identity: id, Reason: "referenced by interviews"}
		}
	}
	delete(r.s.st.jobs, id)
	return nil
}

type candidates struct{ s *Store }

func (r *candidates) List(ctx context.Context, filter store.CandidateFilter) ([]models.Candidate, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var applied map[string]bool
	if filter.JobID != nil {
		applied = map[string]bool{}
		for _, a := range r.s.st.applications {
			if a.OrganizationID == org && a.JobID == *filter.JobID {
				applied[a.CandidateID] = true
			}
		}
	}

	result := []models.Candidate{}
	for _, c := range r.s.st.candidates {
		if c.OrganizationID != org {
			continue
		}
		if filter.Source != nil && c.Source != *filter.Source {
			continue
		}
		if applied != nil && !applied[c.ID] {
			continue
		}
		result = append(result, copyCandidate(c))
	}
	sort.Slice(result, func(i, k int) bool {
		return newerFirst(result[i].CreatedAt.UnixNano(), result[k].CreatedAt.UnixNano(), result[i].ID, result[k].ID)
	})
	return result, nil
}

func (r *candidates) Get(ctx context.Context, id string) (*models.Candidate, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.st.candidates[id]
	if !ok || c.OrganizationID != org {
		return nil, store.Missing{Table: "candidates", Identity: id}
	}
	c = copyCandidate(c)
	return &c, nil
}

func (r *candidates) Create(ctx context.Context, candidate *models.Candidate) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.candidates[candidate.ID]; ok {
		return store.Conflict{Table: "candidates", Identity: candidate.ID, Reason: "duplicate id"}
	}
	candidate.OrganizationID = org
	r.s.st.candidates[candidate.ID] = copyCandidate(*candidate)
	return nil
}

func (r *candidates) Update(ctx context.Context, candidate *models.Candidate) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.st.candidates[candidate.ID]
	if !ok || current.OrganizationID != org {
		return store.Missing{Table: "candidates", Identity: candidate.ID}
	}
	candidate.OrganizationID = org
	r.s.st.candidates[candidate.ID] = copyCandidate(*candidate)
	return nil
}

func (r *candidates) Delete(ctx context.Context, id string) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.st.candidates[id]
	if !ok || c.OrganizationID != org {
		return store.Missing{Table: "candidates", Identity: id}
	}
	for k, a := range r.s.st.applications {
		if a.CandidateID == id {
			delete(r.s.st.applications, k)
		}
	}
	for k, iv := range r.s.st.interviews {
		if iv.CandidateID == id {
			delete(r.s.st.interviews, k)
		}
	}
	for k, n := range r.s.st.notes {
		if n.CandidateID == id {
			delete(r.s.st.notes, k)
		}
	}
	delete(r.s.st.candidates, id)
	return nil
}

type applications struct{ s *Store }

func (r *applications) List(ctx context.Context, filter store.ApplicationFilter) ([]models.Application, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Application{}
	for _, a := range r.s.st.applications {
		if a.OrganizationID != org {
			continue
		}
		if filter.JobID != nil && a.JobID != *filter.JobID {
			continue
		}
		if filter.CandidateID != nil && a.CandidateID != *filter.CandidateID {
			continue
		}
		if filter.Stage != nil && a.Stage != *filter.Stage {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, k int) bool {
		return newerFirst(result[i].AppliedAt.UnixNano(), result[k].AppliedAt.UnixNano(), result[i].ID, result[k].ID)
	})
	return result, nil
}

func (r *applications) Get(ctx context.Context, id string) (*models.Application, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.st.applications[id]
	if !ok || a.OrganizationID != org {
		return nil, store.Missing{Table: "applications", Identity: id}
	}
	return &a, nil
}

func (r *applications) Create(ctx context.Context, app *models.Application) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.applications[app.ID]; ok {
		return store.Conflict{Table: "applications", Identity: app.ID, Reason: "duplicate id"}
	}
	if c, ok := r.s.st.candidates[app.CandidateID]; !ok || c.OrganizationID != org {
		return store.Missing{Table: "candidates", Identity: app.CandidateID}
	}
	if j, ok := r.s.st.jobs[app.JobID]; !ok || j.OrganizationID != org {
		return store.Missing{Table: "jobs", Identity: app.JobID}
	}
	app.OrganizationID = org
	r.s.st.applications[app.ID] = *app
	return nil
}

func (r *applications) Update(ctx context.Context, app *models.Application) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.st.applications[app.ID]
	if !ok || current.OrganizationID != org {
		return store.Missing{Table: "applications", Identity: app.ID}
	}
	switch {
	case current.HiredAt != nil && app.Stage == models.StageRejected:
		return store.Conflict{Table: "applications", Identity: app.ID, Reason: "was already hired"}
	case current.RejectedAt != nil && app.Stage == models.StageHired:
		return store.Conflict{Table: "applications", Identity: app.ID, Reason: "was already rejected"}
	}

	// the pair is fixed at creation; hire and rejection instants are written once
	app.OrganizationID = org
	app.CandidateID = current.CandidateID
	app.JobID = current.JobID
	if current.HiredAt != nil {
		app.HiredAt = current.HiredAt
	}
	if current.RejectedAt != nil {
		app.RejectedAt = current.RejectedAt
	}
	r.s.st.applications[app.ID] = *app
	return nil
}

type interviews struct{ s *Store }

func (r *interviews) List(ctx context.Context, filter store.InterviewFilter) ([]models.Interview, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Interview{}
	for _, iv := range r.s.st.interviews {
		if iv.OrganizationID != org {
			continue
		}
		if filter.CandidateID != nil && iv.CandidateID != *filter.CandidateID {
			continue
		}
		if filter.JobID != nil && iv.JobID != *filter.JobID {
			continue
		}
		if filter.Status != nil && iv.Status != *filter.Status {
			continue
		}
		result = append(result, iv)
	}
	sort.Slice(result, func(i, k int) bool {
		if !result[i].ScheduledAt.Equal(result[k].ScheduledAt) {
			return result[i].ScheduledAt.Before(result[k].ScheduledAt)
		}
		return result[i].ID < result[k].ID
	})
	return result, nil
}

func (r *interviews) Get(ctx context.Context, id string) (*models.Interview, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	iv, ok := r.s.st.interviews[id]
	if !ok || iv.OrganizationID != org {
		return nil, store.Missing{Table: "interviews", Identity: id}
	}
	return &iv, nil
}

func (r *interviews) Create(ctx context.Context, interview *models.Interview) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.interviews[interview.ID]; ok {
		return store.Conflict{Table: "interviews", Identity: interview.ID, Reason: "duplicate id"}
	}
	if err := r.s.st.checkInterviewRefs(org, interview); err != nil {
		return err
	}
	interview.OrganizationID = org
	r.s.st.interviews[interview.ID] = *interview
	return nil
}

func (r *interviews) Update(ctx context.Context, interview *models.Interview) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.st.interviews[interview.ID]
	if !ok || current.OrganizationID != org {
		return store.Missing{Table: "interviews", Identity: interview.ID}
	}
	if err := r.s.st.checkInterviewRefs(org, interview); err != nil {
		return err
	}
	interview.OrganizationID = org
	r.s.st.interviews[interview.ID] = *interview
	return nil
}

type notes struct{ s *Store }

func (r *notes) ListByCandidate(ctx context.Context, candidateID string) ([]models.Note, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Note{}
	for _, n := range r.s.st.notes {
		if n.OrganizationID == org && n.CandidateID == candidateID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, k int) bool {
		return newerFirst(result[i].CreatedAt.UnixNano(), result[k].CreatedAt.UnixNano(), result[i].ID, result[k].ID)
	})
	return result, nil
}

func (r *notes) Create(ctx context.Context, note *models.Note) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.notes[note.ID]; ok {
		return store.Conflict{Table: "candidate_notes", Identity: note.ID, Reason: "duplicate id"}
	}
	if c, ok := r.s.st.candidates[note.CandidateID]; !ok || c.OrganizationID != org {
		return store.Missing{Table: "candidates", Identity: note.CandidateID}
	}
	if m, ok := r.s.st.staff[note.AuthorID]; !ok || m.OrganizationID != org {
		return store.Missing{Table: "staff", Identity: note.AuthorID}
	}
	note.OrganizationID = org
	r.s.st.notes[note.ID] = *note
	return nil
}

type staff struct{ s *Store }

func (r *staff) Get(ctx context.Context, id string) (*models.Staff, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.st.staff[id]
	if !ok || m.OrganizationID != org {
		return nil, store.Missing{Table: "staff", Identity: id}
	}
	return &m, nil
}

func (r *staff) GetByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.st.staff {
		if m.OrganizationID == org && m.UserID != nil && *m.UserID == userID {
			return &m, nil
		}
	}
	return nil, store.Missing{Table: "staff", Identity: "user " + userID}
}

type departments struct{ s *Store }

func (r *departments) Get(ctx context.Context, id string) (*models.Department, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.st.departments[id]
	if !ok || d.OrganizationID != org {
		return nil, store.Missing{Table: "departments", Identity: id}
	}
	return &d, nil
}

func (st *state) checkDepartment(org string, id *string) error {
	if id == nil {
		return nil
	}
	if d, ok := st.departments[*id]; !ok || d.OrganizationID != org {
		return store.Missing{Table: "departments", Identity: *id}
	}
	return nil
}

func (st *state) checkInterviewRefs(org string, iv *models.Interview) error {
	if c, ok := st.candidates[iv.CandidateID]; !ok || c.OrganizationID != org {
		return store.Missing{Table: "candidates", Identity: iv.CandidateID}
	}
	if j, ok := st.jobs[iv.JobID]; !ok || j.OrganizationID != org {
		return store.Missing{Table: "jobs", Identity: iv.JobID}
	}
	if m, ok := st.staff[iv.InterviewerID]; !ok || m.OrganizationID != org {
		return store.Missing{Table: "staff", Identity: iv.InterviewerID}
	}
	return nil
}

func copyCandidate(c models.Candidate) models.Candidate {
	if c.Skills != nil {
		c.Skills = append([]string(nil), c.Skills...)
	}
	return c
}

func newerFirst(a, b int64, idA, idB string) bool {
	if a != b {
		return a > b
	}
	return idA < idB
}
