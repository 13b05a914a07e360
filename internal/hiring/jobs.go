package hiring

import (
	"context"

	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

func (s *Service) ListJobs(ctx context.Context, filter store.JobFilter) ([]models.Job, error) {
	jobs, err := s.store.Jobs().List(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

// GetJob returns the job with its department and the per-stage count of its applications
func (s *Service) GetJob(ctx context.Context, id string) (*models.JobDetail, error) {
	job, err := s.store.Jobs().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	detail := &models.JobDetail{Job: *job, Pipeline: map[models.Stage]int{}}
	if job.DepartmentID != nil {
		dep, err := s.store.Departments().Get(ctx, *job.DepartmentID)
		if err != nil {
			return nil, translate(err)
		}
		detail.Department = dep
	}

	apps, err := s.store.Applications().List(ctx, store.ApplicationFilter{JobID: &job.ID})
	if err != nil {
		return nil, translate(err)
	}
	detail.ApplicationCount = len(apps)
	for _, a := range apps {
		detail.Pipeline[a.Stage]++
	}
	return detail, nil
}

func (s *Service) CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	if err := checkSalary(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	now := s.now()
	job := &models.Job{
		ID:               utils.NewID(),
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Location:         req.Location,
		Type:             req.Type,
		ExperienceLevel:  req.ExperienceLevel,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Status:           req.Status,
		DepartmentID:     req.DepartmentID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if job.Type == "" {
		job.Type = models.JobTypeFullTime
	}
	if job.ExperienceLevel == "" {
		job.ExperienceLevel = models.ExperienceMid
	}
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	if job.Status == models.JobStatusClosed {
		job.ClosedAt = &now
	}

	if err := s.store.Jobs().Create(ctx, job); err != nil {
		return nil, translate(err)
	}
	s.changed(ctx)
	s.log(ctx).Info("job created", map[string]interface{}{"job_id": job.ID, "status": string(job.Status)})
	return job, nil
}

// UpdateJob patches a job. Moving a job into CLOSED stamps ClosedAt.
func (s *Service) UpdateJob(ctx context.Context, id string, req models.UpdateJobRequest) (*models.Job, error) {
	job, err := s.store.Jobs().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		job.Responsibilities = *req.Responsibilities
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.DepartmentID != nil {
		if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
			return nil, err
		}
		job.DepartmentID = req.DepartmentID
	}
	if err := checkSalary(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, err
	}

	now := s.now()
	if req.Status != nil {
		if *req.Status == models.JobStatusClosed && job.Status != models.JobStatusClosed {
			job.ClosedAt = &now
		}
		job.Status = *req.Status
	}
	job.UpdatedAt = now

	if err := s.store.Jobs().Update(ctx, job); err != nil {
		return nil, translate(err)
	}
	s.changed(ctx)
	return job, nil
}

// DeleteJob removes a job nothing refers to
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if err := s.store.Jobs().Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.changed(ctx)
	s.log(ctx).Info("job deleted", map[string]interface{}{"job_id": id})
	return nil
}

func (s *Service) checkDepartment(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.store.Departments().Get(ctx, *id); err != nil {
		return translate(err)
	}
	return nil
}

func checkSalary(lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return utils.NewValidationError("salaryMin must not exceed salaryMax")
	}
	return nil
}
