package models

import "time"

// JobStatus is the publication state of a job posting
type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusPaused JobStatus = "PAUSED"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusFilled JobStatus = "FILLED"
)

// JobStatuses lists every valid job status
var JobStatuses = []JobStatus{JobStatusDraft, JobStatusOpen, JobStatusPaused, JobStatusClosed, JobStatusFilled}

// IsValid reports whether s is a known job status
func (s JobStatus) IsValid() bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// JobType is the employment type offered by a job posting
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeRemote     JobType = "REMOTE"
)

// JobTypes lists every valid job type
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote}

func (t JobType) IsValid() bool {
	for _, v := range JobTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ExperienceLevel is the seniority a job posting targets
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceLead      ExperienceLevel = "LEAD"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

// ExperienceLevels lists every valid experience level
var ExperienceLevels = []ExperienceLevel{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive}

func (l ExperienceLevel) IsValid() bool {
	for _, v := range ExperienceLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Job represents a job posting owned by an organization
type Job struct {
	ID               string          `json:"id"`
	OrganizationID   string          `json:"organizationId"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Requirements     string          `json:"requirements,omitempty"`
	Responsibilities string          `json:"responsibilities,omitempty"`
	Location         string          `json:"location,omitempty"`
	Type             JobType         `json:"type"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel"`
	SalaryMin        *int            `json:"salaryMin,omitempty"`
	SalaryMax        *int            `json:"salaryMax,omitempty"`
	Status           JobStatus       `json:"status"`
	DepartmentID     *string         `json:"departmentId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	ClosedAt         *time.Time      `json:"closedAt,omitempty"`
}

// JobDetail is a job together with the shape of its pipeline
type JobDetail struct {
	Job
	Department       *Department   `json:"department,omitempty"`
	ApplicationCount int           `json:"applicationCount"`
	Pipeline         map[Stage]int `json:"pipeline"`
}
