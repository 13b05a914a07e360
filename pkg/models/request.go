package models

import "time"

// CreateJobRequest represents the payload for POST /jobs
type CreateJobRequest struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Description      string          `json:"description,omitempty"`
	Requirements     string          `json:"requirements,omitempty"`
	Responsibilities string          `json:"responsibilities,omitempty"`
	Location         string          `json:"location,omitempty" validate:"max=200"`
	Type             JobType         `json:"type,omitempty" validate:"omitempty,job_type"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel,omitempty" validate:"omitempty,experience_level"`
	SalaryMin        *int            `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *int            `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	Status           JobStatus       `json:"status,omitempty" validate:"omitempty,job_status"`
	DepartmentID     *string         `json:"departmentId,omitempty"`
}

// UpdateJobRequest patches a job; nil fields are left untouched
type UpdateJobRequest struct {
	Title            *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description,omitempty"`
	Requirements     *string          `json:"requirements,omitempty"`
	Responsibilities *string          `json:"responsibilities,omitempty"`
	Location         *string          `json:"location,omitempty" validate:"omitempty,max=200"`
	Type             *JobType         `json:"type,omitempty" validate:"omitempty,job_type"`
	ExperienceLevel  *ExperienceLevel `json:"experienceLevel,omitempty" validate:"omitempty,experience_level"`
	SalaryMin        *int             `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *int             `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	Status           *JobStatus       `json:"status,omitempty" validate:"omitempty,job_status"`
	DepartmentID     *string          `json:"departmentId,omitempty"`
}

// CreateCandidateRequest represents the payload for POST /candidates.
// When JobID is set an application is created together with the candidate.
type CreateCandidateRequest struct {
	FirstName       string   `json:"firstName" validate:"required,max=100"`
	LastName        string   `json:"lastName" validate:"required,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	LinkedInURL     *string  `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	PortfolioURL    *string  `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
	CurrentCompany  *string  `json:"currentCompany,omitempty"`
	CurrentTitle    *string  `json:"currentTitle,omitempty"`
	ExperienceYears *int     `json:"experienceYears,omitempty" validate:"omitempty,min=0,max=80"`
	Skills          []string `json:"skills,omitempty" validate:"omitempty,dive,required"`
	Source          Source   `json:"source,omitempty" validate:"omitempty,source"`
	JobID           *string  `json:"jobId,omitempty"`
}

// UpdateCandidateRequest patches a candidate; nil fields are left untouched
type UpdateCandidateRequest struct {
	FirstName       *string   `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName        *string   `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email           *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string   `json:"phone,omitempty" validate:"omitempty,max=50"`
	LinkedInURL     *string   `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	PortfolioURL    *string   `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
	CurrentCompany  *string   `json:"currentCompany,omitempty"`
	CurrentTitle    *string   `json:"currentTitle,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty" validate:"omitempty,min=0,max=80"`
	Skills          *[]string `json:"skills,omitempty"`
	Source          *Source   `json:"source,omitempty" validate:"omitempty,source"`
}

// CreateApplicationRequest represents the payload for POST /applications
type CreateApplicationRequest struct {
	CandidateID string `json:"candidateId" validate:"required"`
	JobID       string `json:"jobId" validate:"required"`
}

// AdvanceStageRequest represents the payload for PATCH /applications/:id/stage
type AdvanceStageRequest struct {
	Stage           string  `json:"stage" validate:"required,stage"`
	RejectionReason *string `json:"rejectionReason,omitempty" validate:"omitempty,max=2000"`
}

// CreateInterviewRequest represents the payload for POST /interviews
type CreateInterviewRequest struct {
	CandidateID   string        `json:"candidateId" validate:"required"`
	JobID         string        `json:"jobId" validate:"required"`
	InterviewerID string        `json:"interviewerId" validate:"required"`
	ScheduledAt   time.Time     `json:"scheduledAt" validate:"required"`
	Duration      int           `json:"duration" validate:"required,min=1,max=1440"`
	Type          InterviewType `json:"type" validate:"required,interview_type"`
	Location      *string       `json:"location,omitempty"`
	MeetingLink   *string       `json:"meetingLink,omitempty" validate:"omitempty,url"`
}

// UpdateInterviewRequest patches an interview; nil fields are left untouched
type UpdateInterviewRequest struct {
	InterviewerID *string          `json:"interviewerId,omitempty"`
	ScheduledAt   *time.Time       `json:"scheduledAt,omitempty"`
	Duration      *int             `json:"duration,omitempty" validate:"omitempty,min=1,max=1440"`
	Type          *InterviewType   `json:"type,omitempty" validate:"omitempty,interview_type"`
	Status        *InterviewStatus `json:"status,omitempty" validate:"omitempty,interview_status"`
	Location      *string          `json:"location,omitempty"`
	MeetingLink   *string          `json:"meetingLink,omitempty" validate:"omitempty,url"`
}

// FeedbackRequest represents the payload for PATCH /interviews/:id/feedback
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

// CreateNoteRequest represents the payload for POST /candidates/:id/notes
type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}
