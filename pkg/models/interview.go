package models

import "time"

// InterviewType is the format of an interview
type InterviewType string

const (
	InterviewPhone     InterviewType = "PHONE"
	InterviewVideo     InterviewType = "VIDEO"
	InterviewInPerson  InterviewType = "IN_PERSON"
	InterviewTechnical InterviewType = "TECHNICAL"
	InterviewHR        InterviewType = "HR"
	InterviewFinal     InterviewType = "FINAL"
)

var InterviewTypes = []InterviewType{InterviewPhone, InterviewVideo, InterviewInPerson, InterviewTechnical, InterviewHR, InterviewFinal}

func (t InterviewType) IsValid() bool {
	for _, v := range InterviewTypes {
		if t == v {
			return true
		}
	}
	return false
}

// InterviewStatus tracks whether an interview took place
type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "SCHEDULED"
	InterviewCompleted   InterviewStatus = "COMPLETED"
	InterviewCancelled   InterviewStatus = "CANCELLED"
	InterviewNoShow      InterviewStatus = "NO_SHOW"
	InterviewRescheduled InterviewStatus = "RESCHEDULED"
)

var InterviewStatuses = []InterviewStatus{InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewNoShow, InterviewRescheduled}

func (s InterviewStatus) IsValid() bool {
	for _, v := range InterviewStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Interview is a scheduled conversation between a candidate and a staff member
type Interview struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organizationId"`
	CandidateID    string          `json:"candidateId"`
	JobID          string          `json:"jobId"`
	InterviewerID  string          `json:"interviewerId"`
	ScheduledAt    time.Time       `json:"scheduledAt"`
	Duration       int             `json:"duration"`
	Type           InterviewType   `json:"type"`
	Status         InterviewStatus `json:"status"`
	Feedback       *string         `json:"feedback,omitempty"`
	Rating         *int            `json:"rating,omitempty"`
	Location       *string         `json:"location,omitempty"`
	MeetingLink    *string         `json:"meetingLink,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// InterviewDetail is an interview with its participants expanded
type InterviewDetail struct {
	Interview
	Candidate   *Candidate `json:"candidate,omitempty"`
	Job         *Job       `json:"job,omitempty"`
	Interviewer *Staff     `json:"interviewer,omitempty"`
}
