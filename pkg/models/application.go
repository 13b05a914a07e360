package models

import (
	"fmt"
	"strings"
	"time"
)

// Stage is the hiring-pipeline state of a single application
type Stage string

const (
	StageApplied   Stage = "APPLIED"
	StageScreening Stage = "SCREENING"
	StageInterview Stage = "INTERVIEW"
	StageOffer     Stage = "OFFER"
	StageHired     Stage = "HIRED"
	StageRejected  Stage = "REJECTED"
	StageWithdrawn Stage = "WITHDRAWN"
)

// Stages lists every stage in funnel order
var Stages = []Stage{StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected, StageWithdrawn}

// IsValid reports whether s is one of the known stages
func (s Stage) IsValid() bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further progress is expected from s
func (s Stage) IsTerminal() bool {
	return s == StageHired || s == StageRejected || s == StageWithdrawn
}

// ParseStage converts user input into a Stage, ignoring case and surrounding space
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown stage %q", raw)
	}
	return s, nil
}

// Application links one candidate to one job and carries its stage
type Application struct {
	ID              string     `json:"id"`
	OrganizationID  string     `json:"organizationId"`
	CandidateID     string     `json:"candidateId"`
	JobID           string     `json:"jobId"`
	Stage           Stage      `json:"stage"`
	AppliedAt       time.Time  `json:"appliedAt"`
	HiredAt         *time.Time `json:"hiredAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ApplicationDetail is an application with its candidate and job expanded
type ApplicationDetail struct {
	Application
	Candidate *Candidate `json:"candidate,omitempty"`
	Job       *Job       `json:"job,omitempty"`
}
