package models

import "time"

// Source is the acquisition channel through which a candidate was found
type Source string

const (
	SourceDirect     Source = "DIRECT"
	SourceLinkedIn   Source = "LINKEDIN"
	SourceReferral   Source = "REFERRAL"
	SourceJobBoard   Source = "JOB_BOARD"
	SourceAgency     Source = "AGENCY"
	SourceCareerPage Source = "CAREER_PAGE"
	SourceOther      Source = "OTHER"
)

// Sources lists every valid source channel
var Sources = []Source{SourceDirect, SourceLinkedIn, SourceReferral, SourceJobBoard, SourceAgency, SourceCareerPage, SourceOther}

func (s Source) IsValid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

// Candidate is a person sourced by an organization, with or without applications
type Candidate struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organizationId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	LinkedInURL     *string   `json:"linkedinUrl,omitempty"`
	PortfolioURL    *string   `json:"portfolioUrl,omitempty"`
	CurrentCompany  *string   `json:"currentCompany,omitempty"`
	CurrentTitle    *string   `json:"currentTitle,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	Skills          []string  `json:"skills"`
	Source          Source    `json:"source"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FullName joins first and last name
func (c Candidate) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// CandidateDetail is the expanded view of a candidate
type CandidateDetail struct {
	Candidate
	Applications []ApplicationDetail `json:"applications"`
	Interviews   []InterviewDetail   `json:"interviews"`
	Notes        []NoteDetail        `json:"notes"`
}
