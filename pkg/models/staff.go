package models

import "time"

// Staff is an employee of the organization. Owned by the HR directory and read-only here.
type Staff struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organizationId"`
	UserID         *string `json:"userId,omitempty"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Position       *string `json:"position,omitempty"`
}

// Department groups staff and job postings
type Department struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
}

// Note is an append-only annotation on a candidate
type Note struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	CandidateID    string    `json:"candidateId"`
	AuthorID       string    `json:"authorId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NoteDetail is a note with its author expanded
type NoteDetail struct {
	Note
	Author *Staff `json:"author,omitempty"`
}
