// Package store declares the persistence boundary of the hiring pipeline.
//
// Every method reads the caller's organization from its context (see package
// tenant) and only ever sees rows of that organization. Rows of another
// organization are reported as Missing, never as forbidden.
package store

import (
	"context"
	"time"

	"talentflow/pkg/models"
)

type JobFilter struct {
	Status       *models.JobStatus
	DepartmentID *string
}

type CandidateFilter struct {
	Source *models.Source
	// JobID restricts the result to candidates with at least one application to the job
	JobID *string
}

type ApplicationFilter struct {
	JobID       *string
	CandidateID *string
	Stage       *models.Stage
}

type InterviewFilter struct {
	CandidateID *string
	JobID       *string
	Status      *models.InterviewStatus
}

type JobRepository interface {
	List(ctx context.Context, filter JobFilter) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	// Delete fails with ErrConflict while applications or interviews reference the job
	Delete(ctx context.Context, id string) error
}

type CandidateRepository interface {
	List(ctx context.Context, filter CandidateFilter) ([]models.Candidate, error)
	Get(ctx context.Context, id string) (*models.Candidate, error)
	Create(ctx context.Context, candidate *models.Candidate) error
	Update(ctx context.Context, candidate *models.Candidate) error
	// Delete removes the candidate with its applications, interviews and notes
	Delete(ctx context.Context, id string) error
}

type ApplicationRepository interface {
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	Update(ctx context.Context, app *models.Application) error
}

type InterviewRepository interface {
	List(ctx context.Context, filter InterviewFilter) ([]models.Interview, error)
	Get(ctx context.Context, id string) (*models.Interview, error)
	Create(ctx context.Context, interview *models.Interview) error
	Update(ctx context.Context, interview *models.Interview) error
}

type NoteRepository interface {
	ListByCandidate(ctx context.Context, candidateID string) ([]models.Note, error)
	Create(ctx context.Context, note *models.Note) error
}

// StaffRepository reads the organization's employee directory
type StaffRepository interface {
	Get(ctx context.Context, id string) (*models.Staff, error)
	GetByUserID(ctx context.Context, userID string) (*models.Staff, error)
}

// DepartmentRepository reads the organization's departments
type DepartmentRepository interface {
	Get(ctx context.Context, id string) (*models.Department, error)
}

// AnalyticsRepository answers the read-only aggregate queries of the analytics aggregator.
// The queries are independent; callers may run them concurrently.
type AnalyticsRepository interface {
	CountJobs(ctx context.Context, status *models.JobStatus) (int, error)
	CountCandidates(ctx context.Context) (int, error)
	CountApplications(ctx context.Context) (int, error)
	CountApplicationsByStage(ctx context.Context) (map[models.Stage]int, error)
	CountHiredSince(ctx context.Context, since time.Time) (int, error)
	CountCandidatesBySource(ctx context.Context) (map[models.Source]int, error)
	HirePairs(ctx context.Context) ([]models.HirePair, error)
}

// Store groups the repositories over one storage backend
type Store interface {
	Jobs() JobRepository
	Candidates() CandidateRepository
	Applications() ApplicationRepository
	Interviews() InterviewRepository
	Notes() NoteRepository
	Staff() StaffRepository
	Departments() DepartmentRepository
	Analytics() AnalyticsRepository

	// InTx runs fn against a Store bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
	Close()
}
