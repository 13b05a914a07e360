// Package memory is a map-backed store.Store used for local runs and tests.
package memory

import (
	"context"
	"sync"

	"talentflow/internal/store"
	"talentflow/pkg/models"
)

type state struct {
	jobs         map[string]models.Job
	candidates   map[string]models.Candidate
	applications map[string]models.Application
	interviews   map[string]models.Interview
	notes        map[string]models.Note
	staff        map[string]models.Staff
	departments  map[string]models.Department
}

func newState() *state {
	return &state{
		jobs:         map[string]models.Job{},
		candidates:   map[string]models.Candidate{},
		applications: map[string]models.Application{},
		interviews:   map[string]models.Interview{},
		notes:        map[string]models.Note{},
		staff:        map[string]models.Staff{},
		departments:  map[string]models.Department{},
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.jobs {
		c.jobs[k] = v
	}
	for k, v := range st.candidates {
		c.candidates[k] = v
	}
	for k, v := range st.applications {
		c.applications[k] = v
	}
	for k, v := range st.interviews {
		c.interviews[k] = v
	}
	for k, v := range st.notes {
		c.notes[k] = v
	}
	for k, v := range st.staff {
		c.staff[k] = v
	}
	for k, v := range st.departments {
		c.departments[k] = v
	}
	return c
}

type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noLock is used inside a transaction, where the owning Store already holds its write lock
type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

// Store keeps every organization's rows in process memory
type Store struct {
	mu rwLocker
	st *state
	tx bool
}

var _ store.Store = &Store{}

func New() *Store {
	return &Store{mu: &sync.RWMutex{}, st: newState()}
}

func (s *Store) Jobs() store.JobRepository                 { return &jobs{s} }
func (s *Store) Candidates() store.CandidateRepository     { return &candidates{s} }
func (s *Store) Applications() store.ApplicationRepository { return &applications{s} }
func (s *Store) Interviews() store.InterviewRepository     { return &interviews{s} }
func (s *Store) Notes() store.NoteRepository               { return &notes{s} }
func (s *Store) Staff() store.StaffRepository              { return &staff{s} }
func (s *Store) Departments() store.DepartmentRepository   { return &departments{s} }
func (s *Store) Analytics() store.AnalyticsRepository      { return &analytics{s} }

// InTx runs fn against a copy of the current state. The copy replaces the
// state only when fn succeeds; other callers wait until fn returns.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: noLock{}, st: s.st.clone(), tx: true}
	if err := fn(tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}

// SeedStaff registers directory entries owned by the wider HR system
func (s *Store) SeedStaff(members ...models.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range members {
		s.st.staff[m.ID] = m
	}
}

// SeedDepartments registers departments owned by the wider HR system
func (s *Store) SeedDepartments(deps ...models.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range deps {
		s.st.departments[d.ID] = d
	}
}
