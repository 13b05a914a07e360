// Package hiring implements the recruitment workflows: job postings,
// candidates, the application pipeline, interviews and candidate notes.
//
// Every operation is scoped to the organization carried by its context.
package hiring

import (
	"context"
	"errors"
	"time"

	"talentflow/internal/logging"
	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/utils"
)

// Service runs the hiring workflows against a store
type Service struct {
	store    store.Store
	logger   logging.Logger
	now      func() time.Time
	notifier ChangeNotifier
}

// ChangeNotifier is told about writes that alter an organization's recruitment figures
type ChangeNotifier interface {
	Changed(ctx context.Context)
}

type Option func(*Service)

// WithClock replaces the wall clock used to stamp timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithChangeNotifier reports job, candidate and application writes to n
func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func NewService(st store.Store, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var entityNames = map[string]string{
	"jobs":            "Job",
	"candidates":      "Candidate",
	"applications":    "Application",
	"interviews":      "Interview",
	"candidate_notes": "Note",
	"staff":           "Staff member",
	"departments":     "Department",
}

// translate maps store and scope errors onto the API error taxonomy
func translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := utils.AsCustomError(err); ok {
		return err
	}

	var missing store.Missing
	var conflict store.Conflict
	switch {
	case errors.As(err, &missing):
		return utils.NewNotFoundError(utils.GetStringOrDefault(entityNames[missing.Table], "Resource") + " not found").WithCause(err)
	case errors.As(err, &conflict):
		return utils.NewConflictError(entityNames[conflict.Table] + " " + conflict.Reason).WithCause(err)
	case errors.Is(err, store.ErrConflict):
		return utils.NewConflictError("Conflicting change").WithCause(err)
	case errors.Is(err, tenant.ErrNoScope):
		return utils.NewUnauthorizedError("Missing organization scope").WithCause(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return utils.NewServiceUnavailableError("Request cancelled").WithCause(err)
	}
	return utils.NewInternalServerError("Internal server error").WithCause(err)
}

func (s *Service) changed(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Changed(ctx)
	}
}

func (s *Service) log(ctx context.Context) logging.Logger {
	return s.logger.WithContext(ctx)
}
