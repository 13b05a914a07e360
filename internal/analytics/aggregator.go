// Package analytics computes the recruitment overview of an organization.
package analytics

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"talentflow/internal/logging"
	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

// DefaultRecentHireWindow is the trailing period counted as "recent hires"
const DefaultRecentHireWindow = 30 * 24 * time.Hour

// Cache stores computed results between requests
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Aggregator struct {
	repo   store.AnalyticsRepository
	logger logging.Logger
	now    func() time.Time

	window   time.Duration
	cache    Cache
	cacheTTL time.Duration
}

type Option func(*Aggregator)

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithRecentHireWindow overrides DefaultRecentHireWindow
func WithRecentHireWindow(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.window = d
		}
	}
}

// WithCache keeps each organization's result in c for ttl
func WithCache(c Cache, ttl time.Duration) Option {
	return func(a *Aggregator) {
		if c != nil && ttl > 0 {
			a.cache = c
			a.cacheTTL = ttl
		}
	}
}

func NewAggregator(repo store.AnalyticsRepository, logger logging.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		window: DefaultRecentHireWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Overview runs the component queries concurrently and combines them.
// The queries do not share a snapshot, so counts taken a moment apart may disagree slightly.
func (a *Aggregator) Overview(ctx context.Context) (*models.AnalyticsResult, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	key := cacheKey(org)
	if a.cache != nil {
		var cached models.AnalyticsResult
		hit, err := a.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			a.logger.WithContext(ctx).WithError(err).Warn("analytics cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	result, err := a.compute(ctx)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.SetJSON(ctx, key, result, a.cacheTTL); err != nil {
			a.logger.WithContext(ctx).WithError(err).Warn("analytics cache write failed")
		}
	}
	return result, nil
}

// Changed drops the cached overview of the organization in ctx
func (a *Aggregator) Changed(ctx context.Context) {
	if a.cache == nil {
		return
	}
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return
	}
	if err := a.cache.Delete(ctx, cacheKey(org)); err != nil {
		a.logger.WithContext(ctx).WithError(err).Warn("analytics cache invalidation failed")
	}
}

func cacheKey(org string) string {
	return "analytics:overview:" + org
}

func (a *Aggregator) compute(ctx context.Context) (*models.AnalyticsResult, error) {
	now := a.now()
	open := models.JobStatusOpen

	var (
		overview models.Overview
		pipeline map[models.Stage]int
		sources  map[models.Source]int
		pairs    []models.HirePair
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overview.TotalJobs, err = a.repo.CountJobs(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		overview.OpenJobs, err = a.repo.CountJobs(gctx, &open)
		return err
	})
	g.Go(func() (err error) {
		overview.TotalCandidates, err = a.repo.CountCandidates(gctx)
		return err
	})
	g.Go(func() (err error) {
		overview.TotalApplications, err = a.repo.CountApplications(gctx)
		return err
	})
	g.Go(func() (err error) {
		pipeline, err = a.repo.CountApplicationsByStage(gctx)
		return err
	})
	g.Go(func() (err error) {
		overview.RecentHires, err = a.repo.CountHiredSince(gctx, now.Add(-a.window))
		return err
	})
	g.Go(func() (err error) {
		sources, err = a.repo.CountCandidatesBySource(gctx)
		return err
	})
	g.Go(func() (err error) {
		pairs, err = a.repo.HirePairs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview.AvgTimeToHire = AverageTimeToHire(pairs)
	return &models.AnalyticsResult{
		Overview:    overview,
		Pipeline:    pipeline,
		Sources:     sources,
		GeneratedAt: now,
	}, nil
}

// AverageTimeToHire returns the mean number of whole days between application
// and hire, rounded to the nearest integer. It is 0 without hires.
func AverageTimeToHire(pairs []models.HirePair) int {
	if len(pairs) == 0 {
		return 0
	}
	total := 0
	for _, p := range pairs {
		total += int(p.HiredAt.Sub(p.AppliedAt) / (24 * time.Hour))
	}
	return int(math.Round(float64(total) / float64(len(pairs))))
}
