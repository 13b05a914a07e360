package postgres

import (
	"context"
	"time"

	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

type analytics struct{ q Queryer }

func (r *analytics) count(ctx context.Context, sql string, args ...interface{}) (int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, sql, append([]interface{}{org}, args...)...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *analytics) CountJobs(ctx context.Context, status *models.JobStatus) (int, error) {
	if status == nil {
		return r.count(ctx, `SELECT count(*) FROM jobs WHERE organization_id = $1`)
	}
	return r.count(ctx, `SELECT count(*) FROM jobs WHERE organization_id = $1 AND status = $2`, string(*status))
}

func (r *analytics) CountCandidates(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM candidates WHERE organization_id = $1`)
}

func (r *analytics) CountApplications(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM applications WHERE organization_id = $1`)
}

func (r *analytics) CountHiredSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM applications WHERE organization_id = $1 AND hired_at >= $2`, since)
}

func (r *analytics) CountApplicationsByStage(ctx context.Context) (map[models.Stage]int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx,
		`SELECT stage, count(*) FROM applications WHERE organization_id = $1 GROUP BY stage`, org,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.Stage]int{}
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[models.Stage(stage)] = n
	}
	return counts, rows.Err()
}

func (r *analytics) CountCandidatesBySource(ctx context.Context) (map[models.Source]int, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx,
		`SELECT source, count(*) FROM candidates WHERE organization_id = $1 GROUP BY source`, org,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.Source]int{}
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[models.Source(source)] = n
	}
	return counts, rows.Err()
}

func (r *analytics) HirePairs(ctx context.Context) ([]models.HirePair, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx,
		`SELECT applied_at, hired_at FROM applications
		WHERE organization_id = $1 AND stage = 'HIRED' AND hired_at IS NOT NULL`, org,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []models.HirePair{}
	for rows.Next() {
		var p models.HirePair
		if err := rows.Scan(&p.AppliedAt, &p.HiredAt); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
