package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

const applicationColumns = `id, organization_id, candidate_id, job_id, stage, applied_at,
	hired_at, rejected_at, rejection_reason, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := new(models.Application)
	err := row.Scan(
		&a.ID, &a.OrganizationID, &a.CandidateID, &a.JobID, &a.Stage, &a.AppliedAt,
		&a.HiredAt, &a.RejectedAt, &a.RejectionReason, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

type applications struct{ q Queryer }

func (r *applications) List(ctx context.Context, filter store.ApplicationFilter) ([]models.Application, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	cond := scoped(org)
	if filter.JobID != nil {
		cond.add("job_id = ?", *filter.JobID)
	}
	if filter.CandidateID != nil {
		cond.add("candidate_id = ?", *filter.CandidateID)
	}
	if filter.Stage != nil {
		cond.add("stage = ?", string(*filter.Stage))
	}

	rows, err := r.q.Query(ctx, `SELECT `+applicationColumns+` FROM applications`+cond.where()+` ORDER BY applied_at DESC, id`, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *applications) Get(ctx context.Context, id string) (*models.Application, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	a, err := scanApplication(r.q.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE organization_id = $1 AND id = $2`, org, id,
	))
	if err != nil {
		return nil, onWrite(err, "applications", id)
	}
	return a, nil
}

func (r *applications) Create(ctx context.Context, app *models.Application) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	app.OrganizationID = org
	_, err = r.q.Exec(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, org, app.CandidateID, app.JobID, string(app.Stage), app.AppliedAt,
		app.HiredAt, app.RejectedAt, app.RejectionReason, app.UpdatedAt,
	)
	return onWrite(err, "applications", app.ID)
}

// Update writes the stage fields; candidate and job are fixed at creation.
// hired_at and rejected_at keep their first value, and a row carrying one of
// them is never moved into the opposite terminal stage.
func (r *applications) Update(ctx context.Context, app *models.Application) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	a, err := scanApplication(r.q.QueryRow(ctx,
		`UPDATE applications SET
			stage = $3,
			hired_at = COALESCE(hired_at, $4),
			rejected_at = COALESCE(rejected_at, $5),
			rejection_reason = $6,
			updated_at = $7
		WHERE organization_id = $1 AND id = $2
			AND NOT ($3::text = 'REJECTED' AND hired_at IS NOT NULL)
			AND NOT ($3::text = 'HIRED' AND rejected_at IS NOT NULL)
		RETURNING `+applicationColumns,
		org, app.ID, string(app.Stage), app.HiredAt, app.RejectedAt, app.RejectionReason, app.UpdatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return r.updateRefused(ctx, org, app)
	}
	if err != nil {
		return onWrite(err, "applications", app.ID)
	}
	*app = *a
	return nil
}

// updateRefused tells a missing row from one guarded against the opposite terminal stage
func (r *applications) updateRefused(ctx context.Context, org string, app *models.Application) error {
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE organization_id = $1 AND id = $2)`,
		org, app.ID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return store.Missing{Table: "applications", Identity: app.ID}
	}
	reason := "was already hired"
	if app.Stage == models.StageHired {
		reason = "was already rejected"
	}
	return store.Conflict{Table: "applications", Identity: app.ID, Reason: reason}
}
