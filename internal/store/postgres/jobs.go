package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"

	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

const jobColumns = `id, organization_id, title, description, requirements, responsibilities, location,
	type, experience_level, salary_min, salary_max, status, department_id, created_at, updated_at, closed_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	j := new(models.Job)
	err := row.Scan(
		&j.ID, &j.OrganizationID, &j.Title, &j.Description, &j.Requirements, &j.Responsibilities, &j.Location,
		&j.Type, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax, &j.Status, &j.DepartmentID,
		&j.CreatedAt, &j.UpdatedAt, &j.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return j, nil
}

type jobs struct{ q Queryer }

func (r *jobs) List(ctx context.Context, filter store.JobFilter) ([]models.Job, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	cond := scoped(org)
	if filter.Status != nil {
		cond.add("status = ?", string(*filter.Status))
	}
	if filter.DepartmentID != nil {
		cond.add("department_id = ?", *filter.DepartmentID)
	}

	rows, err := r.q.Query(ctx, `SELECT `+jobColumns+` FROM jobs`+cond.where()+` ORDER BY created_at DESC, id`, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	return result, rows.Err()
}

func (r *jobs) Get(ctx context.Context, id string) (*models.Job, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	j, err := scanJob(r.q.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE organization_id = $1 AND id = $2`, org, id,
	))
	if err != nil {
		return nil, onWrite(err, "jobs", id)
	}
	return j, nil
}

func (r *jobs) Create(ctx context.Context, job *models.Job) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	job.OrganizationID = org
	_, err = r.q.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		job.ID, org, job.Title, job.Description, job.Requirements, job.Responsibilities, job.Location,
		string(job.Type), string(job.ExperienceLevel), job.SalaryMin, job.SalaryMax, string(job.Status), job.DepartmentID,
		job.CreatedAt, job.UpdatedAt, job.ClosedAt,
	)
	return onWrite(err, "jobs", job.ID)
}

func (r *jobs) Update(ctx context.Context, job *models.Job) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	job.OrganizationID = org
	tag, err := r.q.Exec(ctx,
		`UPDATE jobs SET
			title = $3, description = $4, requirements = $5, responsibilities = $6, location = $7,
			type = $8, experience_level = $9, salary_min = $10, salary_max = $11, status = $12,
			department_id = $13, updated_at = $14, closed_at = $15
		WHERE organization_id = $1 AND id = $2`,
		org, job.ID, job.Title, job.Description, job.Requirements, job.Responsibilities, job.Location,
		string(job.Type), string(job.ExperienceLevel), job.SalaryMin, job.SalaryMax, string(job.Status),
		job.DepartmentID, job.UpdatedAt, job.ClosedAt,
	)
	if err != nil {
		return onWrite(err, "jobs", job.ID)
	}
	if tag.RowsAffected() == 0 {
		return store.Missing{Table: "jobs", Identity: job.ID}
	}
	return nil
}

func (r *jobs) Delete(ctx context.Context, id string) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM jobs WHERE organization_id = $1 AND id = $2`, org, id)
	if err != nil {
		return onDelete(err, "jobs", id)
	}
	if tag.RowsAffected() == 0 {
		return store.Missing{Table: "jobs", Identity: id}
	}
	return nil
}
