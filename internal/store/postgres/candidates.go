package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"

	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

const candidateColumns = `id, organization_id, first_name, last_name, email, phone, linkedin_url, portfolio_url,
	current_company, current_title, experience_years, skills, source, created_at, updated_at`

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	c := new(models.Candidate)
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LinkedInURL, &c.PortfolioURL,
		&c.CurrentCompany, &c.CurrentTitle, &c.ExperienceYears, &c.Skills, &c.Source, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func skillsOf(c *models.Candidate) []string {
	if c.Skills == nil {
		return []string{}
	}
	return c.Skills
}

type candidates struct{ q Queryer }

func (r *candidates) List(ctx context.Context, filter store.CandidateFilter) ([]models.Candidate, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	cond := scoped(org)
	if filter.Source != nil {
		cond.add("source = ?", string(*filter.Source))
	}
	if filter.JobID != nil {
		cond.add(`id IN (SELECT candidate_id FROM applications a WHERE a.organization_id = $1 AND a.job_id = ?)`, *filter.JobID)
	}

	rows, err := r.q.Query(ctx, `SELECT `+candidateColumns+` FROM candidates`+cond.where()+` ORDER BY created_at DESC, id`, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *candidates) Get(ctx context.Context, id string) (*models.Candidate, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := scanCandidate(r.q.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE organization_id = $1 AND id = $2`, org, id,
	))
	if err != nil {
		return nil, onWrite(err, "candidates", id)
	}
	return c, nil
}

func (r *candidates) Create(ctx context.Context, candidate *models.Candidate) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	candidate.OrganizationID = org
	_, err = r.q.Exec(ctx,
		`INSERT INTO candidates (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		candidate.ID, org, candidate.FirstName, candidate.LastName, candidate.Email, candidate.Phone,
		candidate.LinkedInURL, candidate.PortfolioURL, candidate.CurrentCompany, candidate.CurrentTitle,
		candidate.ExperienceYears, skillsOf(candidate), string(candidate.Source), candidate.CreatedAt, candidate.UpdatedAt,
	)
	return onWrite(err, "candidates", candidate.ID)
}

func (r *candidates) Update(ctx context.Context, candidate *models.Candidate) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	candidate.OrganizationID = org
	tag, err := r.q.Exec(ctx,
		`UPDATE candidates SET
			first_name = $3, last_name = $4, email = $5, phone = $6, linkedin_url = $7, portfolio_url = $8,
			current_company = $9, current_title = $10, experience_years = $11, skills = $12, source = $13,
			updated_at = $14
		WHERE organization_id = $1 AND id = $2`,
		org, candidate.ID, candidate.FirstName, candidate.LastName, candidate.Email, candidate.Phone,
		candidate.LinkedInURL, candidate.PortfolioURL, candidate.CurrentCompany, candidate.CurrentTitle,
		candidate.ExperienceYears, skillsOf(candidate), string(candidate.Source), candidate.UpdatedAt,
	)
	if err != nil {
		return onWrite(err, "candidates", candidate.ID)
	}
	if tag.RowsAffected() == 0 {
		return store.Missing{Table: "candidates", Identity: candidate.ID}
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for applications, interviews and notes
func (r *candidates) Delete(ctx context.Context, id string) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM candidates WHERE organization_id = $1 AND id = $2`, org, id)
	if err != nil {
		return onDelete(err, "candidates", id)
	}
	if tag.RowsAffected() == 0 {
		return store.Missing{Table: "candidates", Identity: id}
	}
	return nil
}
