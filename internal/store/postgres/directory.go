package postgres

import (
	"context"

	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

type notes struct{ q Queryer }

func (r *notes) ListByCandidate(ctx context.Context, candidateID string) ([]models.Note, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, organization_id, candidate_id, author_id, content, created_at
		FROM candidate_notes WHERE organization_id = $1 AND candidate_id = $2
		ORDER BY created_at DESC, id`,
		org, candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.OrganizationID, &n.CandidateID, &n.AuthorID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *notes) Create(ctx context.Context, note *models.Note) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	note.OrganizationID = org
	_, err = r.q.Exec(ctx,
		`INSERT INTO candidate_notes (id, organization_id, candidate_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, org, note.CandidateID, note.AuthorID, note.Content, note.CreatedAt,
	)
	return onWrite(err, "candidate_notes", note.ID)
}

const staffColumns = `id, organization_id, user_id, first_name, last_name, email, position`

type staff struct{ q Queryer }

func (r *staff) Get(ctx context.Context, id string) (*models.Staff, error) {
	return r.one(ctx, "id", id, id)
}

func (r *staff) GetByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	return r.one(ctx, "user_id", userID, "user "+userID)
}

func (r *staff) one(ctx context.Context, column, value, identity string) (*models.Staff, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	m := new(models.Staff)
	err = r.q.QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE organization_id = $1 AND `+column+` = $2`, org, value,
	).Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.FirstName, &m.LastName, &m.Email, &m.Position)
	if err != nil {
		return nil, onWrite(err, "staff", identity)
	}
	return m, nil
}

type departments struct{ q Queryer }

func (r *departments) Get(ctx context.Context, id string) (*models.Department, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	d := new(models.Department)
	err = r.q.QueryRow(ctx,
		`SELECT id, organization_id, name FROM departments WHERE organization_id = $1 AND id = $2`, org, id,
	).Scan(&d.ID, &d.OrganizationID, &d.Name)
	if err != nil {
		return nil, onWrite(err, "departments", id)
	}
	return d, nil
}
