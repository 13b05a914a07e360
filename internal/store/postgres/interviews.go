package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"

	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
)

const interviewColumns = `id, organization_id, candidate_id, job_id, interviewer_id, scheduled_at, duration,
	type, status, feedback, rating, location, meeting_link, created_at, updated_at`

func scanInterview(row pgx.Row) (*models.Interview, error) {
	iv := new(models.Interview)
	err := row.Scan(
		&iv.ID, &iv.OrganizationID, &iv.CandidateID, &iv.JobID, &iv.InterviewerID, &iv.ScheduledAt, &iv.Duration,
		&iv.Type, &iv.Status, &iv.Feedback, &iv.Rating, &iv.Location, &iv.MeetingLink, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return iv, nil
}

type interviews struct{ q Queryer }

func (r *interviews) List(ctx context.Context, filter store.InterviewFilter) ([]models.Interview, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	cond := scoped(org)
	if filter.CandidateID != nil {
		cond.add("candidate_id = ?", *filter.CandidateID)
	}
	if filter.JobID != nil {
		cond.add("job_id = ?", *filter.JobID)
	}
	if filter.Status != nil {
		cond.add("status = ?", string(*filter.Status))
	}

	rows, err := r.q.Query(ctx, `SELECT `+interviewColumns+` FROM interviews`+cond.where()+` ORDER BY scheduled_at, id`, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *iv)
	}
	return result, rows.Err()
}

func (r *interviews) Get(ctx context.Context, id string) (*models.Interview, error) {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	iv, err := scanInterview(r.q.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE organization_id = $1 AND id = $2`, org, id,
	))
	if err != nil {
		return nil, onWrite(err, "interviews", id)
	}
	return iv, nil
}

func (r *interviews) Create(ctx context.Context, interview *models.Interview) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	interview.OrganizationID = org
	_, err = r.q.Exec(ctx,
		`INSERT INTO interviews (`+interviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		interview.ID, org, interview.CandidateID, interview.JobID, interview.InterviewerID,
		interview.ScheduledAt, interview.Duration, string(interview.Type), string(interview.Status),
		interview.Feedback, interview.Rating, interview.Location, interview.MeetingLink,
		interview.CreatedAt, interview.UpdatedAt,
	)
	return onWrite(err, "interviews", interview.ID)
}

func (r *interviews) Update(ctx context.Context, interview *models.Interview) error {
	org, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	interview.OrganizationID = org
	tag, err := r.q.Exec(ctx,
		`UPDATE interviews SET
			interviewer_id = $3, scheduled_at = $4, duration = $5, type = $6, status = $7,
			feedback = $8, rating = $9, location = $10, meeting_link = $11, updated_at = $12
		WHERE organization_id = $1 AND id = $2`,
		org, interview.ID, interview.InterviewerID, interview.ScheduledAt, interview.Duration,
		string(interview.Type), string(interview.Status), interview.Feedback, interview.Rating,
		interview.Location, interview.MeetingLink, interview.UpdatedAt,
	)
	if err != nil {
		return onWrite(err, "interviews", interview.ID)
	}
	if tag.RowsAffected() == 0 {
		return store.Missing{Table: "interviews", Identity: interview.ID}
	}
	return nil
}
