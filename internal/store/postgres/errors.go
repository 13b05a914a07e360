package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	"talentflow/internal/store"
)

// referenced maps foreign key constraints to the table they point at
var referenced = map[string]string{
	"jobs_department_fk":           "departments",
	"applications_candidate_fk":    "candidates",
	"applications_job_fk":          "jobs",
	"interviews_candidate_fk":      "candidates",
	"interviews_job_fk":            "jobs",
	"interviews_interviewer_fk":    "staff",
	"candidate_notes_candidate_fk": "candidates",
	"candidate_notes_author_fk":    "staff",
}

// onWrite translates errors of INSERT and UPDATE statements.
// A foreign key violation there means the referenced row does not exist in the organization.
func onWrite(err error, table, identity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Missing{Table: table, Identity: identity}
	}
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
		switch pgerr.Code {
		case pgerrcode.ForeignKeyViolation:
			target, ok := referenced[pgerr.ConstraintName]
			if !ok {
				target = pgerr.TableName
			}
			return store.Missing{Table: target, Identity: keyValue(pgerr.Detail)}
		case pgerrcode.UniqueViolation:
			return store.Conflict{Table: table, Identity: identity, Reason: "already exists"}
		}
	}
	return err
}

// onDelete translates errors of DELETE statements.
// A foreign key violation there means other rows still reference the target.
func onDelete(err error, table, identity string) error {
	if err == nil {
		return nil
	}
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.ForeignKeyViolation {
		return store.Conflict{Table: table, Identity: identity, Reason: "referenced by " + pgerr.TableName}
	}
	return err
}

// keyValue extracts the referenced identity from a detail message like
// `Key (organization_id, job_id)=(org, 42) is not present in table "jobs".`
func keyValue(detail string) string {
	_, rest, ok := strings.Cut(detail, ")=(")
	if !ok {
		return ""
	}
	values, _, ok := strings.Cut(rest, ")")
	if !ok {
		return ""
	}
	parts := strings.Split(values, ", ")
	return parts[len(parts)-1]
}
