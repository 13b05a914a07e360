package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	"talentflow/internal/store"
)

func TestErrorTranslation(t *testing.T) {
	fkOnInsert := &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		TableName:      "applications",
		ConstraintName: "applications_job_fk",
		Detail:         `Key (organization_id, job_id)=(org-a, job-9) is not present in table "jobs".`,
	}
	fkOnDelete := &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		TableName:      "applications",
		ConstraintName: "applications_job_fk",
	}

	t.Run("no rows becomes Missing of the queried table", func(t *testing.T) {
		err := onWrite(pgx.ErrNoRows, "jobs", "job-1")
		var missing store.Missing
		if !errors.As(err, &missing) || missing != (store.Missing{Table: "jobs", Identity: "job-1"}) {
			t.Errorf("got %#v", err)
		}
	})

	t.Run("a foreign key violation on write names the referenced row", func(t *testing.T) {
		err := onWrite(fkOnInsert, "applications", "app-1")
		var missing store.Missing
		if !errors.As(err, &missing) || missing != (store.Missing{Table: "jobs", Identity: "job-9"}) {
			t.Errorf("got %#v", err)
		}
	})

	t.Run("a foreign key violation on delete is a conflict", func(t *testing.T) {
		err := onDelete(fkOnDelete, "jobs", "job-9")
		if !errors.Is(err, store.ErrConflict) {
			t.Errorf("got %#v, want ErrConflict", err)
		}
	})

	t.Run("a unique violation is a conflict", func(t *testing.T) {
		err := onWrite(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "jobs", "job-1")
		if !errors.Is(err, store.ErrConflict) {
			t.Errorf("got %#v, want ErrConflict", err)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		if err := onWrite(boom, "jobs", "job-1"); err != boom {
			t.Errorf("got %#v", err)
		}
	})
}

func TestConditions(t *testing.T) {
	c := scoped("org-a")
	c.add("status = ?", "OPEN")
	c.add("(department_id = ? OR ? = '')", "dep-1")

	want := " WHERE organization_id = $1 AND status = $2 AND (department_id = $3 OR $3 = '')"
	if got := c.where(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(c.args) != 3 {
		t.Errorf("got %d args", len(c.args))
	}
}
