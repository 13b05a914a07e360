package store

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing is the root of every "row not found" error
	ErrMissing = errors.New("store: missing")

	// ErrConflict is returned when a write would break a referential constraint
	ErrConflict = errors.New("store: conflict")
)

// Missing reports that a row does not exist in the caller's organization
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return ErrMissing
}

// Conflict reports a write rejected because other rows depend on the target
type Conflict struct {
	Table    string
	Identity string
	Reason   string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s in %s: %s", c.Identity, c.Table, c.Reason)
}

func (c Conflict) Unwrap() error {
	return ErrConflict
}
