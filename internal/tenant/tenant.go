// Package tenant carries the caller's organization scope through request contexts.
//
// Every repository call reads the scope from its context; a context without a
// scope is rejected rather than treated as "all organizations".
package tenant

import (
	"context"
	"errors"
)

// Role is the caller's role inside its organization
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Scope identifies the authenticated caller
type Scope struct {
	OrganizationID string
	UserID         string
	Role           Role
}

// ErrNoScope is returned when a context carries no organization scope
var ErrNoScope = errors.New("tenant: no organization scope in context")

type scopeKey struct{}

// WithScope returns a copy of ctx carrying s
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the scope stored in ctx
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	if !ok || s.OrganizationID == "" {
		return Scope{}, false
	}
	return s, true
}

// OrganizationID returns the organization of the caller or ErrNoScope
func OrganizationID(ctx context.Context) (string, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoScope
	}
	return s.OrganizationID, nil
}
