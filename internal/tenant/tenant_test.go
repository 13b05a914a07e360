package tenant_test

import (
	"context"
	"errors"
	"testing"

	"talentflow/internal/tenant"
)

func TestScope(t *testing.T) {
	t.Run("it returns the organization stored in the context", func(t *testing.T) {
		ctx := tenant.WithScope(context.Background(), tenant.Scope{
			OrganizationID: "org-1", UserID: "user-1", Role: tenant.RoleHR,
		})

		org, err := tenant.OrganizationID(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if org != "org-1" {
			t.Errorf("organization = %q, want org-1", org)
		}

		s, ok := tenant.FromContext(ctx)
		if !ok || s.UserID != "user-1" || s.Role != tenant.RoleHR {
			t.Errorf("unexpected scope: %+v (ok=%v)", s, ok)
		}
	})

	for name, ctx := range map[string]context.Context{
		"bare context":       context.Background(),
		"empty organization": tenant.WithScope(context.Background(), tenant.Scope{UserID: "user-1"}),
	} {
		t.Run("it rejects "+name, func(t *testing.T) {
			if _, err := tenant.OrganizationID(ctx); !errors.Is(err, tenant.ErrNoScope) {
				t.Errorf("err = %v, want ErrNoScope", err)
			}
		})
	}
}
