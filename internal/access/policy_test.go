package access

import (
	"errors"
	"testing"

	"github.com/likelemba/likelemba/internal/identity"
)

func TestRequireRole(t *testing.T) {
	admin := &identity.User{ID: "u1", Role: identity.RoleAdmin}

	if err := RequireRole(admin, identity.RoleAdmin); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
	if err := RequireRole(admin, identity.RoleTreasurer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireRole(nil, identity.RoleAdmin); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for nil user, got %v", err)
	}
}

func TestRequireAnyOf(t *testing.T) {
	treasurer := &identity.User{ID: "u2", Role: identity.RoleTreasurer}

	if err := RequireAnyOf(treasurer, identity.RoleTreasurer, identity.RoleAdmin); err != nil {
		t.Fatalf("expected treasurer to pass, got %v", err)
	}

	member := &identity.User{ID: "u3", Role: identity.RoleMember}
	if err := RequireAnyOf(member, identity.RoleTreasurer, identity.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireAnyOf(nil, identity.RoleTreasurer); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for nil user, got %v", err)
	}
}
