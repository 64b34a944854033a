package identity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapUniqueViolation(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"users_phone_key", ErrPhoneTaken},
		{"users_email_key", ErrEmailTaken},
		{"users_username_key", ErrUsernameTaken},
	}
	for _, tc := range cases {
		err := mapUniqueViolation(&pgconn.PgError{Code: uniqueViolation, ConstraintName: tc.constraint})
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.constraint, tc.want, err)
		}
	}
}

func TestMapUniqueViolationPassesOtherErrors(t *testing.T) {
	if err := mapUniqueViolation(nil); err != nil {
		t.Fatalf("expected nil passthrough, got %v", err)
	}

	plain := fmt.Errorf("connection reset")
	if err := mapUniqueViolation(plain); !errors.Is(err, plain) {
		t.Fatalf("expected plain error passthrough, got %v", err)
	}

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "memberships_user_id_fkey"}
	if err := mapUniqueViolation(fk); !errors.Is(err, fk) {
		t.Fatalf("expected non-unique pg error passthrough, got %v", err)
	}
}
