// Package access holds the role-gating rules consumed by every write
// operation. Authentication happens earlier, in the HTTP middleware; these
// checks assume a loaded user and only decide authorization.
package access

import (
	"errors"

	"github.com/likelemba/likelemba/internal/identity"
)

var (
	// ErrUnauthorized indicates no authenticated caller was supplied.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden indicates the caller lacks the required role.
	ErrForbidden = errors.New("insufficient role")
)

// RequireRole fails unless the user holds exactly the given role.
func RequireRole(user *identity.User, role string) error {
	if user == nil {
		return ErrUnauthorized
	}
	if user.Role != role {
		return ErrForbidden
	}
	return nil
}

// RequireAnyOf fails unless the user's role is one of the provided roles.
// Used for the combined treasurer-or-admin gate on tontine and turn writes.
func RequireAnyOf(user *identity.User, roles ...string) error {
	if user == nil {
		return ErrUnauthorized
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
