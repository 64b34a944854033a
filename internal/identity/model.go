package identity

import (
	"errors"
	"time"
)

// Roles a user can hold. Role gates in the access package compare against these.
const (
	RoleMember    = "member"
	RoleTreasurer = "treasurer"
	RoleAdmin     = "admin"
)

var (
	// ErrNotFound indicates the referenced user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrPhoneTaken indicates the phone number is already registered.
	ErrPhoneTaken = errors.New("phone already registered")
	// ErrEmailTaken indicates the email address is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken indicates the display name is already registered.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrInvalidCredentials covers unknown phone or wrong password without
	// disclosing which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered participant. Phone, email and username are
// each globally unique.
type User struct {
	ID           string
	Username     string
	Phone        string
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

// RegisterInput captures the data required to create a user.
type RegisterInput struct {
	Username string `validate:"required,min=2,max=50"`
	Phone    string `validate:"required,min=6,max=20"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"omitempty,oneof=member treasurer admin"`
}
