package membership

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the referenced membership does not exist.
	ErrNotFound = errors.New("membership not found")
	// ErrAlreadyMember indicates the user already belongs to the tontine.
	ErrAlreadyMember = errors.New("user is already a member of this tontine")
	// ErrCapacityExceeded indicates the tontine is full.
	ErrCapacityExceeded = errors.New("tontine member capacity reached")
)

// Membership ties a user to a tontine with an assigned payout position.
// Positions are 1-based and are not compacted when a member leaves.
type Membership struct {
	ID        string
	TontineID string
	UserID    string
	JoinDate  time.Time
	Position  int
}
