package contribution

import (
	"errors"
	"time"
)

var (
	// ErrNotMember indicates the payer holds no membership in the tontine.
	ErrNotMember = errors.New("payer is not a member of this tontine")
	// ErrInvalidAmount indicates a non-positive payment amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidPeriod indicates a non-positive period index.
	ErrInvalidPeriod = errors.New("period must be positive")
)

// Payment records one contribution by a member for a period. Several payments
// by the same member for the same period are allowed and accumulate.
type Payment struct {
	ID        string
	TontineID string
	UserID    string
	Amount    int64
	Period    int
	PaidAt    time.Time
}
