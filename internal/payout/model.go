package payout

import (
	"errors"
	"time"
)

var (
	// ErrNotMember indicates the beneficiary holds no membership in the tontine.
	ErrNotMember = errors.New("beneficiary is not a member of this tontine")
	// ErrInvalidAmount indicates a non-positive payout amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidPeriod indicates a non-positive period index.
	ErrInvalidPeriod = errors.New("period must be positive")
)

// Turn records a payout event: the pooled funds of a period assigned to one
// member. The beneficiary is explicit caller input; the tontine's rotation
// mode is stored metadata and never consulted here.
type Turn struct {
	ID             string
	TontineID      string
	UserID         string
	Period         int
	AmountReceived int64
	ReceivedAt     time.Time
}
