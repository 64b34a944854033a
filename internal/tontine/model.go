package tontine

import (
	"errors"
	"time"
)

// Contribution frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Rotation modes. Stored as group metadata; never consulted to pick the next
// payee — turn creation stays an explicit treasurer action.
const (
	RotationSequential = "sequential"
	RotationRandom     = "random"
	RotationPriority   = "priority"
)

var (
	// ErrNotFound indicates the referenced tontine does not exist.
	ErrNotFound = errors.New("tontine not found")
	// ErrCapacityExceeded indicates an update would shrink max members below
	// the current roster size.
	ErrCapacityExceeded = errors.New("max members below current member count")
)

// Tontine is a rotating savings group owned by its treasurer.
type Tontine struct {
	ID                 string
	Name               string
	Description        string
	ContributionAmount int64
	Frequency          string
	RotationMode       string
	TreasurerID        string
	MaxMembers         int
	StartDate          time.Time
	CreatedAt          time.Time
}

// Spec carries the caller-editable fields for create and full-replace update.
type Spec struct {
	Name               string `validate:"required,max=100"`
	Description        string
	ContributionAmount int64     `validate:"required,gt=0"`
	Frequency          string    `validate:"required,oneof=daily weekly monthly"`
	RotationMode       string    `validate:"required,oneof=sequential random priority"`
	MaxMembers         int       `validate:"required,min=1"`
	StartDate          time.Time `validate:"required"`
}
