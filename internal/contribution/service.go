package contribution

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Service records contributions. The tontine must exist and the payer must
// hold a membership in it; amounts accumulate freely across repeat payments
// for the same period.
type Service struct {
	repo     Repository
	tontines tontine.Repository
	members  *membership.Service
}

// NewService builds a contribution service.
func NewService(repo Repository, tontines tontine.Repository, members *membership.Service) *Service {
	return &Service{repo: repo, tontines: tontines, members: members}
}

// Record appends a payment by the given member for the given period.
func (s *Service) Record(ctx context.Context, tontineID, payerID string, amount int64, period int) (Payment, error) {
	if amount <= 0 {
		return Payment{}, ErrInvalidAmount
	}
	if period <= 0 {
		return Payment{}, ErrInvalidPeriod
	}
	if _, err := s.tontines.Get(ctx, tontineID); err != nil {
		return Payment{}, err
	}
	isMember, err := s.members.IsMember(ctx, tontineID, payerID)
	if err != nil {
		return Payment{}, err
	}
	if !isMember {
		return Payment{}, ErrNotMember
	}

	p := Payment{
		ID:        uuid.New().String(),
		TontineID: tontineID,
		UserID:    payerID,
		Amount:    amount,
		Period:    period,
		PaidAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// ListByTontine returns all payments recorded for a tontine.
func (s *Service) ListByTontine(ctx context.Context, tontineID string) ([]Payment, error) {
	return s.repo.ListByTontine(ctx, tontineID)
}

// ListByUser returns all payments made by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SumByTontine totals all contributions for a tontine, 0 when none exist.
func (s *Service) SumByTontine(ctx context.Context, tontineID string) (int64, error) {
	return s.repo.SumByTontine(ctx, tontineID)
}
