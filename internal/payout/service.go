package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/notification"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Service records payout turns. The tontine must exist and the beneficiary
// must be one of its members.
type Service struct {
	repo     Repository
	tontines tontine.Repository
	members  *membership.Service
	notifier notification.Notifier
}

// NewService builds a payout service.
func NewService(repo Repository, tontines tontine.Repository, members *membership.Service, notifier notification.Notifier) *Service {
	return &Service{repo: repo, tontines: tontines, members: members, notifier: notifier}
}

// Record appends a turn assigning the given amount to the beneficiary for the period.
func (s *Service) Record(ctx context.Context, tontineID, beneficiaryID string, period int, amount int64) (Turn, error) {
	if amount <= 0 {
		return Turn{}, ErrInvalidAmount
	}
	if period <= 0 {
		return Turn{}, ErrInvalidPeriod
	}
	if _, err := s.tontines.Get(ctx, tontineID); err != nil {
		return Turn{}, err
	}
	isMember, err := s.members.IsMember(ctx, tontineID, beneficiaryID)
	if err != nil {
		return Turn{}, err
	}
	if !isMember {
		return Turn{}, ErrNotMember
	}

	t := Turn{
		ID:             uuid.New().String(),
		TontineID:      tontineID,
		UserID:         beneficiaryID,
		Period:         period,
		AmountReceived: amount,
		ReceivedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Turn{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTurnRecorded,
			Destination: beneficiaryID,
			Body:        fmt.Sprintf("received %d for period %d of tontine %s", amount, period, tontineID),
		})
	}

	return t, nil
}

// ListByTontine returns all turns recorded for a tontine.
func (s *Service) ListByTontine(ctx context.Context, tontineID string) ([]Turn, error) {
	return s.repo.ListByTontine(ctx, tontineID)
}

// SumByTontine totals the amounts distributed for a tontine, 0 when none exist.
func (s *Service) SumByTontine(ctx context.Context, tontineID string) (int64, error) {
	return s.repo.SumByTontine(ctx, tontineID)
}

// CountByTontine counts the turns completed for a tontine.
func (s *Service) CountByTontine(ctx context.Context, tontineID string) (int, error) {
	return s.repo.CountByTontine(ctx, tontineID)
}
