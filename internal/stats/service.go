// Package stats derives summary figures for one tontine from the contribution
// ledger, the payout tracker and the membership roster. Nothing is cached:
// every call recomputes from current state.
package stats

import (
	"context"

	"github.com/likelemba/likelemba/internal/contribution"
	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/payout"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Summary is the derived view over one tontine's activity. The remaining
// balance may be negative; no floor is enforced.
type Summary struct {
	TotalContributions int64 `json:"total_contributions"`
	TotalDistributed   int64 `json:"total_distributed"`
	RemainingBalance   int64 `json:"remaining_balance"`
	ActiveMembers      int   `json:"active_members"`
	TurnsCompleted     int   `json:"turns_completed"`
}

// Service computes tontine summaries.
type Service struct {
	tontines      tontine.Repository
	contributions *contribution.Service
	payouts       *payout.Service
	members       *membership.Service
}

// NewService builds a statistics service.
func NewService(tontines tontine.Repository, contributions *contribution.Service, payouts *payout.Service, members *membership.Service) *Service {
	return &Service{tontines: tontines, contributions: contributions, payouts: payouts, members: members}
}

// Compute returns the summary for one tontine.
func (s *Service) Compute(ctx context.Context, tontineID string) (Summary, error) {
	if _, err := s.tontines.Get(ctx, tontineID); err != nil {
		return Summary{}, err
	}

	totalContributions, err := s.contributions.SumByTontine(ctx, tontineID)
	if err != nil {
		return Summary{}, err
	}
	totalDistributed, err := s.payouts.SumByTontine(ctx, tontineID)
	if err != nil {
		return Summary{}, err
	}
	activeMembers, err := s.members.CountForTontine(ctx, tontineID)
	if err != nil {
		return Summary{}, err
	}
	turnsCompleted, err := s.payouts.CountByTontine(ctx, tontineID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalContributions: totalContributions,
		TotalDistributed:   totalDistributed,
		RemainingBalance:   totalContributions - totalDistributed,
		ActiveMembers:      activeMembers,
		TurnsCompleted:     turnsCompleted,
	}, nil
}
