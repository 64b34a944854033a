package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/notification"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Service enforces the join rules: the tontine and user must exist, a user
// joins a tontine at most once, and the roster never grows past max members.
// The manual-add path runs the same checks; only position and join date are
// caller-chosen there.
type Service struct {
	repo     Repository
	tontines tontine.Repository
	users    identity.Repository
	notifier notification.Notifier
}

// NewService builds a membership service.
func NewService(repo Repository, tontines tontine.Repository, users identity.Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, tontines: tontines, users: users, notifier: notifier}
}

// Join adds the user to the tontine at the next free position with today's date.
func (s *Service) Join(ctx context.Context, tontineID, userID string) (Membership, error) {
	return s.admit(ctx, Membership{
		ID:        uuid.New().String(),
		TontineID: tontineID,
		UserID:    userID,
		JoinDate:  time.Now().UTC().Truncate(24 * time.Hour),
	})
}

// AddManual adds the user with a treasurer-chosen position and join date.
func (s *Service) AddManual(ctx context.Context, tontineID, userID string, position int, joinDate time.Time) (Membership, error) {
	if position < 1 {
		return Membership{}, fmt.Errorf("position must be >= 1")
	}
	return s.admit(ctx, Membership{
		ID:        uuid.New().String(),
		TontineID: tontineID,
		UserID:    userID,
		JoinDate:  joinDate,
		Position:  position,
	})
}

func (s *Service) admit(ctx context.Context, m Membership) (Membership, error) {
	if _, err := s.tontines.Get(ctx, m.TontineID); err != nil {
		return Membership{}, err
	}
	user, err := s.users.FindByID(ctx, m.UserID)
	if err != nil {
		return Membership{}, err
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return Membership{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindMemberJoined,
			Destination: user.Phone,
			Body:        fmt.Sprintf("joined tontine %s at position %d", created.TontineID, created.Position),
		})
	}

	return created, nil
}

// Remove deletes a membership. Remaining positions are not renumbered.
func (s *Service) Remove(ctx context.Context, membershipID string) error {
	return s.repo.Delete(ctx, membershipID)
}

// Get fetches one membership.
func (s *Service) Get(ctx context.Context, membershipID string) (Membership, error) {
	return s.repo.Get(ctx, membershipID)
}

// ListByTontine returns the roster of a tontine.
func (s *Service) ListByTontine(ctx context.Context, tontineID string) ([]Membership, error) {
	return s.repo.ListByTontine(ctx, tontineID)
}

// ListByUser returns all memberships held by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Membership, error) {
	return s.repo.ListByUser(ctx, userID)
}

// CountForTontine returns the current roster size.
func (s *Service) CountForTontine(ctx context.Context, tontineID string) (int, error) {
	return s.repo.CountByTontine(ctx, tontineID)
}

// TontineIDsForUser projects the tontine ids of a user's memberships.
func (s *Service) TontineIDsForUser(ctx context.Context, userID string) ([]string, error) {
	memberships, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.TontineID)
	}
	return ids, nil
}

// IsMember reports whether the user currently belongs to the tontine.
func (s *Service) IsMember(ctx context.Context, tontineID, userID string) (bool, error) {
	_, err := s.repo.FindByTontineUser(ctx, tontineID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
