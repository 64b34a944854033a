package tontine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/likelemba/likelemba/internal/identity"
)

var validate = validator.New()

// Members is the slice of the membership manager the registry needs: roster
// size for the update guard and the member-side visibility projection.
type Members interface {
	CountForTontine(ctx context.Context, tontineID string) (int, error)
	TontineIDsForUser(ctx context.Context, userID string) ([]string, error)
}

// Service exposes tontine registry operations.
type Service struct {
	repo    Repository
	members Members
}

// NewService builds a tontine registry service.
func NewService(repo Repository, members Members) *Service {
	return &Service{repo: repo, members: members}
}

// Create stores a new tontine owned by the given treasurer. Names are not
// required to be unique.
func (s *Service) Create(ctx context.Context, spec Spec, treasurerID string) (Tontine, error) {
	if err := validate.Struct(spec); err != nil {
		return Tontine{}, err
	}
	if _, err := uuid.Parse(treasurerID); err != nil {
		return Tontine{}, fmt.Errorf("invalid treasurer id: %w", err)
	}

	t := Tontine{
		ID:                 uuid.New().String(),
		Name:               spec.Name,
		Description:        spec.Description,
		ContributionAmount: spec.ContributionAmount,
		Frequency:          spec.Frequency,
		RotationMode:       spec.RotationMode,
		TreasurerID:        treasurerID,
		MaxMembers:         spec.MaxMembers,
		StartDate:          spec.StartDate,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Tontine{}, err
	}
	return t, nil
}

// Update replaces all caller-editable fields. Shrinking max members below the
// current roster size is rejected.
func (s *Service) Update(ctx context.Context, id string, spec Spec) (Tontine, error) {
	if err := validate.Struct(spec); err != nil {
		return Tontine{}, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Tontine{}, err
	}

	count, err := s.members.CountForTontine(ctx, id)
	if err != nil {
		return Tontine{}, err
	}
	if spec.MaxMembers < count {
		return Tontine{}, ErrCapacityExceeded
	}

	current.Name = spec.Name
	current.Description = spec.Description
	current.ContributionAmount = spec.ContributionAmount
	current.Frequency = spec.Frequency
	current.RotationMode = spec.RotationMode
	current.MaxMembers = spec.MaxMembers
	current.StartDate = spec.StartDate

	if err := s.repo.Update(ctx, current); err != nil {
		return Tontine{}, err
	}
	return current, nil
}

// Delete removes a tontine; dependent rows cascade at the store.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get fetches a tontine by identifier.
func (s *Service) Get(ctx context.Context, id string) (Tontine, error) {
	return s.repo.Get(ctx, id)
}

// List returns all tontines.
func (s *Service) List(ctx context.Context) ([]Tontine, error) {
	return s.repo.List(ctx)
}

// ListByTreasurer returns tontines created by the given treasurer.
func (s *Service) ListByTreasurer(ctx context.Context, treasurerID string) ([]Tontine, error) {
	return s.repo.ListByTreasurer(ctx, treasurerID)
}

// ListByIDs returns tontines matching the given identifiers.
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Tontine, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// ListMine resolves the role-dependent "my tontines" view: members see the
// groups they joined, treasurers the groups they created, admins everything.
func (s *Service) ListMine(ctx context.Context, user *identity.User) ([]Tontine, error) {
	switch user.Role {
	case identity.RoleAdmin:
		return s.repo.List(ctx)
	case identity.RoleTreasurer:
		return s.repo.ListByTreasurer(ctx, user.ID)
	case identity.RoleMember:
		ids, err := s.members.TontineIDsForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		return s.repo.ListByIDs(ctx, ids)
	default:
		return nil, fmt.Errorf("unknown role %q", user.Role)
	}
}
