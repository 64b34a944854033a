package membership

import (
	"context"
	"sort"
	"sync"

	"github.com/likelemba/likelemba/internal/tontine"
)

type memoryRepository struct {
	mu          sync.RWMutex
	memberships map[string]Membership
	tontines    tontine.Repository
}

// NewMemoryRepository constructs an in-memory repository for tests. It reads
// capacity limits from the provided tontine repository, and performs the
// capacity check and insert under a single lock hold.
func NewMemoryRepository(tontines tontine.Repository) Repository {
	return &memoryRepository{memberships: make(map[string]Membership), tontines: tontines}
}

func (r *memoryRepository) Create(ctx context.Context, m Membership) (Membership, error) {
	t, err := r.tontines.Get(ctx, m.TontineID)
	if err != nil {
		return Membership{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, existing := range r.memberships {
		if existing.TontineID != m.TontineID {
			continue
		}
		if existing.UserID == m.UserID {
			return Membership{}, ErrAlreadyMember
		}
		count++
	}
	if count >= t.MaxMembers {
		return Membership{}, ErrCapacityExceeded
	}

	if m.Position == 0 {
		m.Position = count + 1
	}
	r.memberships[m.ID] = m
	return m, nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.memberships[id]
	if !ok {
		return Membership{}, ErrNotFound
	}
	return m, nil
}

func (r *memoryRepository) FindByTontineUser(_ context.Context, tontineID, userID string) (Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.memberships {
		if m.TontineID == tontineID && m.UserID == userID {
			return m, nil
		}
	}
	return Membership{}, ErrNotFound
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.memberships[id]; !ok {
		return ErrNotFound
	}
	delete(r.memberships, id)
	return nil
}

func (r *memoryRepository) ListByTontine(_ context.Context, tontineID string) ([]Membership, error) {
	out := r.collect(func(m Membership) bool { return m.TontineID == tontineID })
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Membership, error) {
	out := r.collect(func(m Membership) bool { return m.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].JoinDate.Before(out[j].JoinDate) })
	return out, nil
}

func (r *memoryRepository) CountByTontine(_ context.Context, tontineID string) (int, error) {
	return len(r.collect(func(m Membership) bool { return m.TontineID == tontineID })), nil
}

func (r *memoryRepository) collect(match func(Membership) bool) []Membership {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Membership
	for _, m := range r.memberships {
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}
