package tontine

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	tontines map[string]Tontine
	order    []string
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{tontines: make(map[string]Tontine)}
}

func (r *memoryRepository) Create(_ context.Context, t Tontine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tontines[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Tontine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tontines[id]
	if !ok {
		return Tontine{}, ErrNotFound
	}
	return t, nil
}

func (r *memoryRepository) Update(_ context.Context, t Tontine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tontines[t.ID]; !ok {
		return ErrNotFound
	}
	r.tontines[t.ID] = t
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tontines[id]; !ok {
		return ErrNotFound
	}
	delete(r.tontines, id)
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Tontine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(Tontine) bool { return true }), nil
}

func (r *memoryRepository) ListByTreasurer(_ context.Context, treasurerID string) ([]Tontine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t Tontine) bool { return t.TreasurerID == treasurerID }), nil
}

func (r *memoryRepository) ListByIDs(_ context.Context, ids []string) ([]Tontine, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t Tontine) bool {
		_, ok := wanted[t.ID]
		return ok
	}), nil
}

// collect preserves insertion order, mirroring the created_at ordering of the
// Postgres repository. Callers must hold the lock.
func (r *memoryRepository) collect(match func(Tontine) bool) []Tontine {
	var out []Tontine
	for _, id := range r.order {
		t, ok := r.tontines[id]
		if ok && match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
