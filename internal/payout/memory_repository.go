package payout

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, t Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, t)
	return nil
}

func (r *memoryRepository) ListByTontine(_ context.Context, tontineID string) ([]Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Turn
	for _, t := range r.turns {
		if t.TontineID == tontineID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryRepository) SumByTontine(_ context.Context, tontineID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, t := range r.turns {
		if t.TontineID == tontineID {
			total += t.AmountReceived
		}
	}
	return total, nil
}

func (r *memoryRepository) CountByTontine(_ context.Context, tontineID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, t := range r.turns {
		if t.TontineID == tontineID {
			count++
		}
	}
	return count, nil
}
