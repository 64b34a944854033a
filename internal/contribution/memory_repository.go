package contribution

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	payments []Payment
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, p Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, p)
	return nil
}

func (r *memoryRepository) ListByTontine(_ context.Context, tontineID string) ([]Payment, error) {
	return r.collect(func(p Payment) bool { return p.TontineID == tontineID }), nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Payment, error) {
	return r.collect(func(p Payment) bool { return p.UserID == userID }), nil
}

func (r *memoryRepository) SumByTontine(_ context.Context, tontineID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, p := range r.payments {
		if p.TontineID == tontineID {
			total += p.Amount
		}
	}
	return total, nil
}

func (r *memoryRepository) collect(match func(Payment) bool) []Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Payment
	for _, p := range r.payments {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out
}
