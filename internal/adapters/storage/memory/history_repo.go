package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"groomer-portal/internal/domain/servicehistory"
)

type HistoryRepo struct {
	mu    sync.RWMutex
	items []servicehistory.Entry
}

func NewHistoryRepo() *HistoryRepo {
	return &HistoryRepo{}
}

func (r *HistoryRepo) Add(e servicehistory.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("history entry id required")
	}
	r.items = append(r.items, e)
	return nil
}

func (r *HistoryRepo) ListByCustomer(ctx context.Context, customerID string) ([]servicehistory.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]servicehistory.Entry, 0)
	for _, e := range r.items {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ServiceDate.After(out[j].ServiceDate)
	})
	return out, nil
}
