package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"groomer-portal/internal/domain/customers"
)

type ProfileRepo struct {
	mu   sync.RWMutex
	byID map[string]customers.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{byID: make(map[string]customers.Profile)}
}

func (r *ProfileRepo) Add(p customers.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("profile already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *ProfileRepo) ListProfiles(ctx context.Context) ([]customers.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customers.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// created_at desc; id como desempate para que el orden sea estable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProfileRepo) GetProfile(ctx context.Context, id string) (customers.Profile, error) {
	if err := ctx.Err(); err != nil {
		return customers.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return customers.Profile{}, customers.ErrNotFound
	}
	return p, nil
}
