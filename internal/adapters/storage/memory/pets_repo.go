package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"groomer-portal/internal/domain/pets"
)

var (
	ErrNotFound = errors.New("not found")
)

type PetRepo struct {
	mu    sync.RWMutex
	items []pets.Pet // orden de alta
}

func NewPetRepo() *PetRepo {
	return &PetRepo{}
}

func (r *PetRepo) Add(p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	for _, existing := range r.items {
		if existing.ID == p.ID {
			return errors.New("pet already exists")
		}
	}
	r.items = append(r.items, p)
	return nil
}

func (r *PetRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.items {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}
