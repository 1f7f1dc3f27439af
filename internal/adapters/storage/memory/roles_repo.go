package memory

import (
	"context"
	"strings"
	"sync"

	"groomer-portal/internal/ports/roles"
)

// RoleRepo implementa roles.Resolver sobre un set user_id -> roles.
type RoleRepo struct {
	mu    sync.RWMutex
	roles map[string]map[string]bool
}

func NewRoleRepo() *RoleRepo {
	return &RoleRepo{roles: make(map[string]map[string]bool)}
}

func (r *RoleRepo) Grant(userID, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID = strings.TrimSpace(userID)
	if r.roles[userID] == nil {
		r.roles[userID] = map[string]bool{}
	}
	r.roles[userID][role] = true
}

func (r *RoleRepo) Revoke(userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.roles[userID][role] {
		return ErrNotFound
	}
	delete(r.roles[userID], role)
	return nil
}

func (r *RoleRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[strings.TrimSpace(userID)][roles.RoleAdmin], nil
}
