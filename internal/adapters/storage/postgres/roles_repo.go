package postgres

import (
	"context"
	"database/sql"
	"strings"

	"groomer-portal/internal/ports/roles"
)

// RolesRepo implementa roles.Resolver sobre user_roles.
type RolesRepo struct {
	db *sql.DB
}

func NewRolesRepo(db *sql.DB) *RolesRepo {
	return &RolesRepo{db: db}
}

func (r *RolesRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}

	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		)
	`, userID, roles.RoleAdmin).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}
