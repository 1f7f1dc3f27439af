package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"groomer-portal/internal/domain/customers"
)

const profileColumns = `id, user_id, full_name,
			phone, address, loyalty_card_id, loyalty_points,
			created_at`

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) ListProfiles(ctx context.Context) ([]customers.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customers.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *ProfilesRepo) GetProfile(ctx context.Context, id string) (customers.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customers.Profile{}, customers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = $1
	`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return customers.Profile{}, customers.ErrNotFound
	}
	if err != nil {
		return customers.Profile{}, err
	}
	return p, nil
}

// scanner lo cumplen *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(sc scanner) (customers.Profile, error) {
	var (
		p      customers.Profile
		phone  sql.NullString
		addr   sql.NullString
		card   sql.NullString
		points sql.NullInt64
	)
	if err := sc.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&phone,
		&addr,
		&card,
		&points,
		&p.CreatedAt,
	); err != nil {
		return customers.Profile{}, err
	}
	p.Phone = nullString(phone)
	p.Address = nullString(addr)
	p.LoyaltyCardID = nullString(card)
	p.LoyaltyPoints = nullInt(points)
	return p, nil
}
