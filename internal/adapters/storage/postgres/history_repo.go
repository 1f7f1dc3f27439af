package postgres

import (
	"context"
	"database/sql"
	"strings"

	"groomer-portal/internal/domain/servicehistory"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) ListByCustomer(ctx context.Context, customerID string) ([]servicehistory.Entry, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return []servicehistory.Entry{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, service_name, service_date, amount_paid::float8, points_earned
		FROM service_history
		WHERE customer_id = $1
		ORDER BY service_date DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]servicehistory.Entry, 0)
	for rows.Next() {
		var (
			e      servicehistory.Entry
			points sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.ServiceName, &e.ServiceDate, &e.AmountPaid, &points); err != nil {
			return nil, err
		}
		e.PointsEarned = nullInt(points)
		out = append(out, e)
	}

	return out, rows.Err()
}
