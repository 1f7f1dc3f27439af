package servicehistory

import "context"

type Repository interface {
	// ListByCustomer ordena por service_date desc (más reciente primero).
	ListByCustomer(ctx context.Context, customerID string) ([]Entry, error)
}
