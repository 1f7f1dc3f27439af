package rest

import (
	"context"
	"strings"
	"time"

	"groomer-portal/internal/domain/customers"
	"groomer-portal/internal/domain/pets"
	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/ports/roles"
)

type profileRow struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	LoyaltyCardID *string   `json:"loyalty_card_id"`
	LoyaltyPoints *int      `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProfilesRepo struct{ c *Client }

func NewProfilesRepo(c *Client) *ProfilesRepo { return &ProfilesRepo{c: c} }

var profileColumns = []string{"id", "user_id", "full_name", "phone", "address",
	"loyalty_card_id", "loyalty_points", "created_at"}

func (r *ProfilesRepo) ListProfiles(ctx context.Context) ([]customers.Profile, error) {
	var rows []profileRow
	err := r.c.Select(ctx, Query{
		Table:  "profiles",
		Select: profileColumns,
		Order:  []Order{{Column: "created_at", Desc: true}},
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]customers.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toProfile())
	}
	return out, nil
}

// GetProfile filtra por id; cero filas => customers.ErrNotFound.
func (r *ProfilesRepo) GetProfile(ctx context.Context, id string) (customers.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customers.Profile{}, customers.ErrNotFound
	}

	var rows []profileRow
	err := r.c.Select(ctx, Query{
		Table:   "profiles",
		Select:  profileColumns,
		Filters: []Filter{Eq("id", id)},
	}, &rows)
	if err != nil {
		return customers.Profile{}, err
	}
	if len(rows) == 0 {
		return customers.Profile{}, customers.ErrNotFound
	}
	return rows[0].toProfile(), nil
}

func (row profileRow) toProfile() customers.Profile {
	return customers.Profile{
		ID:            row.ID,
		UserID:        row.UserID,
		FullName:      row.FullName,
		Phone:         row.Phone,
		Address:       row.Address,
		LoyaltyCardID: row.LoyaltyCardID,
		LoyaltyPoints: row.LoyaltyPoints,
		CreatedAt:     row.CreatedAt,
	}
}

type petRow struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Breed   *string `json:"breed"`
	Age     *int    `json:"age"`
}

type PetsRepo struct{ c *Client }

func NewPetsRepo(c *Client) *PetsRepo { return &PetsRepo{c: c} }

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	var rows []petRow
	err := r.c.Select(ctx, Query{
		Table:   "pets",
		Select:  []string{"id", "owner_id", "name", "species", "breed", "age"},
		Filters: []Filter{Eq("owner_id", ownerUserID)},
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, pets.Pet{
			ID:          row.ID,
			OwnerUserID: row.OwnerID,
			Name:        row.Name,
			Species:     pets.Species(row.Species),
			Breed:       row.Breed,
			Age:         row.Age,
		})
	}
	return out, nil
}

type historyRow struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	ServiceName  string    `json:"service_name"`
	ServiceDate  time.Time `json:"service_date"`
	AmountPaid   float64   `json:"amount_paid"`
	PointsEarned *int      `json:"points_earned"`
}

type HistoryRepo struct{ c *Client }

func NewHistoryRepo(c *Client) *HistoryRepo { return &HistoryRepo{c: c} }

func (r *HistoryRepo) ListByCustomer(ctx context.Context, customerID string) ([]servicehistory.Entry, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return []servicehistory.Entry{}, nil
	}

	var rows []historyRow
	err := r.c.Select(ctx, Query{
		Table:   "service_history",
		Select:  []string{"*"},
		Filters: []Filter{Eq("customer_id", customerID)},
		Order:   []Order{{Column: "service_date", Desc: true}},
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]servicehistory.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, servicehistory.Entry{
			ID:           row.ID,
			CustomerID:   row.CustomerID,
			ServiceName:  row.ServiceName,
			ServiceDate:  row.ServiceDate,
			AmountPaid:   row.AmountPaid,
			PointsEarned: row.PointsEarned,
		})
	}
	return out, nil
}

// RolesRepo implementa roles.Resolver sobre la tabla user_roles.
type RolesRepo struct{ c *Client }

func NewRolesRepo(c *Client) *RolesRepo { return &RolesRepo{c: c} }

func (r *RolesRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}

	var rows []struct {
		Role string `json:"role"`
	}
	err := r.c.Select(ctx, Query{
		Table:   "user_roles",
		Select:  []string{"role"},
		Filters: []Filter{Eq("user_id", userID), Eq("role", roles.RoleAdmin)},
	}, &rows)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
