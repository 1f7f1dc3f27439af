package memory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"groomer-portal/internal/domain/customers"
	"groomer-portal/internal/domain/pets"
	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/ports/roles"
)

// Store agrupa los repos in-memory (modo dev y tests end-to-end).
type Store struct {
	Profiles *ProfileRepo
	Pets     *PetRepo
	History  *HistoryRepo
	Roles    *RoleRepo
}

func NewStore() *Store {
	return &Store{
		Profiles: NewProfileRepo(),
		Pets:     NewPetRepo(),
		History:  NewHistoryRepo(),
		Roles:    NewRoleRepo(),
	}
}

//go:embed seed.yaml
var demoSeed []byte

// Seed es el formato del archivo de datos de ejemplo.
type Seed struct {
	Admins    []string       `yaml:"admins"`
	Customers []seedCustomer `yaml:"customers"`
}

type seedCustomer struct {
	ID            string        `yaml:"id"`
	UserID        string        `yaml:"user_id"`
	FullName      string        `yaml:"full_name"`
	Phone         *string       `yaml:"phone"`
	Address       *string       `yaml:"address"`
	LoyaltyCardID *string       `yaml:"loyalty_card_id"`
	LoyaltyPoints *int          `yaml:"loyalty_points"`
	CreatedAt     time.Time     `yaml:"created_at"`
	Pets          []seedPet     `yaml:"pets"`
	History       []seedHistory `yaml:"history"`
}

type seedPet struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Species string  `yaml:"species"`
	Breed   *string `yaml:"breed"`
	Age     *int    `yaml:"age"`
}

type seedHistory struct {
	ID           string    `yaml:"id"`
	ServiceName  string    `yaml:"service_name"`
	ServiceDate  time.Time `yaml:"service_date"`
	AmountPaid   float64   `yaml:"amount_paid"`
	PointsEarned *int      `yaml:"points_earned"`
}

// LoadDemo carga los datos de ejemplo embebidos.
func (s *Store) LoadDemo() error {
	return s.Load(bytes.NewReader(demoSeed))
}

func (s *Store) Load(r io.Reader) error {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	for _, uid := range seed.Admins {
		s.Roles.Grant(uid, roles.RoleAdmin)
	}

	for _, c := range seed.Customers {
		if err := s.Profiles.Add(customers.Profile{
			ID:            c.ID,
			UserID:        c.UserID,
			FullName:      c.FullName,
			Phone:         c.Phone,
			Address:       c.Address,
			LoyaltyCardID: c.LoyaltyCardID,
			LoyaltyPoints: c.LoyaltyPoints,
			CreatedAt:     c.CreatedAt,
		}); err != nil {
			return fmt.Errorf("seed profile %s: %w", c.ID, err)
		}

		for _, p := range c.Pets {
			if err := s.Pets.Add(pets.Pet{
				ID:          p.ID,
				OwnerUserID: c.UserID,
				Name:        p.Name,
				Species:     pets.Species(p.Species),
				Breed:       p.Breed,
				Age:         p.Age,
			}); err != nil {
				return fmt.Errorf("seed pet %s: %w", p.ID, err)
			}
		}

		for _, h := range c.History {
			if err := s.History.Add(servicehistory.Entry{
				ID:           h.ID,
				CustomerID:   c.UserID,
				ServiceName:  h.ServiceName,
				ServiceDate:  h.ServiceDate,
				AmountPaid:   h.AmountPaid,
				PointsEarned: h.PointsEarned,
			}); err != nil {
				return fmt.Errorf("seed history %s: %w", h.ID, err)
			}
		}
	}
	return nil
}
