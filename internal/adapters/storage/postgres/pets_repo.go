package postgres

import (
	"context"
	"database/sql"
	"strings"

	"groomer-portal/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// ListByOwner proyecta solo lo que muestra el panel (id, name, species, breed, age).
func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, species, breed, age
		FROM pets
		WHERE owner_id = $1
		ORDER BY name ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var (
			p       pets.Pet
			species string
			breed   sql.NullString
			age     sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.OwnerUserID, &p.Name, &species, &breed, &age); err != nil {
			return nil, err
		}
		p.Species = pets.Species(species)
		p.Breed = nullString(breed)
		p.Age = nullInt(age)
		out = append(out, p)
	}

	return out, rows.Err()
}
