package customers

import (
	"time"

	"groomer-portal/internal/domain/pets"
)

// Profile es el perfil de cliente tal como lo guarda el servicio de datos (solo lectura).
type Profile struct {
	ID       string
	UserID   string // owner reference: pets.owner_id y service_history.customer_id
	FullName string

	Phone         *string
	Address       *string
	LoyaltyCardID *string
	LoyaltyPoints *int

	CreatedAt time.Time
}

// Points devuelve el saldo de puntos, 0 si el valor no vino.
func (p Profile) Points() int {
	if p.LoyaltyPoints == nil {
		return 0
	}
	return *p.LoyaltyPoints
}

// CustomerWithPets es el view-model armado al cargar la pantalla.
// No se persiste y su identidad es la del perfil.
type CustomerWithPets struct {
	Profile
	Pets []pets.Pet
}
