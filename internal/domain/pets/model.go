package pets

import "strconv"

// Species es un set abierto: los valores conocidos tienen badge propio,
// cualquier otro string cae en "other".
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// Pet es la proyección de una mascota que usa el panel de clientes (solo lectura).
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   *string
	Age     *int // años, >= 0
}

// badgeClasses es la paleta fija por especie. Sin configuración en runtime.
var badgeClasses = map[Species]string{
	SpeciesDog:    "bg-amber-100 text-amber-800",
	SpeciesCat:    "bg-purple-100 text-purple-800",
	SpeciesBird:   "bg-sky-100 text-sky-800",
	SpeciesRabbit: "bg-pink-100 text-pink-800",
	SpeciesOther:  "bg-gray-100 text-gray-800",
}

// BadgeClass devuelve la clase CSS del badge de especie ("other" si no se reconoce).
func BadgeClass(s Species) string {
	if c, ok := badgeClasses[s]; ok {
		return c
	}
	return badgeClasses[SpeciesOther]
}

func (p Pet) BadgeClass() string { return BadgeClass(p.Species) }

// BreedLabel devuelve la raza o "" si no hay.
func (p Pet) BreedLabel() string {
	if p.Breed == nil {
		return ""
	}
	return *p.Breed
}

// AgeLabel: "1 yr", "3 yrs" o "" si la edad no se conoce.
func (p Pet) AgeLabel() string {
	if p.Age == nil {
		return ""
	}
	if *p.Age == 1 {
		return "1 yr"
	}
	return strconv.Itoa(*p.Age) + " yrs"
}
