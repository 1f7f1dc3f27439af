package customers

import "strconv"

// Placeholder para campos opcionales vacíos en la vista.
const Missing = "—"

func orMissing(s *string) string {
	if s == nil || *s == "" {
		return Missing
	}
	return *s
}

func (p Profile) PhoneLabel() string       { return orMissing(p.Phone) }
func (p Profile) AddressLabel() string     { return orMissing(p.Address) }
func (p Profile) LoyaltyCardLabel() string { return orMissing(p.LoyaltyCardID) }

// PointsLabel siempre tiene número: "0 pts" si no hay saldo.
func (p Profile) PointsLabel() string {
	return strconv.Itoa(p.Points()) + " pts"
}

func (p Profile) JoinedLabel() string {
	if p.CreatedAt.IsZero() {
		return Missing
	}
	return p.CreatedAt.Format("Jan 2, 2006")
}

func (c CustomerWithPets) PetCount() int { return len(c.Pets) }
