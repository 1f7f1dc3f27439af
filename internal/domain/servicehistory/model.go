package servicehistory

import (
	"fmt"
	"time"
)

// Entry es un servicio realizado a un cliente (baño, corte, venta) con los puntos ganados.
type Entry struct {
	ID         string
	CustomerID string // owner reference (user id del perfil)

	ServiceName  string
	ServiceDate  time.Time
	AmountPaid   float64
	PointsEarned *int
}

// Points devuelve los puntos ganados, 0 si el valor no vino.
func (e Entry) Points() int {
	if e.PointsEarned == nil {
		return 0
	}
	return *e.PointsEarned
}

func (e Entry) AmountLabel() string { return fmt.Sprintf("$%.2f", e.AmountPaid) }

func (e Entry) DateLabel() string { return e.ServiceDate.Format("Jan 2, 2006") }

// PointsLabel es "+N pts", con 0 si no vino el valor.
func (e Entry) PointsLabel() string { return fmt.Sprintf("+%d pts", e.Points()) }
