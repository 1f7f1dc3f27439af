package pets

import "context"

type Repository interface {
	// ListByOwner devuelve slice vacío (no error) si el dueño no tiene mascotas.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
