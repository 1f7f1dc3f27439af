package customers

import "context"

type Repository interface {
	// ListProfiles devuelve todos los perfiles ordenados por created_at desc.
	ListProfiles(ctx context.Context) ([]Profile, error)

	// GetProfile busca un perfil por id. Si no existe => ErrNotFound.
	GetProfile(ctx context.Context, id string) (Profile, error)
}
