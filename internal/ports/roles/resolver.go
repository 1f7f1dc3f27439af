package roles

import "context"

const RoleAdmin = "admin"

// Resolver responde el gate de admin. Es el único modelo de autorización de la app.
type Resolver interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
