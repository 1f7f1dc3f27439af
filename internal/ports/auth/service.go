package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSession    = errors.New("no active session")
)

// Service es el contrato con el servicio de auth externo.
// Las operaciones que dependen de la sesión reciben el access token explícito:
// la pantalla lo recibe inyectado, no hay sesión global.
type Service interface {
	SendPasswordResetEmail(ctx context.Context, email, redirectTo string) error

	// VerifyRecovery canjea el token_hash del link de reset por una sesión.
	VerifyRecovery(ctx context.Context, tokenHash string) (Session, error)

	// GetSession devuelve nil (sin error) si el token no corresponde a una sesión activa.
	GetSession(ctx context.Context, accessToken string) (*Session, error)

	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
	SignOut(ctx context.Context, accessToken string) error
}

// Error lleva el mensaje legible que devolvió el proveedor.
// Error() es exactamente lo que se le muestra al usuario.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "authentication error"
}

func (e *Error) Unwrap() error { return e.Err }
