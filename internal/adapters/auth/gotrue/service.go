package gotrue

import (
	"context"
	"errors"
	"strings"
	"time"

	"groomer-portal/internal/ports/auth"
)

const verifyTypeRecovery = "recovery"

// Service implementa auth.Service sobre el cliente GoTrue.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

func (s *Service) SendPasswordResetEmail(ctx context.Context, email, redirectTo string) error {
	return s.client.Recover(ctx, strings.TrimSpace(email), redirectTo)
}

func (s *Service) VerifyRecovery(ctx context.Context, tokenHash string) (auth.Session, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return auth.Session{}, auth.ErrInvalidToken
	}

	tr, err := s.client.Verify(ctx, verifyTypeRecovery, tokenHash)
	if err != nil {
		return auth.Session{}, err
	}

	sess := auth.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		UserID:       tr.User.ID,
		Email:        tr.User.Email,
	}
	switch {
	case tr.ExpiresAt > 0:
		sess.ExpiresAt = time.Unix(tr.ExpiresAt, 0).UTC()
	case tr.ExpiresIn > 0:
		sess.ExpiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).UTC()
	}
	return sess, nil
}

// GetSession valida el token contra /user. 401/403 => sin sesión (nil, nil).
func (s *Service) GetSession(ctx context.Context, accessToken string) (*auth.Session, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, nil
	}

	u, err := s.client.GetUser(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil
		}
		return nil, err
	}

	return &auth.Session{
		AccessToken: accessToken,
		UserID:      u.ID,
		Email:       u.Email,
	}, nil
}

func (s *Service) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	if strings.TrimSpace(accessToken) == "" {
		return auth.ErrNoSession
	}
	return s.client.UpdatePassword(ctx, accessToken, newPassword)
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return nil
	}
	err := s.client.Logout(ctx, accessToken)
	// token ya inválido: la sesión ya no existe
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}
