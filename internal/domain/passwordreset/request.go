package passwordreset

import (
	"context"
	"net/mail"
	"strings"

	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/ports/auth"
	"groomer-portal/internal/ports/notify"
)

const (
	MsgResetLinkSent = "Password reset link sent! Check your email."
	MsgInvalidEmail  = "Please enter a valid email address"
)

// RequestScreen pide el link de reset para un email.
type RequestScreen struct {
	auth       auth.Service
	notifier   notify.Notifier
	redirectTo string
	log        logger.Logger

	Email     string
	EmailSent bool
	IsLoading bool
}

// redirectTo es la URL absoluta de la pantalla de completion (a la que apunta el link del email).
func NewRequestScreen(svc auth.Service, n notify.Notifier, redirectTo string, log logger.Logger) *RequestScreen {
	if log == nil {
		log = logger.Nop()
	}
	return &RequestScreen{
		auth:       svc,
		notifier:   n,
		redirectTo: redirectTo,
		log:        log,
	}
}

func (s *RequestScreen) Submit(ctx context.Context, email string) {
	s.Email = email
	s.IsLoading = true
	defer func() { s.IsLoading = false }()

	if !validEmail(email) {
		s.notifier.Error(MsgInvalidEmail)
		return
	}

	if err := s.auth.SendPasswordResetEmail(ctx, strings.TrimSpace(email), s.redirectTo); err != nil {
		s.log.Warn("send reset email failed", map[string]any{"error": err})
		s.notifier.Error(err.Error())
		return
	}

	s.EmailSent = true
	s.notifier.Success(MsgResetLinkSent)
}

// TryAnotherEmail vuelve al formulario con el email que ya estaba escrito.
func (s *RequestScreen) TryAnotherEmail() {
	s.EmailSent = false
}

// validEmail es el equivalente al chequeo nativo de <input type="email">:
// una sola dirección, sin display name.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && addr.Name == ""
}
