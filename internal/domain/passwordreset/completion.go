package passwordreset

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/platform/schedule"
	"groomer-portal/internal/ports/auth"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
)

const (
	MsgInvalidLink      = "Invalid or expired reset link. Please request a new one."
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordUpdated  = "Password updated successfully!"

	MinPasswordLength    = 6
	DefaultRedirectDelay = 2 * time.Second
)

type CompletionDeps struct {
	Auth      auth.Service
	Navigator nav.Navigator
	Notifier  notify.Notifier
	Scheduler schedule.Scheduler

	// RedirectDelay entre el éxito y el sign-out + navegación a login.
	RedirectDelay time.Duration
	Logger        logger.Logger
}

// CompletionScreen fija la nueva contraseña usando la sesión de reset.
// accessToken es la sesión inyectada; la pantalla no lee estado global.
type CompletionScreen struct {
	deps        CompletionDeps
	accessToken string

	Password        string
	ConfirmPassword string
	ShowPassword    bool
	IsLoading       bool
	IsSuccess       bool

	mu      sync.Mutex
	pending *schedule.Task
}

func NewCompletionScreen(deps CompletionDeps, accessToken string) *CompletionScreen {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = schedule.Timer{}
	}
	if deps.RedirectDelay <= 0 {
		deps.RedirectDelay = DefaultRedirectDelay
	}
	return &CompletionScreen{deps: deps, accessToken: accessToken}
}

// Mount chequea una sola vez que haya sesión de reset activa.
// Sin sesión: error y vuelta a la pantalla de pedido de link.
func (s *CompletionScreen) Mount(ctx context.Context) bool {
	sess, err := s.deps.Auth.GetSession(ctx, s.accessToken)
	if err != nil {
		s.deps.Logger.Warn("reset session lookup failed", map[string]any{"error": err})
	}
	if err != nil || sess == nil {
		s.deps.Notifier.Error(MsgInvalidLink)
		s.deps.Navigator.Navigate(nav.PathForgotPassword)
		return false
	}
	return true
}

func (s *CompletionScreen) ToggleShowPassword() { s.ShowPassword = !s.ShowPassword }

// Submit valida local (sin red) y después hace exactamente un UpdatePassword.
func (s *CompletionScreen) Submit(ctx context.Context, password, confirmPassword string) {
	s.Password = password
	s.ConfirmPassword = confirmPassword

	if utf8.RuneCountInString(password) < MinPasswordLength {
		s.deps.Notifier.Error(MsgPasswordTooShort)
		return
	}
	if password != confirmPassword {
		s.deps.Notifier.Error(MsgPasswordMismatch)
		return
	}

	s.IsLoading = true
	defer func() { s.IsLoading = false }()

	if err := s.deps.Auth.UpdatePassword(ctx, s.accessToken, password); err != nil {
		s.deps.Logger.Warn("update password failed", map[string]any{"error": err})
		s.deps.Notifier.Error(err.Error())
		return
	}

	s.IsSuccess = true
	s.Password = ""
	s.ConfirmPassword = ""
	s.deps.Notifier.Success(MsgPasswordUpdated)
	s.scheduleSignOut()
}

func (s *CompletionScreen) scheduleSignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return
	}
	token := s.accessToken
	s.pending = s.deps.Scheduler.After(s.deps.RedirectDelay, func(ctx context.Context) {
		if err := s.deps.Auth.SignOut(ctx, token); err != nil {
			s.deps.Logger.Warn("sign out after reset failed", map[string]any{"error": err})
		}
		// En HTTP la respuesta ya salió y el redirect lo hace el meta refresh;
		// el Navigate queda para navigators que siguen vivos (un Recorder no hace nada).
		s.deps.Navigator.Navigate(nav.PathLogin)
	})
}

// Pending devuelve la tarea de sign-out programada, si hay.
func (s *CompletionScreen) Pending() *schedule.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Unmount cancela el sign-out + redirect si todavía no corrió.
func (s *CompletionScreen) Unmount() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Cancel()
}

// RedirectDelay es lo que usa la vista para el meta refresh.
func (s *CompletionScreen) RedirectDelay() time.Duration { return s.deps.RedirectDelay }
