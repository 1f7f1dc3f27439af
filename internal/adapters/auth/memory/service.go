package memory

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/ports/auth"
)

var ErrUserNotFound = errors.New("user not found")

const (
	sessionTTL  = time.Hour
	recoveryTTL = 15 * time.Minute
)

type User struct {
	ID       string
	Email    string
	Password string
}

// SentEmail es un email de reset "enviado" (queda en el outbox para dev/tests).
type SentEmail struct {
	To        string
	Link      string
	TokenHash string
	SentAt    time.Time
}

type recovery struct {
	userID    string
	expiresAt time.Time
}

// Service es un servicio de auth in-memory: implementa auth.Service y auth.AuthVerifier.
// Pensado para modo dev (sin BAAS_URL) y para tests end-to-end.
type Service struct {
	mu         sync.RWMutex
	users      map[string]User // by id
	recoveries map[string]recovery
	sessions   map[string]auth.Session
	outbox     []SentEmail

	log logger.Logger
	now func() time.Time
}

func NewService(log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		users:      map[string]User{},
		recoveries: map[string]recovery{},
		sessions:   map[string]auth.Session{},
		log:        log,
		now:        time.Now,
	}
}

// AddUser registra un usuario. ID vacío => se genera.
func (s *Service) AddUser(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	s.users[u.ID] = u
	return u
}

func (s *Service) User(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// IssueSession crea una sesión para el usuario (equivalente a un login).
func (s *Service) IssueSession(userID string) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(userID)
}

func (s *Service) issueLocked(userID string) (auth.Session, error) {
	u, ok := s.users[userID]
	if !ok {
		return auth.Session{}, ErrUserNotFound
	}
	sess := auth.Session{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		UserID:       u.ID,
		Email:        u.Email,
		ExpiresAt:    s.now().Add(sessionTTL),
	}
	s.sessions[sess.AccessToken] = sess
	return sess, nil
}

func (s *Service) Outbox() []SentEmail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SentEmail(nil), s.outbox...)
}

func (s *Service) SendPasswordResetEmail(_ context.Context, email, redirectTo string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return &auth.Error{Status: 400, Message: "Email address is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var target *User
	for _, u := range s.users {
		if u.Email == email {
			u := u
			target = &u
			break
		}
	}
	// Igual que el proveedor real: no revela si el email existe.
	if target == nil {
		return nil
	}

	tokenHash := uuid.NewString()
	s.recoveries[tokenHash] = recovery{userID: target.ID, expiresAt: s.now().Add(recoveryTTL)}

	link := recoveryLink(redirectTo, tokenHash)
	s.outbox = append(s.outbox, SentEmail{To: email, Link: link, TokenHash: tokenHash, SentAt: s.now()})
	s.log.Info("password reset email sent", map[string]any{"to": email, "link": link})
	return nil
}

func recoveryLink(redirectTo, tokenHash string) string {
	q := url.Values{}
	q.Set("token_hash", tokenHash)
	q.Set("type", "recovery")
	if strings.Contains(redirectTo, "?") {
		return redirectTo + "&" + q.Encode()
	}
	return redirectTo + "?" + q.Encode()
}

func (s *Service) VerifyRecovery(_ context.Context, tokenHash string) (auth.Session, error) {
	tokenHash = strings.TrimSpace(tokenHash)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recoveries[tokenHash]
	if !ok || s.now().After(rec.expiresAt) {
		return auth.Session{}, &auth.Error{Status: 403, Message: "Email link is invalid or has expired", Err: auth.ErrInvalidToken}
	}
	// un solo uso
	delete(s.recoveries, tokenHash)
	return s.issueLocked(rec.userID)
}

func (s *Service) GetSession(_ context.Context, accessToken string) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[accessToken]
	if !ok || s.now().After(sess.ExpiresAt) {
		return nil, nil
	}
	return &sess, nil
}

func (s *Service) UpdatePassword(_ context.Context, accessToken, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[accessToken]
	if !ok || s.now().After(sess.ExpiresAt) {
		return &auth.Error{Status: 401, Message: "Auth session missing!", Err: auth.ErrNoSession}
	}
	u, ok := s.users[sess.UserID]
	if !ok {
		return &auth.Error{Status: 404, Message: "User not found", Err: ErrUserNotFound}
	}
	if u.Password == newPassword {
		return &auth.Error{Status: 422, Message: "New password should be different from the old password."}
	}
	u.Password = newPassword
	s.users[u.ID] = u
	return nil
}

func (s *Service) SignOut(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, accessToken)
	return nil
}

// Verify implementa auth.AuthVerifier sobre las sesiones en memoria.
func (s *Service) Verify(_ context.Context, token string) (auth.Claims, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[strings.TrimSpace(token)]
	if !ok || s.now().After(sess.ExpiresAt) {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{
		UserID: sess.UserID,
		Email:  sess.Email,
	}, nil
}
