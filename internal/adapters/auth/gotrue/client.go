package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groomer-portal/internal/platform/httpclient"
	"groomer-portal/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue (auth del BaaS).
// BaseURL es la raíz del proyecto (sin /auth/v1).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Default "apikey".
	APIKeyHeader string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("gotrue: invalid base url: %w", err)
	}
	hc.BaseURL = base + "/auth/v1"

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "apikey"
	}
	hc.Headers[h] = strings.TrimSpace(cfg.APIKey)

	return &Client{http: hc}, nil
}

// User es el subconjunto de /user que usamos.
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	AppMetadata map[string]any `json:"app_metadata"`
}

// TokenResponse es lo que devuelve /verify (y /token).
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Recover dispara el email de reset. redirectTo es la URL a la que vuelve el link.
func (c *Client) Recover(ctx context.Context, email, redirectTo string) error {
	q := url.Values{}
	if strings.TrimSpace(redirectTo) != "" {
		q.Set("redirect_to", redirectTo)
	}
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/recover",
		Query:  q,
		In:     map[string]string{"email": email},
	})
	return wrap("recover", err)
}

// Verify canjea un token_hash (type=recovery) por una sesión.
func (c *Client) Verify(ctx context.Context, verifyType, tokenHash string) (TokenResponse, error) {
	var out TokenResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/verify",
		In: map[string]string{
			"type":       verifyType,
			"token_hash": tokenHash,
		},
		Out: &out,
	})
	if err != nil {
		return TokenResponse{}, wrap("verify", err)
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return TokenResponse{}, fmt.Errorf("%w: verify response missing access_token", ErrUpstream)
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (User, error) {
	var out User
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    "/user",
		Headers: bearer(accessToken),
		Out:     &out,
	})
	if err != nil {
		return User{}, wrap("get user", err)
	}
	if strings.TrimSpace(out.ID) == "" {
		return User{}, fmt.Errorf("%w: user response missing id", ErrUpstream)
	}
	return out, nil
}

func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPut,
		Path:    "/user",
		Headers: bearer(accessToken),
		In:      map[string]string{"password": password},
	})
	return wrap("update user", err)
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/logout",
		Headers: bearer(accessToken),
	})
	return wrap("logout", err)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + strings.TrimSpace(token)}
}

// wrap traduce errores HTTP a *auth.Error con el mensaje del proveedor.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return &auth.Error{
			Message: "Unable to reach the authentication service",
			Err:     fmt.Errorf("%w: %s: %v", ErrUpstream, op, err),
		}
	}

	sentinel := ErrUpstream
	if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
		sentinel = ErrUnauthorized
	}
	return &auth.Error{
		Status:  he.StatusCode,
		Message: he.Message(),
		Err:     fmt.Errorf("%w: %s: status=%d", sentinel, op, he.StatusCode),
	}
}
