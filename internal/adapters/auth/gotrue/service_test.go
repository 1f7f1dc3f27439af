package gotrue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomer-portal/internal/ports/auth"
)

type fakeGoTrue struct {
	validToken string
	recovered  []string
	redirects  []string
	passwords  []string
	logouts    int
}

func (f *fakeGoTrue) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/v1/recover", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		var body struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Email == "limited@example.com" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":429,"msg":"Email rate limit exceeded"}`))
			return
		}
		f.recovered = append(f.recovered, body.Email)
		f.redirects = append(f.redirects, r.URL.Query().Get("redirect_to"))
		_, _ = w.Write([]byte(`{}`))
	})

	mux.HandleFunc("POST /auth/v1/verify", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["token_hash"] != "good-hash" || body["type"] != "recovery" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":403,"msg":"Email link is invalid or has expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  f.validToken,
			"refresh_token": "refresh-1",
			"expires_at":    1893456000,
			"user":          map[string]any{"id": "user-1", "email": "user@example.com"},
		})
	})

	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"user-1","email":"user@example.com"}`))
	})

	mux.HandleFunc("PUT /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] == "same-as-before" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"msg":"New password should be different from the old password."}`))
			return
		}
		f.passwords = append(f.passwords, body["password"])
		_, _ = w.Write([]byte(`{"id":"user-1"}`))
	})

	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.logouts++
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newTestService(t *testing.T) (*Service, *fakeGoTrue) {
	t.Helper()
	fake := &fakeGoTrue{validToken: "access-1"}
	ts := httptest.NewServer(fake.handler(t))
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL + "/", APIKey: "anon-key"})
	require.NoError(t, err)
	return NewService(c), fake
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://x.example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_SendPasswordResetEmail(t *testing.T) {
	svc, fake := newTestService(t)

	require.NoError(t, svc.SendPasswordResetEmail(context.Background(), " user@example.com ", "http://portal/reset-password"))
	assert.Equal(t, []string{"user@example.com"}, fake.recovered)
	assert.Equal(t, []string{"http://portal/reset-password"}, fake.redirects)

	err := svc.SendPasswordResetEmail(context.Background(), "limited@example.com", "")
	require.Error(t, err)
	assert.Equal(t, "Email rate limit exceeded", err.Error())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestService_VerifyRecovery(t *testing.T) {
	svc, _ := newTestService(t)

	sess, err := svc.VerifyRecovery(context.Background(), "good-hash")
	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, int64(1893456000), sess.ExpiresAt.Unix())

	_, err = svc.VerifyRecovery(context.Background(), "bad-hash")
	require.Error(t, err)
	assert.Equal(t, "Email link is invalid or has expired", err.Error())

	_, err = svc.VerifyRecovery(context.Background(), " ")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_GetSession(t *testing.T) {
	svc, _ := newTestService(t)

	sess, err := svc.GetSession(context.Background(), "access-1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user@example.com", sess.Email)

	sess, err = svc.GetSession(context.Background(), "expired")
	require.NoError(t, err)
	assert.Nil(t, sess)

	sess, err = svc.GetSession(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestService_UpdatePasswordAndSignOut(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdatePassword(ctx, "access-1", "secret1"))
	assert.Equal(t, []string{"secret1"}, fake.passwords)

	err := svc.UpdatePassword(ctx, "access-1", "same-as-before")
	require.Error(t, err)
	assert.Equal(t, "New password should be different from the old password.", err.Error())

	assert.ErrorIs(t, svc.UpdatePassword(ctx, "", "secret1"), auth.ErrNoSession)

	require.NoError(t, svc.SignOut(ctx, "access-1"))
	require.NoError(t, svc.SignOut(ctx, "stale-token"))
	require.NoError(t, svc.SignOut(ctx, ""))
	assert.Equal(t, 1, fake.logouts)
}
