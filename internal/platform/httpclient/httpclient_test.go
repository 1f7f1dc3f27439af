package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_SendsHeadersQueryAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/pets", r.URL.Path)
		assert.Equal(t, "eq.u-1", r.URL.Query().Get("owner_id"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "Milo"}})
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", 0)
	require.NoError(t, err)
	c.Headers["apikey"] = "anon"

	var out []struct {
		Name string `json:"name"`
	}
	err = c.Do(context.Background(), Request{
		Path:    "rest/v1/pets",
		Query:   url.Values{"owner_id": {"eq.u-1"}},
		Headers: map[string]string{"Authorization": "Bearer tok"},
		Out:     &out,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Milo", out[0].Name)
}

func TestClient_Do_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":422,"msg":"New password should be different from the old password."}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Method: http.MethodPut, Path: "/auth/v1/user", In: map[string]string{"password": "x"}})
	require.Error(t, err)

	wrapped := fmt.Errorf("gotrue: %w", err)
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(wrapped))

	var he *HTTPError
	require.ErrorAs(t, wrapped, &he)
	assert.Equal(t, "New password should be different from the old password.", he.Message())
}

func TestClient_RelativePathWithoutBaseURL(t *testing.T) {
	c := New(0)
	err := c.Do(context.Background(), Request{Path: "/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires BaseURL")
}

func TestHTTPError_MessageFallbacks(t *testing.T) {
	assert.Equal(t, "plain text", (&HTTPError{StatusCode: 500, Body: "plain text"}).Message())
	assert.Equal(t, "Not Found", (&HTTPError{StatusCode: 404}).Message())
	assert.Equal(t, "bad jwt", (&HTTPError{StatusCode: 401, Body: `{"message":"bad jwt"}`}).Message())
}
