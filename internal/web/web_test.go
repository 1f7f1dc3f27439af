package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomer-portal/internal/adapters/flash"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
)

func newKit(t *testing.T) *Kit {
	t.Helper()
	r, err := NewRenderer(nil)
	require.NoError(t, err)
	return &Kit{Renderer: r, Flash: &Flash{Store: flash.NewMemoryStore()}}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.Render(rr, http.StatusOK, "nope", Page{})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRenderer_MetaRefresh(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.Render(rr, http.StatusOK, PageLanding, Page{
		Title:          "Sign in",
		RefreshURL:     "/auth",
		RefreshSeconds: 2,
		Data:           Landing{Heading: "Sign in"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `content="2;url=/auth"`)

	rr = httptest.NewRecorder()
	r.Render(rr, http.StatusOK, PageLanding, Page{Data: Landing{Heading: "Sign in"}})
	assert.NotContains(t, rr.Body.String(), `http-equiv="refresh"`)
}

func TestKit_RespondNavigates(t *testing.T) {
	k := newKit(t)

	rec := &nav.Recorder{}
	col := &notify.Collector{}
	rec.Navigate(nav.PathDashboard)
	col.Error("Access denied")

	rr := httptest.NewRecorder()
	k.Respond(rr, httptest.NewRequest(http.MethodGet, "/admin/customers", nil), rec, col, http.StatusOK, PageCustomers, Page{})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, nav.PathDashboard, rr.Header().Get("Location"))

	res := rr.Result()
	defer res.Body.Close()
	var flashC *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == flashCookie {
			flashC = c
		}
	}
	require.NotNil(t, flashC)

	// el destino muestra la notificación una vez
	next := httptest.NewRequest(http.MethodGet, nav.PathDashboard, nil)
	next.AddCookie(flashC)
	rr = httptest.NewRecorder()
	k.Render(rr, next, http.StatusOK, PageLanding, Page{Data: Landing{Heading: "Dashboard"}}, nil)
	assert.Contains(t, rr.Body.String(), "Access denied")

	again := httptest.NewRequest(http.MethodGet, nav.PathDashboard, nil)
	again.AddCookie(flashC)
	rr = httptest.NewRecorder()
	k.Render(rr, again, http.StatusOK, PageLanding, Page{Data: Landing{Heading: "Dashboard"}}, nil)
	assert.NotContains(t, rr.Body.String(), "Access denied")
}

func TestFlash_IgnoresForeignCookie(t *testing.T) {
	f := &Flash{Store: flash.NewMemoryStore()}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "../../etc"})
	assert.Nil(t, f.Take(req))
}
