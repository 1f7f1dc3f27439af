package passwordreset

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"groomer-portal/internal/middleware"
	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/platform/schedule"
	"groomer-portal/internal/ports/auth"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
	"groomer-portal/internal/web"
)

const recoveryType = "recovery"

type HandlerConfig struct {
	Auth      auth.Service
	Scheduler schedule.Scheduler
	Kit       *web.Kit

	// SiteURL es la base pública; el link del email vuelve a SiteURL + /reset-password.
	SiteURL       string
	RedirectDelay time.Duration
	SecureCookies bool
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Scheduler == nil {
		cfg.Scheduler = schedule.Timer{}
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	return &Handler{cfg: cfg}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get(nav.PathForgotPassword, h.requestPage)
	r.Post(nav.PathForgotPassword, h.requestSubmit)

	r.Get(nav.PathResetPassword, h.completionPage)
	r.Post(nav.PathResetPassword, h.completionSubmit)
}

func (h *Handler) redirectTo() string {
	return h.cfg.SiteURL + nav.PathResetPassword
}

func (h *Handler) requestPage(w http.ResponseWriter, r *http.Request) {
	col := &notify.Collector{}
	screen := NewRequestScreen(h.cfg.Auth, col, h.redirectTo(), logger.FromContext(r.Context()))
	h.cfg.Kit.Render(w, r, http.StatusOK, web.PageForgotPassword, web.Page{
		Title: "Forgot password",
		Data:  screen,
	}, col.Notices())
}

func (h *Handler) requestSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	col := &notify.Collector{}
	screen := NewRequestScreen(h.cfg.Auth, col, h.redirectTo(), logger.FromContext(r.Context()))

	email := r.PostFormValue("email")
	if r.PostFormValue("action") == "retry" {
		// el formulario de confirmación trae el email escrito
		screen.Email = email
		screen.EmailSent = true
		screen.TryAnotherEmail()
	} else {
		screen.Submit(r.Context(), email)
	}

	h.cfg.Kit.Render(w, r, http.StatusOK, web.PageForgotPassword, web.Page{
		Title: "Forgot password",
		Data:  screen,
	}, col.Notices())
}

func (h *Handler) newCompletionScreen(r *http.Request, rec *nav.Recorder, col *notify.Collector) *CompletionScreen {
	return NewCompletionScreen(CompletionDeps{
		Auth:          h.cfg.Auth,
		Navigator:     rec,
		Notifier:      col,
		Scheduler:     h.cfg.Scheduler,
		RedirectDelay: h.cfg.RedirectDelay,
		Logger:        logger.FromContext(r.Context()),
	}, middleware.GetAccessToken(r.Context()))
}

// completionPage: si viene ?token_hash= se canjea por la sesión de reset (cookie) y se
// redirige a la URL limpia; si no, monta la pantalla con la sesión del cookie.
func (h *Handler) completionPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if tokenHash := strings.TrimSpace(q.Get("token_hash")); tokenHash != "" {
		h.exchangeRecovery(w, r, tokenHash, q.Get("type"))
		return
	}

	rec := &nav.Recorder{}
	col := &notify.Collector{}
	screen := h.newCompletionScreen(r, rec, col)
	screen.Mount(r.Context())

	h.cfg.Kit.Respond(w, r, rec, col, http.StatusOK, web.PageResetPassword, web.Page{
		Title: "Reset password",
		Data:  screen,
	})
}

func (h *Handler) exchangeRecovery(w http.ResponseWriter, r *http.Request, tokenHash, typ string) {
	log := logger.FromContext(r.Context())

	if typ != "" && typ != recoveryType {
		log.Warn("unexpected verify type on reset link", map[string]any{"type": typ})
		middleware.ClearSessionCookie(w, h.cfg.SecureCookies)
		h.cfg.Kit.Redirect(w, r, nav.PathResetPassword, nil)
		return
	}

	sess, err := h.cfg.Auth.VerifyRecovery(r.Context(), tokenHash)
	if err != nil {
		// sin cookie, el mount de /reset-password avisa y manda a pedir otro link
		log.Warn("recovery token exchange failed", map[string]any{"error": err})
		middleware.ClearSessionCookie(w, h.cfg.SecureCookies)
		h.cfg.Kit.Redirect(w, r, nav.PathResetPassword, nil)
		return
	}

	middleware.SetSessionCookie(w, sess, h.cfg.SecureCookies)
	h.cfg.Kit.Redirect(w, r, nav.PathResetPassword, nil)
}

func (h *Handler) completionSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rec := &nav.Recorder{}
	col := &notify.Collector{}
	screen := h.newCompletionScreen(r, rec, col)

	page := web.Page{Title: "Reset password", Data: screen}
	if !screen.Mount(r.Context()) {
		h.cfg.Kit.Respond(w, r, rec, col, http.StatusOK, web.PageResetPassword, page)
		return
	}

	screen.ShowPassword = r.PostFormValue("show_password") == "true"
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm_password")

	if r.PostFormValue("action") == "toggle" {
		screen.Password = password
		screen.ConfirmPassword = confirm
		screen.ToggleShowPassword()
		h.cfg.Kit.Respond(w, r, rec, col, http.StatusOK, web.PageResetPassword, page)
		return
	}

	screen.Submit(r.Context(), password, confirm)

	// cliente desconectado antes de ver la respuesta: la pantalla se desmonta
	if r.Context().Err() != nil {
		screen.Unmount()
		return
	}

	if screen.IsSuccess {
		// el navegador vuelve a /auth con el meta refresh; el sign-out lo hace la tarea
		middleware.ClearSessionCookie(w, h.cfg.SecureCookies)
		page.RefreshURL = nav.PathLogin
		page.RefreshSeconds = int(screen.RedirectDelay().Round(time.Second) / time.Second)
	}

	h.cfg.Kit.Respond(w, r, rec, col, http.StatusOK, web.PageResetPassword, page)
}
