package web

import (
	"net/http"

	"github.com/google/uuid"

	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/ports/notify"
)

const flashCookie = "flash_id"

// Flash guarda las notificaciones que tienen que sobrevivir a un redirect.
// El cookie solo lleva la key; el contenido vive en el Store.
type Flash struct {
	Store  notify.Store
	Secure bool
	Log    logger.Logger
}

func (f *Flash) Stash(w http.ResponseWriter, r *http.Request, notices []notify.Notice) {
	if len(notices) == 0 || f.Store == nil {
		return
	}

	key := ""
	if c, err := r.Cookie(flashCookie); err == nil {
		key = c.Value
	}
	if _, err := uuid.Parse(key); err != nil {
		key = uuid.NewString()
	}

	if err := f.Store.Push(r.Context(), key, notices); err != nil {
		f.log().Warn("flash push failed", map[string]any{"error": err})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take devuelve y consume las notificaciones pendientes del cliente.
func (f *Flash) Take(r *http.Request) []notify.Notice {
	if f.Store == nil {
		return nil
	}
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return nil
	}

	out, err := f.Store.Pop(r.Context(), c.Value)
	if err != nil {
		f.log().Warn("flash pop failed", map[string]any{"error": err})
		return nil
	}
	return out
}

func (f *Flash) log() logger.Logger {
	if f.Log == nil {
		return logger.Nop()
	}
	return f.Log
}
