package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
)

// Kit junta lo que necesita un handler HTML para cerrar un request.
type Kit struct {
	Renderer *Renderer
	Flash    *Flash
}

// Respond traduce el resultado de una pantalla a HTTP:
// si navegó => flash + 303; si no => renderiza name con las notificaciones pendientes.
func (k *Kit) Respond(w http.ResponseWriter, r *http.Request, rec *nav.Recorder, col *notify.Collector, status int, name string, p Page) {
	if target, ok := rec.Target(); ok {
		k.Redirect(w, r, target, col.Notices())
		return
	}

	k.Render(w, r, status, name, p, col.Notices())
}

// Render agrega flash previos + notices del request y el campo CSRF.
func (k *Kit) Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page, notices []notify.Notice) {
	var pending []notify.Notice
	if k.Flash != nil {
		pending = k.Flash.Take(r)
	}
	p.Notices = append(append(pending, p.Notices...), notices...)
	p.CSRFField = csrf.TemplateField(r)

	k.Renderer.Render(w, status, name, p)
}

func (k *Kit) Redirect(w http.ResponseWriter, r *http.Request, target string, notices []notify.Notice) {
	if k.Flash != nil {
		k.Flash.Stash(w, r, notices)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
