package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/ports/notify"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Páginas disponibles. Cada una se parsea junto al layout.
const (
	PageForgotPassword = "forgot_password"
	PageResetPassword  = "reset_password"
	PageCustomers      = "customers"
	PageLanding        = "landing"
)

var pages = []string{PageForgotPassword, PageResetPassword, PageCustomers, PageLanding}

// Page es lo que recibe el layout. Data es el estado de la pantalla.
type Page struct {
	Title     string
	Notices   []notify.Notice
	CSRFField template.HTML

	// Si RefreshURL no está vacío, el layout agrega un meta refresh.
	RefreshURL     string
	RefreshSeconds int

	Data any
}

type Renderer struct {
	tmpl map[string]*template.Template
	log  logger.Logger
}

func NewRenderer(log logger.Logger) (*Renderer, error) {
	if log == nil {
		log = logger.Nop()
	}

	funcs := template.FuncMap{
		"noticeClass": noticeClass,
	}

	r := &Renderer{tmpl: make(map[string]*template.Template, len(pages)), log: log}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, layoutFile, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.tmpl[name] = t
	}
	return r, nil
}

// Render ejecuta en buffer: si el template falla no se manda una página a medias.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) {
	t, ok := r.tmpl[name]
	if !ok {
		r.log.Error("unknown template", map[string]any{"template": name})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		r.log.Error("render failed", map[string]any{"template": name, "error": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func noticeClass(k notify.Kind) string {
	if k == notify.KindError {
		return "border-red-300 bg-red-50 text-red-800"
	}
	return "border-green-300 bg-green-50 text-green-800"
}

// Landing es el contenido de las páginas simples (login, dashboard).
type Landing struct {
	Heading string
	Body    string
	Links   []Link
}

type Link struct {
	Href  string
	Label string
}
