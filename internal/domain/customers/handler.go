package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/middleware"
	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
	"groomer-portal/internal/ports/roles"
	"groomer-portal/internal/web"
)

const msgCustomerNotFound = "Customer not found"

type Handler struct {
	svc   *Service
	roles roles.Resolver
	kit   *web.Kit
}

func NewHandler(svc *Service, resolver roles.Resolver, kit *web.Kit) *Handler {
	return &Handler{svc: svc, roles: resolver, kit: kit}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	// Pantalla (HTML)
	r.Get(nav.PathAdminCustomers, h.screenHandler)
	r.Get(nav.PathAdminCustomers+"/{customerID}", h.screenHandler)

	// API (JSON) sobre el mismo servicio
	r.Route("/api/admin/customers", func(ar chi.Router) {
		ar.Get("/", h.listHandler)
		ar.Get("/{customerID}", h.getHandler)
		ar.Get("/{customerID}/history", h.historyHandler)
	})
}

func viewerFrom(r *http.Request) Viewer {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return Viewer{}
	}
	return Viewer{UserID: claims.UserID}
}

// screenHandler monta la pantalla en cada request: el gate se re-evalúa siempre.
func (h *Handler) screenHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec := &nav.Recorder{}
	col := &notify.Collector{}

	screen := NewScreen(ScreenDeps{
		Service:   h.svc,
		Roles:     h.roles,
		Navigator: rec,
		Notifier:  col,
		Logger:    logger.FromContext(ctx),
	})

	status := http.StatusOK
	if screen.Mount(ctx, viewerFrom(r)) {
		screen.SetSearchTerm(r.URL.Query().Get("q"))
		if id := chi.URLParam(r, "customerID"); id != "" {
			if err := screen.OpenDetailByID(ctx, id); err != nil {
				status = http.StatusNotFound
				col.Error(msgCustomerNotFound)
			}
		}
	}

	h.kit.Respond(w, r, rec, col, status, web.PageCustomers, web.Page{
		Title: "Customers",
		Data:  screen,
	})
}

type petResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Species    string  `json:"species"`
	Breed      *string `json:"breed"`
	Age        *int    `json:"age"`
	BadgeClass string  `json:"badge_class"`
}

type customerResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	FullName      string        `json:"full_name"`
	Phone         *string       `json:"phone"`
	Address       *string       `json:"address"`
	LoyaltyCardID *string       `json:"loyalty_card_id"`
	LoyaltyPoints int           `json:"loyalty_points"`
	CreatedAt     time.Time     `json:"created_at"`
	Pets          []petResponse `json:"pets"`
}

type historyResponse struct {
	ID           string    `json:"id"`
	ServiceName  string    `json:"service_name"`
	ServiceDate  time.Time `json:"service_date"`
	AmountPaid   float64   `json:"amount_paid"`
	PointsEarned int       `json:"points_earned"`
}

// authorizeAPI: 401 sin usuario, 403 si no es admin.
func (h *Handler) authorizeAPI(w http.ResponseWriter, r *http.Request) bool {
	v := viewerFrom(r)
	switch Authorize(r.Context(), h.roles, v, logger.FromContext(r.Context())) {
	case AccessAnonymous:
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	case AccessDenied:
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// listHandler godoc
// @Summary      Lista clientes con sus mascotas
// @Tags         customers
// @Produce      json
// @Param        q   query     string  false  "Búsqueda por nombre, teléfono o tarjeta"
// @Success      200 {array}   customerResponse
// @Failure      401 {string}  string
// @Failure      403 {string}  string
// @Failure      502 {string}  string
// @Router       /api/admin/customers [get]
func (h *Handler) listHandler(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAPI(w, r) {
		return
	}

	items, err := h.svc.LoadCustomers(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("load customers failed", map[string]any{"error": err})
		http.Error(w, MsgLoadFailed, http.StatusBadGateway)
		return
	}

	filtered := Filter(items, r.URL.Query().Get("q"))
	out := make([]customerResponse, 0, len(filtered))
	for _, c := range filtered {
		out = append(out, toCustomerResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// getHandler godoc
// @Summary      Detalle de un cliente
// @Tags         customers
// @Produce      json
// @Param        customerID  path      string  true  "ID del perfil"
// @Success      200 {object}  customerResponse
// @Failure      401 {string}  string
// @Failure      403 {string}  string
// @Failure      404 {string}  string
// @Router       /api/admin/customers/{customerID} [get]
func (h *Handler) getHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOne(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

// historyHandler godoc
// @Summary      Historial de servicios y puntos de un cliente
// @Tags         customers
// @Produce      json
// @Param        customerID  path      string  true  "ID del perfil"
// @Success      200 {array}   historyResponse
// @Failure      401 {string}  string
// @Failure      403 {string}  string
// @Failure      404 {string}  string
// @Router       /api/admin/customers/{customerID}/history [get]
func (h *Handler) historyHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOne(w, r)
	if !ok {
		return
	}

	entries := h.svc.ServiceHistory(r.Context(), c.Profile)
	out := make([]historyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) loadOne(w http.ResponseWriter, r *http.Request) (CustomerWithPets, bool) {
	if !h.authorizeAPI(w, r) {
		return CustomerWithPets{}, false
	}

	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return CustomerWithPets{}, false
		}
		logger.FromContext(r.Context()).Error("load customer failed", map[string]any{"error": err})
		http.Error(w, MsgLoadFailed, http.StatusBadGateway)
		return CustomerWithPets{}, false
	}
	return c, true
}

func toCustomerResponse(c CustomerWithPets) customerResponse {
	petsOut := make([]petResponse, 0, len(c.Pets))
	for _, p := range c.Pets {
		petsOut = append(petsOut, petResponse{
			ID:         p.ID,
			Name:       p.Name,
			Species:    string(p.Species),
			Breed:      p.Breed,
			Age:        p.Age,
			BadgeClass: p.BadgeClass(),
		})
	}
	return customerResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		FullName:      c.FullName,
		Phone:         c.Phone,
		Address:       c.Address,
		LoyaltyCardID: c.LoyaltyCardID,
		LoyaltyPoints: c.Points(),
		CreatedAt:     c.CreatedAt,
		Pets:          petsOut,
	}
}

func toHistoryResponse(e servicehistory.Entry) historyResponse {
	return historyResponse{
		ID:           e.ID,
		ServiceName:  e.ServiceName,
		ServiceDate:  e.ServiceDate,
		AmountPaid:   e.AmountPaid,
		PointsEarned: e.Points(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
