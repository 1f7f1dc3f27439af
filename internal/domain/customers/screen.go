package customers

import (
	"context"
	"strings"

	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
	"groomer-portal/internal/ports/roles"
)

const MsgLoadFailed = "Failed to load customers"

// Viewer es el usuario que abre la pantalla. UserID vacío = no autenticado.
type Viewer struct {
	UserID string
}

func (v Viewer) Authenticated() bool { return strings.TrimSpace(v.UserID) != "" }

type Access int

const (
	AccessAnonymous Access = iota
	AccessDenied
	AccessGranted
)

// Authorize es el gate de admin. Si el resolver falla se deniega (y se loguea).
func Authorize(ctx context.Context, resolver roles.Resolver, v Viewer, log logger.Logger) Access {
	if !v.Authenticated() {
		return AccessAnonymous
	}
	if resolver == nil {
		return AccessDenied
	}
	ok, err := resolver.IsAdmin(ctx, v.UserID)
	if err != nil {
		if log != nil {
			log.Error("admin check failed", map[string]any{"user_id": v.UserID, "error": err})
		}
		return AccessDenied
	}
	if !ok {
		return AccessDenied
	}
	return AccessGranted
}

type ScreenDeps struct {
	Service   *Service
	Roles     roles.Resolver
	Navigator nav.Navigator
	Notifier  notify.Notifier
	Logger    logger.Logger
}

// Screen es el controller de la pantalla de gestión de clientes.
// Vive lo que dura un request; el estado es explícito para que la vista lo renderice.
type Screen struct {
	deps ScreenDeps

	Customers        []CustomerWithPets
	IsLoading        bool
	SearchTerm       string
	SelectedCustomer *CustomerWithPets
	ServiceHistory   []servicehistory.Entry
	IsDetailOpen     bool
	IsLoadingHistory bool
}

func NewScreen(deps ScreenDeps) *Screen {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &Screen{
		deps:      deps,
		Customers: []CustomerWithPets{},
	}
}

// Mount corre el gate y, solo para un admin autenticado, la carga inicial.
// Devuelve false si la pantalla navegó a otro lado.
func (s *Screen) Mount(ctx context.Context, v Viewer) bool {
	switch Authorize(ctx, s.deps.Roles, v, s.deps.Logger) {
	case AccessAnonymous:
		s.deps.Navigator.Navigate(nav.PathLogin)
		return false
	case AccessDenied:
		s.deps.Navigator.Navigate(nav.PathDashboard)
		return false
	}

	_ = s.LoadCustomers(ctx)
	return true
}

// LoadCustomers reemplaza la lista. Un error se notifica y deja la lista vacía.
func (s *Screen) LoadCustomers(ctx context.Context) error {
	s.IsLoading = true
	defer func() { s.IsLoading = false }()

	items, err := s.deps.Service.LoadCustomers(ctx)
	if err != nil {
		s.deps.Logger.Error("load customers failed", map[string]any{"error": err})
		s.deps.Notifier.Error(MsgLoadFailed)
		s.Customers = []CustomerWithPets{}
		return err
	}
	s.Customers = items
	return nil
}

func (s *Screen) SetSearchTerm(term string) { s.SearchTerm = term }

// Filtered es lo que muestra la tabla: Customers filtrado por SearchTerm.
func (s *Screen) Filtered() []CustomerWithPets {
	return Filter(s.Customers, s.SearchTerm)
}

// OpenDetail abre el panel antes de traer el historial.
func (s *Screen) OpenDetail(ctx context.Context, c CustomerWithPets) {
	s.SelectedCustomer = &c
	s.IsDetailOpen = true
	s.IsLoadingHistory = true
	s.ServiceHistory = nil

	s.ServiceHistory = s.deps.Service.ServiceHistory(ctx, c.Profile)
	s.IsLoadingHistory = false
}

// OpenDetailByID busca el cliente en la lista cargada y abre su detalle.
func (s *Screen) OpenDetailByID(ctx context.Context, id string) error {
	c, err := Find(s.Customers, id)
	if err != nil {
		return err
	}
	s.OpenDetail(ctx, c)
	return nil
}

func (s *Screen) CloseDetail() {
	s.IsDetailOpen = false
	s.SelectedCustomer = nil
	s.ServiceHistory = nil
	s.IsLoadingHistory = false
}
