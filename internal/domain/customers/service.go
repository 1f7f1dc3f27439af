package customers

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"groomer-portal/internal/domain/pets"
	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/platform/logger"
)

var (
	ErrNotFound = errors.New("customer not found")
)

const DefaultFanoutLimit = 8

// PetLister y HistoryLister los cumplen *pets.Service y *servicehistory.Service.
type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type HistoryLister interface {
	ListByCustomer(ctx context.Context, customerID string) ([]servicehistory.Entry, error)
}

type Options struct {
	// FanoutLimit acota los fetch de mascotas en vuelo. <= 0 usa DefaultFanoutLimit.
	FanoutLimit int
	Logger      logger.Logger
}

type Service struct {
	profiles Repository
	pets     PetLister
	history  HistoryLister

	limit int
	log   logger.Logger
}

func NewService(profiles Repository, petsSvc PetLister, history HistoryLister, opts Options) *Service {
	limit := opts.FanoutLimit
	if limit <= 0 {
		limit = DefaultFanoutLimit
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		profiles: profiles,
		pets:     petsSvc,
		history:  history,
		limit:    limit,
		log:      log.With(map[string]any{"module": "customers"}),
	}
}

// LoadCustomers trae los perfiles y después las mascotas de cada uno en paralelo.
// El resultado respeta el orden de los perfiles sin importar en qué orden terminen los fetch.
// Si el fetch de mascotas de un perfil falla, ese cliente queda con lista vacía.
func (s *Service) LoadCustomers(ctx context.Context) ([]CustomerWithPets, error) {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CustomerWithPets, len(profiles))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, p := range profiles {
		out[i] = CustomerWithPets{Profile: p, Pets: []pets.Pet{}}
		i, p := i, p
		g.Go(func() error {
			items, err := s.pets.ListByOwner(ctx, p.UserID)
			if err != nil {
				s.log.Warn("pets fetch failed, using empty list", map[string]any{
					"profile_id": p.ID,
					"user_id":    p.UserID,
					"error":      err,
				})
				return nil
			}
			if items != nil {
				out[i].Pets = items
			}
			return nil
		})
	}
	// las goroutines nunca devuelven error
	_ = g.Wait()

	return out, nil
}

// Get trae un solo cliente con sus mascotas, sin cargar la lista completa.
func (s *Service) Get(ctx context.Context, id string) (CustomerWithPets, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CustomerWithPets{}, ErrNotFound
	}

	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return CustomerWithPets{}, err
	}

	out := CustomerWithPets{Profile: p, Pets: []pets.Pet{}}
	items, err := s.pets.ListByOwner(ctx, p.UserID)
	if err != nil {
		s.log.Warn("pets fetch failed, using empty list", map[string]any{
			"profile_id": p.ID,
			"user_id":    p.UserID,
			"error":      err,
		})
		return out, nil
	}
	if items != nil {
		out.Pets = items
	}
	return out, nil
}

// ServiceHistory trae el historial del cliente (más reciente primero).
// Un fetch fallido se trata igual que "sin filas": se loguea y devuelve vacío.
func (s *Service) ServiceHistory(ctx context.Context, p Profile) []servicehistory.Entry {
	items, err := s.history.ListByCustomer(ctx, p.UserID)
	if err != nil {
		s.log.Warn("service history fetch failed, showing empty history", map[string]any{
			"profile_id": p.ID,
			"user_id":    p.UserID,
			"error":      err,
		})
		return []servicehistory.Entry{}
	}
	if items == nil {
		return []servicehistory.Entry{}
	}
	return items
}

// Find busca un cliente por id de perfil dentro de una lista ya cargada.
func Find(items []CustomerWithPets, id string) (CustomerWithPets, error) {
	id = strings.TrimSpace(id)
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return CustomerWithPets{}, ErrNotFound
}

// Filter es la búsqueda local: nombre y tarjeta sin distinguir mayúsculas,
// teléfono tal cual. Término vacío devuelve la lista completa.
func Filter(items []CustomerWithPets, term string) []CustomerWithPets {
	if term == "" {
		return items
	}
	out := make([]CustomerWithPets, 0, len(items))
	for _, c := range items {
		if Matches(c.Profile, term) {
			out = append(out, c)
		}
	}
	return out
}

func Matches(p Profile, term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)

	if strings.Contains(strings.ToLower(p.FullName), lower) {
		return true
	}
	if p.Phone != nil && *p.Phone != "" && strings.Contains(*p.Phone, term) {
		return true
	}
	if p.LoyaltyCardID != nil && *p.LoyaltyCardID != "" && strings.Contains(strings.ToLower(*p.LoyaltyCardID), lower) {
		return true
	}
	return false
}
