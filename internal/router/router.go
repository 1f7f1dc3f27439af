package router

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "groomer-portal/docs"
	"groomer-portal/internal/adapters/auth/gotrue"
	"groomer-portal/internal/adapters/auth/jwtverify"
	memauth "groomer-portal/internal/adapters/auth/memory"
	"groomer-portal/internal/adapters/flash"
	mem "groomer-portal/internal/adapters/storage/memory"
	pg "groomer-portal/internal/adapters/storage/postgres"
	"groomer-portal/internal/adapters/storage/rest"
	"groomer-portal/internal/domain/customers"
	"groomer-portal/internal/domain/passwordreset"
	"groomer-portal/internal/domain/pets"
	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/middleware"
	"groomer-portal/internal/platform/config"
	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/platform/schedule"
	"groomer-portal/internal/ports/auth"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
	"groomer-portal/internal/ports/roles"
	"groomer-portal/internal/web"
)

// Usuario admin de modo dev (coincide con el admin de los datos de ejemplo).
const (
	DevAdminID       = "00000000-0000-0000-0000-00000000a001"
	DevAdminEmail    = "admin@example.com"
	DevAdminPassword = "admin123"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	// Lo que venga explícito pisa lo que saldría de Config (tests, cmd).
	Auth         auth.Service
	AuthVerifier auth.AuthVerifier
	DB           *sql.DB
	Store        *mem.Store
	Flash        notify.Store
	Scheduler    schedule.Scheduler
	Registry     *prometheus.Registry

	// DevHeader deja el verifier en nil: claims desde X-Debug-User-ID.
	DevHeader bool
}

type data struct {
	profiles customers.Repository
	pets     pets.Repository
	history  servicehistory.Repository
	roles    roles.Resolver

	// close libera lo que abrió el router (no lo que vino en Options).
	close func() error
}

// openPostgres se reemplaza en tests.
var openPostgres = pg.Open

func noopClose() error { return nil }

// NewRouter arma el handler. El close devuelto cierra los recursos que abrió
// el propio router (la DB de DB_DSN); se llama al apagar el server.
func NewRouter(opts Options) (http.Handler, func() error, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	d, err := selectData(opts, log)
	if err != nil {
		return nil, nil, err
	}
	authSvc, verifier, err := selectAuth(opts, log)
	if err != nil {
		_ = d.close()
		return nil, nil, err
	}

	flashStore := opts.Flash
	if flashStore == nil {
		flashStore = flash.NewMemoryStore()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = schedule.Timer{Timeout: cfg.HTTPTimeout}
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	renderer, err := web.NewRenderer(log)
	if err != nil {
		_ = d.close()
		return nil, nil, err
	}
	kit := &web.Kit{
		Renderer: renderer,
		Flash:    &web.Flash{Store: flashStore, Secure: cfg.SecureCookies, Log: log},
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.NewMetrics(reg).Handler)

	if cfg.CSRFKey != "" {
		if !cfg.SecureCookies {
			// dev sobre http: gorilla/csrf asume TLS salvo que se marque el request
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, csrf.PlaintextHTTPRequest(req))
				})
			})
		}
		r.Use(csrf.Protect([]byte(cfg.CSRFKey),
			csrf.Secure(cfg.SecureCookies),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
		))
	}

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Destinos de navegación de las pantallas (el login en sí lo resuelve el BaaS)
	r.Get(nav.PathLogin, landing(kit, "Sign in", "Sign in with your account to continue."))
	r.Get(nav.PathDashboard, landing(kit, "Dashboard", "Welcome back."))

	// Services por módulo
	petsSvc := pets.NewService(d.pets)
	historySvc := servicehistory.NewService(d.history)
	customersSvc := customers.NewService(d.profiles, petsSvc, historySvc, customers.Options{
		FanoutLimit: cfg.FanoutLimit,
		Logger:      log,
	})

	// Rutas por módulo
	passwordreset.RegisterRoutes(r, passwordreset.NewHandler(passwordreset.HandlerConfig{
		Auth:          authSvc,
		Scheduler:     scheduler,
		Kit:           kit,
		SiteURL:       cfg.SiteURL,
		RedirectDelay: cfg.RedirectDelay,
		SecureCookies: cfg.SecureCookies,
	}))
	customers.RegisterRoutes(r, customers.NewHandler(customersSvc, d.roles, kit))

	return r, d.close, nil
}

func landing(kit *web.Kit, heading, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kit.Render(w, r, http.StatusOK, web.PageLanding, web.Page{
			Title: heading,
			Data: web.Landing{
				Heading: heading,
				Body:    body,
				Links: []web.Link{
					{Href: nav.PathForgotPassword, Label: "Forgot your password?"},
					{Href: nav.PathAdminCustomers, Label: "Customer management"},
				},
			},
		}, nil)
	}
}

// selectData: DB explícita o DB_DSN => Postgres; BAAS_URL => REST; si no, memoria.
func selectData(opts Options, log logger.Logger) (data, error) {
	cfg := opts.Config

	db := opts.DB
	closeDB := noopClose
	if db == nil && cfg.DBDSN != "" {
		opened, err := openPostgres(context.Background(), cfg.DBDSN)
		if err != nil {
			return data{}, fmt.Errorf("open postgres: %w", err)
		}
		db = opened
		closeDB = opened.Close
	}
	if db != nil {
		log.Info("data: postgres", nil)
		return data{
			profiles: pg.NewProfilesRepo(db),
			pets:     pg.NewPetsRepo(db),
			history:  pg.NewHistoryRepo(db),
			roles:    pg.NewRolesRepo(db),
			close:    closeDB,
		}, nil
	}

	if opts.Store == nil && cfg.BaaSURL != "" {
		c, err := rest.NewClient(rest.Config{BaseURL: cfg.BaaSURL, APIKey: cfg.BaaSAPIKey, Timeout: cfg.HTTPTimeout})
		if err != nil {
			return data{}, fmt.Errorf("rest client: %w", err)
		}
		log.Info("data: baas rest", map[string]any{"base_url": cfg.BaaSURL})
		return data{
			profiles: rest.NewProfilesRepo(c),
			pets:     rest.NewPetsRepo(c),
			history:  rest.NewHistoryRepo(c),
			roles:    rest.NewRolesRepo(c),
			close:    noopClose,
		}, nil
	}

	store := opts.Store
	if store == nil {
		store = mem.NewStore()
		if err := store.LoadDemo(); err != nil {
			return data{}, err
		}
		log.Info("data: in-memory demo data", nil)
	}
	return data{
		profiles: store.Profiles,
		pets:     store.Pets,
		history:  store.History,
		roles:    store.Roles,
		close:    noopClose,
	}, nil
}

// selectAuth: BAAS_URL => GoTrue (+ JWT verifier si hay JWT_SECRET); si no, auth en memoria.
func selectAuth(opts Options, log logger.Logger) (auth.Service, auth.AuthVerifier, error) {
	cfg := opts.Config

	verifier := opts.AuthVerifier
	if verifier == nil && cfg.JWTSecret != "" {
		v, err := jwtverify.NewVerifier(cfg.JWTSecret, "")
		if err != nil {
			return nil, nil, fmt.Errorf("jwt verifier: %w", err)
		}
		verifier = v
	}

	if opts.Auth != nil {
		return opts.Auth, devVerifier(opts, verifier, opts.Auth), nil
	}

	if cfg.BaaSURL != "" {
		client, err := gotrue.NewClient(gotrue.Config{BaseURL: cfg.BaaSURL, APIKey: cfg.BaaSAPIKey, Timeout: cfg.HTTPTimeout})
		if err != nil {
			return nil, nil, fmt.Errorf("gotrue client: %w", err)
		}
		if verifier == nil {
			return nil, nil, errors.New("JWT_SECRET is required with BAAS_URL")
		}
		log.Info("auth: gotrue", map[string]any{"base_url": cfg.BaaSURL})
		return gotrue.NewService(client), verifier, nil
	}

	svc := memauth.NewService(log)
	svc.AddUser(memauth.User{ID: DevAdminID, Email: DevAdminEmail, Password: DevAdminPassword})
	log.Info("auth: in-memory (dev)", map[string]any{"admin_email": DevAdminEmail})
	return svc, devVerifier(opts, verifier, svc), nil
}

// devVerifier: con DevHeader se deja nil (X-Debug-User-ID); si el servicio en memoria
// también verifica tokens, se usa ese.
func devVerifier(opts Options, verifier auth.AuthVerifier, svc auth.Service) auth.AuthVerifier {
	if opts.DevHeader {
		return nil
	}
	if verifier != nil {
		return verifier
	}
	if v, ok := svc.(auth.AuthVerifier); ok {
		return v
	}
	return nil
}
