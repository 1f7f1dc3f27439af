package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config agrupa todo lo que necesita cmd/api para armar el router.
// Orden de carga: .env (opcional) -> archivo YAML (CONFIG_FILE, opcional) -> env vars.
type Config struct {
	Port    string `yaml:"port"`
	SiteURL string `yaml:"site_url"`

	AppName   string `yaml:"app_name"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Postgres directo (opcional). Si no hay, se usa el BaaS REST o memoria.
	DBDSN string `yaml:"db_dsn"`

	// BaaS (GoTrue + PostgREST). Sin URL => adapters in-memory (modo dev).
	BaaSURL    string `yaml:"baas_url"`
	BaaSAPIKey string `yaml:"baas_api_key"`
	JWTSecret  string `yaml:"jwt_secret"`

	// Flash messages en Redis (opcional). Sin addr => memoria.
	RedisAddr string `yaml:"redis_addr"`

	CSRFKey       string `yaml:"csrf_key"`
	SecureCookies bool   `yaml:"secure_cookies"`

	FanoutLimit   int           `yaml:"fanout_limit"`
	RedirectDelay time.Duration `yaml:"redirect_delay"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
}

func Default() Config {
	return Config{
		Port:          "8080",
		SiteURL:       "http://localhost:8080",
		AppName:       "groomer-portal",
		LogLevel:      "info",
		LogFormat:     "text",
		FanoutLimit:   8,
		RedirectDelay: 2 * time.Second,
		HTTPTimeout:   10 * time.Second,
	}
}

// Load lee .env si existe, luego CONFIG_FILE, luego variables de entorno.
func Load() (Config, error) {
	// .env es opcional: en prod normalmente no existe
	_ = godotenv.Load()

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &c.Port)
	str("SITE_URL", &c.SiteURL)
	str("APP_NAME", &c.AppName)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("DB_DSN", &c.DBDSN)
	str("BAAS_URL", &c.BaaSURL)
	str("BAAS_API_KEY", &c.BaaSAPIKey)
	str("JWT_SECRET", &c.JWTSecret)
	str("REDIS_ADDR", &c.RedisAddr)
	str("CSRF_KEY", &c.CSRFKey)

	if v, ok := lookup("SECURE_COOKIES"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: SECURE_COOKIES: %w", err)
		}
		c.SecureCookies = b
	}
	if v, ok := lookup("FANOUT_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: FANOUT_LIMIT: %w", err)
		}
		c.FanoutLimit = n
	}
	for key, dst := range map[string]*time.Duration{
		"REDIRECT_DELAY": &c.RedirectDelay,
		"HTTP_TIMEOUT":   &c.HTTPTimeout,
	} {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: port required")
	}
	if c.FanoutLimit <= 0 {
		return errors.New("config: fanout_limit must be > 0")
	}
	if c.RedirectDelay < 0 {
		return errors.New("config: redirect_delay must be >= 0")
	}
	if c.BaaSURL != "" && c.BaaSAPIKey == "" {
		return errors.New("config: baas_api_key required when baas_url is set")
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return errors.New("config: csrf_key must be 32 bytes")
	}
	return nil
}

// Addr devuelve ":<port>" para http.Server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
