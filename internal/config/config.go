package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/huddle-dev/huddle/internal/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const EnvDevelopment = "development"

type Config struct {
	Env          string `yaml:"env"`
	Port         string `yaml:"port"`
	JWTSecret    string `yaml:"jwt_secret"`
	FrontendURL  string `yaml:"frontend_url"`
	DBDriver     string `yaml:"db_driver"`
	DatabaseURL  string `yaml:"database_url"`
	CookieDomain string `yaml:"cookie_domain"`
}

func Default() Config {
	return Config{
		Env:         EnvDevelopment,
		Port:        "5000",
		FrontendURL: "http://localhost:5173",
		DBDriver:    "postgres",
	}
}

// Load layers defaults, the optional YAML file at path, a .env file in the
// working directory, and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// A missing .env is fine; production sets real environment variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()

	if cfg.DBDriver == "sqlite" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "huddle.db"
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"APP_ENV":       &c.Env,
		"PORT":          &c.Port,
		"JWT_SECRET":    &c.JWTSecret,
		"FRONTEND_URL":  &c.FrontendURL,
		"DB_DRIVER":     &c.DBDriver,
		"DATABASE_URL":  &c.DatabaseURL,
		"COOKIE_DOMAIN": &c.CookieDomain,
	}

	for key, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*field = v
		}
	}
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// CookieSecure marks the session cookie Secure everywhere except local development.
func (c Config) CookieSecure() bool {
	return !c.IsDevelopment()
}

// AllowedOrigins returns the comma-separated FRONTEND_URL entries, plus the
// local dev servers when running in development.
func (c Config) AllowedOrigins() []string {
	var origins []string

	if c.IsDevelopment() {
		origins = append(origins, types.DefaultOrigins...)
	}

	for _, origin := range strings.Split(c.FrontendURL, ",") {
		trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
		if trimmed != "" && !slices.Contains(origins, trimmed) {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
