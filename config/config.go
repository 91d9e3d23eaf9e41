package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// RedirectDelay is the time to wait before redirecting the user after a successful action.
	RedirectDelay = 1 * time.Second

	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	HTMXURL        = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

	// SiteName is shown in the header and page titles.
	SiteName = "Leonexus"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port       string        `env:"LEONEXUS_PORT" envDefault:"8080"`
	APIBaseURL string        `env:"LEONEXUS_API_BASE_URL" envDefault:"https://alx-project-nexus-3ow0.onrender.com/api"`
	APITimeout time.Duration `env:"LEONEXUS_API_TIMEOUT" envDefault:"10s"`

	JWTSecret   string        `env:"LEONEXUS_JWT_SECRET,required"`
	SessionTTL  time.Duration `env:"LEONEXUS_SESSION_TTL" envDefault:"24h"`
	DatabaseURL string        `env:"LEONEXUS_DATABASE_URL" envDefault:"file:leonexus.db?_busy_timeout=5000"`

	LogLevel string `env:"LEONEXUS_LOG_LEVEL" envDefault:"info"`
	Dev      bool   `env:"LEONEXUS_DEV" envDefault:"false"`

	UploadLimit  int           `env:"LEONEXUS_UPLOAD_LIMIT" envDefault:"62914560"` // 60MB, ten 5MB images plus form
	RateLimitMax int           `env:"LEONEXUS_RATE_LIMIT_MAX" envDefault:"120"`
	RateLimitExp time.Duration `env:"LEONEXUS_RATE_LIMIT_EXPIRATION" envDefault:"1m"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LEONEXUS_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return errors.New("LEONEXUS_API_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("LEONEXUS_SESSION_TTL must be positive")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("LEONEXUS_JWT_SECRET must be at least 16 characters")
	}
	return nil
}
