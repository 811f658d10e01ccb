package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the service reads from the environment.
// Provider credentials and the session secret have no defaults and the
// server refuses to start without them.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	RuntimeEnv string `env:"RUNTIME_ENV" envDefault:"development"`

	ProviderClientID     string `env:"PROVIDER_CLIENT_ID"`
	ProviderClientSecret string `env:"PROVIDER_CLIENT_SECRET"`
	CallbackBaseURL      string `env:"CALLBACK_BASE_URL"`

	SessionSecret   string        `env:"SESSION_SECRET"`
	SessionStoreURL string        `env:"SESSION_STORE_URL"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"336h"`

	StudentEmailDomain string `env:"STUDENT_EMAIL_DOMAIN" envDefault:"stu.pathfinder-mm.org"`
	AllowedEmail       string `env:"ALLOWED_EMAIL" envDefault:"pathfinder.mm.dev@gmail.com"`

	// Derived from RuntimeEnv, never read from the environment directly.
	CookieSecure bool
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	// The provider redirect URL is built by joining this with the
	// callback path, so a trailing slash would double up.
	cfg.CallbackBaseURL = strings.TrimRight(cfg.CallbackBaseURL, "/")

	cfg.CookieSecure = cfg.RuntimeEnv == "production"

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var missing []string

	if c.ProviderClientID == "" {
		missing = append(missing, "PROVIDER_CLIENT_ID")
	}
	if c.ProviderClientSecret == "" {
		missing = append(missing, "PROVIDER_CLIENT_SECRET")
	}
	if c.CallbackBaseURL == "" {
		missing = append(missing, "CALLBACK_BASE_URL")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf(
			"config: missing required environment variables: %s",
			strings.Join(missing, ", "),
		)
	}

	return nil
}
