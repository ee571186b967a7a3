// Package config loads server settings from the environment and game rules
// from YAML.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from environment variables.
type Env struct {
	Port          string `env:"PORT" envDefault:"5175"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"` // json | console
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	LogoDir       string `env:"LOGO_DIR"`   // empty: embedded sample logos
	RulesFile     string `env:"RULES_FILE"` // empty: search order, see LoadRules
	Seed          int64  `env:"SEED"`       // 0: random
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	SessionStore  string `env:"SESSION_STORE" envDefault:"memory"` // memory | sqlite
	SQLiteDSN     string `env:"SQLITE_DSN" envDefault:"file:logoquiz?mode=memory&cache=shared"`
	ClientOrigin  string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Production reports whether cookies should be marked Secure.
func (e Env) Production() bool { return e.AppEnv == "production" }

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Env from the environment.
func Load() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.SessionStore {
	case "memory", "sqlite":
	default:
		return cfg, fmt.Errorf("config: SESSION_STORE must be memory or sqlite, got %q", cfg.SessionStore)
	}
	return cfg, nil
}
