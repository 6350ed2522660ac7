// Package config supplies environment-backed defaults for the CLI.
// Flags always win; the environment (optionally seeded from a .env
// file) only sets the defaults the flags start from.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Input       string `env:"ROSTER_INPUT"`
	Shift       string `env:"ROSTER_SHIFT" envDefault:"day"`
	Slots       int    `env:"ROSTER_SLOTS" envDefault:"0"`
	SlotMinutes int    `env:"ROSTER_SLOT_MINUTES" envDefault:"40"`
	Format      string `env:"ROSTER_FORMAT" envDefault:"text"`
	Output      string `env:"ROSTER_OUTPUT"`
	Log         struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"console"`
	} `envPrefix:"ROSTER_LOG_"`
	Metrics struct {
		Addr    string `env:"ADDR"`
		PushURL string `env:"PUSH_URL"`
	} `envPrefix:"ROSTER_METRICS_"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
