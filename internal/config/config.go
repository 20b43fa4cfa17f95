// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig holds all application-wide configuration.
//
// Only two knobs exist: the listen port and the store connection string.
// Everything else is fixed at compile time.
type AppConfig struct {
	ServerPort  string `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
}

// LoadConfig loads configuration from the environment, reading a .env file
// first when one is present. A missing .env file is not an error; explicit
// environment variables always win over file values.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
