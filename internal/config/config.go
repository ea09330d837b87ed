// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/Pratyasha-Tapaja/cbpmodel/internal/model"
)

// Config holds all application configuration
type Config struct {
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogPretty switches from JSON lines to zerolog's console writer
	LogPretty      bool `env:"LOG_PRETTY" envDefault:"false"`
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	Model ModelConfig
	HTTP  HTTPConfig
}

// ModelConfig points at the trained model artifact
type ModelConfig struct {
	Path string `env:"MODEL_PATH" envDefault:"model/calorie_model.json"`
	Type string `env:"MODEL_TYPE" envDefault:"tree_ensemble"`
}

// HTTPConfig holds server timeouts
type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Level returns the parsed zerolog level
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Validate rejects configuration the service cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1-65535, got %d", c.Port))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q: %v", c.LogLevel, err))
	}
	if c.Model.Path == "" {
		errs = append(errs, errors.New("MODEL_PATH is required"))
	}
	if _, ok := model.DefaultRegistry().Loader(c.Model.Type); !ok {
		errs = append(errs, fmt.Errorf("MODEL_TYPE must be one of %v, got %q", model.DefaultRegistry().List(), c.Model.Type))
	}
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.HTTP.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.HTTP.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.HTTP.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout},
	}
	for _, to := range timeouts {
		if to.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", to.name, to.d))
		}
	}
	return errors.Join(errs...)
}
