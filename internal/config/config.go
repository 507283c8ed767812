package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Port int `envconfig:"PORT" default:"8000"`

	// DatabaseURL is optional. When empty the server runs without a document
	// store and the theme endpoints report storage as unavailable.
	DatabaseURL  string `envconfig:"DATABASE_URL" default:""`
	DatabaseName string `envconfig:"DATABASE_NAME" default:"translator"`

	TranslateURL     string        `envconfig:"TRANSLATE_URL" default:"https://libretranslate.de/translate"`
	TranslateTimeout time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"15s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if strings.TrimSpace(c.TranslateURL) == "" {
		return fmt.Errorf("TRANSLATE_URL is required")
	}
	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("TRANSLATE_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}
	return nil
}
