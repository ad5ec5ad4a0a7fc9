package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		HTTPListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    getEnv("SERVICE_NAME", "inventory-api"),
	}

	return cfg, nil
}

// Validate checks that the fields required to run the API are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.HTTPListenAddr == "" {
		return fmt.Errorf("HTTP_LISTEN_ADDR must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
