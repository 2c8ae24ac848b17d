package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every environment-driven setting for the API process. It is
// built exactly once at startup and handed to constructors by injection;
// business logic never reads the process environment.
type Config struct {
	Port         string
	PostgresDSN  string
	APIKey       string
	Environment  string
	OTLPEndpoint string
	OTLPInsecure bool
}

// LoadConfig reads a .env file when present, then the environment, applies
// defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         envDefault("PORT", "8080"),
		PostgresDSN:  strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		APIKey:       strings.TrimSpace(os.Getenv("API_KEY")),
		Environment:  envDefault("ENVIRONMENT", "local"),
		OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("API_KEY must be set")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
