// Package config loads application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the core service.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	GatewaySecret string // HS256 secret shared with the gateway; empty disables the check
}

// GatewayConfig holds runtime configuration for the gateway process.
type GatewayConfig struct {
	Env           string        // application environment
	Port          string        // HTTP port to listen on
	ServerURL     string        // base URL of the core service
	GatewaySecret string        // HS256 secret for signing service tokens
	Timeout       time.Duration // per-request forwarding timeout
}

// Load reads the core service configuration. Required variables are
// enforced by must(); missing values exit with a fatal log message.
// A .env file in the working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "9090"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		GatewaySecret: os.Getenv("GATEWAY_SECRET"),
	}
}

// LoadGateway reads the gateway configuration.
func LoadGateway() GatewayConfig {
	_ = godotenv.Load()
	return GatewayConfig{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "8080"),
		ServerURL:     must("SHAREIT_SERVER_URL"),
		GatewaySecret: os.Getenv("GATEWAY_SECRET"),
		Timeout:       durenv("GATEWAY_TIMEOUT", 30*time.Second),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intenv reads an integer variable, falling back to the default when
// the value is unset or malformed. A typo must not zero out a
// capacity or size setting.
func intenv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// durenv reads a duration variable with the same fallback rules as
// intenv.
func durenv(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
