package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	// Server
	Port            string
	Environment     string
	ServiceVersion  string
	ShutdownTimeout time.Duration

	// Store
	StoreBackend string
	DatabaseURL  string
	RedisURL     string

	// Development
	EnableSeed bool

	// Tracing
	EnableTrace   bool
	TraceEndpoint string
}

func Load() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		Environment:     environment,
		ServiceVersion:  getEnv("SERVICE_VERSION", "1.0.0"),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		StoreBackend:    getEnv("STORE_BACKEND", BackendPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		EnableSeed:      getEnvBool("ENABLE_SEED", environment == "development"),
		EnableTrace:     getEnvBool("ENABLE_TRACE", false),
		TraceEndpoint:   getEnv("TRACE_ENDPOINT", "localhost:4318"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs to connect.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the %s backend", c.StoreBackend)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL environment variable is required for the %s backend", c.StoreBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.EnableTrace && c.TraceEndpoint == "" {
		return fmt.Errorf("TRACE_ENDPOINT environment variable is required when ENABLE_TRACE is set")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
