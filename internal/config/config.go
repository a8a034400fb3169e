package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Upstream membership API
	APIBaseURL string // base path of the JSON API, fixed at deploy time
	HealthURL  string // host root used by the connectivity monitor

	// HTTP client
	HTTPTimeout time.Duration

	// Connectivity monitor
	HealthTimeout  time.Duration // generous: the backend cold-starts on its free-tier host
	HealthInterval time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	StatsCacheTTL time.Duration
	FlashTTL      time.Duration

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000/api"),
		HealthURL:  getEnv("HEALTH_URL", "http://localhost:3000/"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		HealthTimeout:  getEnvDuration("HEALTH_TIMEOUT", 60*time.Second),
		HealthInterval: getEnvDuration("HEALTH_INTERVAL", 30*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 20),

		StatsCacheTTL: getEnvDuration("STATS_CACHE_TTL", time.Minute),
		FlashTTL:      getEnvDuration("FLASH_TTL", 2*time.Minute),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
