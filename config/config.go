package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string
	SeedData    bool

	RedisURL string

	JWTKey           string
	JWTIssuer        string
	JWTAudience      string
	JWTExpireMinutes int

	LogFile string

	RateLimitPermits int
	RateLimitQueue   int

	OTelEnabled     bool
	OTelServiceName string
	OTelEndpoint    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", "inventory.db"),
		RedisURL:        getEnv("REDIS_URL", ""),
		JWTKey:          getEnv("JWT_KEY", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "inventory-api"),
		JWTAudience:     getEnv("JWT_AUDIENCE", "inventory-clients"),
		LogFile:         getEnv("LOG_FILE", ""),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "inventory-api"),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	var err error
	if cfg.JWTExpireMinutes, err = getInt("JWT_EXPIRE_MINUTES", 60); err != nil {
		return nil, err
	}
	if cfg.RateLimitPermits, err = getInt("RATE_LIMIT_PERMITS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitQueue, err = getInt("RATE_LIMIT_QUEUE", 2); err != nil {
		return nil, err
	}
	if cfg.SeedData, err = getBool("SEED_DATA", true); err != nil {
		return nil, err
	}
	if cfg.OTelEnabled, err = getBool("OTEL_ENABLED", true); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTExpireMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRE_MINUTES must be positive")
	}
	if c.RateLimitPermits <= 0 {
		return fmt.Errorf("RATE_LIMIT_PERMITS must be positive")
	}
	if c.RateLimitQueue < 0 {
		return fmt.Errorf("RATE_LIMIT_QUEUE cannot be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

// JobsEnabled reports whether a redis backend is configured for background jobs.
func (c *Config) JobsEnabled() bool {
	return c.RedisURL != ""
}

func (c *Config) RedisAddr() string {
	if len(c.RedisURL) > 8 && c.RedisURL[:8] == "redis://" {
		return c.RedisURL[8:]
	}
	return c.RedisURL
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
