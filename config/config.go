package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Store drivers selectable with STORE_DRIVER.
const (
	DriverFirebase = "firebase"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the process configuration, read from the environment (and a .env
// file loaded by main).
type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	StoreDriver  string
	StoreTimeout time.Duration

	FirebaseDatabaseURL     string
	FirebaseCredentialsFile string
	MongoURL                string
	MongoDatabase           string
	DatabaseURL             string
	SeedFile                string

	RedisURL          string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	AllowedOrigins []string

	PageSize       int
	FoldDiacritics bool
}

// Load reads the configuration. Malformed numeric, duration or boolean values
// are errors rather than silently defaulted.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:                  getEnv("APP_ENV", "development"),
		Port:                    getEnv("PORT", "8081"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		StoreDriver:             strings.ToLower(getEnv("STORE_DRIVER", DriverFirebase)),
		FirebaseDatabaseURL:     os.Getenv("FIREBASE_DATABASE_URL"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		MongoURL:                getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "storefront"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		SeedFile:                os.Getenv("CATALOG_SEED_FILE"),
		RedisURL:                os.Getenv("REDIS_URL"),
		AllowedOrigins:          splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	var err error
	if cfg.StoreTimeout, err = envDuration("STORE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequests, err = envInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = envDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = envInt("CATALOG_PAGE_SIZE", 40); err != nil {
		return nil, err
	}
	if cfg.FoldDiacritics, err = envBool("CATALOG_FOLD_DIACRITICS", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverFirebase:
		if c.FirebaseDatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL is required for the firebase store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// WithTimeout derives a store call context bounded by STORE_TIMEOUT.
func (c *Config) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.StoreTimeout)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
