package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store modes.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config is the runtime configuration shared by the solorun binaries.
// Command-line flags override it.
type Config struct {
	Hero        string `env:"SOLORUN_HERO" envDefault:"ombra"`
	CatalogPath string `env:"SOLORUN_CATALOG"`
	MapPath     string `env:"SOLORUN_MAP"`
	Seed        int64  `env:"SOLORUN_SEED"`
	LogLevel    string `env:"SOLORUN_LOG_LEVEL" envDefault:"info"`
	Dev         bool   `env:"SOLORUN_DEV"`

	Store StoreConfig `envPrefix:"SOLORUN_STORE_"`
}

// StoreConfig selects and configures the progress store.
type StoreConfig struct {
	Mode          string        `env:"MODE" envDefault:"memory"`
	LocalDir      string        `env:"LOCAL_DIR"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"solorun.db"`
	PostgresDSN   string        `env:"POSTGRES_DSN"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"3s"`
	QueueSize     int           `env:"QUEUE_SIZE" envDefault:"64"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that the environment parser cannot.
func (c *Config) Validate() error {
	c.Store.Mode = strings.ToLower(strings.TrimSpace(c.Store.Mode))
	switch c.Store.Mode {
	case StoreMemory, StoreSQLite, StoreRedis:
	case StorePostgres:
		if strings.TrimSpace(c.Store.PostgresDSN) == "" {
			return fmt.Errorf("store mode postgres requires SOLORUN_STORE_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown store mode %q", c.Store.Mode)
	}
	if c.Store.QueueSize <= 0 {
		return fmt.Errorf("store queue size must be > 0, got %d", c.Store.QueueSize)
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout must be > 0, got %s", c.Store.Timeout)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
