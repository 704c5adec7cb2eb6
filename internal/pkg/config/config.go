package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends selectable through SESSION_STORE.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Locale   string `env:"LOCALE,    default=vi"`

	AuthAPI  AuthAPIConfig
	Session  SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Demo     DemoConfig
	Login    LoginLimitConfig
}

type AuthAPIConfig struct {
	URL string `env:"AUTH_API_URL, default=http://localhost:8000/api/v1"`
	// Zero disables the client timeout; cancellation then comes from the
	// request context only.
	Timeout time.Duration `env:"AUTH_API_TIMEOUT, default=0s"`
}

type SessionConfig struct {
	Store string `env:"SESSION_STORE, default=file"`
	File  string `env:"SESSION_FILE,  default=.console/session.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=publisher_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=console:"`
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=postgres://localhost:5432/publisher_console?sslmode=disable"`
}

type DemoConfig struct {
	Enabled  bool   `env:"DEMO_ENABLED,  default=true"`
	Username string `env:"DEMO_USERNAME, default=anhnd"`
	Password string `env:"DEMO_PASSWORD, default=123123123"`
}

type LoginLimitConfig struct {
	PerMinute int `env:"LOGIN_RATE_PER_MIN, default=10"`
	Burst     int `env:"LOGIN_RATE_BURST,   default=5"`
}

// IsDevelopment reports whether human-friendly logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects combinations the process cannot start with.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreFile, StoreRedis, StoreMongo, StorePostgres:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.AuthAPI.Timeout < 0 {
		return fmt.Errorf("config: AUTH_API_TIMEOUT must not be negative")
	}
	if c.Login.PerMinute <= 0 || c.Login.Burst <= 0 {
		return fmt.Errorf("config: LOGIN_RATE_PER_MIN and LOGIN_RATE_BURST must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadFrom is Load with an explicit lookuper, for tests.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
