package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	AuthModeRemote = "remote"
	AuthModeLocal  = "local"

	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"

	envDevelopment = "development"
)

type Config struct {
	Port      string `env:"PORT,       default=3000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	CookieSecret string `env:"COOKIE_SECRET"`
	CookieName   string `env:"COOKIE_NAME,   default=hms_client"`
	CookieSecure bool   `env:"COOKIE_SECURE, default=false"`

	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:8080/api"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=15s"`
	AuthMode   string        `env:"AUTH_MODE,    default=remote"`

	SessionBackend string        `env:"SESSION_BACKEND, default=memory"`
	SessionTTL     time.Duration `env:"SESSION_TTL,     default=12h"`
	SessionPrefix  string        `env:"SESSION_PREFIX,  default=hms"`

	AuditEnabled bool `env:"AUDIT_ENABLED, default=false"`
	AuditWorkers int  `env:"AUDIT_WORKERS, default=2"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown modes and backends, and a missing cookie secret
// outside development.
func (c *Config) Validate() error {
	var errs []error

	switch c.AuthMode {
	case AuthModeRemote, AuthModeLocal:
	default:
		errs = append(errs, fmt.Errorf("config: unknown AUTH_MODE %q", c.AuthMode))
	}
	switch c.SessionBackend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("config: unknown SESSION_BACKEND %q", c.SessionBackend))
	}
	if c.CookieSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("config: COOKIE_SECRET is required outside development"))
	}
	if c.AuditWorkers < 1 {
		errs = append(errs, errors.New("config: AUDIT_WORKERS must be at least 1"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool { return c.Env == envDevelopment }

// NeedsMongo reports whether any enabled component stores data in MongoDB.
func (c *Config) NeedsMongo() bool {
	return c.SessionBackend == BackendMongo || c.AuthMode == AuthModeLocal || c.AuditEnabled
}

func (c *Config) NeedsRedis() bool { return c.SessionBackend == BackendRedis }
