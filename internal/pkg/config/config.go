package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// PublicURL is the externally visible site root used in @id links.
	// Empty derives it from each request.
	PublicURL string `env:"PUBLIC_URL"`

	JWT       JWTConfig
	CSRF      CSRFConfig
	Transform TransformConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	TTL    time.Duration `env:"JWT_TTL,    default=12h"`
	// Enabled installs the JWT plugin in the site user folder. Without it
	// every login fails as misconfigured.
	Enabled bool `env:"JWT_ENABLED, default=true"`
	// UpdateCredentials lets the plugin issue tokens on login.
	UpdateCredentials bool   `env:"JWT_UPDATE_CREDENTIALS, default=true"`
	CookieName        string `env:"JWT_COOKIE_NAME,        default=__ac"`
	CookieSecure      bool   `env:"JWT_COOKIE_SECURE,      default=false"`
}

type CSRFConfig struct {
	Enabled bool `env:"CSRF_ENABLED, default=true"`
}

type TransformConfig struct {
	// Disabled lists block transformer names to skip, comma separated.
	Disabled []string `env:"TRANSFORM_DISABLED"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cms"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults
// such as pretty console logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
