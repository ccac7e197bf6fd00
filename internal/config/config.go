package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/pkg/database"
)

// Config holds runtime configuration for the API and the maintenance commands.
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"go-hotel-pms"`
	Port    string `envconfig:"PORT" default:"8080"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"hotel_pms"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBTimeZone  string `envconfig:"DB_TIMEZONE" default:"UTC"`
	DBLogLevel  string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL             time.Duration `envconfig:"JWT_TTL" default:"24h"`
	JWTIssuer          string        `envconfig:"JWT_ISSUER" default:"go-hotel-pms"`
	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`

	// RedisAddr empty means identifier allocation is locked in process only.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	IDFormat       string        `envconfig:"ID_FORMAT" default:"long"`
	IDAllocRetries int           `envconfig:"ID_ALLOC_RETRIES" default:"3"`
	IDLockTTL      time.Duration `envconfig:"ID_LOCK_TTL" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	SeedAdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"god@hotel-pms.local"`
	SeedAdminPassword string `envconfig:"SEED_ADMIN_PASSWORD"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if _, err := identifier.ParseFormatVersion(c.IDFormat); err != nil {
		return fmt.Errorf("ID_FORMAT: %w", err)
	}
	if c.IDAllocRetries < 1 {
		return errors.New("ID_ALLOC_RETRIES must be at least 1")
	}
	return nil
}

// IdentifierFormat is the validated ID_FORMAT.
func (c *Config) IdentifierFormat() identifier.FormatVersion {
	f, err := identifier.ParseFormatVersion(c.IDFormat)
	if err != nil {
		return identifier.FormatLong
	}
	return f
}

// Database returns the connection options for pkg/database.
func (c *Config) Database() database.Options {
	return database.Options{
		URL:      c.DatabaseURL,
		Host:     c.DBHost,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		Port:     c.DBPort,
		TimeZone: c.DBTimeZone,
		LogLevel: c.DBLogLevel,
	}
}
