package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures the Postgres connection.
type Options struct {
	URL      string // DATABASE_URL; takes precedence over the discrete fields
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	TimeZone string
	LogLevel string // silent, error, warn, info

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns URL, or a key/value DSN built from the discrete fields.
func (o Options) DSN() string {
	if o.URL != "" {
		return o.URL
	}
	tz := o.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		o.Host, o.User, o.Password, o.Name, o.Port, tz,
	)
}

// ConnectDB opens the Postgres pool. GORM's logger writes through zap.
func ConnectDB(opts Options, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statements for Supabase Transaction Mode
	}), NewConfig(opts.LogLevel, log))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(orDefault(opts.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(orDefault(opts.MaxOpenConns, 100))
	lifetime := opts.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	sqlDB.SetConnMaxLifetime(lifetime)

	log.Info("database connection established")
	return db, nil
}

// NewConfig returns the gorm.Config shared by Postgres and test databases.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func NewConfig(level string, log *zap.Logger) *gorm.Config {
	if log == nil {
		log = zap.NewNop()
	}
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    false, // Disables GORM-level prepared statements
		TranslateError: true,
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
