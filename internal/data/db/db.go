package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Config struct {
	Type     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// DSN renders the driver-specific connection string. For sqlite, Name is the
// file path (or ":memory:").
func (c Config) DSN() (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case "postgres", "postgresql":
		ssl := c.SSLMode
		if ssl == "" {
			ssl = "disable"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			c.Host, c.User, c.Password, c.Name, c.Port, ssl), nil
	case "mysql", "mariadb":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name), nil
	case "sqlserver", "mssql":
		return fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			c.User, c.Password, c.Host, c.Port, c.Name), nil
	case "sqlite":
		return c.Name, nil
	default:
		return "", fmt.Errorf("unsupported database type: %q", c.Type)
	}
}

func dialector(c Config) (gorm.Dialector, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	case "sqlserver", "mssql":
		return sqlserver.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// Connect opens the configured database and applies pool limits.
func Connect(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	db, err := gorm.Open(d, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   NewGormLogger(log, slow),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		idle := cfg.MaxIdleConns
		if idle <= 0 {
			idle = cfg.MaxOpenConns / 2
		}
		sqlDB.SetMaxIdleConns(idle)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info("Connected to database", "type", cfg.Type, "name", cfg.Name)
	return db, nil
}

// Recycle verifies the pool still reaches the server before a job touches
// the database. database/sql discards a connection that fails with a bad-conn
// error, so one retry gets a fresh connection after the server dropped an
// idle one.
func Recycle(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err == nil {
		return nil
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.SugaredLogger.Warnf(format, args...)
}

// NewGormLogger routes gorm's slow-query and error output through zap.
func NewGormLogger(log *logger.Logger, slow time.Duration) gormLogger.Interface {
	return gormLogger.New(
		gormWriter{log: log.With("component", "gorm")},
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
