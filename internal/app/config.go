package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yungbote/deliverysla-backend/internal/data/db"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/platform/filestore"
	"github.com/yungbote/deliverysla-backend/internal/platform/instancelock"
	"github.com/yungbote/deliverysla-backend/internal/platform/mail"
)

var DefaultEnvFiles = []string{".env", ".env.local"}

type DatabaseOptions struct {
	Type            string        `env:"DB_TYPE" envDefault:"postgres"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" envDefault:"deliverysla"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"0"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	SlowThreshold   time.Duration `env:"DB_SLOW_THRESHOLD" envDefault:"1s"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

type SchedulerOptions struct {
	Enabled  bool   `env:"SCHEDULER_ENABLED" envDefault:"true"`
	Timezone string `env:"SCHEDULER_TIMEZONE" envDefault:"UTC"`
	// ScheduleFile is an optional YAML file of per-job cron overrides.
	ScheduleFile string `env:"SCHEDULE_FILE"`
}

type MailOptions struct {
	Transport          string        `env:"MAIL_TRANSPORT" envDefault:"logger"`
	EmailHost          string        `env:"EMAIL_HOST"`
	From               string        `env:"MAIL_FROM" envDefault:"no-reply@deliverysla.local"`
	FromName           string        `env:"MAIL_FROM_NAME" envDefault:"Delivery SLA"`
	SendGridAPIKey     string        `env:"SENDGRID_API_KEY"`
	SendGridBaseURL    string        `env:"SENDGRID_BASE_URL"`
	SendGridTimeout    time.Duration `env:"SENDGRID_TIMEOUT" envDefault:"15s"`
	SendGridMaxRetries int           `env:"SENDGRID_MAX_RETRIES" envDefault:"3"`
}

type FileOptions struct {
	Store          string `env:"FILE_STORE" envDefault:"local"`
	LocalRoot      string `env:"FILE_STORE_ROOT" envDefault:"media"`
	Bucket         string `env:"GCS_BUCKET"`
	Prefix         string `env:"GCS_PREFIX"`
	Credentials    string `env:"GCS_CREDENTIALS"`
	EmulatorHost   string `env:"GCS_EMULATOR_HOST"`
	MaxBytes       int64  `env:"FILE_MAX_BYTES" envDefault:"0"`
	StaticImageDir string `env:"STATIC_IMAGE_DIR" envDefault:"static/images"`
	BadgeFontPath  string `env:"BADGE_FONT"`
}

type OpenTelemetryOptions struct {
	Enabled     bool              `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string            `env:"OTEL_SERVICE_NAME" envDefault:"deliverysla"`
	Endpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envKeyValSeparator:"="`
	Insecure    bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio float64           `env:"OTEL_SAMPLE_RATIO" envDefault:"0.1"`
}

type Config struct {
	Database      DatabaseOptions
	Scheduler     SchedulerOptions
	Mail          MailOptions
	Files         FileOptions
	OpenTelemetry OpenTelemetryOptions

	LogMode     string   `env:"LOG_MODE" envDefault:"development"`
	Environment string   `env:"APP_ENV" envDefault:"development"`
	Version     string   `env:"APP_VERSION" envDefault:"dev"`
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"HTTP_CORS_ORIGINS" envSeparator:","`

	InstanceLockRedisURL string        `env:"INSTANCE_LOCK_REDIS_URL"`
	InstanceLockKey      string        `env:"INSTANCE_LOCK_KEY" envDefault:"deliverysla:scheduler"`
	InstanceLockTTL      time.Duration `env:"INSTANCE_LOCK_TTL" envDefault:"30s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LoadEnv loads whichever of envFiles exist into the process environment.
// Variables already set are not overridden.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if st, err := os.Stat(file); err == nil && !st.IsDir() {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// LoadConfig reads env files, parses the environment and validates it.
func LoadConfig(envFiles []string) (Config, error) {
	var cfg Config
	if _, err := LoadEnv(envFiles); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := c.DB().DSN(); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("SCHEDULER_TIMEZONE: %w", err))
	}
	switch kind := c.MailConfig().Kind(); kind {
	case mail.TransportLogger:
	case mail.TransportSendGrid:
		if strings.TrimSpace(c.Mail.SendGridAPIKey) == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required when MAIL_TRANSPORT=sendgrid"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_TRANSPORT must be 'logger' or 'sendgrid', got %q", kind))
	}
	switch strings.ToLower(strings.TrimSpace(c.Files.Store)) {
	case filestore.KindLocal, "":
	case filestore.KindGCS:
		if strings.TrimSpace(c.Files.Bucket) == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required when FILE_STORE=gcs"))
		}
	default:
		errs = append(errs, fmt.Errorf("FILE_STORE must be 'local' or 'gcs', got %q", c.Files.Store))
	}
	if c.OpenTelemetry.SampleRatio < 0 || c.OpenTelemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", c.OpenTelemetry.SampleRatio))
	}
	if c.InstanceLockTTL <= 0 {
		errs = append(errs, fmt.Errorf("INSTANCE_LOCK_TTL must be positive, got %s", c.InstanceLockTTL))
	}
	return errors.Join(errs...)
}

func (c Config) DB() db.Config {
	return db.Config{
		Type:            c.Database.Type,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		User:            c.Database.User,
		Password:        c.Database.Password,
		Name:            c.Database.Name,
		SSLMode:         c.Database.SSLMode,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		SlowThreshold:   c.Database.SlowThreshold,
	}
}

func (c Config) MailConfig() mail.Config {
	return mail.Config{
		Transport:          c.Mail.Transport,
		LegacyHost:         c.Mail.EmailHost,
		From:               c.Mail.From,
		FromName:           c.Mail.FromName,
		SendGridAPIKey:     c.Mail.SendGridAPIKey,
		SendGridBaseURL:    c.Mail.SendGridBaseURL,
		SendGridTimeout:    c.Mail.SendGridTimeout,
		SendGridMaxRetries: c.Mail.SendGridMaxRetries,
	}
}

// FileStoreConfig is the store holding SLA profile documents.
func (c Config) FileStoreConfig() filestore.Config {
	return filestore.Config{
		Kind:         c.Files.Store,
		LocalRoot:    c.Files.LocalRoot,
		Bucket:       c.Files.Bucket,
		Prefix:       c.Files.Prefix,
		Credentials:  c.Files.Credentials,
		EmulatorHost: c.Files.EmulatorHost,
		MaxBytes:     c.Files.MaxBytes,
	}
}

// ImageStoreConfig is the local directory of static mail images.
func (c Config) ImageStoreConfig() filestore.Config {
	return filestore.Config{
		Kind:      filestore.KindLocal,
		LocalRoot: c.Files.StaticImageDir,
		MaxBytes:  c.Files.MaxBytes,
	}
}

func (c Config) LockConfig() instancelock.Config {
	return instancelock.Config{
		URL: c.InstanceLockRedisURL,
		Key: c.InstanceLockKey,
		TTL: c.InstanceLockTTL,
	}
}

func (c Config) OtelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OpenTelemetry.Enabled,
		ServiceName: c.OpenTelemetry.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
		Endpoint:    c.OpenTelemetry.Endpoint,
		Headers:     c.OpenTelemetry.Headers,
		Insecure:    c.OpenTelemetry.Insecure,
		SampleRatio: c.OpenTelemetry.SampleRatio,
	}
}

// Location is the scheduler's civil time zone. Validate has already checked it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
