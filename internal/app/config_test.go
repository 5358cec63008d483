package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deliverysla-backend/internal/platform/mail"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.Database.Type)
	require.True(t, cfg.Scheduler.Enabled)
	require.Equal(t, time.UTC, cfg.Location())
	require.Equal(t, mail.TransportLogger, cfg.MailConfig().Kind())
	require.Equal(t, 30*time.Second, cfg.InstanceLockTTL)
	require.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoadConfig_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("DB_NAME=from_file\nAPP_VERSION=1.2.3\n"), 0o600))
	t.Setenv("DB_NAME", "from_env")
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	cfg, err := LoadConfig([]string{file, filepath.Join(dir, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, "from_env", cfg.Database.Name)
	require.Equal(t, "1.2.3", cfg.Version)
}

func TestLoadConfig_ParsesGroups(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_NAME", ":memory:")
	t.Setenv("SCHEDULER_TIMEZONE", "America/Bogota")
	t.Setenv("MAIL_TRANSPORT", "sendgrid")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-team=delivery,x-env=dev")
	t.Setenv("FILE_STORE", "gcs")
	t.Setenv("GCS_BUCKET", "sla-files")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "America/Bogota", cfg.Location().String())
	require.Equal(t, mail.TransportSendGrid, cfg.MailConfig().Kind())
	require.Equal(t, map[string]string{"x-team": "delivery", "x-env": "dev"}, cfg.OtelConfig().Headers)
	require.Equal(t, "sla-files", cfg.FileStoreConfig().Bucket)
	require.Equal(t, "local", cfg.ImageStoreConfig().Kind)

	dsn, err := cfg.DB().DSN()
	require.NoError(t, err)
	require.Equal(t, ":memory:", dsn)
}

func TestLoadConfig_LegacyEmailHostForcesLogger(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "sendgrid")
	t.Setenv("EMAIL_HOST", "logger")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, mail.TransportLogger, cfg.MailConfig().Kind())
}

func TestValidate_CollectsErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"db type", map[string]string{"DB_TYPE": "oracle"}},
		{"timezone", map[string]string{"SCHEDULER_TIMEZONE": "Mars/Olympus"}},
		{"sendgrid key", map[string]string{"MAIL_TRANSPORT": "sendgrid"}},
		{"transport", map[string]string{"MAIL_TRANSPORT": "smtp"}},
		{"gcs bucket", map[string]string{"FILE_STORE": "gcs"}},
		{"file store", map[string]string{"FILE_STORE": "s3"}},
		{"sample ratio", map[string]string{"OTEL_SAMPLE_RATIO": "2"}},
		{"lock ttl", map[string]string{"INSTANCE_LOCK_TTL": "0s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(nil)
			require.Error(t, err)
		})
	}
}
