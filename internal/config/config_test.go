package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.DatabaseURL = "postgres://localhost/medsaver"
	cfg.JWTSecret = "secret"
	cfg.Storage.Driver = StorageMemory
	return cfg
}

func TestValidate_ReportsAllMissingKeys(t *testing.T) {
	cfg := Default()

	err := cfg.Validate()
	require.Error(t, err)

	for _, key := range []string{
		"DATABASE_URL",
		"JWT_SECRET",
		"R2_ENDPOINT",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_PUBLIC_BASE_URL",
	} {
		assert.Contains(t, err.Error(), key)
	}
	// bucket has a default
	assert.NotContains(t, err.Error(), "R2_BUCKET_NAME")
}

func TestValidate_MemoryStorageNeedsNoR2(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsUnknownDrivers(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "gcs"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.OCR.Engine = "vision"
	assert.Error(t, cfg.Validate())
}

func TestValidate_ReminderSettings(t *testing.T) {
	cfg := validConfig()
	cfg.Reminders.Interval = "soon"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Reminders.Interval = "-1m"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Reminders.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env values replace defaults", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("OCR_ENGINE", "tesseract")
		t.Setenv("REMINDER_INTERVAL", "30s")
		t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, OCRTesseract, cfg.OCR.Engine)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

		d, err := cfg.ReminderInterval()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, d)
	})

	t.Run("empty env keeps defaults", func(t *testing.T) {
		t.Setenv("PORT", "")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "8000", cfg.Port)
	})
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medsaver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
database_url: postgres://file/medsaver
jwt_secret: from-file
storage:
  driver: memory
reminders:
  timezone: Asia/Kolkata
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("REMINDER_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "postgres://file/medsaver", cfg.DatabaseURL)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.IsProduction())
}
