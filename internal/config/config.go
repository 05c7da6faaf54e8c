package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for the API, the reminder worker and
// the admin CLI.
type Config struct {
	Env         string   `yaml:"env"`
	Port        string   `yaml:"port"`
	DatabaseURL string   `yaml:"database_url"`
	JWTSecret   string   `yaml:"jwt_secret"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`

	Storage   StorageConfig  `yaml:"storage"`
	OCR       OCRConfig      `yaml:"ocr"`
	Reminders ReminderConfig `yaml:"reminders"`
}

// StorageConfig configures where scan images and avatars are uploaded.
type StorageConfig struct {
	Driver        string `yaml:"driver"` // r2 | memory
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type OCRConfig struct {
	Engine        string `yaml:"engine"` // mock | tesseract
	TesseractPath string `yaml:"tesseract_path"`
}

type ReminderConfig struct {
	Interval string `yaml:"interval"`
	Timezone string `yaml:"timezone"`
}

const (
	StorageR2     = "r2"
	StorageMemory = "memory"

	OCRMock      = "mock"
	OCRTesseract = "tesseract"
)

// Default returns the configuration used before any file or env override.
func Default() *Config {
	return &Config{
		Env:         "development",
		Port:        "8000",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		Storage: StorageConfig{
			Driver: StorageR2,
			Bucket: "medicine-scans",
		},
		OCR: OCRConfig{
			Engine:        OCRMock,
			TesseractPath: "tesseract",
		},
		Reminders: ReminderConfig{
			Interval: "1m",
			Timezone: "UTC",
		},
	}
}

// Load reads .env (outside production), the optional CONFIG_FILE, then the
// environment, and validates the result.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Env, "APP_ENV")
	setString(&c.Port, "PORT")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}

	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.Endpoint, "R2_ENDPOINT")
	setString(&c.Storage.AccessKey, "R2_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "R2_SECRET_KEY")
	setString(&c.Storage.Bucket, "R2_BUCKET_NAME")
	setString(&c.Storage.PublicBaseURL, "R2_PUBLIC_BASE_URL")

	setString(&c.OCR.Engine, "OCR_ENGINE")
	setString(&c.OCR.TesseractPath, "TESSERACT_PATH")

	setString(&c.Reminders.Interval, "REMINDER_INTERVAL")
	setString(&c.Reminders.Timezone, "REMINDER_TIMEZONE")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var missing []string

	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	switch c.Storage.Driver {
	case StorageR2:
		for key, val := range map[string]string{
			"R2_ENDPOINT":        c.Storage.Endpoint,
			"R2_ACCESS_KEY":      c.Storage.AccessKey,
			"R2_SECRET_KEY":      c.Storage.SecretKey,
			"R2_BUCKET_NAME":     c.Storage.Bucket,
			"R2_PUBLIC_BASE_URL": c.Storage.PublicBaseURL,
		} {
			if val == "" {
				missing = append(missing, key)
			}
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	switch c.OCR.Engine {
	case OCRMock, OCRTesseract:
	default:
		return fmt.Errorf("unknown OCR_ENGINE %q", c.OCR.Engine)
	}

	if _, err := c.ReminderInterval(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ReminderInterval is the dispatch tick of the reminder worker.
func (c *Config) ReminderInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Reminders.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid REMINDER_INTERVAL %q: %w", c.Reminders.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("REMINDER_INTERVAL must be positive, got %s", d)
	}
	return d, nil
}

// Location is the zone reminder times are evaluated in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Reminders.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIMEZONE %q: %w", c.Reminders.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
