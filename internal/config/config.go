// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal containers

	"github.com/mmynk/duoreg/internal/intake"
	"github.com/mmynk/duoreg/internal/notify"
	"github.com/mmynk/duoreg/internal/proof"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPAddr      string
	PublicBaseURL string
	StaticPath    string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	UploadDir      string
	MaxUploadBytes int64

	FieldMapVersion string
	Location        *time.Location

	SMTP notify.SMTPConfig

	SpreadsheetID            string
	GoogleServiceAccountJSON string

	NotifyQueueSize int

	LogLevel  string
	LogFormat string
}

// SMTPEnabled reports whether mail delivery is configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTP.Host != ""
}

// SheetsEnabled reports whether publishing to Google Sheets is configured.
func (c Config) SheetsEnabled() bool {
	return c.SpreadsheetID != ""
}

// UploadURLPrefix is the base URL stored proofs are served from.
func (c Config) UploadURLPrefix() string {
	return c.PublicBaseURL + "/uploads"
}

func FromEnv() (Config, error) {
	var c Config
	var err error

	c.HTTPAddr = envOr("HTTP_ADDR", ":8080")
	c.PublicBaseURL = strings.TrimRight(env("PUBLIC_BASE_URL"), "/")
	c.StaticPath = env("STATIC_PATH")

	c.DBDriver = strings.ToLower(envOr("DB_DRIVER", DriverSQLite))
	c.DBPath = envOr("DB_PATH", "./data/inscricoes.db")
	c.DatabaseURL = env("DATABASE_URL")

	c.UploadDir = envOr("UPLOAD_DIR", "./data/uploads")
	if c.MaxUploadBytes, err = int64Env("MAX_UPLOAD_BYTES", proof.DefaultMaxSize); err != nil {
		return c, err
	}
	if c.MaxUploadBytes <= 0 {
		return c, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	c.FieldMapVersion = envOr("FIELD_MAP_VERSION", intake.DefaultVersion)
	if _, err := intake.Lookup(c.FieldMapVersion); err != nil {
		return c, fmt.Errorf("FIELD_MAP_VERSION: %w", err)
	}

	tz := envOr("TIMEZONE", "America/Sao_Paulo")
	if c.Location, err = time.LoadLocation(tz); err != nil {
		return c, fmt.Errorf("TIMEZONE %q: %w", tz, err)
	}

	c.SMTP.Host = env("SMTP_HOST")
	port, err := int64Env("SMTP_PORT", 587)
	if err != nil {
		return c, err
	}
	c.SMTP.Port = int(port)
	c.SMTP.Username = env("SMTP_USERNAME")
	c.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	c.SMTP.From = env("SMTP_FROM")

	c.SpreadsheetID = env("GOOGLE_SHEETS_SPREADSHEET_ID")
	c.GoogleServiceAccountJSON = env("GOOGLE_SERVICE_ACCOUNT_JSON")

	queue, err := int64Env("NOTIFY_QUEUE_SIZE", 64)
	if err != nil {
		return c, err
	}
	c.NotifyQueueSize = int(queue)

	c.LogLevel = strings.ToLower(envOr("LOG_LEVEL", "info"))
	c.LogFormat = strings.ToLower(envOr("LOG_FORMAT", "text"))

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return c, fmt.Errorf("DB_PATH is empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return c, fmt.Errorf("DATABASE_URL is empty")
		}
	default:
		return c, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.SMTPEnabled() && c.SMTP.From == "" {
		return c, fmt.Errorf("SMTP_FROM is empty")
	}
	if c.SheetsEnabled() && c.GoogleServiceAccountJSON == "" {
		return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return c, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	return c, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOr(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func int64Env(key string, fallback int64) (int64, error) {
	raw := env(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
