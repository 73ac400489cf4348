package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/duoreg/internal/proof"
)

var allKeys = []string{
	"HTTP_ADDR", "PUBLIC_BASE_URL", "STATIC_PATH", "DB_DRIVER", "DB_PATH",
	"DATABASE_URL", "UPLOAD_DIR", "MAX_UPLOAD_BYTES", "FIELD_MAP_VERSION",
	"TIMEZONE", "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
	"SMTP_FROM", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SERVICE_ACCOUNT_JSON",
	"NOTIFY_QUEUE_SIZE", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable FromEnv reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, "./data/inscricoes.db", c.DBPath)
	assert.Equal(t, "./data/uploads", c.UploadDir)
	assert.Equal(t, proof.DefaultMaxSize, c.MaxUploadBytes)
	assert.Equal(t, "v2", c.FieldMapVersion)
	assert.Equal(t, "America/Sao_Paulo", c.Location.String())
	assert.Equal(t, 587, c.SMTP.Port)
	assert.Equal(t, 64, c.NotifyQueueSize)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.False(t, c.SMTPEnabled())
	assert.False(t, c.SheetsEnabled())
	assert.Equal(t, "/uploads", c.UploadURLPrefix())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PUBLIC_BASE_URL", "https://inscricoes.example.com/")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://duoreg@localhost/duoreg")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("FIELD_MAP_VERSION", "v1")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_FROM", "inscricoes@example.com")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "/secrets/sa.json")
	t.Setenv("LOG_FORMAT", "JSON")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, "https://inscricoes.example.com/uploads", c.UploadURLPrefix())
	assert.Equal(t, DriverPostgres, c.DBDriver)
	assert.Equal(t, int64(1048576), c.MaxUploadBytes)
	assert.Equal(t, "v1", c.FieldMapVersion)
	assert.Equal(t, "UTC", c.Location.String())
	assert.True(t, c.SMTPEnabled())
	assert.Equal(t, 465, c.SMTP.Port)
	assert.True(t, c.SheetsEnabled())
	assert.Equal(t, "json", c.LogFormat)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"bad upload size", map[string]string{"MAX_UPLOAD_BYTES": "5MB"}, "MAX_UPLOAD_BYTES"},
		{"zero upload size", map[string]string{"MAX_UPLOAD_BYTES": "0"}, "MAX_UPLOAD_BYTES"},
		{"unknown field map", map[string]string{"FIELD_MAP_VERSION": "v9"}, "FIELD_MAP_VERSION"},
		{"unknown timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
		{"smtp without sender", map[string]string{"SMTP_HOST": "smtp.example.com"}, "SMTP_FROM"},
		{"bad smtp port", map[string]string{"SMTP_PORT": "smtp"}, "SMTP_PORT"},
		{"sheets without credentials", map[string]string{"GOOGLE_SHEETS_SPREADSHEET_ID": "sheet-123"}, "GOOGLE_SERVICE_ACCOUNT_JSON"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
