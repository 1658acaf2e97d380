package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "DATA_BACKEND", "DOCUMENT_MAX_SIZE_MB", "REMINDER_QUEUE")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.Equal(t, int64(10<<20), cfg.DocumentMaxBytes())
	assert.Equal(t, "renewal_reminders", cfg.ReminderQueueName)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	unsetEnv(t, "SUPABASE_JWT_SECRET")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidatePostgresBackend(t *testing.T) {
	cfg := &Config{DataBackend: BackendPostgres, DocumentMaxSizeMB: 10}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_CONNECTION_STRING")
	assert.Contains(t, err.Error(), "SUPABASE_S3_URL")

	cfg.DBConnectionString = "postgres://localhost/vendorhub"
	cfg.S3URL = "http://localhost:54321/storage/v1/s3"
	cfg.S3AccessKey = "key"
	cfg.S3SecretKey = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateUnknownBackend(t *testing.T) {
	cfg := &Config{DataBackend: "mysql", DocumentMaxSizeMB: 10}
	assert.ErrorContains(t, cfg.Validate(), "DATA_BACKEND")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: "https://app.example.com, http://localhost:3000,,"}
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.AllowedOrigins())
}
