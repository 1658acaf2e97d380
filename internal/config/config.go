package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	// Server
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DataBackend string `envconfig:"DATA_BACKEND" default:"memory"`
	CORSOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Memory backend demo data, seeded for this user when set
	SeedUserID    string `envconfig:"SEED_USER_ID"`
	SeedUserEmail string `envconfig:"SEED_USER_EMAIL" default:"demo@vendorhub.local"`

	// Supabase
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`
	S3URL              string `envconfig:"SUPABASE_S3_URL"`
	S3Bucket           string `envconfig:"SUPABASE_S3_BUCKET" default:"documents"`
	S3Region           string `envconfig:"SUPABASE_S3_REGION" default:"us-east-1"`
	S3AccessKey        string `envconfig:"SUPABASE_S3_ACCESS_KEY"`
	S3SecretKey        string `envconfig:"SUPABASE_S3_SECRET_KEY"`

	// Documents
	DocumentMaxSizeMB        int     `envconfig:"DOCUMENT_MAX_SIZE_MB" default:"10"`
	DocumentUploadRatePerSec float64 `envconfig:"DOCUMENT_UPLOAD_RATE_PER_SEC" default:"2"`
	DocumentUploadBurst      int     `envconfig:"DOCUMENT_UPLOAD_BURST" default:"5"`

	// Pub/Sub
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST"`
	ActivityTopic      string `envconfig:"ACTIVITY_TOPIC" default:"activity"`

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Reminder worker settings
	ReminderScanIntervalSec int    `envconfig:"REMINDER_SCAN_INTERVAL_SEC" default:"86400"`
	ReminderConcurrency     int    `envconfig:"REMINDER_CONCURRENCY" default:"4"`
	ReminderQueueName       string `envconfig:"REMINDER_QUEUE" default:"renewal_reminders"`
	ReminderDeadLetterQueue string `envconfig:"REMINDER_DEAD_LETTER_QUEUE" default:"renewal_reminders_dlq"`
	ReminderDedupTTLHours   int    `envconfig:"REMINDER_DEDUP_TTL_HOURS" default:"1080"`

	// Notification worker settings
	NotifyPollTimeoutSec    int `envconfig:"NOTIFY_POLL_TIMEOUT_SEC" default:"30"`
	NotifyPollMaxMsg        int `envconfig:"NOTIFY_POLL_MAX_MSG" default:"10"`
	NotifyVisibilitySec     int `envconfig:"NOTIFY_VISIBILITY_SEC" default:"60"`
	NotifyMaxRetries        int `envconfig:"NOTIFY_MAX_RETRIES" default:"5"`
	NotifyBackoffInitialSec int `envconfig:"NOTIFY_BACKOFF_INITIAL_SEC" default:"1"`
	NotifyBackoffMaxSec     int `envconfig:"NOTIFY_BACKOFF_MAX_SEC" default:"60"`

	// SMTP
	SMTPHost           string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort           int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUsername       string `envconfig:"SMTP_USERNAME"`
	SMTPPassword       string `envconfig:"SMTP_PASSWORD"`
	SMTPPasswordSecret string `envconfig:"SMTP_PASSWORD_SECRET"`
	SMTPFrom           string `envconfig:"SMTP_FROM" default:"renewals@vendorhub.local"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	var problems []string
	switch c.DataBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBConnectionString == "" {
			problems = append(problems, "DB_CONNECTION_STRING is required for the postgres backend")
		}
		if c.S3URL == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			problems = append(problems, "SUPABASE_S3_URL, SUPABASE_S3_ACCESS_KEY and SUPABASE_S3_SECRET_KEY are required for the postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("DATA_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.DataBackend))
	}
	if c.DocumentMaxSizeMB <= 0 {
		problems = append(problems, "DOCUMENT_MAX_SIZE_MB must be positive")
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DocumentMaxBytes is the upload size limit in bytes.
func (c *Config) DocumentMaxBytes() int64 {
	return int64(c.DocumentMaxSizeMB) << 20
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
