package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-elms/internal/shared/connection"
)

type Config struct {
	Port   string
	AppEnv string

	Database connection.PostgresConfig

	RedisAddr   string
	KafkaBroker string

	SessionSecret      string
	SessionIdleTimeout time.Duration
	SessionStore       string

	FrontendURL string

	SMTP SMTPConfig

	OTLPEndpoint       string
	OutboxPollInterval time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads configuration from the environment. Callers load .env first.
func Load() (*Config, error) {
	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}
	if idle <= 0 {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: must be positive")
	}

	poll, err := time.ParseDuration(getEnv("OUTBOX_POLL_INTERVAL", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	store := strings.ToLower(getEnv("SESSION_STORE", "redis"))
	if store != "redis" && store != "memory" {
		return nil, fmt.Errorf("invalid SESSION_STORE %q: want redis or memory", store)
	}

	cfg := &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),
		Database: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "elms"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		SessionIdleTimeout: idle,
		SessionStore:       store,
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("MAIL_FROM", "no-reply@elms.local"),
		},
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OutboxPollInterval: poll,
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET is required in production")
		}
		cfg.SessionSecret = "dev-session-secret"
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
