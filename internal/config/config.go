package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	DB        DatabaseConfig
	SMTP      SMTPConfig
	Alerts    AlertsConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type SMTPConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	FromName       string
	FromAddress    string
	MaxConnections int
	SendsPerSecond int
	DialTimeout    time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration
}

type AlertsConfig struct {
	Retention     time.Duration
	PurgeInterval time.Duration
}

type LoggingConfig struct {
	Level string
}

type RateLimitConfig struct {
	RequestsPerSecond int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 5001),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/lifeec.db"),
		},
		SMTP: SMTPConfig{
			Host:           getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:           getEnvInt("SMTP_PORT", 587),
			Username:       getEnv("EMAIL_USER", ""),
			Password:       getEnv("EMAIL_PASS", ""),
			FromName:       getEnv("EMAIL_FROM_NAME", "LIFEEC Emergency Alerts"),
			FromAddress:    getEnv("EMAIL_FROM_ADDRESS", getEnv("EMAIL_USER", "")),
			MaxConnections: getEnvInt("SMTP_MAX_CONNECTIONS", 3),
			SendsPerSecond: getEnvInt("SMTP_SENDS_PER_SECOND", 5),
			DialTimeout:    getEnvDuration("SMTP_DIAL_TIMEOUT", 10*time.Second),
			MaxAttempts:    getEnvInt("SMTP_MAX_ATTEMPTS", 3),
			RetryBaseDelay: getEnvDuration("SMTP_RETRY_BASE_DELAY", time.Second),
		},
		Alerts: AlertsConfig{
			Retention:     getEnvDuration("ALERT_RETENTION", 24*time.Hour),
			PurgeInterval: getEnvDuration("ALERT_PURGE_INTERVAL", time.Hour),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvInt("RATE_LIMIT_RPS", 25),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.SMTP.MaxAttempts < 1 {
		return fmt.Errorf("SMTP max attempts must be at least 1")
	}
	if c.SMTP.MaxConnections < 1 {
		return fmt.Errorf("SMTP max connections must be at least 1")
	}
	if c.Alerts.Retention < time.Minute {
		return fmt.Errorf("alert retention must be at least 1 minute")
	}
	if c.Alerts.PurgeInterval < time.Minute {
		return fmt.Errorf("alert purge interval must be at least 1 minute")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
