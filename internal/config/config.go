package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "data.sqlite"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultSyncSchedule = "@every 30m"
	defaultFetchTimeout = "10s"
	defaultSyncTimeout  = "30s"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration
	// AdminPassword is the placeholder single-admin credential, compared
	// via bcrypt at login. Real access control is out of scope.
	AdminPassword string

	SyncSchedule string
	FetchTimeout time.Duration
	SyncTimeout  time.Duration

	TelegramBotToken string
	TelegramChatID   string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:      getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:        getEnv("JWT_SECRET", defaultJWTSecret),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		SyncSchedule:     getEnv("SYNC_SCHEDULE", defaultSyncSchedule),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
	}

	var err error
	if cfg.JWTTTL, err = parseDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = parseDuration("ICS_FETCH_TIMEOUT", defaultFetchTimeout); err != nil {
		return nil, err
	}
	if cfg.SyncTimeout, err = parseDuration("ICS_SYNC_TIMEOUT", defaultSyncTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: bad %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}
	return d, nil
}
