package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        int
	NatsURL     string
	NatsToken   string
	DatabaseURL string
	LogLevel    string
	APIToken    string

	// Remote extraction service.
	ExtractorURL    string
	ExtractorAPIKey string
	RemoteEnabled   bool
	RemoteTimeout   time.Duration
	Cooldown        time.Duration
}

func Load() Config {
	return Config{
		Port:            envInt("SCRIBE_PORT", 8780),
		NatsURL:         envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:       envStr("NATS_TOKEN", ""),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		APIToken:        envStr("SCRIBE_API_TOKEN", ""),
		ExtractorURL:    envStr("SCRIBE_EXTRACTOR_URL", ""),
		ExtractorAPIKey: envStr("SCRIBE_EXTRACTOR_API_KEY", ""),
		RemoteEnabled:   envBool("SCRIBE_REMOTE_ENABLED", true),
		RemoteTimeout:   time.Duration(envInt("SCRIBE_REMOTE_TIMEOUT_SECONDS", 4)) * time.Second,
		Cooldown:        time.Duration(envInt("SCRIBE_COOLDOWN_MINUTES", 5)) * time.Minute,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
