package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SCRIBE_PORT", "NATS_URL", "NATS_TOKEN", "DATABASE_URL", "LOG_LEVEL",
		"SCRIBE_API_TOKEN", "SCRIBE_EXTRACTOR_URL", "SCRIBE_EXTRACTOR_API_KEY",
		"SCRIBE_REMOTE_ENABLED", "SCRIBE_REMOTE_TIMEOUT_SECONDS", "SCRIBE_COOLDOWN_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != 8780 {
		t.Errorf("Port = %d, want 8780", cfg.Port)
	}
	if cfg.NatsURL != "nats://localhost:4222" {
		t.Errorf("NatsURL = %q", cfg.NatsURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.RemoteEnabled {
		t.Error("RemoteEnabled should default to true")
	}
	if cfg.RemoteTimeout != 4*time.Second {
		t.Errorf("RemoteTimeout = %v, want 4s", cfg.RemoteTimeout)
	}
	if cfg.Cooldown != 5*time.Minute {
		t.Errorf("Cooldown = %v, want 5m", cfg.Cooldown)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCRIBE_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://scribe@localhost/scribe")
	t.Setenv("SCRIBE_REMOTE_ENABLED", "false")
	t.Setenv("SCRIBE_REMOTE_TIMEOUT_SECONDS", "10")
	t.Setenv("SCRIBE_COOLDOWN_MINUTES", "2")

	cfg := Load()
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://scribe@localhost/scribe" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.RemoteEnabled {
		t.Error("RemoteEnabled should be false")
	}
	if cfg.RemoteTimeout != 10*time.Second {
		t.Errorf("RemoteTimeout = %v, want 10s", cfg.RemoteTimeout)
	}
	if cfg.Cooldown != 2*time.Minute {
		t.Errorf("Cooldown = %v, want 2m", cfg.Cooldown)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCRIBE_PORT", "not-a-port")
	t.Setenv("SCRIBE_REMOTE_ENABLED", "maybe")

	cfg := Load()
	if cfg.Port != 8780 {
		t.Errorf("Port = %d, want default 8780", cfg.Port)
	}
	if !cfg.RemoteEnabled {
		t.Error("unparseable bool should keep the default")
	}
}
