package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hero != "ombra" {
		t.Errorf("expected default hero ombra, got %q", cfg.Hero)
	}
	if cfg.Store.Mode != StoreMemory {
		t.Errorf("expected memory store, got %q", cfg.Store.Mode)
	}
	if cfg.Store.Timeout != 3*time.Second || cfg.Store.QueueSize != 64 {
		t.Errorf("unexpected store defaults %+v", cfg.Store)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOLORUN_HERO", "mistica")
	t.Setenv("SOLORUN_SEED", "42")
	t.Setenv("SOLORUN_STORE_MODE", "Redis")
	t.Setenv("SOLORUN_STORE_REDIS_ADDR", "cache:6380")
	t.Setenv("SOLORUN_STORE_TIMEOUT", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hero != "mistica" || cfg.Seed != 42 {
		t.Errorf("unexpected hero/seed %q/%d", cfg.Hero, cfg.Seed)
	}
	if cfg.Store.Mode != StoreRedis || cfg.Store.RedisAddr != "cache:6380" {
		t.Errorf("unexpected store %+v", cfg.Store)
	}
	if cfg.Store.Timeout != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %s", cfg.Store.Timeout)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("SOLORUN_SEED", "not-a-number")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		store StoreConfig
		want  string
	}{
		{"unknown mode", StoreConfig{Mode: "carrier-pigeon", QueueSize: 1, Timeout: time.Second}, "unknown store mode"},
		{"postgres without dsn", StoreConfig{Mode: StorePostgres, QueueSize: 1, Timeout: time.Second}, "POSTGRES_DSN"},
		{"zero queue", StoreConfig{Mode: StoreMemory, Timeout: time.Second}, "queue size"},
		{"zero timeout", StoreConfig{Mode: StoreMemory, QueueSize: 1}, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Store: tt.store}
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger("debug", true); err != nil {
		t.Errorf("debug dev logger: %v", err)
	}
	if _, err := NewLogger("loud", false); err == nil {
		t.Errorf("expected error for unknown level")
	}
}
