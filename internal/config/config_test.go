package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
user: night-shift
timezone: Europe/Berlin
database:
  path: /tmp/feeds.db
server:
  addr: ":9090"
  read_timeout: 3s
auth:
  jwt_secret: s3cret
  token_ttl: 24h
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User != "night-shift" || cfg.Database.Path != "/tmp/feeds.db" || cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Server.ReadTimeout != 3*time.Second || cfg.Server.WriteTimeout != 10*time.Second {
		t.Fatalf("timeouts = %v / %v", cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("auth = %+v", cfg.Auth)
	}
	if !cfg.Debug() {
		t.Fatalf("expected debug logging")
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Fatalf("Location() = %v, %v", loc, err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "user: from-file\n")
	t.Setenv("LATCH_USER", "from-env")
	t.Setenv("LATCH_SERVER_ADDR", "127.0.0.1:7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User != "from-env" || cfg.Server.Addr != "127.0.0.1:7000" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"postgres without dsn", "database:\n  driver: postgres\n"},
		{"bad timezone", "timezone: Mars/Olympus\n"},
		{"bad log level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
