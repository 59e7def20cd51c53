package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load with missing file: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Board.PageSize != 20 {
		t.Fatalf("unexpected default page size: %d", cfg.Board.PageSize)
	}
	if !cfg.IsDev() {
		t.Fatalf("default env should be dev, got %q", cfg.Env)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("env: prod\nhttp:\n  addr: \":9090\"\nauth:\n  session_idle_ttl: 30m\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("BOARD_PAGE_SIZE", "50")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "prod" || cfg.IsDev() {
		t.Fatalf("yaml env not applied: %q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env override should win over yaml: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.SessionIdleTTL != 30*time.Minute {
		t.Fatalf("unexpected session idle ttl: %s", cfg.Auth.SessionIdleTTL)
	}
	if cfg.Board.PageSize != 50 {
		t.Fatalf("env int override not applied: %d", cfg.Board.PageSize)
	}
}

func TestLoadRejectsBadDurationEnv(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for malformed duration override")
	}
}
