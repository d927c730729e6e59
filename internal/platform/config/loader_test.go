package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoader_Load(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
server:
  ip: "127.0.0.1"
  port: 9090
log:
  log_level: "debug"
session:
  secret: "test-secret"
  token_ttl: 1h
  store:
    type: "memory"
    expiry: 2h
`

	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader().WithPath(configFile).WithDotEnv(false)
	result, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg := result.Config

	if cfg.Server.IP != "127.0.0.1" {
		t.Errorf("expected server IP 127.0.0.1, got %s", cfg.Server.IP)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Session.Secret != "test-secret" {
		t.Errorf("expected session secret from file, got %s", cfg.Session.Secret)
	}
	if cfg.Session.TokenTTL.Std() != time.Hour {
		t.Errorf("expected token ttl 1h, got %s", cfg.Session.TokenTTL.Std())
	}
	if cfg.Session.Store.Expiry.Std() != 2*time.Hour {
		t.Errorf("expected store expiry 2h, got %s", cfg.Session.Store.Expiry.Std())
	}
	if result.Path != configFile {
		t.Errorf("expected result path %s, got %s", configFile, result.Path)
	}

	// fields absent from the file keep their defaults
	if cfg.Web.LandingPath != "/dashboard" {
		t.Errorf("expected default landing path, got %s", cfg.Web.LandingPath)
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	loader := NewLoader().WithPath(filepath.Join(t.TempDir(), "absent.yaml")).WithDotEnv(false)
	result, err := loader.Load()
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if result.Path != "" {
		t.Errorf("expected empty origin path, got %s", result.Path)
	}
	if result.Config.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", result.Config.Server.Port)
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("SHOPWISE_PORT", "7070")
	t.Setenv("SHOPWISE_SESSION_SECRET", "env-secret")
	t.Setenv("SHOPWISE_SESSION_STORE", "redis")
	t.Setenv("SHOPWISE_REDIS_ADDR", "localhost:6380")

	loader := NewLoader().WithPath(filepath.Join(t.TempDir(), "absent.yaml")).WithDotEnv(false)
	result, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg := result.Config

	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Session.Secret != "env-secret" {
		t.Errorf("expected env secret, got %s", cfg.Session.Secret)
	}
	if cfg.Session.Store.Type != "redis" {
		t.Errorf("expected redis store type, got %s", cfg.Session.Store.Type)
	}
	if cfg.Session.Store.Redis.Addr != "localhost:6380" {
		t.Errorf("expected redis addr override, got %s", cfg.Session.Store.Redis.Addr)
	}
}
