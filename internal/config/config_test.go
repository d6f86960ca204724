package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "STORAGE_DRIVER", "DB_PATH", "BOLT_PATH", "SESSION_SECRET",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "SEED_DEMO", "API_RATE_LIMIT", "API_RATE_BURST",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.DBPath != "./dev.db" || cfg.StorageDriver != DriverSQLite {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDev() || cfg.LogFormat != "console" {
		t.Fatalf("expected dev console logging by default, got env=%q format=%q", cfg.AppEnv, cfg.LogFormat)
	}
	if cfg.APIRateLimit != 5 || cfg.APIRateBurst != 10 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.APIRateLimit, cfg.APIRateBurst)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)

	path := writeEnvFile(t, `
# comment
APP_ENV=production
PORT=9090
STORAGE_DRIVER=bolt
BOLT_PATH="/tmp/precos.bolt"
SEED_DEMO=true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" || cfg.StorageDriver != DriverBolt || cfg.BoltPath != "/tmp/precos.bolt" {
		t.Fatalf("env file values not applied: %+v", cfg)
	}
	if cfg.IsDev() || cfg.LogFormat != "json" {
		t.Fatalf("expected production json logging, got env=%q format=%q", cfg.AppEnv, cfg.LogFormat)
	}
	if !cfg.SeedDemo {
		t.Fatal("expected SEED_DEMO=true")
	}
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")

	cfg, err := Load(writeEnvFile(t, "PORT=9090\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("Port=%q, want %q", cfg.Port, "7070")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "STORAGE_DRIVER") {
		t.Fatalf("expected STORAGE_DRIVER error, got %v", err)
	}
}

func TestLoad_RejectsNonPositiveRateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_RATE_LIMIT", "0")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for API_RATE_LIMIT=0")
	}
}

func TestWarnings(t *testing.T) {
	cfg := Config{AppEnv: "production", StorageDriver: DriverMemory}

	warnings := cfg.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}

	cfg = Config{AppEnv: "dev", StorageDriver: DriverSQLite, SessionSecret: "s"}
	if warnings := cfg.Warnings(); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}
