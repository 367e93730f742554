package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load(missing) error: %v", err)
	}
	if cfg.VaultDir != "." {
		t.Errorf("VaultDir = %q, want .", cfg.VaultDir)
	}
	if cfg.DebounceMS != 400 || cfg.ForecastDays != 7 || cfg.ReviewStaleDays != 7 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.QuietPeriod() != 400*time.Millisecond {
		t.Errorf("QuietPeriod() = %v", cfg.QuietPeriod())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
vault_dir = "/srv/vault"
cache_dir = "/tmp/tlcache"
debounce_ms = 250
forecast_days = 14
calendar_feed = "/srv/feed.json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.VaultDir != "/srv/vault" || cfg.CacheDir != "/tmp/tlcache" {
		t.Errorf("paths = %q, %q", cfg.VaultDir, cfg.CacheDir)
	}
	if cfg.DebounceMS != 250 || cfg.ForecastDays != 14 {
		t.Errorf("tuning = %d, %d", cfg.DebounceMS, cfg.ForecastDays)
	}
	// Unset keys keep their defaults.
	if cfg.ReviewStaleDays != 7 {
		t.Errorf("ReviewStaleDays = %d, want default 7", cfg.ReviewStaleDays)
	}
	if cfg.ProjectionDBPath() != filepath.Join("/tmp/tlcache", "tasks.db") {
		t.Errorf("ProjectionDBPath() = %q", cfg.ProjectionDBPath())
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("debounce_ms = -5\nforecast_days = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DebounceMS != 400 || cfg.ForecastDays != 7 {
		t.Errorf("clamped = %d, %d, want defaults", cfg.DebounceMS, cfg.ForecastDays)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("vault_dir = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error for malformed config")
	}
}
