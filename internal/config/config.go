// Package config loads the taskledger TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	VaultDir        string `toml:"vault_dir"`
	CacheDir        string `toml:"cache_dir"`
	DebounceMS      int    `toml:"debounce_ms"`
	ForecastDays    int    `toml:"forecast_days"`
	ReviewStaleDays int    `toml:"review_stale_days"`
	CalendarFeed    string `toml:"calendar_feed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		VaultDir:        ".",
		CacheDir:        defaultCacheDir(),
		DebounceMS:      400,
		ForecastDays:    7,
		ReviewStaleDays: 7,
	}
}

// Load reads a TOML config file over the defaults. A missing file yields
// the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = 400
	}
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 7
	}
	if cfg.ReviewStaleDays <= 0 {
		cfg.ReviewStaleDays = 7
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskledger.toml"
	}
	return filepath.Join(home, ".config", "taskledger", "config.toml")
}

// QuietPeriod returns the debounce quiet period as a duration.
func (c Config) QuietPeriod() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ProjectionDBPath returns the sqlite cache path under the cache dir.
func (c Config) ProjectionDBPath() string {
	return filepath.Join(c.CacheDir, "tasks.db")
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".taskledger-cache"
	}
	return filepath.Join(base, "taskledger")
}
