package cmd

import (
	"fmt"
	"os"

	"github.com/sauerdaniel/taskledger/internal/config"
	"github.com/sauerdaniel/taskledger/internal/ledger"
	"github.com/sauerdaniel/taskledger/internal/vault"
)

// app bundles the wired-up components every command needs.
type app struct {
	cfg    config.Config
	store  *vault.Store
	ledger *ledger.Ledger
}

// loadApp builds the store and ledger from config and flags, and runs
// one initial refresh so commands see the current vault state.
func loadApp() (*app, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagVault != "" {
		cfg.VaultDir = flagVault
	}

	if info, err := os.Stat(cfg.VaultDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("vault directory %s not found (set --vault or vault_dir in config)", cfg.VaultDir)
	}

	store := vault.New(cfg.VaultDir)
	led := ledger.New(store, ledger.WithQuietPeriod(cfg.QuietPeriod()))
	if err := led.Refresh(); err != nil {
		return nil, fmt.Errorf("scanning vault: %w", err)
	}

	return &app{cfg: cfg, store: store, ledger: led}, nil
}
