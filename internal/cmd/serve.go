package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sauerdaniel/taskledger/internal/projection"
	"github.com/sauerdaniel/taskledger/internal/style"
	"github.com/sauerdaniel/taskledger/internal/task"
	"github.com/sauerdaniel/taskledger/internal/vault"
)

var serveNoProjection bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Watch the vault and keep the ledger fresh",
	Long: `Run until interrupted: watch the vault for document changes, collapse
bursts of notifications into debounced rescans, and mirror each fresh
snapshot into the projection cache (sqlite + tasks.json) for external
consumers.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoProjection, "no-projection", false, "Skip the sqlite/JSON projection cache")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.ledger.Stop()

	logger := log.New(os.Stderr, "[serve] ", log.LstdFlags)

	if !serveNoProjection {
		cache := projection.New(projection.Config{
			DBPath:   a.cfg.ProjectionDBPath(),
			CacheDir: a.cfg.CacheDir,
		})
		a.ledger.Subscribe(func(tasks []task.Task) {
			if err := cache.Sync(tasks); err != nil {
				logger.Printf("Warning: projection sync failed: %v", err)
			}
		})
		// Project the initial snapshot too, not just future refreshes.
		if err := cache.Sync(a.ledger.Tasks()); err != nil {
			logger.Printf("Warning: projection sync failed: %v", err)
		}
	}

	a.store.OnChange(func(c vault.Change) {
		logger.Printf("%s %s", c.Op, c.ID)
		a.ledger.RequestRefresh()
	})
	if err := a.store.Watch(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer a.store.Close()

	fmt.Println(style.Bold.Render("Watching ") + a.cfg.VaultDir)
	fmt.Println(style.Subtle.Render(fmt.Sprintf("debounce %s, %d tasks indexed", a.cfg.QuietPeriod(), len(a.ledger.Tasks()))))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nShutting down")
	return nil
}
