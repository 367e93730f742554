// Package cmd implements the tl command tree.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Persistent flags shared by every command.
var (
	flagConfig string
	flagVault  string
	flagOn     string
)

var rootCmd = &cobra.Command{
	Use:   "tl",
	Short: "Task ledger over a markdown vault",
	Long: `tl maintains a structured, queryable view of checklist lines embedded
in a vault of markdown documents. Tasks are re-derived from the text on
every scan; edits write back to the exact source line, preserving the
surrounding text and the annotation spellings already in use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/taskledger/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", "", "Vault directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOn, "on", "", "Reference day as YYYY-MM-DD (default today)")
}

// referenceDay resolves the day used for date bucketing.
func referenceDay() string {
	if flagOn != "" {
		return flagOn
	}
	return time.Now().Format("2006-01-02")
}
