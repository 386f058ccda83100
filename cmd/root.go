package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/mindvault/internal/config"
	"github.com/user/mindvault/internal/logger"
	"github.com/user/mindvault/internal/storage"
	"github.com/user/mindvault/internal/tui"
	"github.com/user/mindvault/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:   "mindvault",
	Short: "Local-first knowledge bookmarking TUI",
	Long:  "Save references to articles, videos, audio and short posts, annotate them with notes and tags, and optionally get AI-generated summaries. All data stays on this device.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadEnv()
		if err != nil {
			return err
		}
		defer log.Sync()
		return tui.Run(cfg, log)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadEnv() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.LogLevel, false), nil
}

// openVault opens the storage slot and loads the store for a one-shot
// command. The caller must Close the returned slot.
func openVault() (*config.Config, *vault.Store, *storage.Slot, logger.Logger, error) {
	cfg, log, err := loadEnv()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	slot, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return cfg, vault.Open(slot, log), slot, log, nil
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default: ~/.mindvault)")
}
