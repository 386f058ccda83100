package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/mindvault/internal/vault/impex"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the vault to a JSON backup",
	Long:  "Write the full vault as pretty-printed JSON. Without a path, the file is named mindvault-backup-<date>.json in the current directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		data, err := impex.Export(store.List())
		if errors.Is(err, impex.ErrEmptyVault) {
			fmt.Println("Vault is empty, nothing to export.")
			return nil
		}
		if err != nil {
			return err
		}

		path := impex.Filename(time.Now())
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}

		fmt.Printf("Exported %d resources to %s.\n", store.Len(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
