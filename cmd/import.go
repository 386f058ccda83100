package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/mindvault/internal/vault/impex"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON backup, replacing the vault",
	Long:  "Import a previously exported backup. This REPLACES the entire vault with the file's contents; it is not a merge. Use --force to skip the confirmation prompt.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		resources, err := impex.Import(data)
		if err != nil {
			return err
		}

		_, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		if !importForce {
			fmt.Printf("This will replace all %d resources in the vault with the %d from %s.\n",
				store.Len(), len(resources), args[0])
			fmt.Print("Continue? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted, vault unchanged.")
				return nil
			}
		}

		store.ReplaceAll(resources)
		fmt.Printf("Imported %d resources.\n", len(resources))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Replace without asking")
	rootCmd.AddCommand(importCmd)
}
