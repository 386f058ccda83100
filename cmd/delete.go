package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		id := args[0]
		r, ok := store.Get(id)
		if !ok {
			fmt.Printf("No resource with id %s, nothing to do.\n", id)
			return nil
		}

		store.Delete(id)
		fmt.Printf("Deleted %q.\n", r.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
