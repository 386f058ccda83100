package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes <id> [text...]",
	Short: "Replace the notes on a resource",
	Long:  "Replace the personal notes on one resource. With no text, the notes are cleared. Every other field is left untouched.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		id := args[0]
		if _, ok := store.Get(id); !ok {
			return fmt.Errorf("no resource with id %s", id)
		}

		notes := strings.Join(args[1:], " ")
		store.UpdateNotes(id, notes)
		fmt.Printf("Notes updated on %s.\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
}
