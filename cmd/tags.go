package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/mindvault/internal/vault"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags in use",
	Long:  "List every distinct tag across the vault, in first-seen order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		tags := vault.AllTags(store.List())
		if len(tags) == 0 {
			fmt.Println("No tags yet.")
			return nil
		}
		for _, t := range tags {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
