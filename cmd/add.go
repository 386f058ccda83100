package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/mindvault/internal/analyzer"
	"github.com/user/mindvault/internal/vault"
)

var (
	addTitle     string
	addType      string
	addPlatform  string
	addTags      []string
	addNotes     string
	addSummary   string
	addContent   string
	addSummarize bool
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Save a resource",
	Long:  "Save a reference to external content. Missing fields get sensible defaults; --summarize asks the configured AI for a summary and tag suggestions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		partial := vault.Resource{
			Title:      addTitle,
			URL:        args[0],
			Type:       vault.Type(addType),
			Platform:   addPlatform,
			Tags:       addTags,
			UserNotes:  addNotes,
			Summary:    addSummary,
			ContentRaw: addContent,
		}

		if addSummarize {
			an := analyzer.New(cfg, log)
			res := an.Analyze(context.Background(), partial.Title, partial.ContentRaw, partial.Type)
			if partial.Summary == "" {
				partial.Summary = res.Summary
			}
			if len(partial.Tags) == 0 {
				partial.Tags = res.Tags
			}
			if res.Degraded {
				fmt.Printf("AI summary degraded: %s\n", res.Reason)
			}
		}

		added := store.Add(partial)
		fmt.Printf("Added %s: %s\n", added.ID, added.Title)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "Display title")
	addCmd.Flags().StringVar(&addType, "type", "", "Resource type: ARTICLE, VIDEO, AUDIO or TWEET")
	addCmd.Flags().StringVar(&addPlatform, "platform", "", "Origin platform, e.g. Zhihu, Bilibili, X")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Comma-separated tags")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Personal notes")
	addCmd.Flags().StringVar(&addSummary, "summary", "", "Your own summary (skips the AI one)")
	addCmd.Flags().StringVar(&addContent, "content", "", "Raw text for AI analysis")
	addCmd.Flags().BoolVar(&addSummarize, "summarize", false, "Generate an AI summary and tag suggestions")
	rootCmd.AddCommand(addCmd)
}
