package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/mindvault/internal/vault"
)

var (
	listType   string
	listTag    string
	listQuery  string
	listSort   string
	listAsJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resources",
	Long:  "List resources, optionally narrowed by type, tag and free-text query. All filters combine.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, slot, log, err := openVault()
		if err != nil {
			return err
		}
		defer slot.Close()
		defer log.Sync()

		sortKey := vault.SortCreatedDesc
		if listSort == "asc" {
			sortKey = vault.SortCreatedAsc
		}

		results := vault.Search(store.List(), vault.Filters{
			Type:  strings.ToUpper(listType),
			Query: listQuery,
			Tag:   listTag,
			Sort:  sortKey,
		})

		if listAsJSON {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(results) == 0 {
			fmt.Println("No resources found.")
			return nil
		}
		for i, r := range results {
			created := time.UnixMilli(r.CreatedAt).Format("2006-01-02")
			fmt.Printf("%d. [%s] %s  (%s, %s)\n   %s\n", i+1, r.Type, r.Title, r.Platform, created, r.URL)
			if r.Summary != "" {
				fmt.Printf("   %s\n", truncate(r.Summary, 100))
			}
			if len(r.Tags) > 0 {
				fmt.Printf("   #%s\n", strings.Join(r.Tags, " #"))
			}
			fmt.Printf("   id: %s\n\n", r.ID)
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", vault.FilterAll, "Filter by type: ARTICLE, VIDEO, AUDIO, TWEET or ALL")
	listCmd.Flags().StringVar(&listTag, "tag", vault.FilterAll, "Filter by one exact tag")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Free-text filter over title, summary, notes, platform and tags")
	listCmd.Flags().StringVar(&listSort, "sort", "desc", "Sort by creation time: desc or asc")
	listCmd.Flags().BoolVarP(&listAsJSON, "json", "j", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
