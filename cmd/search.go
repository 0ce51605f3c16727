package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grokcon/registry-api/internal/registry"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search components by keyword, category or tag",
	Long: `Search the catalog. The query matches case-insensitively against component
names, descriptions and tags. --category and --tag are exact filters.
With no query and no filters every component is returned.

Examples:
  grokcon-registry search badge
  grokcon-registry search --category blocks
  grokcon-registry search text --tag composite -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	searchFlags    *OutputFlags
	searchCategory string
	searchTag      string
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchFlags = AddOutputFlags(searchCmd, FormatTable, FormatJSON, FormatYAML)
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Exact category filter")
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "Exact tag filter")
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	params := registry.SearchParams{
		Category: searchCategory,
		Tag:      searchTag,
	}
	if len(args) > 0 {
		params.Query = args[0]
	}

	result := store.Search(params)
	out := cmd.OutOrStdout()

	switch strings.ToLower(searchFlags.Format) {
	case FormatJSON:
		return writeJSON(out, result)
	case FormatYAML:
		return writeYAML(out, result)
	case FormatTable:
		return outputSummaryTable(out, result.Results)
	default:
		return fmt.Errorf("unsupported format: %s", searchFlags.Format)
	}
}
