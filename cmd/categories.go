package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grokcon/registry-api/internal/registry"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List component categories",
	Long: `List the distinct component categories, sorted, with the number of
components in each.

Examples:
  grokcon-registry categories
  grokcon-registry categories -f json   # Same body as GET /categories`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

var categoriesFlags *OutputFlags

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesFlags = AddOutputFlags(categoriesCmd, FormatTable, FormatJSON, FormatYAML)
}

func runCategories(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	categories := store.ListCategories()
	out := cmd.OutOrStdout()

	switch strings.ToLower(categoriesFlags.Format) {
	case FormatJSON:
		return writeJSON(out, map[string][]string{"categories": categories})
	case FormatYAML:
		return writeYAML(out, map[string][]string{"categories": categories})
	case FormatTable:
	default:
		return fmt.Errorf("unsupported format: %s", categoriesFlags.Format)
	}

	title := cases.Title(language.English)
	w := newTable(out)
	fmt.Fprintln(w, "CATEGORY\tTITLE\tCOMPONENTS")
	for _, category := range categories {
		count := store.Search(registry.SearchParams{Category: category}).Total
		fmt.Fprintf(w, "%s\t%s\t%d\n", category, title.String(category), count)
	}
	return w.Flush()
}
