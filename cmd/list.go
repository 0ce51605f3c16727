package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grokcon/registry-api/internal/registry"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List all components",
	Long: `List every component in the catalog, in catalog order.

Examples:
  grokcon-registry list            # Table output
  grokcon-registry list -f json    # Same shape as GET /components
  grokcon-registry list -f yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFlags *OutputFlags

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddOutputFlags(listCmd, FormatTable, FormatJSON, FormatYAML)
}

type componentList struct {
	Components []registry.Summary `json:"components"`
	Total      int                `json:"total"`
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	components := store.ListComponents()
	return writeSummaries(cmd.OutOrStdout(), listFlags.Format, componentList{
		Components: components,
		Total:      len(components),
	})
}

func writeSummaries(w io.Writer, format string, list componentList) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, list)
	case FormatYAML:
		return writeYAML(w, list)
	case FormatTable:
		return outputSummaryTable(w, list.Components)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func outputSummaryTable(out io.Writer, summaries []registry.Summary) error {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No components found.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "NAME\tTYPE\tCATEGORY\tTAGS\tDESCRIPTION")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Type, s.Category, strings.Join(s.Tags, ","), s.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal: %d component(s)\n", len(summaries))
	return nil
}
