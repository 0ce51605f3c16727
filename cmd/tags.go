package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List component tags",
	Long: `List the distinct tags used across the catalog, sorted.

Examples:
  grokcon-registry tags
  grokcon-registry tags -f json   # Same body as GET /tags`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

var tagsFlags *OutputFlags

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsFlags = AddOutputFlags(tagsCmd, FormatText, FormatJSON, FormatYAML)
}

func runTags(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	tags := store.ListTags()
	out := cmd.OutOrStdout()

	switch strings.ToLower(tagsFlags.Format) {
	case FormatJSON:
		return writeJSON(out, map[string][]string{"tags": tags})
	case FormatYAML:
		return writeYAML(out, map[string][]string{"tags": tags})
	case FormatText:
		for _, tag := range tags {
			fmt.Fprintln(out, tag)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", tagsFlags.Format)
	}
}
