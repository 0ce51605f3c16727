package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grokcon/registry-api/internal/registry"
)

var infoCmd = &cobra.Command{
	Use:     "info <name>",
	Aliases: []string{"show", "get"},
	Short:   "Show a component record",
	Long: `Print the full record of one component. Lookup is exact and case-sensitive.

Examples:
  grokcon-registry info badge
  grokcon-registry info dashboard-01 -f json   # Same body as GET /components/dashboard-01`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var infoFlags *OutputFlags

func init() {
	rootCmd.AddCommand(infoCmd)

	infoFlags = AddOutputFlags(infoCmd, FormatText, FormatJSON, FormatYAML)
}

func runInfo(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	rec, err := store.GetComponent(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(infoFlags.Format) {
	case FormatJSON:
		return writeJSON(out, rec)
	case FormatYAML:
		return writeYAML(out, rec)
	case FormatText:
		outputRecordText(out, rec)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", infoFlags.Format)
	}
}

func outputRecordText(out io.Writer, rec registry.ComponentRecord) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(out, rec.Name)
	fmt.Fprintf(out, "  %s\n\n", rec.Description)

	field := func(label, value string) {
		cyan.Fprintf(out, "  %-22s", label)
		fmt.Fprintln(out, value)
	}

	field("Type:", rec.Type)
	field("Category:", rec.Meta.Category)
	if rec.Meta.Subcategory != "" {
		field("Subcategory:", rec.Meta.Subcategory)
	}
	field("Tags:", joinOrNone(rec.Meta.Tags))
	field("Registry dependencies:", joinOrNone(rec.RegistryDependencies))
	field("Dependencies:", joinOrNone(rec.Dependencies))

	if len(rec.Files) > 0 {
		cyan.Fprintln(out, "  Files:")
		for _, f := range rec.Files {
			fmt.Fprintf(out, "    %s (%s)\n", f.Path, f.Type)
		}
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
