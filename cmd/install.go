package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:     "install <name>",
	Aliases: []string{"add"},
	Short:   "Preview the install steps for a component",
	Long: `Print the steps an install of the component would perform. Nothing is
written to disk and registry dependencies are listed, not resolved.

Examples:
  grokcon-registry install textarea-with-button
  grokcon-registry install badge -f json   # Same body as POST /components/badge/install`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

var installFlags *OutputFlags

func init() {
	rootCmd.AddCommand(installCmd)

	installFlags = AddOutputFlags(installCmd, FormatText, FormatJSON, FormatYAML)
}

func runInstall(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	result, err := store.SimulateInstall(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(installFlags.Format) {
	case FormatJSON:
		return writeJSON(out, result)
	case FormatYAML:
		return writeYAML(out, result)
	case FormatText:
	default:
		return fmt.Errorf("unsupported format: %s", installFlags.Format)
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)

	for i, step := range result.Steps {
		cyan.Fprintf(out, "[%d/%d] ", i+1, len(result.Steps))
		fmt.Fprintln(out, step)
	}
	green.Fprintf(out, "✓ %s installed (simulated)\n", result.Component)
	gray.Fprintf(out, "  %d file(s), %d dependencies\n", result.FilesInstalled, result.DependenciesResolved)

	return nil
}
