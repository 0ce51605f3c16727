package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grokcon/registry-api/internal/version"
)

var versionShort bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for grokcon-registry including:

- Semantic version number
- Git commit hash
- Build timestamp
- Go version used for compilation
- Target platform (OS/architecture)

Examples:
  grokcon-registry version              # Show version
  grokcon-registry version --short      # Show short version only
  grokcon-registry version --format json`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

var versionFlags *OutputFlags

func init() {
	rootCmd.AddCommand(versionCmd)

	versionFlags = AddOutputFlags(versionCmd, FormatText, FormatJSON, FormatYAML)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	switch strings.ToLower(versionFlags.Format) {
	case FormatJSON:
		return writeJSON(out, struct {
			version.Info
			IsRelease bool `json:"is_release"`
		}{info, info.IsRelease()})
	case FormatYAML:
		return writeYAML(out, info)
	case FormatText:
		if versionShort {
			fmt.Fprintln(out, info.Short())
			return nil
		}
		fmt.Fprintf(out, "grokcon-registry %s\n", info.Short())
		fmt.Fprintln(out, info.Detailed())
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", versionFlags.Format)
	}
}
