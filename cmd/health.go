package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grokcon/registry-api/internal/config"
	"github.com/grokcon/registry-api/internal/server"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of a running registry server",
	Long: `Calls GET /health on a running registry server and reports the result.
Exits non-zero when the server is unreachable or not healthy.

This command is used by Docker health checks and deployment readiness probes.`,
	Args: cobra.NoArgs,
	RunE: runHealthCheck,
}

var (
	healthPort    int
	healthHost    string
	healthTimeout time.Duration
	healthVerbose bool
)

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().IntVarP(&healthPort, "port", "p", config.DefaultPort, "Port of the registry server")
	healthCmd.Flags().
		StringVarP(&healthHost, "host", "H", "localhost", "Host of the registry server")
	healthCmd.Flags().
		DurationVarP(&healthTimeout, "timeout", "t", 3*time.Second, "Timeout for the health request")
	healthCmd.Flags().BoolVarP(&healthVerbose, "verbose", "v", false, "Print the full health payload")

	AddFlagValidation(healthCmd, "port", ValidateRemotePort)
}

func runHealthCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	health, err := checkHealth(fmt.Sprintf("http://%s:%d/health", healthHost, healthPort), healthTimeout)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "✗ %v\n", err)
		return errors.New("health check failed")
	}

	if healthVerbose {
		return writeJSON(out, health)
	}

	color.New(color.FgGreen).Fprintf(out, "✓ %s %s is %s", health.Service, health.Version, health.Status)
	fmt.Fprintf(out, " (%d components available)\n", health.ComponentsAvailable)
	return nil
}

// checkHealth fetches and decodes the /health payload at url.
func checkHealth(url string, timeout time.Duration) (*server.HealthResponse, error) {
	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var health server.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("invalid health response: %w", err)
	}

	if health.Status != "healthy" {
		return &health, fmt.Errorf("server reports status %q", health.Status)
	}

	return &health, nil
}
