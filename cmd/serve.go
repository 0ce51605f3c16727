package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grokcon/registry-api/internal/catalog"
	"github.com/grokcon/registry-api/internal/config"
	"github.com/grokcon/registry-api/internal/errors"
	"github.com/grokcon/registry-api/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the registry API server",
	Long: `Start the HTTP/JSON registry API.

Routes:
  GET  /components                  List component summaries
  GET  /components/{name}           Full component record
  POST /components/{name}/install   Simulated install steps
  GET  /search?q=&category=&tag=    Keyword and filter search
  GET  /categories                  Distinct categories
  GET  /tags                        Distinct tags
  GET  /health                      Service status
  GET  /metrics                     Prometheus metrics (metrics.enabled)

Examples:
  grokcon-registry serve                          # Serve on 0.0.0.0:5000
  grokcon-registry serve -p 8080 --host 127.0.0.1
  grokcon-registry serve --catalog ./catalog.yaml # Serve a custom catalog`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "Port to serve on")
	serveCmd.Flags().String("host", config.DefaultHost, "Host to bind to")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics")
	serveCmd.Flags().Bool("tracing", false, "Export an OpenTelemetry span per request to stderr")

	AddFlagValidation(serveCmd, "port", ValidatePort)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	errorHandler := errors.NewErrorHandler(logger)

	store, err := catalog.LoadStore(cfg.Catalog.Path)
	if err != nil {
		errorHandler.Handle(commandContext(cmd), err)
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if cfg.Tracing.Enabled {
		shutdownTracing, err := server.InitTracing(cmd.ErrOrStderr(), cfg.Tracing.Name)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				errorHandler.Handle(ctx, fmt.Errorf("failed to shut down tracer provider: %w", err))
			}
		}()
	}

	srv := server.New(cfg, store, logger)

	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting GROKcon registry at http://%s (%d components)\n",
		cfg.Server.Addr(), store.Count())

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
