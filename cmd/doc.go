// Package cmd provides the command-line interface for grokcon-registry.
//
// This package implements all CLI commands using the Cobra framework. Every
// command except serve and health works offline against the loaded catalog.
//
// # Available Commands
//
//   - serve: Start the registry HTTP API
//   - list: List all components
//   - search: Search by keyword, category and tag
//   - info: Show one full component record
//   - install: Preview the simulated install steps
//   - categories: List categories
//   - tags: List tags
//   - health: Check a running server
//   - version: Show build information
//
// # Command Examples
//
//	// Start the API on a custom port
//	grokcon-registry serve --port 8080
//
//	// List components as JSON
//	grokcon-registry list --format json
//
//	// Search blocks only
//	grokcon-registry search --category blocks
//
//	// Health check
//	grokcon-registry health --verbose
//
// # Configuration
//
// Values are resolved from several sources with clear precedence:
//
//  1. Command-line flags (--port, --catalog, etc.), highest priority
//  2. Environment variables (GROKCON_SERVER_PORT, etc.)
//  3. Configuration file (--config, GROKCON_CONFIG_FILE or .grokcon-registry.yml)
//  4. Built-in defaults, lowest priority
//
// Environment variables follow the GROKCON_<SECTION>_<OPTION> pattern:
//
//	GROKCON_CONFIG_FILE: Path to custom configuration file
//	GROKCON_SERVER_PORT: Override server port
//	GROKCON_SERVER_HOST: Override server host
//	GROKCON_CATALOG_PATH: Serve a catalog file instead of the embedded one
//	GROKCON_TRACING_ENABLED: Export request spans to stderr
//
// # Error Handling
//
//   - Unknown component names exit non-zero with the lookup error
//   - Catalog and configuration problems are reported before any work is done
//   - serve shuts down gracefully on interrupt (Ctrl+C) or SIGTERM
package cmd
