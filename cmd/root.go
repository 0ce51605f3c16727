package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokcon/registry-api/internal/catalog"
	"github.com/grokcon/registry-api/internal/config"
	"github.com/grokcon/registry-api/internal/logging"
	"github.com/grokcon/registry-api/internal/registry"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grokcon-registry",
	Short: "GROKcon component registry API and CLI",
	Long: `grokcon-registry serves the GROKcon UI component catalog over HTTP and
lets you query the same catalog from the command line.

Quick Start:
  grokcon-registry serve                 Start the registry API on :5000
  grokcon-registry list                  List all components
  grokcon-registry search form           Search by keyword
  grokcon-registry info badge            Show a full component record
  grokcon-registry install sidebar-02    Preview the install steps

The catalog is embedded in the binary. Point --catalog (or catalog.path) at a
JSON or YAML file to serve a different one.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .grokcon-registry.yml, can also use GROKCON_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file (.json, .yaml or .yml) to use instead of the embedded catalog")
}

// initConfig initializes the configuration system.
//
// Configuration file priority (highest to lowest):
//  1. --config flag
//  2. GROKCON_CONFIG_FILE environment variable
//  3. .grokcon-registry.yml in the current directory
//
// All keys can also be overridden with GROKCON_ prefixed environment
// variables, e.g. GROKCON_SERVER_PORT=8080.
func initConfig() {
	config.SetDefaults(viper.GetViper())
	bindFlags()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(config.EnvPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".grokcon-registry")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or unreadable file falls back to env and defaults
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags ties flags to config keys. Bindings live on the global viper
// instance, so they are re-applied whenever configuration is initialized.
func bindFlags() {
	bindings := map[*cobra.Command]map[string]string{
		rootCmd: {
			"log-level":  "logging.level",
			"log-format": "logging.format",
			"catalog":    "catalog.path",
		},
		serveCmd: {
			"host":    "server.host",
			"port":    "server.port",
			"metrics": "metrics.enabled",
			"tracing": "tracing.enabled",
		},
	}

	for c, keys := range bindings {
		for flagName, key := range keys {
			flag := c.PersistentFlags().Lookup(flagName)
			if flag == nil {
				flag = c.Flags().Lookup(flagName)
			}
			if flag != nil {
				_ = viper.BindPFlag(key, flag)
			}
		}
	}
}

// loadConfig loads and validates the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg.
func newLogger(cfg *config.Config) logging.Logger {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
}

// loadStore loads the configured catalog for the offline commands.
func loadStore() (*registry.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := catalog.LoadStore(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return store, nil
}
