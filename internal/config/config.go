// Package config provides configuration management for the registry service
// using Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// Values are resolved in the usual Viper order: flags, GROKCON_ prefixed
// environment variables, the .grokcon-registry.yml file, then the defaults
// registered by SetDefaults. Load validates the merged result.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/grokcon/registry-api/internal/errors"
	"github.com/grokcon/registry-api/internal/logging"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "GROKCON"

// Default values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 5000
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsPath     = "/metrics"
	DefaultTracerName      = "grokcon-registry"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	// AllowedOrigins, when non-empty, switches CORS from "*" to echoing the
	// request origin if it is listed.
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type CatalogConfig struct {
	// Path to a JSON or YAML catalog. Empty selects the embedded catalog.
	Path string `mapstructure:"path" yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type TracingConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Name    string `mapstructure:"name" yaml:"name"`
}

// Addr returns host:port for the HTTP listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SetDefaults registers every key with its default on v. Registering the
// keys is also what lets AutomaticEnv resolve nested environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout.String())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("catalog.path", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", DefaultMetricsPath)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.name", DefaultTracerName)
}

// Load reads the configuration from the global Viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle allowed_origins set via env as a comma list (workaround for viper slice handling)
	if v.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		origins := v.GetStringSlice("server.allowed_origins")
		if len(origins) > 0 {
			config.Server.AllowedOrigins = origins
		}
	}
	config.Server.AllowedOrigins = splitOrigins(config.Server.AllowedOrigins)

	// Apply defaults for keys that were never registered on v
	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if config.Metrics.Path == "" {
		config.Metrics.Path = DefaultMetricsPath
	}
	if config.Tracing.Name == "" {
		config.Tracing.Name = DefaultTracerName
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFrom(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// splitOrigins flattens comma separated entries and drops blanks.
func splitOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, entry := range origins {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, err.Error())
	}
	switch config.Logging.Format {
	case "text", "json":
	default:
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown log format %q (want text or json)", config.Logging.Format))
	}

	if !strings.HasPrefix(config.Metrics.Path, "/") {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("metrics path %q must start with /", config.Metrics.Path))
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("port %d is not in valid range 0-65535", config.Port))
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", " "}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return errors.NewConfigError(errors.ErrCodeConfigInvalid,
					fmt.Sprintf("host contains dangerous character: %q", char))
			}
		}
	}

	if config.ShutdownTimeout < 0 {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("shutdown timeout %s must be positive", config.ShutdownTimeout))
	}

	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("allowed origin %q must be an http(s) URL", origin))
		}
	}

	return nil
}
