package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Statistics StatisticsConfig `mapstructure:"statistics"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Auth       AuthConfig       `mapstructure:"auth"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address for server (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
	DataDir  string `mapstructure:"data_dir"`  // Root directory Parquet file paths are resolved against
}

// StatisticsConfig controls statistics reconstruction
type StatisticsConfig struct {
	// DecimalPadding selects how fixed-len decimals narrower than 16 bytes are widened:
	// "zero" (default, prepends zero bytes) or "sign" (two's complement sign extension)
	DecimalPadding string `mapstructure:"decimal_padding"`
}

// CatalogConfig represents file statistics catalog configuration
type CatalogConfig struct {
	Workers     int           `mapstructure:"workers"`     // Parallel column chunk reconstructions per file (default: 4)
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`   // In-memory cache entry lifetime (default: 10m)
	CacheDir    string        `mapstructure:"cache_dir"`   // Persisted statistics directory; empty disables persistence
	Compression string        `mapstructure:"compression"` // none, snappy
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// AuthConfig represents API key authentication for the /v1 routes
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"api_keys"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Statistics.Validate(); err != nil {
		return fmt.Errorf("statistics config: %w", err)
	}

	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	return nil
}

// Validate validates statistics configuration
func (c *StatisticsConfig) Validate() error {
	switch c.DecimalPadding {
	case "", "zero", "sign":
		return nil
	}
	return fmt.Errorf("statistics.decimal_padding must be 'zero' or 'sign'")
}

// Validate validates catalog configuration
func (c *CatalogConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("catalog.workers must be at least 1")
	}

	if c.Workers > 256 {
		return fmt.Errorf("catalog.workers cannot exceed 256")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("catalog.cache_ttl must be positive")
	}

	if c.Compression != "none" && c.Compression != "snappy" {
		return fmt.Errorf("catalog.compression must be 'none' or 'snappy'")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Validate validates auth configuration
func (c *AuthConfig) Validate() error {
	if c.Enabled && len(c.APIKeys) == 0 {
		return fmt.Errorf("auth.api_keys is required when auth is enabled")
	}
	return nil
}
