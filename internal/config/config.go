package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Market   MarketConfig   `toml:"market"`
	Sessions SessionsConfig `toml:"sessions"`
	MCP      MCPConfig      `toml:"mcp"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// MarketConfig controls the market view: loading delay, currency
// conversion and the surrounding navigation links.
type MarketConfig struct {
	LoadingDelay   string      `toml:"loading_delay"`
	ConversionRate float64     `toml:"conversion_rate"` // fixed demo rate, never fetched
	CurrencyLabel  string      `toml:"currency_label"`
	Locale         string      `toml:"locale"`
	FixturePath    string      `toml:"fixture_path"` // empty = embedded dataset
	Links          LinksConfig `toml:"links"`
}

// GetLoadingDelay parses the loading delay, falling back to one second.
func (c *MarketConfig) GetLoadingDelay() time.Duration {
	d, err := time.ParseDuration(c.LoadingDelay)
	if err != nil || d < 0 {
		return time.Second
	}
	return d
}

// LinksConfig holds the navigation targets rendered on the page.
type LinksConfig struct {
	CSEMarket     string `toml:"cse_market"`
	GlobalMarkets string `toml:"global_markets"`
	NewsSource    string `toml:"news_source"`
}

// SessionsConfig bounds the per-browser view sessions.
type SessionsConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// GetTTL parses the idle session TTL, falling back to 30 minutes.
func (c *SessionsConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// MCPConfig toggles the MCP endpoint.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies MARKET_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("MARKET_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("MARKET_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if delay := os.Getenv("MARKET_LOADING_DELAY"); delay != "" {
		config.Market.LoadingDelay = delay
	}
	if rate := os.Getenv("MARKET_CONVERSION_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Market.ConversionRate = r
		}
	}
	if fixture := os.Getenv("MARKET_FIXTURE_PATH"); fixture != "" {
		config.Market.FixturePath = fixture
	}
	if mcp := os.Getenv("MARKET_MCP_ENABLED"); mcp != "" {
		if b, err := strconv.ParseBool(mcp); err == nil {
			config.MCP.Enabled = b
		}
	}
	if level := os.Getenv("MARKET_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if outputs := os.Getenv("MARKET_LOG_OUTPUTS"); outputs != "" {
		config.Logging.Outputs = strings.Split(outputs, ",")
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a description of every invalid setting. An empty result
// means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Market.ConversionRate <= 0 {
		issues = append(issues, fmt.Sprintf("market.conversion_rate must be positive (got %v)", c.Market.ConversionRate))
	}
	if strings.TrimSpace(c.Market.CurrencyLabel) == "" {
		issues = append(issues, "market.currency_label is required")
	}
	if c.Market.LoadingDelay != "" {
		if d, err := time.ParseDuration(c.Market.LoadingDelay); err != nil || d < 0 {
			issues = append(issues, fmt.Sprintf("market.loading_delay is not a valid duration (got %q)", c.Market.LoadingDelay))
		}
	}
	if c.Sessions.MaxEntries <= 0 {
		issues = append(issues, fmt.Sprintf("sessions.max_entries must be positive (got %d)", c.Sessions.MaxEntries))
	}

	return issues
}

// BaseURL returns the externally reachable base URL of the server.
func (c *Config) BaseURL() string {
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Server.Port)
}
