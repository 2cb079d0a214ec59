package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Market: MarketConfig{
			LoadingDelay:   "1s",
			ConversionRate: 323.45,
			CurrencyLabel:  "Rs.",
			Locale:         "en-US",
			Links: LinksConfig{
				CSEMarket:     "/cse-market",
				GlobalMarkets: "/global-markets",
				NewsSource:    "https://www.coindesk.com/",
			},
		},
		Sessions: SessionsConfig{
			TTL:        "30m",
			MaxEntries: 1000,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}
