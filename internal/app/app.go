// Package app wires configuration, market data and HTTP handlers together.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/config"
	"github.com/bobmcallan/market-portal/internal/handlers"
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/mcp"
	"github.com/bobmcallan/market-portal/internal/session"
	"github.com/bobmcallan/market-portal/internal/view"
)

// App holds all application components and dependencies.
type App struct {
	Config    *config.Config
	Logger    *common.Logger
	Dataset   *market.Dataset
	Formatter *market.Formatter
	Sessions  *session.Store
	Links     view.Links

	// HTTP handlers
	MarketHandler    *handlers.MarketHandler
	MarketAPIHandler *handlers.MarketAPIHandler
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	MCPHandler       *mcp.Handler

	stop      chan struct{}
	closeOnce sync.Once
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	return NewWithClock(cfg, logger, view.RealClock{})
}

// NewWithClock is New with an explicit clock for the loading transition.
func NewWithClock(cfg *config.Config, logger *common.Logger, clock view.Clock) (*App, error) {
	ds, err := market.LoadFile(cfg.Market.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load market data: %w", err)
	}

	f, err := market.NewFormatter(cfg.Market.ConversionRate, cfg.Market.CurrencyLabel, cfg.Market.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Dataset:   ds,
		Formatter: f,
		Links: view.Links{
			CSEMarket:     cfg.Market.Links.CSEMarket,
			GlobalMarkets: cfg.Market.Links.GlobalMarkets,
			NewsSource:    cfg.Market.Links.NewsSource,
		},
		Sessions: session.New(clock, cfg.Market.GetLoadingDelay(), cfg.Sessions.GetTTL(), cfg.Sessions.MaxEntries, logger),
		stop:     make(chan struct{}),
	}

	source := "embedded"
	if cfg.Market.FixturePath != "" {
		source = cfg.Market.FixturePath
	}
	logger.Info().
		Str("source", source).
		Int("assets", len(ds.Assets)).
		Int("predictions", len(ds.Predictions)).
		Int("news", len(ds.News)).
		Msg("market data loaded (demo mode)")

	a.initHandlers()
	go a.purgeSessions(janitorInterval(cfg.Sessions.GetTTL()))

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.MarketHandler = handlers.NewMarketHandler(a.Logger, a.Sessions, a.Dataset, a.Formatter, a.Links, a.Config)
	a.MarketAPIHandler = handlers.NewMarketAPIHandler(a.Logger, a.Sessions, a.Dataset, a.Formatter, a.Links)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger, a.Sessions)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.Logger, a.Dataset, a.Formatter, a.Links)
	}

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// janitorInterval is half the session TTL, clamped to [1s, 5m].
func janitorInterval(ttl time.Duration) time.Duration {
	d := ttl / 2
	if d < time.Second {
		d = time.Second
	}
	if d > 5*time.Minute {
		d = 5 * time.Minute
	}
	return d
}

// purgeSessions drops idle sessions until Close is called.
func (a *App) purgeSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			if n := a.Sessions.Purge(); n > 0 {
				a.Logger.Debug().Int("removed", n).Msg("purged idle market sessions")
			}
		}
	}
}

// Close stops background work and discards all sessions.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		close(a.stop)
		a.Sessions.Close()
	})
	return nil
}
