package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/config"
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/tui"
	"github.com/bobmcallan/market-portal/internal/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFiles []string
		tab         string
		delay       time.Duration
	)

	cmd := &cobra.Command{
		Use:     "market-tui",
		Short:   "Terminal view of the crypto market dashboard",
		Version: config.GetFullVersion(),
		Long: `market-tui renders the market overview, price predictions and
investment advice in the terminal. It reads the same configuration as
market-portal. Data is the bundled demo dataset unless fixture_path is set.

Keys: 1/2/3 or tab/shift+tab to switch tabs, q to quit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFiles(configFiles...)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("delay") {
				cfg.Market.LoadingDelay = delay.String()
			}

			// The terminal belongs to the UI, so logs only go to file.
			logger := common.NewLoggerFromConfig(common.LoggingConfig{
				Level:      cfg.Logging.Level,
				Outputs:    []string{"file"},
				FilePath:   cfg.Logging.FilePath,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
			})

			model, err := buildModel(cfg, tab)
			if err != nil {
				logger.Error().Str("error", err.Error()).Msg("failed to start terminal view")
				return err
			}

			logger.Info().Str("tab", string(model.State().ActiveTab)).Msg("terminal view starting")

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal view failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (repeatable)")
	cmd.Flags().StringVarP(&tab, "tab", "t", string(view.DefaultTab), "Initial tab: overview, predictions or advice")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Loading delay before the market view appears")

	return cmd
}

// buildModel loads the dataset and formatter described by cfg.
func buildModel(cfg *config.Config, tab string) (tui.Model, error) {
	initial, err := view.ParseTab(tab)
	if err != nil {
		return tui.Model{}, err
	}

	ds, err := market.LoadFile(cfg.Market.FixturePath)
	if err != nil {
		return tui.Model{}, fmt.Errorf("failed to load market data: %w", err)
	}

	f, err := market.NewFormatter(cfg.Market.ConversionRate, cfg.Market.CurrencyLabel, cfg.Market.Locale)
	if err != nil {
		return tui.Model{}, fmt.Errorf("failed to create formatter: %w", err)
	}

	links := view.Links{
		CSEMarket:     cfg.Market.Links.CSEMarket,
		GlobalMarkets: cfg.Market.Links.GlobalMarkets,
		NewsSource:    cfg.Market.Links.NewsSource,
	}

	return tui.New(ds, f, links, cfg.Market.GetLoadingDelay()).WithTab(initial), nil
}
