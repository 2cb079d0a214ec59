package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bobmcallan/market-portal/internal/app"
	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/config"
	"github.com/bobmcallan/market-portal/internal/server"
)

const shutdownTimeout = 10 * time.Second

// errConfig marks failures already reported to stderr.
var errConfig = errors.New("invalid configuration")

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return strings.Join(*c, ",")
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// options holds the parsed command line.
type options struct {
	configFiles configPaths
	port        int
	host        string
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	var shortPort int

	fs := flag.NewFlagSet("market-portal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.configFiles, "config", "Configuration file path (can be specified multiple times)")
	fs.Var(&opts.configFiles, "c", "Configuration file path (shorthand)")
	fs.IntVar(&opts.port, "port", 0, "Server port (overrides config)")
	fs.IntVar(&shortPort, "p", 0, "Server port (shorthand)")
	fs.StringVar(&opts.host, "host", "", "Server host (overrides config)")
	fs.BoolVar(&opts.version, "version", false, "Print version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if shortPort != 0 {
		opts.port = shortPort
	}
	return opts, nil
}

// loadConfig resolves config files, applies flag overrides and validates.
// Validation issues are written to stderr.
func loadConfig(opts *options, stderr io.Writer) (*config.Config, configPaths, error) {
	files := opts.configFiles
	if len(files) == 0 {
		for _, path := range portalConfigSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				files = append(files, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(files...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.ApplyFlagOverrides(cfg, opts.port, opts.host)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(stderr, "Configuration error: fields are missing or invalid:")
		for _, issue := range issues {
			fmt.Fprintf(stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(stderr, "See config/market-portal.toml for an annotated example.")
		fmt.Fprintln(stderr, "Values can be set via TOML file, MARKET_* environment variables, or CLI flags.")
		return nil, nil, errConfig
	}
	return cfg, files, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errConfig) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// run serves the market portal until ctx is cancelled or the listener fails.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintf(stdout, "market-portal version %s\n", config.GetFullVersion())
		return nil
	}

	cfg, files, err := loadConfig(opts, stderr)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg)
	logger.Info().
		Str("address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Dur("loading_delay", cfg.Market.GetLoadingDelay()).
		Str("conversion_rate", fmt.Sprintf("%.2f", cfg.Market.ConversionRate)).
		Str("config_files", files.String()).
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	srv := server.New(application)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

// portalConfigSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths come first, then the working directory.
func portalConfigSearchPaths() []string {
	names := []string{
		"market-portal.toml",
		filepath.Join("config", "market-portal.toml"),
	}

	var paths []string
	if exe, err := os.Executable(); err == nil {
		binDir := filepath.Dir(exe)
		for _, n := range names {
			paths = append(paths, filepath.Join(binDir, n))
		}
	}
	paths = append(paths, names...)

	seen := make(map[string]bool, len(paths))
	deduped := paths[:0]
	for _, p := range paths {
		key := p
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if !seen[key] {
			seen[key] = true
			deduped = append(deduped, p)
		}
	}
	return deduped
}

// setupLogger creates an arbor logger based on config.
func setupLogger(cfg *config.Config) *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
