package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linktrail/linktrail/internal/config"
	"github.com/linktrail/linktrail/internal/crawler"
	"github.com/linktrail/linktrail/internal/database"
	"github.com/linktrail/linktrail/internal/fetcher"
	"github.com/linktrail/linktrail/internal/log"
	"github.com/linktrail/linktrail/internal/model"
	"github.com/linktrail/linktrail/internal/report"
	"github.com/linktrail/linktrail/internal/sink"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url> [<url>...]",
		Short: "Crawl one or more sites and record every visited URL",
		Long: `Crawl walks each seed URL breadth-first, visiting only links on the
seed's own host, and appends every visited URL to the output file.

Each seed gets an independent crawl with its own page budget. Pages are
rendered in a headless browser by default so links inserted by scripts
are discovered; --static switches to plain HTTP fetching.

Examples:
  # Crawl a single site with defaults (100 pages, 5s delay)
  linktrail crawl https://example.com

  # Crawl several sites, two at a time
  linktrail crawl --concurrency 2 https://a.example https://b.example

  # Fast static crawl without the politeness delay
  linktrail crawl --static --delay 0 https://example.com

  # Emit a Markdown report to a file
  linktrail crawl --markdown --report-file report.md https://example.com

Configuration file (.linktrail.yaml) example:
  defaults:
    delaySeconds: 5
  hosts:
    slow.example.com:
      delaySeconds: 15
      maxPages: 30
    plain.example.com:
      static: true`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to visit per seed")
	cmd.Flags().StringP("output", "o", config.DefaultOutputPath,
		"File that visited URLs are appended to")
	cmd.Flags().Duration("nav-timeout", config.DefaultNavigationTimeout,
		"Timeout for the initial page load")
	cmd.Flags().Duration("idle-timeout", config.DefaultIdleTimeout,
		"Timeout for the network-idle settle phase (browser mode only)")
	cmd.Flags().DurationP("delay", "d", config.DefaultPolitenessDelay,
		"Politeness delay between fetches")
	cmd.Flags().BoolP("static", "s", false,
		"Fetch with plain HTTP instead of a headless browser")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of seeds crawled at once")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header for all fetches")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body bytes to read (static mode only)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linktrail.yaml in current or home directory)")

	// History database
	cmd.Flags().Bool("no-db", false,
		"Do not record crawl history to the local database")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown summary (mutually exclusive with --json)")
	cmd.Flags().String("report-file", "",
		"Write the summary to specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with URL credential redaction
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown.
	// On interrupt the crawls stop between page visits and partial
	// results are still reported.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, finishing current page...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NavigationTimeout, err = cmd.Flags().GetDuration("nav-timeout")
	if err != nil {
		return nil, err
	}

	cfg.IdleTimeout, err = cmd.Flags().GetDuration("idle-timeout")
	if err != nil {
		return nil, err
	}

	cfg.PolitenessDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.StaticFetch, err = cmd.Flags().GetBool("static")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-host overrides from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.HostConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.HostConfigs = &config.File{
			Hosts: make(map[string]config.HostConfig),
		}
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the seed URLs
	cfg.Seeds = args

	return cfg, nil
}

// runCrawl executes the crawls and reports the results.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"seeds", len(cfg.Seeds),
		"max_pages", cfg.MaxPages,
		"static", cfg.StaticFetch,
		"output", cfg.OutputPath,
	)

	// The sink is shared across seeds; it appends so earlier runs are
	// preserved.
	fileSink, err := sink.NewFileSink(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() {
		if err := fileSink.Close(); err != nil {
			logger.Error("failed to close output file", "error", err)
		}
	}()

	// Open the history database unless disabled. Database trouble is
	// never fatal; the crawl proceeds without history.
	var db *database.VisitDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("crawl history disabled", "error", err)
			db = nil
		} else {
			defer db.Close()
			logger.Info("history database opened", "dir", cfg.DBDir)
		}
	}

	// runIDs maps each seed to its history run, filled by the factory.
	runIDs := make(map[string]int64, len(cfg.Seeds))
	var runIDsMu sync.Mutex

	factory := func(seed string) (*crawler.Crawler, error) {
		return buildCrawler(ctx, cfg, seed, fileSink, db, logger, runIDs, &runIDsMu)
	}

	runner := crawler.NewSeedRunner(factory,
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithRunnerLogger(logger),
	)

	summaries, err := runner.Run(ctx, cfg.Seeds)

	// Close out history runs with the final counters.
	if db != nil {
		finishRuns(cfg.Seeds, summaries, db, runIDs, &runIDsMu, logger)
	}

	if reportErr := outputReport(cfg, summaries); reportErr != nil {
		logger.Error("failed to write report", "error", reportErr)
	}

	return err
}

// buildCrawler assembles one crawl for a seed, applying per-host
// overrides from the config file.
func buildCrawler(ctx context.Context, cfg *config.Config, seed string, fileSink sink.Sink, db *database.VisitDB, logger *slog.Logger, runIDs map[string]int64, mu *sync.Mutex) (*crawler.Crawler, error) {
	host := seedHost(seed)
	hostCfg := cfg.HostConfigs.GetHostConfig(host)

	userAgent := cfg.UserAgent
	if hostCfg.UserAgent != "" {
		userAgent = hostCfg.UserAgent
	}

	maxPages := cfg.MaxPages
	if hostCfg.MaxPages > 0 {
		maxPages = hostCfg.MaxPages
	}

	delay := cfg.PolitenessDelay
	if hostCfg.DelaySeconds > 0 {
		delay = time.Duration(hostCfg.DelaySeconds) * time.Second
	}

	var f fetcher.Fetcher
	if cfg.StaticFetch || hostCfg.Static {
		f = fetcher.NewHTTPFetcher(
			fetcher.WithHTTPNavigationTimeout(cfg.NavigationTimeout),
			fetcher.WithHTTPUserAgent(userAgent),
			fetcher.WithHTTPMaxBodySize(cfg.MaxBodySize),
			fetcher.WithHTTPHeaders(hostCfg.Headers),
		)
	} else {
		f = fetcher.NewBrowserFetcher(
			fetcher.WithNavigationTimeout(cfg.NavigationTimeout),
			fetcher.WithIdleTimeout(cfg.IdleTimeout),
			fetcher.WithUserAgent(userAgent),
		)
	}

	opts := []crawler.Option{
		crawler.WithMaxPages(maxPages),
		crawler.WithDelay(delay),
		crawler.WithLogger(logger),
		crawler.WithOutputPath(cfg.OutputPath),
	}

	if db != nil {
		runID, err := db.BeginRun(ctx, seed)
		if err != nil {
			logger.Warn("failed to record run start", "seed", seed, "error", err)
		} else {
			mu.Lock()
			runIDs[seed] = runID
			mu.Unlock()
			opts = append(opts, crawler.WithVisitRecorder(db.RunRecorder(runID)))
		}
	}

	return crawler.New([]string{seed}, f, fileSink, opts...), nil
}

// seedHost extracts the hostname from a seed URL for config lookup.
func seedHost(seed string) string {
	u, err := url.Parse(seed)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// finishRuns writes final counters for every history run that started.
func finishRuns(seeds []string, summaries []*model.CrawlSummary, db *database.VisitDB, runIDs map[string]int64, mu *sync.Mutex, logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()

	for i, seed := range seeds {
		runID, ok := runIDs[seed]
		if !ok {
			continue
		}

		var visited, failed int
		if i < len(summaries) && summaries[i] != nil {
			visited = summaries[i].PagesVisited
			failed = summaries[i].PagesFailed
		}

		if err := db.FinishRun(context.Background(), runID, visited, failed); err != nil {
			logger.Warn("failed to record run finish", "seed", seed, "error", err)
		}
	}
}

// outputReport renders the crawl summaries in the requested format.
func outputReport(cfg *config.Config, summaries []*model.CrawlSummary) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output,
			report.WithPrettyPrint(),
			report.WithVersion(getVersion()),
		)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(summaries)
	return err
}
