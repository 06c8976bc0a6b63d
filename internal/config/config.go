package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The timing defaults mirror how heavyweight, script-driven sites behave:
// generous render timeouts and a conservative politeness delay.
const (
	// DefaultMaxPages is the maximum number of pages to visit per seed.
	// This prevents runaway crawling on large or infinitely-generating
	// sites. Users can override this via the --max-pages CLI flag.
	DefaultMaxPages = 100

	// DefaultNavigationTimeout bounds initial page load (the DOM being
	// ready). 180 seconds is generous on purpose: the crawler targets
	// slow, script-heavy sites where a shorter timeout would produce
	// many false failures.
	DefaultNavigationTimeout = 180 * time.Second

	// DefaultIdleTimeout bounds the post-load settle phase, waiting for
	// network activity to quiet down so dynamically inserted links are
	// present before extraction.
	DefaultIdleTimeout = 180 * time.Second

	// DefaultPolitenessDelay is the pause between successive fetches.
	// 5 seconds is deliberately conservative; this crawler favors being
	// a good citizen over throughput.
	DefaultPolitenessDelay = 5 * time.Second

	// DefaultOutputPath is the append-only file that receives one
	// visited URL per line. Relative to the working directory.
	DefaultOutputPath = "visited_links.txt"

	// DefaultConcurrency of 1 crawls seeds strictly one at a time.
	// Each concurrent seed costs a browser session, so higher values
	// trade memory for wall-clock time.
	DefaultConcurrency = 1

	// DefaultUserAgent is sent with every request. A mainstream browser
	// identity keeps script-heavy sites from serving the degraded
	// no-JS fallback that hides most of their links.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:88.0) Gecko/20100101 Firefox/88.0"

	// DefaultMaxBodySize limits the response body size for the static
	// fetcher. 5MB is sufficient for most HTML pages while preventing
	// memory exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "linktrail"
)

// Config holds all configuration options for linktrail.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Seeds is the list of URLs to start crawling from. Each seed gets
	// its own independent crawl with its own frontier and budget.
	Seeds []string

	// MaxPages is the maximum number of pages to visit per seed.
	// A value of 0 means use the default (DefaultMaxPages).
	MaxPages int

	// OutputPath is the append-only file receiving one visited URL per
	// line. Appending preserves history across runs.
	OutputPath string

	// NavigationTimeout bounds the initial page load of each fetch.
	NavigationTimeout time.Duration

	// IdleTimeout bounds the network-idle settle phase after load.
	// Only meaningful for the browser fetcher.
	IdleTimeout time.Duration

	// PolitenessDelay is the pause between successive fetches within
	// one crawl. Applied after failures as much as successes.
	PolitenessDelay time.Duration

	// StaticFetch selects the plain HTTP fetcher instead of the
	// headless browser. Faster and lighter, but invisible to pages
	// that only render links via script.
	StaticFetch bool

	// Concurrency is the number of seeds crawled at once. Within one
	// seed the crawl is always strictly sequential.
	Concurrency int

	// UserAgent is the User-Agent identity for all fetches.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes for the
	// static fetcher. Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, info and above are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .linktrail.yaml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// HostConfigs holds per-host overrides loaded from the config file.
	HostConfigs *File

	// JSONReport emits the crawl summary as JSON instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport emits the crawl summary as GitHub Flavored
	// Markdown. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the summary report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for storing the SQLite history
	// database. Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to record crawl history to the
	// database. Disabled by --no-db.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, delays,
// output path). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MaxPages:          DefaultMaxPages,
		OutputPath:        DefaultOutputPath,
		NavigationTimeout: DefaultNavigationTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		PolitenessDelay:   DefaultPolitenessDelay,
		Concurrency:       DefaultConcurrency,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		DBDir:             XDGDataDir(),
		SaveToDB:          true,
	}
}

// XDGDataDir returns the XDG data directory for linktrail.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/linktrail
// On macOS: ~/Library/Application Support/linktrail
// On Windows: %LOCALAPPDATA%\linktrail
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for linktrail.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one seed to crawl
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}

	// MaxPages must be positive; zero would mean no crawling
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	// Timeouts must be positive; zero would fail every fetch immediately
	if c.NavigationTimeout <= 0 || c.IdleTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// PolitenessDelay must be non-negative; use 0 for no delay
	if c.PolitenessDelay < 0 {
		return ErrInvalidDelay
	}

	// Concurrency must be positive; zero would mean no crawling
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// MaxBodySize must be non-negative; 0 means the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// The sink path cannot be empty; the visited record is the product
	if c.OutputPath == "" {
		return ErrNoOutputPath
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
