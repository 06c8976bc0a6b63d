package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoSeeds is returned when no seed URL is specified.
	// This error occurs when neither positional arguments nor the config
	// file provide a seed.
	ErrNoSeeds = errors.New("no seed specified: provide at least one URL to crawl")

	// ErrInvalidMaxPages is returned when the page budget is not positive.
	// A budget of zero or less would mean nothing gets crawled.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidTimeout is returned when a fetch timeout is not positive.
	// A timeout of zero or negative would fail every fetch immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when the politeness delay is negative.
	// A negative delay is invalid; use 0 for no delay between fetches.
	ErrInvalidDelay = errors.New("invalid politeness delay: must be non-negative")

	// ErrInvalidConcurrency is returned when the seed concurrency is not
	// positive. A concurrency of zero would mean no crawling at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoOutputPath is returned when the output path is empty.
	// The visited-URL file is the crawl's primary product and cannot be
	// disabled.
	ErrNoOutputPath = errors.New("no output path: the visited-links file is required")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
