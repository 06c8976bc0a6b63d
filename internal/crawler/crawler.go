package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linktrail/linktrail/internal/fetcher"
	"github.com/linktrail/linktrail/internal/frontier"
	"github.com/linktrail/linktrail/internal/model"
	"github.com/linktrail/linktrail/internal/sink"
)

// VisitRecorder receives per-visit records beyond the sink, such as the
// visit-history database. Recorder errors are logged but never abort the
// crawl; the sink is the authoritative output, the recorder is bookkeeping.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, url string, ok bool) error
}

// Crawler runs one breadth-first crawl from a set of seed URLs.
// Each Crawler owns its frontier and fetcher session; instances share
// nothing and may run concurrently without synchronization.
type Crawler struct {
	// seeds are the crawl entry points, cloned at construction so two
	// crawlers can never alias the same backing slice.
	seeds []string

	// frontier holds the pending/visited state machine.
	frontier *frontier.Frontier

	// fetcher retrieves pages. Released in the draining phase on every
	// exit path, including cancellation.
	fetcher fetcher.Fetcher

	// sink is the durable visited-URL record. Sink errors are fatal
	// for the run.
	sink sink.Sink

	// recorder is the optional visit-history hook.
	recorder VisitRecorder

	// delay is the politeness pause between successive fetches.
	delay time.Duration

	// outputPath is reported in the summary.
	outputPath string

	// logger receives per-URL progress. Injected, never global.
	logger *slog.Logger

	// failed counts visited URLs whose fetch or extraction failed.
	failed int
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxPages caps the number of visited pages. Defaults to 100.
func WithMaxPages(maxPages int) Option {
	return func(c *Crawler) {
		c.frontier = frontier.New(maxPages)
	}
}

// WithDelay sets the politeness delay between fetches. Defaults to 5s.
func WithDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.delay = d
	}
}

// WithLogger injects the logger for this crawl run.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithVisitRecorder attaches a visit-history recorder.
func WithVisitRecorder(recorder VisitRecorder) Option {
	return func(c *Crawler) {
		c.recorder = recorder
	}
}

// WithOutputPath sets the sink path echoed in the crawl summary.
func WithOutputPath(path string) Option {
	return func(c *Crawler) {
		c.outputPath = path
	}
}

// New creates a Crawler for the given seeds. The fetcher and sink are
// required collaborators; the crawler closes the fetcher itself but the
// caller keeps ownership of the sink (it may be shared across seeds).
func New(seeds []string, f fetcher.Fetcher, s sink.Sink, opts ...Option) *Crawler {
	c := &Crawler{
		seeds:    append([]string(nil), seeds...),
		frontier: frontier.New(100),
		fetcher:  f,
		sink:     s,
		delay:    5 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Run executes the crawl loop until the frontier drains, the page budget
// is exhausted, or ctx is cancelled. It always returns the summary of
// whatever was crawled; the error is non-nil only for fatal conditions
// (sink write failure, cancellation).
//
// Loop order is fixed: pop, fetch+extract (isolated), mark visited,
// record, politeness delay. A URL is marked visited whether or not its
// fetch succeeded, so a permanently broken URL can never be retried into
// an infinite loop.
func (c *Crawler) Run(ctx context.Context) (*model.CrawlSummary, error) {
	start := time.Now()

	summary := &model.CrawlSummary{
		StartedAt:  start,
		OutputPath: c.outputPath,
	}
	if len(c.seeds) > 0 {
		summary.Seed = c.seeds[0]
	}

	// Seed the frontier with normalized entry points.
	for _, seed := range c.seeds {
		c.frontier.Offer(NormalizeURL(seed))
	}

	// Draining: the fetcher session is released on every exit path.
	defer func() {
		if err := c.fetcher.Close(); err != nil {
			c.logger.Warn("failed to release fetcher", "error", err)
		}
	}()

	var runErr error

	for c.frontier.ShouldContinue() {
		// Cancellation is observed between iterations, never mid-visit.
		if err := ctx.Err(); err != nil {
			summary.Cancelled = true
			runErr = err
			break
		}

		url, ok := c.frontier.Next()
		if !ok {
			break
		}

		c.logger.Info("crawling", "url", url)
		failed := c.visit(ctx, url)
		if failed {
			c.failed++
		}

		// Unconditional: failures count as visited too.
		c.frontier.MarkVisited(url)

		if err := c.sink.Record(url); err != nil {
			// The output can no longer be trusted; stop this run.
			runErr = fmt.Errorf("sink write failed: %w", err)
			break
		}

		if c.recorder != nil {
			if err := c.recorder.RecordVisit(ctx, url, !failed); err != nil {
				c.logger.Warn("failed to record visit history", "url", url, "error", err)
			}
		}

		// Politeness delay: a hard sequencing point before the next
		// fetch, applied after failures as much as successes. Elided
		// only when no further fetch can follow.
		if c.delay > 0 && c.frontier.ShouldContinue() {
			select {
			case <-ctx.Done():
				summary.Cancelled = true
				runErr = ctx.Err()
			case <-time.After(c.delay):
			}
			if runErr != nil {
				break
			}
		}
	}

	summary.PagesVisited = c.frontier.VisitedCount()
	summary.PagesFailed = c.failed
	summary.PagesPending = c.frontier.PendingCount()
	summary.Duration = time.Since(start)

	return summary, runErr
}

// visit fetches one URL and feeds extracted links back to the frontier.
// It reports whether the visit failed. No fault escapes: fetcher faults
// arrive as Failure results by contract, and anything unexpected from
// extraction is recovered here, because a single bad page must never
// stop the crawl.
func (c *Crawler) visit(ctx context.Context, pageURL string) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recovered from page fault", "url", pageURL, "panic", r)
			failed = true
		}
	}()

	result := c.fetcher.Fetch(ctx, pageURL)
	if result.Failed() {
		c.logger.Warn("fetch failed", "url", pageURL, "error", result.Err)
		return true
	}

	page := result.Page
	if !page.IsHTML() {
		// Nothing to extract from; still a successful visit.
		return false
	}

	links, err := ExtractLinks(pageURL, page.HTML)
	if err != nil {
		c.logger.Warn("link extraction failed", "url", pageURL, "error", err)
		return true
	}

	for _, link := range links {
		c.frontier.Offer(link)
	}

	return false
}

// Stats returns the current frontier counters, mainly for tests and
// progress reporting.
func (c *Crawler) Stats() (visited, pending int) {
	return c.frontier.VisitedCount(), c.frontier.PendingCount()
}
