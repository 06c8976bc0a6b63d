package crawler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/linktrail/linktrail/internal/model"
)

// SeedRunner executes one independent Crawler per seed URL.
//
// Design decision: We use a separate runner rather than teaching Crawler
// about multiple seeds-as-sites because:
//  1. Each seed gets its own frontier and fetcher session, so failures
//     and budgets are isolated per seed
//  2. It keeps the Crawler focused on the single sequential loop
//  3. Concurrency policy (how many crawls at once) is an orchestration
//     concern, not a crawl concern
type SeedRunner struct {
	// crawlerFactory builds a fresh Crawler for a seed. A factory keeps
	// crawl state from leaking between seeds.
	crawlerFactory func(seed string) (*Crawler, error)

	// concurrency is the maximum number of crawls in flight.
	// The default of 1 runs seeds strictly in order.
	concurrency int

	// launchInterval spaces out crawl starts so concurrent runs do not
	// all launch a browser in the same instant.
	launchInterval time.Duration

	// logger is used for runner-level logging.
	logger *slog.Logger

	// summaries collects per-seed results, index-aligned with the
	// seeds slice. Guarded by mu.
	summaries []*model.CrawlSummary
	mu        sync.Mutex
}

// RunnerOption configures a SeedRunner.
type RunnerOption func(*SeedRunner)

// WithRunnerLogger sets the logger for seed orchestration.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *SeedRunner) {
		r.logger = logger
	}
}

// WithConcurrency sets how many seeds crawl at once. Values below one
// are ignored.
func WithConcurrency(n int) RunnerOption {
	return func(r *SeedRunner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLaunchInterval sets the minimum spacing between crawl starts.
func WithLaunchInterval(d time.Duration) RunnerOption {
	return func(r *SeedRunner) {
		r.launchInterval = d
	}
}

// NewSeedRunner creates a runner around a crawler factory.
func NewSeedRunner(factory func(seed string) (*Crawler, error), opts ...RunnerOption) *SeedRunner {
	r := &SeedRunner{
		crawlerFactory: factory,
		concurrency:    1,
		launchInterval: time.Second,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run crawls every seed and returns the per-seed summaries in input
// order. A failed seed (fetch session unavailable, sink failure) does
// not cancel its siblings; its partial summary is kept and the failure
// is logged. The returned error is non-nil only when the whole batch
// was cancelled.
func (r *SeedRunner) Run(ctx context.Context, seeds []string) ([]*model.CrawlSummary, error) {
	r.logger.Info("starting crawl batch",
		"seeds", len(seeds),
		"concurrency", r.concurrency,
	)

	startTime := time.Now()
	r.summaries = make([]*model.CrawlSummary, len(seeds))

	// Browser launches are expensive spikes; space them out even when
	// several crawls run concurrently.
	launchLimiter := rate.NewLimiter(rate.Every(r.launchInterval), 1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, seed := range seeds {
		g.Go(func() error {
			if err := launchLimiter.Wait(ctx); err != nil {
				return err
			}

			r.logger.Info("starting crawl",
				"seed", seed,
				"index", i+1,
				"total", len(seeds),
			)

			c, err := r.crawlerFactory(seed)
			if err != nil {
				r.logger.Error("failed to build crawler", "seed", seed, "error", err)
				return nil
			}

			summary, err := c.Run(ctx)

			// Keep the partial summary regardless of how the run ended.
			r.mu.Lock()
			r.summaries[i] = summary
			r.mu.Unlock()

			if err != nil {
				r.logger.Warn("crawl ended with error", "seed", seed, "error", err)
				// Per-seed failures stay local; siblings keep crawling.
				return nil
			}

			r.logger.Info("crawl finished",
				"seed", seed,
				"pages_visited", summary.PagesVisited,
			)
			return nil
		})
	}

	err := g.Wait()

	r.logger.Info("crawl batch complete",
		"seeds", len(seeds),
		"elapsed", time.Since(startTime),
	)

	return r.summaries, err
}
