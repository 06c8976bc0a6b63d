package model

import "time"

// CrawlSummary describes the outcome of one crawl run for one seed.
type CrawlSummary struct {
	// Seed is the URL the crawl started from.
	Seed string `json:"seed"`

	// PagesVisited is the number of URLs whose fetch was attempted,
	// successful or not. Bounded by the page budget.
	PagesVisited int `json:"pages_visited"`

	// PagesFailed is the number of visited URLs whose fetch failed.
	PagesFailed int `json:"pages_failed"`

	// PagesPending is the number of discovered URLs left unvisited
	// when the run stopped (budget exhausted or cancelled).
	PagesPending int `json:"pages_pending"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// OutputPath is the sink file visited URLs were appended to.
	OutputPath string `json:"output_path"`

	// Cancelled indicates the run was interrupted before the frontier
	// drained or the budget was reached.
	Cancelled bool `json:"cancelled,omitempty"`
}
