// Package crawler drives breadth-first same-origin web crawls.
//
// # Architecture
//
// The Crawler type owns one crawl run: it pops URLs from a frontier,
// fetches them through a pluggable Fetcher, extracts same-origin links,
// feeds them back to the frontier, and records every visited URL to a
// sink. One Crawler means one frontier, one fetcher session, and one
// sequential loop; concurrency happens only across independent Crawler
// instances via the SeedRunner.
//
// Design decision: We implement the crawl loop ourselves rather than using
// a crawling framework because:
//  1. The frontier state machine (pending/visited, budget, no-retry) is
//     the point of the tool and must be under direct control
//  2. The fetch mechanism is pluggable (headless browser or plain HTTP),
//     which frameworks tend to own themselves
//  3. The loop is small; a framework would be more code to configure
//     than to write
//
// # Components
//
//   - Crawler: the sequential orchestrator for one seed
//   - ExtractLinks: HTML link extraction with the same-origin filter
//   - SeedRunner: runs one Crawler per seed with bounded concurrency
//
// # Politeness
//
// A fixed delay separates successive fetches, enforced as a cancellable
// wait after each visit. The delay applies after failures as much as
// after successes and is elided only when no further fetch can follow.
package crawler
