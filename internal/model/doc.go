// Package model defines the core data types shared across linktrail:
// fetched pages, fetch results, and per-seed crawl summaries.
//
// The package has no dependencies on other internal packages so that
// every layer (fetcher, crawler, sink, report) can import it freely.
package model
