// Package frontier implements the crawl frontier: the state machine that
// tracks which URLs are pending (discovered but not yet fetched) and which
// are visited (fetch attempted, terminal).
//
// # Invariants
//
// The pending and visited sets are always disjoint. A URL moves from
// pending to visited exactly once and is never resurrected: offering a
// visited URL again is a no-op. The visited count never exceeds the
// configured page budget because the crawl loop stops handing out work
// once ShouldContinue reports false.
//
// # Ordering
//
// Next returns URLs in FIFO discovery order, making the crawl breadth
// first. An unordered pending set would make the subset of pages that
// survive budget truncation non-deterministic; FIFO keeps runs
// reproducible for a stable site.
//
// # Concurrency
//
// A Frontier belongs to exactly one crawl loop and is mutated only from
// that goroutine, so it carries no locks. Run multiple independent
// Frontiers for multiple concurrent crawls.
package frontier
