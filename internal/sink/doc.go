// Package sink persists the durable record of visited URLs.
//
// The file sink is the canonical output: an append-only text file with
// one normalized URL per line. Runs append without deduplicating against
// prior runs, so overlapping seeds produce duplicate lines across runs
// (never within one run, since the frontier's visited set is a set).
//
// Sink write failures are fatal for the crawl run that hit them: a crawl
// whose output cannot be trusted should stop rather than silently lose
// data.
package sink
