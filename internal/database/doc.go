// Package database provides SQLite-backed crawl history.
//
// The visit database is supplementary bookkeeping next to the text
// sink: it records each crawl run (seed, timing, counters) and every
// visited URL, which powers the history subcommand. Unlike sink
// failures, database failures are not fatal to a crawl; the text sink
// is the authoritative output.
//
// Design decision: We use modernc.org/sqlite (pure Go) rather than a
// cgo driver so the binary cross-compiles without a C toolchain.
package database
