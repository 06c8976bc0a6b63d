// Package fetcher provides page retrieval for the crawler.
//
// Two implementations exist: a headless-browser fetcher built on go-rod
// that returns fully rendered markup, and a plain HTTP fetcher for static
// sites. Both satisfy the Fetcher interface, which converts every
// per-URL fault into a FetchResult failure so the crawl loop never sees
// a raw error from this boundary.
//
// # Timeouts
//
// A fetch is bounded by two independent ceilings: a navigation timeout
// for the initial response and load event, and an idle timeout for the
// "network settled" condition on dynamic pages. Both default to a
// generous 180 seconds because script-heavy pages can keep loading long
// after the document arrives. The static fetcher has no render phase,
// so only the navigation timeout applies there.
package fetcher
