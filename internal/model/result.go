package model

// FetchResult is the two-variant outcome of a single fetch attempt:
// either a page or a failure reason, never both.
//
// Design decision: We use a small union struct rather than (*Page, error)
// returns because the fetcher boundary must never leak a raw error for a
// single URL into the crawl loop. Forcing callers through Failed() keeps
// the "a bad page cannot stop the crawl" rule in the type system rather
// than in call-site discipline.
type FetchResult struct {
	// Page is the fetched page. Nil when the fetch failed.
	Page *Page

	// Err is the failure reason. Nil when the fetch succeeded.
	Err error
}

// Content wraps a successfully fetched page.
func Content(page *Page) *FetchResult {
	return &FetchResult{Page: page}
}

// Failure wraps a fetch failure.
func Failure(err error) *FetchResult {
	return &FetchResult{Err: err}
}

// Failed reports whether the fetch attempt failed.
func (r *FetchResult) Failed() bool {
	return r.Err != nil
}
