package frontier

// Frontier tracks pending and visited URLs for a single crawl run.
// URLs are compared by their exact string form; callers are expected to
// offer normalized URLs so that equal pages deduplicate.
type Frontier struct {
	// queue holds pending URLs in discovery order.
	queue []string

	// pending is the membership set backing queue.
	pending map[string]struct{}

	// visited holds URLs whose fetch has been attempted.
	visited map[string]struct{}

	// maxPages is the hard cap on the visited count.
	maxPages int
}

// New creates a Frontier with the given page budget.
// A non-positive budget is treated as zero: ShouldContinue is
// immediately false and the crawl visits nothing.
func New(maxPages int) *Frontier {
	if maxPages < 0 {
		maxPages = 0
	}
	return &Frontier{
		queue:    make([]string, 0),
		pending:  make(map[string]struct{}),
		visited:  make(map[string]struct{}),
		maxPages: maxPages,
	}
}

// Offer adds url to the pending set if it is absent from both pending
// and visited. Offering a duplicate or an already-visited URL is a no-op,
// so duplicates from link extraction and re-discovered pages are filtered
// here rather than upstream.
func (f *Frontier) Offer(url string) {
	if url == "" {
		return
	}
	if _, ok := f.visited[url]; ok {
		return
	}
	if _, ok := f.pending[url]; ok {
		return
	}
	f.pending[url] = struct{}{}
	f.queue = append(f.queue, url)
}

// Next removes and returns the oldest pending URL.
// The second return value is false when the pending set is empty.
func (f *Frontier) Next() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.pending, url)
	return url, true
}

// MarkVisited moves url into the visited set. Idempotent: marking an
// already-visited URL changes nothing. If the URL is still pending
// (offered but not yet returned by Next), it is removed from pending so
// the disjointness invariant holds; the stale queue entry is skipped
// lazily by Next callers via the visited check in Offer and the crawl
// loop's budget check.
func (f *Frontier) MarkVisited(url string) {
	if _, ok := f.visited[url]; ok {
		return
	}
	if _, ok := f.pending[url]; ok {
		delete(f.pending, url)
		f.dropQueued(url)
	}
	f.visited[url] = struct{}{}
}

// dropQueued removes url from the FIFO queue. Only reachable when a URL
// is marked visited without having been popped, which normal crawl loops
// never do, so the linear scan is fine.
func (f *Frontier) dropQueued(url string) {
	for i, queued := range f.queue {
		if queued == url {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			return
		}
	}
}

// ShouldContinue reports whether the crawl loop should keep going:
// there is pending work and the visited count is below the budget.
func (f *Frontier) ShouldContinue() bool {
	return len(f.queue) > 0 && len(f.visited) < f.maxPages
}

// PendingCount returns the number of URLs waiting to be fetched.
func (f *Frontier) PendingCount() int {
	return len(f.queue)
}

// VisitedCount returns the number of URLs whose fetch was attempted.
func (f *Frontier) VisitedCount() int {
	return len(f.visited)
}

// IsVisited reports whether url has already been visited.
func (f *Frontier) IsVisited(url string) bool {
	_, ok := f.visited[url]
	return ok
}
